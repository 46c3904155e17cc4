package services

import (
	"context"

	"github.com/rpupo63/video-portfolio-backend/normalize"
	"github.com/rs/zerolog/log"
)

// SeedProjects is the starter portfolio. References use every accepted YouTube
// form; creation canonicalizes them.
func SeedProjects() []normalize.ProjectInput {
	return []normalize.ProjectInput{
		{
			Title:       ptr("Neon Nights"),
			Category:    ptr("Short Film"),
			Year:        &normalize.LooseValue{Raw: "2024"},
			DurationSec: ptr(180),
			Description: ptr("A visually stunning short film exploring the vibrant nightlife of urban landscapes through neon-lit streets and dynamic cinematography."),
			YoutubeURL:  ptr("https://www.youtube.com/watch?v=dQw4w9WgXcQ"),
			Tools:       &[]string{"Adobe Premiere Pro", "After Effects", "DaVinci Resolve", "Cinema 4D"},
			IsFeatured:  ptr(true),
			SortOrder:   ptr(1),
		},
		{
			Title:       ptr("Golden Hour"),
			Category:    ptr("Commercial"),
			Year:        &normalize.LooseValue{Raw: "2024"},
			DurationSec: ptr(90),
			Description: ptr("A commercial project capturing the essence of luxury brands during the golden hour, featuring elegant transitions and color grading."),
			YoutubeURL:  ptr("https://youtu.be/dQw4w9WgXcQ"),
			Tools:       &[]string{"Final Cut Pro", "Color Finale", "Motion"},
			IsFeatured:  ptr(true),
			SortOrder:   ptr(2),
		},
		{
			Title:        ptr("The Interview"),
			Category:     ptr("Documentary"),
			Year:         &normalize.LooseValue{Raw: "2023"},
			DurationSec:  ptr(1200),
			Description:  ptr("An in-depth documentary featuring interviews with industry leaders, showcasing authentic storytelling and professional editing techniques."),
			YoutubeURL:   ptr("https://www.youtube.com/watch?v=dQw4w9WgXcQ"),
			ThumbnailURL: ptr("/thumbnails/the-interview.jpg"),
			Tools:        &[]string{"Adobe Premiere Pro", "Audition", "Photoshop"},
			IsFeatured:   ptr(false),
			SortOrder:    ptr(0),
		},
		{
			Title:       ptr("Skyline"),
			Category:    ptr("Reel"),
			Year:        &normalize.LooseValue{Raw: "2024"},
			DurationSec: ptr(60),
			Description: ptr("A dynamic showreel showcasing architectural videography and time-lapse techniques of urban skylines."),
			YoutubeURL:  ptr("dQw4w9WgXcQ"),
			Tools:       &[]string{"DaVinci Resolve", "LRTimelapse", "After Effects"},
			IsFeatured:  ptr(true),
			SortOrder:   ptr(3),
		},
		{
			Title:       ptr("Breaking Point"),
			Category:    ptr("Short Film"),
			Year:        &normalize.LooseValue{Raw: "2023"},
			DurationSec: ptr(240),
			Description: ptr("A dramatic short film exploring themes of resilience and transformation, featuring intense editing and sound design."),
			YoutubeURL:  ptr("https://www.youtube.com/watch?v=dQw4w9WgXcQ"),
			Tools:       &[]string{"Adobe Premiere Pro", "After Effects", "Pro Tools"},
			IsFeatured:  ptr(true),
			SortOrder:   ptr(4),
		},
		{
			Title:       ptr("Chromatic"),
			Category:    ptr("Music Video"),
			Year:        &normalize.LooseValue{Raw: "2024"},
			DurationSec: ptr(210),
			Description: ptr("A vibrant music video with experimental color grading and rhythmic editing synchronized to the beat."),
			YoutubeURL:  ptr("https://www.youtube.com/watch?v=dQw4w9WgXcQ"),
			Tools:       &[]string{"Final Cut Pro", "DaVinci Resolve", "After Effects", "Trapcode Suite"},
			IsFeatured:  ptr(true),
			SortOrder:   ptr(5),
		},
	}
}

// Seed creates inputs through the project service. With reset, existing
// projects are removed first.
func Seed(ctx context.Context, projects *ProjectService, inputs []normalize.ProjectInput, reset bool) ([]*normalize.ProjectResponse, error) {
	if reset {
		deleted, err := projects.DeleteAll(ctx)
		if err != nil {
			return nil, err
		}
		log.Info().Int64("deleted", deleted).Msg("cleared existing projects")
	}

	created := make([]*normalize.ProjectResponse, 0, len(inputs))
	for _, in := range inputs {
		project, err := projects.Create(ctx, in)
		if err != nil {
			return created, err
		}
		created = append(created, project)
	}

	log.Info().Int("created", len(created)).Msg("seeded projects")
	return created, nil
}
