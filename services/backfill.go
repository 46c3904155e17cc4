package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/rpupo63/video-portfolio-backend/normalize"
	"github.com/rpupo63/video-portfolio-backend/youtube"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// LegacyStore is implemented by database.ProjectRepo.
type LegacyStore interface {
	FindLegacy(ctx context.Context, limit int) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
}

// BackfillResult summarises one backfill run.
type BackfillResult struct {
	Found    int
	Migrated int
	Failed   int
	Errors   []string
}

// Backfill rewrites legacy project rows into the canonical shape.
type Backfill struct {
	store       LegacyStore
	concurrency int
	dryRun      bool
	now         func() time.Time
}

type BackfillOption func(*Backfill)

// WithConcurrency bounds the number of rows written at once.
func WithConcurrency(n int) BackfillOption {
	return func(b *Backfill) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithDryRun converts and validates rows without writing them.
func WithDryRun(dryRun bool) BackfillOption {
	return func(b *Backfill) {
		b.dryRun = dryRun
	}
}

func NewBackfill(store LegacyStore, opts ...BackfillOption) *Backfill {
	b := &Backfill{
		store:       store,
		concurrency: 4,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run converts every legacy row. A row that fails validation or cannot be
// written is counted and reported; the run continues with the others.
func (b *Backfill) Run(ctx context.Context) (BackfillResult, error) {
	projects, err := b.store.FindLegacy(ctx, 0)
	if err != nil {
		return BackfillResult{}, err
	}

	result := BackfillResult{Found: len(projects)}
	if len(projects) == 0 {
		return result, nil
	}

	fallbackYear := b.now().Year()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for _, project := range projects {
		project := project
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			err := b.migrate(gctx, project, fallbackYear)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", projectLabel(project), err))
				log.Warn().Err(err).Str("projectID", project.ID.String()).Msg("legacy project not migrated")
				return nil
			}
			result.Migrated++
			log.Debug().Str("projectID", project.ID.String()).Str("title", project.Title).Msg("migrated legacy project")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	slices.Sort(result.Errors)
	return result, nil
}

func (b *Backfill) migrate(ctx context.Context, project *models.Project, fallbackYear int) error {
	UpgradeLegacyProject(project, fallbackYear)
	project.Prepare()
	if err := models.Validate(project); err != nil {
		return err
	}
	if b.dryRun {
		return nil
	}
	return b.store.Update(ctx, project)
}

// UpgradeLegacyProject fills the canonical columns of a legacy row from its
// legacy columns and clears the legacy columns it consumed. Years that cannot
// be read fall back to fallbackYear; unreadable durations become 0.
func UpgradeLegacyProject(project *models.Project, fallbackYear int) {
	if strings.TrimSpace(project.Title) == "" {
		project.Title = "Untitled Project"
	}

	if project.Category == nil || !slices.Contains(models.Categories, *project.Category) {
		category := normalize.MapCategory(deref(project.Category))
		project.Category = &category
	}

	if project.Year == nil {
		year := fallbackYear
		switch {
		case project.LegacyYear != nil:
			if parsed, ok := normalize.YearFromText(*project.LegacyYear); ok {
				year = parsed
			}
		case project.Date != nil:
			if parsed := project.Date.Year(); parsed >= 1900 && parsed <= 2100 {
				year = parsed
			}
		}
		project.Year = &year
		project.LegacyYear = nil
	}

	if project.DurationSec == nil {
		seconds := 0
		if project.LegacyDuration != nil {
			if parsed, ok := normalize.DurationToSeconds(*project.LegacyDuration); ok {
				seconds = parsed
			}
		}
		project.DurationSec = &seconds
		project.LegacyDuration = nil
	}

	if project.ThumbnailURL == nil && project.LegacyThumb != nil {
		if thumb, ok := normalize.LegacyThumbnailPath(*project.LegacyThumb); ok {
			project.ThumbnailURL = &thumb
		}
		project.LegacyThumb = nil
	}

	// An unresolvable youtube_id stays in place so reads keep trying it.
	if project.YoutubeURL == nil && project.LegacyYoutube != nil {
		if canonical, ok := youtube.CanonicalURL(*project.LegacyYoutube); ok {
			project.YoutubeURL = &canonical
			project.LegacyYoutube = nil
		}
	}

	if project.IsFeatured == nil {
		project.IsFeatured = ptr(true)
	}
	if project.SortOrder == nil {
		project.SortOrder = ptr(0)
	}
	if project.Tools == nil {
		project.Tools = datatypes.JSONSlice[string]{}
	}
}

func projectLabel(project *models.Project) string {
	if project.Title != "" {
		return fmt.Sprintf("%q", project.Title)
	}
	if project.LegacyID != nil {
		return fmt.Sprintf("legacy #%d", *project.LegacyID)
	}
	if project.ID != uuid.Nil {
		return project.ID.String()
	}
	return "project"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
