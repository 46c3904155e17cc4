package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/rpupo63/video-portfolio-backend/youtube"
)

// ProjectResponse is the one project shape the API returns, whichever schema
// generation the row was written by. Every field is always present.
type ProjectResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Date        *time.Time `json:"date"`
	Year        string     `json:"year"`
	Duration    string     `json:"duration"`
	Tools       []string   `json:"tools"`
	Description string     `json:"description"`
	YoutubeURL  *string    `json:"youtubeUrl"`
	Thumbnail   *string    `json:"thumbnail"`
	CreatedAt   *time.Time `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// FormatDuration renders seconds as m:ss. Negative input renders as 0:00.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// NormalizeProject maps a stored project to its response. A nil project maps
// to nil so callers can pass "not found" straight through.
func NormalizeProject(project *models.Project) *ProjectResponse {
	if project == nil {
		return nil
	}

	response := &ProjectResponse{
		ID:          idString(project.ID),
		Title:       project.Title,
		Category:    deref(project.Category),
		Date:        project.Date,
		Year:        yearString(project),
		Duration:    durationString(project),
		Tools:       nonBlank(project.Tools),
		Description: project.Description,
		CreatedAt:   timeOrNil(project.CreatedAt),
		UpdatedAt:   timeOrNil(project.UpdatedAt),
	}

	ref := deref(project.YoutubeURL)
	if ref == "" {
		ref = deref(project.LegacyYoutube)
	}
	if canonical, ok := youtube.CanonicalURL(ref); ok {
		response.YoutubeURL = &canonical
	}

	response.Thumbnail = resolveThumbnail(project, ref)
	return response
}

// NormalizeProjects maps projects in order, dropping entries that normalize to nil.
func NormalizeProjects(projects []*models.Project) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		if normalized := NormalizeProject(project); normalized != nil {
			responses = append(responses, *normalized)
		}
	}
	return responses
}

// resolveThumbnail picks, in order: the explicit thumbnail URL, the YouTube
// thumbnail, the legacy thumbnail path. It never invents a placeholder.
func resolveThumbnail(project *models.Project, youtubeRef string) *string {
	if explicit := strings.TrimSpace(deref(project.ThumbnailURL)); explicit != "" {
		return &explicit
	}
	if derived, ok := youtube.ThumbnailURL(youtubeRef, youtube.QualityHigh); ok {
		return &derived
	}
	if legacy := strings.TrimSpace(deref(project.LegacyThumb)); legacy != "" {
		return &legacy
	}
	return nil
}

func yearString(project *models.Project) string {
	if project.Year != nil {
		return strconv.Itoa(*project.Year)
	}
	return deref(project.LegacyYear)
}

func durationString(project *models.Project) string {
	if project.DurationSec != nil {
		return FormatDuration(*project.DurationSec)
	}
	if project.LegacyDuration != nil && *project.LegacyDuration != "" {
		return *project.LegacyDuration
	}
	return "0:00"
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func idString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
