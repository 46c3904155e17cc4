package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "1:30", FormatDuration(90))
	assert.Equal(t, "0:05", FormatDuration(5))
	assert.Equal(t, "20:00", FormatDuration(1200))
	assert.Equal(t, "0:00", FormatDuration(-5))
}

func TestNormalizeProject_Nil(t *testing.T) {
	assert.Nil(t, NormalizeProject(nil))
}

func TestNormalizeProject_ThumbnailPrecedence(t *testing.T) {
	t.Run("explicit override wins over youtube", func(t *testing.T) {
		out := NormalizeProject(&models.Project{
			ThumbnailURL: ptr(" /t.jpg "),
			YoutubeURL:   ptr("https://www.youtube.com/watch?v=dQw4w9WgXcQ"),
			LegacyThumb:  ptr("/legacy.jpg"),
		})
		require.NotNil(t, out.Thumbnail)
		assert.Equal(t, "/t.jpg", *out.Thumbnail)
	})

	t.Run("youtube derived when no override", func(t *testing.T) {
		out := NormalizeProject(&models.Project{
			ThumbnailURL: ptr("   "),
			YoutubeURL:   ptr("https://youtu.be/dQw4w9WgXcQ"),
			LegacyThumb:  ptr("/legacy.jpg"),
		})
		require.NotNil(t, out.Thumbnail)
		assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", *out.Thumbnail)
	})

	t.Run("legacy youtubeId alias", func(t *testing.T) {
		out := NormalizeProject(&models.Project{LegacyYoutube: ptr("dQw4w9WgXcQ")})
		require.NotNil(t, out.Thumbnail)
		assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", *out.Thumbnail)
		require.NotNil(t, out.YoutubeURL)
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", *out.YoutubeURL)
	})

	t.Run("legacy thumbnail", func(t *testing.T) {
		out := NormalizeProject(&models.Project{LegacyThumb: ptr("/legacy.jpg")})
		require.NotNil(t, out.Thumbnail)
		assert.Equal(t, "/legacy.jpg", *out.Thumbnail)
	})

	t.Run("nothing", func(t *testing.T) {
		out := NormalizeProject(&models.Project{})
		assert.Nil(t, out.Thumbnail)
		assert.Nil(t, out.YoutubeURL)
	})

	t.Run("unresolvable youtube is dropped", func(t *testing.T) {
		out := NormalizeProject(&models.Project{YoutubeURL: ptr("https://vimeo.com/42"), LegacyThumb: ptr("/l.jpg")})
		assert.Nil(t, out.YoutubeURL)
		require.NotNil(t, out.Thumbnail)
		assert.Equal(t, "/l.jpg", *out.Thumbnail)
	})
}

func TestNormalizeProject_CanonicalRecord(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)

	out := NormalizeProject(&models.Project{
		ID:          id,
		Title:       "Golden Hour",
		Category:    ptr(models.CategoryCommercial),
		Year:        ptr(2024),
		DurationSec: ptr(90),
		Description: "Luxury brands",
		Date:        &date,
		Tools:       []string{"Final Cut Pro", "", "  ", "Motion"},
		CreatedAt:   created,
		UpdatedAt:   created,
	})

	assert.Equal(t, id.String(), out.ID)
	assert.Equal(t, "Golden Hour", out.Title)
	assert.Equal(t, "Commercial", out.Category)
	assert.Equal(t, "2024", out.Year)
	assert.Equal(t, "1:30", out.Duration)
	assert.Equal(t, []string{"Final Cut Pro", "Motion"}, out.Tools)
	assert.Equal(t, &date, out.Date)
	require.NotNil(t, out.CreatedAt)
	assert.True(t, created.Equal(*out.CreatedAt))
}

func TestNormalizeProject_LegacyRecord(t *testing.T) {
	out := NormalizeProject(&models.Project{
		Title:          "Old Reel",
		LegacyDuration: ptr("3:45"),
		LegacyYear:     ptr("2019"),
	})

	assert.Equal(t, "", out.ID)
	assert.Equal(t, "", out.Category)
	assert.Equal(t, "2019", out.Year)
	assert.Equal(t, "3:45", out.Duration)
	assert.Equal(t, []string{}, out.Tools)
	assert.Nil(t, out.CreatedAt)
	assert.Nil(t, out.UpdatedAt)

	out = NormalizeProject(&models.Project{Title: "Bare"})
	assert.Equal(t, "0:00", out.Duration)
	assert.Equal(t, "", out.Year)
}

func TestNormalizeProject_DurationSecWinsOverLegacy(t *testing.T) {
	out := NormalizeProject(&models.Project{DurationSec: ptr(61), LegacyDuration: ptr("9:99")})
	assert.Equal(t, "1:01", out.Duration)
}

func TestNormalizeProject_ResponseShapeIsComplete(t *testing.T) {
	body, err := json.Marshal(NormalizeProject(&models.Project{Title: "Shape"}))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))

	for _, key := range []string{"id", "title", "category", "date", "year", "duration", "tools",
		"description", "youtubeUrl", "thumbnail", "createdAt", "updatedAt"} {
		assert.Contains(t, fields, key)
	}
	assert.Len(t, fields, 12)
	assert.Equal(t, []any{}, fields["tools"])
	assert.Nil(t, fields["thumbnail"])
}

func TestNormalizeProjects_DropsNilKeepsOrder(t *testing.T) {
	out := NormalizeProjects([]*models.Project{nil, {Title: "A"}, nil, {Title: "B"}})
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Title)
	assert.Equal(t, "B", out[1].Title)

	assert.Empty(t, NormalizeProjects(nil))
	assert.NotNil(t, NormalizeProjects(nil))
}

func TestNormalizeProject_BlankYouTubeURLDoesNotFallBack(t *testing.T) {
	out := NormalizeProject(&models.Project{
		YoutubeURL:    ptr("  "),
		LegacyYoutube: ptr("dQw4w9WgXcQ"),
		LegacyThumb:   ptr("/legacy.jpg"),
	})
	assert.Nil(t, out.YoutubeURL)
	require.NotNil(t, out.Thumbnail)
	assert.Equal(t, "/legacy.jpg", *out.Thumbnail)

	out = NormalizeProject(&models.Project{YoutubeURL: ptr(""), LegacyYoutube: ptr("dQw4w9WgXcQ")})
	require.NotNil(t, out.YoutubeURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", *out.YoutubeURL)
}

func TestCoerceThenNormalize(t *testing.T) {
	patch := CoerceProjectInput(decodeInput(t, `{"title": "X", "youtubeUrl": "dQw4w9WgXcQ", "thumbnailUrl": ""}`))
	require.NotNil(t, patch.YoutubeURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", *patch.YoutubeURL)

	project := &models.Project{}
	patch.ApplyTo(project)
	project.Prepare()
	assert.Nil(t, project.ThumbnailURL)

	out := NormalizeProject(project)
	require.NotNil(t, out.Thumbnail)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", *out.Thumbnail)
	require.NotNil(t, out.YoutubeURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", *out.YoutubeURL)
}
