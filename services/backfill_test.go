package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestUpgradeLegacyProject(t *testing.T) {
	project := legacyProject()
	project.Category = ptr("mv")

	UpgradeLegacyProject(project, 2026)

	assert.Equal(t, models.CategoryMusicVideo, *project.Category)
	assert.Equal(t, 2019, *project.Year)
	assert.Equal(t, 125, *project.DurationSec)
	assert.Equal(t, "/thumbnails/old-cut.png", *project.ThumbnailURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", *project.YoutubeURL)
	assert.True(t, project.Featured())
	assert.Equal(t, 0, project.EffectiveSortOrder())

	assert.Nil(t, project.LegacyYear)
	assert.Nil(t, project.LegacyDuration)
	assert.Nil(t, project.LegacyThumb)
	assert.Nil(t, project.LegacyYoutube)
	assert.False(t, project.IsLegacy())
}

func TestUpgradeLegacyProject_Fallbacks(t *testing.T) {
	date := time.Date(1850, time.March, 1, 0, 0, 0, 0, time.UTC)
	project := &models.Project{
		Date:           &date,
		LegacyDuration: ptr("about four minutes"),
		LegacyYoutube:  ptr("not a video"),
	}

	UpgradeLegacyProject(project, 2026)

	assert.Equal(t, "Untitled Project", project.Title)
	assert.Equal(t, models.CategoryShortFilm, *project.Category)
	assert.Equal(t, 2026, *project.Year)
	assert.Equal(t, 0, *project.DurationSec)
	assert.Nil(t, project.ThumbnailURL)
	assert.Nil(t, project.YoutubeURL)
	assert.Equal(t, "not a video", *project.LegacyYoutube)
	assert.Equal(t, datatypes.JSONSlice[string]{}, project.Tools)
}

func TestUpgradeLegacyProject_YearFromDate(t *testing.T) {
	date := time.Date(2017, time.June, 9, 0, 0, 0, 0, time.UTC)
	project := &models.Project{Date: &date}

	UpgradeLegacyProject(project, 2026)
	assert.Equal(t, 2017, *project.Year)
}

func TestBackfill_Run(t *testing.T) {
	good := legacyProject()
	noDescription := legacyProject()
	noDescription.Title = "Blank"
	noDescription.Description = ""
	writeFails := legacyProject()
	writeFails.Title = "Locked"
	canonical := &models.Project{
		Title:       "Done",
		Category:    ptr(models.CategoryReel),
		Year:        ptr(2020),
		DurationSec: ptr(30),
		Description: "Already canonical",
	}

	store := newFakeProjectStore(good, noDescription, writeFails, canonical)
	store.failOn[writeFails.ID] = errors.New("connection reset")

	b := NewBackfill(store, WithConcurrency(2))
	b.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	result, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Found)
	assert.Equal(t, 1, result.Migrated)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], `"Blank"`)
	assert.Contains(t, result.Errors[1], `"Locked"`)

	stored, _ := store.FindByID(context.Background(), good.ID)
	assert.False(t, stored.IsLegacy())
	assert.Equal(t, 1, store.updates)
}

func TestBackfill_DryRunWritesNothing(t *testing.T) {
	store := newFakeProjectStore(legacyProject())

	result, err := NewBackfill(store, WithDryRun(true)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Migrated)
	assert.Zero(t, store.updates)
}

func TestBackfill_Cancelled(t *testing.T) {
	store := newFakeProjectStore(legacyProject(), legacyProject())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBackfill(store, WithConcurrency(1)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
