// Package normalize converts project data between the shapes clients send,
// the shapes stored by current and older releases, and the single response
// shape the API returns.
package normalize

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/rpupo63/video-portfolio-backend/youtube"
	"gorm.io/datatypes"
)

// LooseValue is a JSON scalar older clients sent as either a number or a string.
type LooseValue struct {
	Raw    string
	Quoted bool
}

func (v *LooseValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = LooseValue{Raw: s, Quoted: true}
		return nil
	}
	*v = LooseValue{Raw: string(data)}
	return nil
}

// ProjectInput is a project write payload. Every field is optional so the same
// type serves create and partial update; nil means "not supplied".
type ProjectInput struct {
	// LegacyID is the numeric id older clients send. It is accepted and dropped.
	LegacyID json.RawMessage `json:"id,omitempty"`

	Title        *string     `json:"title"`
	Category     *string     `json:"category"`
	Year         *LooseValue `json:"year"`
	Date         *LooseValue `json:"date"`
	DurationSec  *int        `json:"durationSec"`
	Duration     *string     `json:"duration"`
	Description  *string     `json:"description"`
	YoutubeURL   *string     `json:"youtubeUrl"`
	YoutubeID    *string     `json:"youtubeId"`
	ThumbnailURL *string     `json:"thumbnailUrl"`
	Tools        *[]string   `json:"tools"`
	IsFeatured   *bool       `json:"isFeatured"`
	SortOrder    *int        `json:"sortOrder"`
}

// ProjectPatch holds the canonical fields produced by CoerceProjectInput.
// Unresolved keeps, by JSON field name, supplied values that could not be
// coerced; they are reported by validation rather than dropped.
type ProjectPatch struct {
	Title        *string
	Category     *string
	Year         *int
	Date         *time.Time
	DurationSec  *int
	Description  *string
	YoutubeURL   *string
	ThumbnailURL *string
	Tools        *[]string
	IsFeatured   *bool
	SortOrder    *int

	Unresolved map[string]string
}

// CoerceProjectInput maps a write payload onto canonical project fields. It
// never fails: anything it cannot interpret is passed on for validation.
func CoerceProjectInput(in ProjectInput) ProjectPatch {
	patch := ProjectPatch{
		Title:        in.Title,
		Category:     in.Category,
		DurationSec:  in.DurationSec,
		Description:  in.Description,
		ThumbnailURL: in.ThumbnailURL,
		Tools:        in.Tools,
		IsFeatured:   in.IsFeatured,
		SortOrder:    in.SortOrder,
	}

	// An empty youtubeUrl still defers to youtubeId; a blank result clears the field.
	ref := in.YoutubeURL
	if (ref == nil || *ref == "") && in.YoutubeID != nil {
		ref = in.YoutubeID
	}
	if ref != nil {
		value := *ref
		if canonical, ok := youtube.CanonicalURL(value); ok {
			value = canonical
		}
		patch.YoutubeURL = &value
	}

	if patch.DurationSec == nil && in.Duration != nil {
		if seconds, ok := DurationToSeconds(*in.Duration); ok {
			patch.DurationSec = &seconds
		}
	}

	if in.Year != nil {
		if year, ok := coerceYear(*in.Year); ok {
			patch.Year = &year
		} else {
			patch.unresolved("year", in.Year.Raw)
		}
	}

	if in.Date != nil {
		if date, ok := coerceDate(*in.Date); ok {
			patch.Date = &date
		} else if strings.TrimSpace(in.Date.Raw) != "" {
			patch.unresolved("date", in.Date.Raw)
		}
	}

	return patch
}

// dateLayouts are tried in order; the last two are the forms older clients stored.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
	"01/02/2006",
	"1/2/2006",
}

func coerceDate(v LooseValue) (time.Time, bool) {
	if !v.Quoted {
		return time.Time{}, false
	}
	text := strings.TrimSpace(v.Raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// coerceYear parses text years strictly within range. Numeric years pass
// through unchanged so range violations surface in validation.
func coerceYear(v LooseValue) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(v.Raw))
	if err != nil {
		return 0, false
	}
	if v.Quoted && !yearInRange(year) {
		return 0, false
	}
	return year, true
}

func yearInRange(year int) bool {
	return year >= 1900 && year <= 2100
}

func (p *ProjectPatch) unresolved(field, raw string) {
	if p.Unresolved == nil {
		p.Unresolved = make(map[string]string)
	}
	p.Unresolved[field] = raw
}

// FirstUnresolved returns the alphabetically first unresolved field.
func (p ProjectPatch) FirstUnresolved() (field, raw string, ok bool) {
	if len(p.Unresolved) == 0 {
		return "", "", false
	}
	fields := make([]string, 0, len(p.Unresolved))
	for f := range p.Unresolved {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields[0], p.Unresolved[fields[0]], true
}

// ApplyTo overwrites the fields of project that the patch supplies. Writing a
// canonical field clears the legacy column it replaces.
func (p ProjectPatch) ApplyTo(project *models.Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Category != nil {
		project.Category = p.Category
	}
	if p.Year != nil {
		project.Year = p.Year
		project.LegacyYear = nil
	}
	if p.Date != nil {
		project.Date = p.Date
	}
	if p.DurationSec != nil {
		project.DurationSec = p.DurationSec
		project.LegacyDuration = nil
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.YoutubeURL != nil {
		project.YoutubeURL = p.YoutubeURL
		project.LegacyYoutube = nil
	}
	if p.ThumbnailURL != nil {
		project.ThumbnailURL = p.ThumbnailURL
		project.LegacyThumb = nil
	}
	if p.Tools != nil {
		project.Tools = datatypes.JSONSlice[string](*p.Tools)
	}
	if p.IsFeatured != nil {
		project.IsFeatured = p.IsFeatured
	}
	if p.SortOrder != nil {
		project.SortOrder = p.SortOrder
	}
}
