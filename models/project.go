package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project categories accepted on write.
const (
	CategoryShortFilm   = "Short Film"
	CategoryDocumentary = "Documentary"
	CategoryCommercial  = "Commercial"
	CategoryCorporate   = "Corporate"
	CategoryReel        = "Reel"
	CategoryMusicVideo  = "Music Video"
)

// Categories lists the accepted project categories in display order.
var Categories = []string{
	CategoryShortFilm,
	CategoryDocumentary,
	CategoryCommercial,
	CategoryCorporate,
	CategoryReel,
	CategoryMusicVideo,
}

// Project is one portfolio video. Rows written by older releases are stored in
// the same table: their canonical columns are NULL and the legacy columns
// (duration, year_text, thumbnail, youtube_id, legacy_id) carry the data.
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null" validate:"required,max=200"`
	Category     *string                     `json:"category" db:"category" gorm:"type:text;index:idx_project_category" validate:"required,project_category"`
	Year         *int                        `json:"year" db:"year" gorm:"type:integer" validate:"required,min=1900,max=2100"`
	DurationSec  *int                        `json:"durationSec" db:"duration_sec" gorm:"type:integer" validate:"required,min=0"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null" validate:"required,max=5000"`
	Date         *time.Time                  `json:"date,omitempty" db:"date" gorm:"type:timestamptz"`
	YoutubeURL   *string                     `json:"youtubeUrl,omitempty" db:"youtube_url" gorm:"type:text" validate:"omitempty,youtube_url"`
	ThumbnailURL *string                     `json:"thumbnailUrl,omitempty" db:"thumbnail_url" gorm:"type:text" validate:"omitempty,thumbnail_ref"`
	Tools        datatypes.JSONSlice[string] `json:"tools" db:"tools" gorm:"type:jsonb;not null;default:'[]'" validate:"dive,required,max=100"`
	IsFeatured   *bool                       `json:"isFeatured" db:"is_featured" gorm:"type:boolean;default:true"`
	SortOrder    *int                        `json:"sortOrder" db:"sort_order" gorm:"type:integer;default:0"`
	CreatedAt    time.Time                   `json:"createdAt" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `json:"updatedAt" db:"updated_at" gorm:"autoUpdateTime"`

	// Legacy columns, read-only for clients.
	LegacyID       *int    `json:"-" db:"legacy_id" gorm:"column:legacy_id;type:integer"`
	LegacyDuration *string `json:"-" db:"duration" gorm:"column:duration;type:text"`
	LegacyYear     *string `json:"-" db:"year_text" gorm:"column:year_text;type:text"`
	LegacyThumb    *string `json:"-" db:"thumbnail" gorm:"column:thumbnail;type:text"`
	LegacyYoutube  *string `json:"-" db:"youtube_id" gorm:"column:youtube_id;type:text"`
}

// Featured reports the effective featured flag; legacy rows count as featured.
func (p *Project) Featured() bool {
	return p.IsFeatured == nil || *p.IsFeatured
}

// EffectiveSortOrder treats a missing sort order as 0.
func (p *Project) EffectiveSortOrder() int {
	if p.SortOrder == nil {
		return 0
	}
	return *p.SortOrder
}

// IsLegacy reports whether the row still lacks any canonical field.
func (p *Project) IsLegacy() bool {
	return p.Category == nil || p.Year == nil || p.DurationSec == nil
}

// Prepare trims text fields and tool names before validation. A blank
// youtubeUrl or thumbnailUrl is stored as NULL.
func (p *Project) Prepare() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.YoutubeURL = trimmedOrNil(p.YoutubeURL)
	p.ThumbnailURL = trimmedOrNil(p.ThumbnailURL)
	for i, tool := range p.Tools {
		p.Tools[i] = strings.TrimSpace(tool)
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
