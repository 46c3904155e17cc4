package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Record carries the identity and timestamps shared by the catalog tables.
// Clients never set these; handlers restore them after decoding a body.
type Record struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"autoUpdateTime"`
}

func (r *Record) GetRecord() Record {
	return *r
}

func (r *Record) SetRecord(rec Record) {
	*r = rec
}

// CatalogEntry is implemented by pointers to the catalog models.
type CatalogEntry interface {
	GetRecord() Record
	SetRecord(Record)
	// Prepare trims text fields and fills defaults before validation.
	Prepare()
}

// Skill is a technology shown in the skills grid.
type Skill struct {
	Record
	Name     string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex" validate:"required,max=100"`
	Category string `json:"category" db:"category" gorm:"type:text;not null;default:'other'" validate:"oneof=frontend backend database language framework library other"`
	IconType string `json:"iconType" db:"icon_type" gorm:"type:text;not null;default:'none'" validate:"oneof=react-icon custom-svg none"`
	IconName string `json:"iconName" db:"icon_name" gorm:"type:text;not null;default:''"`
}

func (s *Skill) Prepare() {
	s.Name = strings.TrimSpace(s.Name)
	if s.Category == "" {
		s.Category = "other"
	}
	if s.IconType == "" {
		s.IconType = "none"
	}
}

// Tool is a piece of software shown in the tools grid.
type Tool struct {
	Record
	Name     string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex" validate:"required,max=100"`
	Category string `json:"category" db:"category" gorm:"type:text;not null;default:'other'" validate:"oneof=development design deployment database version-control api authentication other"`
	IconType string `json:"iconType" db:"icon_type" gorm:"type:text;not null;default:'react-icon'" validate:"oneof=react-icon custom-svg none"`
	IconName string `json:"iconName" db:"icon_name" gorm:"type:text;not null;default:''"`
}

func (t *Tool) Prepare() {
	t.Name = strings.TrimSpace(t.Name)
	if t.Category == "" {
		t.Category = "other"
	}
	if t.IconType == "" {
		t.IconType = "react-icon"
	}
}

// Experience is one entry of the work history timeline.
type Experience struct {
	Record
	Title   string                      `json:"title" db:"title" gorm:"type:text;not null" validate:"required"`
	Company string                      `json:"company" db:"company" gorm:"type:text;not null" validate:"required"`
	Period  string                      `json:"duration" db:"duration" gorm:"column:duration;type:text;not null" validate:"required"`
	Type    string                      `json:"type" db:"type" gorm:"type:text;not null" validate:"required"`
	Role    datatypes.JSONSlice[string] `json:"role" db:"role" gorm:"type:jsonb;not null" validate:"required,min=1,dive,required"`
	Order   int                         `json:"order" db:"order" gorm:"column:order;type:integer;not null;default:0"`
}

func (e *Experience) Prepare() {
	e.Title = strings.TrimSpace(e.Title)
	e.Company = strings.TrimSpace(e.Company)
	e.Period = strings.TrimSpace(e.Period)
	e.Type = strings.TrimSpace(e.Type)
}

// Certificate is a course or certification badge.
type Certificate struct {
	Record
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null" validate:"required"`
	Description string                      `json:"description" db:"description" gorm:"type:text;not null" validate:"required"`
	ImgPath     string                      `json:"imgPath" db:"img_path" gorm:"type:text;not null" validate:"required"`
	OrgLogos    datatypes.JSONSlice[string] `json:"orgLogos" db:"org_logos" gorm:"type:jsonb;not null" validate:"required,min=1"`
	LiveLink    string                      `json:"liveLink" db:"live_link" gorm:"type:text;not null;default:''"`
	Order       int                         `json:"order" db:"order" gorm:"column:order;type:integer;not null;default:0"`
}

func (c *Certificate) Prepare() {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	c.ImgPath = strings.TrimSpace(c.ImgPath)
	c.LiveLink = strings.TrimSpace(c.LiveLink)
}

// All returns every model managed by migrations, in creation order.
func All() []any {
	return []any{
		&Project{},
		&Skill{},
		&Tool{},
		&Experience{},
		&Certificate{},
	}
}
