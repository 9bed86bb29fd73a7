package types

import (
	"time"

	"github.com/google/uuid"
)

type Guideline struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string        `gorm:"not null;column:title" json:"title"`
	OrganizationID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	Organization    *Organization `gorm:"constraint:OnDelete:CASCADE;foreignKey:OrganizationID;references:ID" json:"organization,omitempty"`
	PublicationYear int           `gorm:"not null;column:publication_year" json:"publication_year"`
	Version         string        `gorm:"column:version" json:"version"`
	URL             string        `gorm:"column:url" json:"url"`
	Description     string        `gorm:"column:description" json:"description"`
	LastUpdated     time.Time     `gorm:"column:last_updated" json:"last_updated"`
	IsActive        bool          `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt       time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Guideline) TableName() string { return "guideline" }

type Chapter struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GuidelineID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_chapter_guideline_number" json:"guideline_id"`
	Guideline   *Guideline `gorm:"constraint:OnDelete:CASCADE;foreignKey:GuidelineID;references:ID" json:"guideline,omitempty"`
	Number      int        `gorm:"not null;uniqueIndex:uq_chapter_guideline_number;column:number" json:"number"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	URL         string     `gorm:"column:url" json:"url"`
	Content     string     `gorm:"column:content" json:"content"`
	Summary     string     `gorm:"column:summary" json:"summary"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Chapter) TableName() string { return "chapter" }
