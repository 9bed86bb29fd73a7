package types

import (
	"time"

	"github.com/google/uuid"
)

// CochraneReview is a Cochrane Oral Health systematic review.
type CochraneReview struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CochraneID      string    `gorm:"uniqueIndex;not null;column:cochrane_id" json:"cochrane_id"`
	Title           string    `gorm:"not null;column:title" json:"title"`
	Authors         string    `gorm:"column:authors" json:"authors"`
	PublicationYear int       `gorm:"not null;column:publication_year" json:"publication_year"`
	LastUpdated     time.Time `gorm:"column:last_updated" json:"last_updated"`
	DOI             string    `gorm:"column:doi" json:"doi"`
	URL             string    `gorm:"column:url" json:"url"`
	Abstract        string    `gorm:"column:abstract" json:"abstract"`
	ReviewType      string    `gorm:"not null;default:'Intervention';column:review_type" json:"review_type"`
	Status          string    `gorm:"not null;default:'Published';column:status" json:"status"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CochraneReview) TableName() string { return "cochrane_review" }

// SummaryOfFindings is one Summary-of-Findings comparison table in a review.
type SummaryOfFindings struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReviewID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"review_id"`
	Review          *CochraneReview `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReviewID;references:ID" json:"review,omitempty"`
	ComparisonTitle string          `gorm:"not null;column:comparison_title" json:"comparison_title"`
	Population      string          `gorm:"column:population" json:"population"`
	Intervention    string          `gorm:"column:intervention" json:"intervention"`
	Comparison      string          `gorm:"column:comparison" json:"comparison"`
	Outcomes        []*Outcome      `gorm:"foreignKey:SoFTableID" json:"outcomes,omitempty"`
	CreatedAt       time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (SummaryOfFindings) TableName() string { return "summary_of_findings" }

// Outcome is a single outcome row in a Summary-of-Findings table.
type Outcome struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SoFTableID   uuid.UUID          `gorm:"type:uuid;not null;index;column:sof_table_id" json:"sof_table_id"`
	SoFTable     *SummaryOfFindings `gorm:"constraint:OnDelete:CASCADE;foreignKey:SoFTableID;references:ID" json:"sof_table,omitempty"`
	OutcomeName  string             `gorm:"not null;column:outcome_name" json:"outcome_name"`
	Measure      string             `gorm:"column:measure" json:"measure"`
	Effect       string             `gorm:"column:effect" json:"effect"`
	CILower      string             `gorm:"column:ci_lower" json:"ci_lower"`
	CIUpper      string             `gorm:"column:ci_upper" json:"ci_upper"`
	Significant  *bool              `gorm:"column:significant" json:"significant,omitempty"`
	Participants string             `gorm:"column:participants" json:"participants"`
	Studies      string             `gorm:"column:studies" json:"studies"`
	Certainty    string             `gorm:"column:certainty" json:"certainty"`
	CreatedAt    time.Time          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"not null;default:now()" json:"updated_at"`
}

func (Outcome) TableName() string { return "outcome" }
