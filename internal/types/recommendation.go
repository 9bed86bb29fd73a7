package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecommendationStrength categorizes how strongly a guideline body endorses a
// recommendation (Strong, Conditional, Weak, Good Practice Point).
type RecommendationStrength struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Code        string    `gorm:"uniqueIndex;not null;column:code" json:"code"`
	Description string    `gorm:"column:description" json:"description"`
	ColorClass  string    `gorm:"column:color_class" json:"color_class"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (RecommendationStrength) TableName() string { return "recommendation_strength" }

// EvidenceQuality is the GRADE certainty of the supporting evidence.
type EvidenceQuality struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Grade       string    `gorm:"uniqueIndex;not null;column:grade" json:"grade"`
	Description string    `gorm:"column:description" json:"description"`
	ColorClass  string    `gorm:"column:color_class" json:"color_class"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (EvidenceQuality) TableName() string { return "evidence_quality" }

type Recommendation struct {
	ID                uuid.UUID               `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title             string                  `gorm:"not null;column:title" json:"title"`
	Text              string                  `gorm:"not null;column:text" json:"text"`
	GuidelineID       uuid.UUID               `gorm:"type:uuid;not null;index" json:"guideline_id"`
	Guideline         *Guideline              `gorm:"constraint:OnDelete:CASCADE;foreignKey:GuidelineID;references:ID" json:"guideline,omitempty"`
	ChapterID         *uuid.UUID              `gorm:"type:uuid;index" json:"chapter_id,omitempty"`
	Chapter           *Chapter                `gorm:"foreignKey:ChapterID;references:ID" json:"chapter,omitempty"`
	Topics            []*Topic                `gorm:"many2many:recommendation_topic" json:"topics,omitempty"`
	StrengthID        *uuid.UUID              `gorm:"type:uuid;index" json:"strength_id,omitempty"`
	Strength          *RecommendationStrength `gorm:"foreignKey:StrengthID;references:ID" json:"strength,omitempty"`
	EvidenceQualityID *uuid.UUID              `gorm:"type:uuid;index" json:"evidence_quality_id,omitempty"`
	EvidenceQuality   *EvidenceQuality        `gorm:"foreignKey:EvidenceQualityID;references:ID" json:"evidence_quality,omitempty"`
	TargetPopulation  string                  `gorm:"column:target_population" json:"target_population"`
	AgeGroup          string                  `gorm:"column:age_group" json:"age_group"`
	ClinicalContext   string                  `gorm:"column:clinical_context" json:"clinical_context"`
	SourceURL         string                  `gorm:"column:source_url" json:"source_url"`
	PageNumber        string                  `gorm:"column:page_number" json:"page_number"`
	Keywords          string                  `gorm:"column:keywords" json:"keywords"`
	CreatedAt         time.Time               `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time               `gorm:"not null;default:now()" json:"updated_at"`
}

func (Recommendation) TableName() string { return "recommendation" }

// SearchKeywords splits the comma-separated keywords column.
func (r *Recommendation) SearchKeywords() []string {
	if r.Keywords == "" {
		return nil
	}
	parts := strings.Split(r.Keywords, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// OrganizationName returns the publishing organization name when loaded.
func (r *Recommendation) OrganizationName() string {
	if r.Guideline != nil && r.Guideline.Organization != nil {
		return r.Guideline.Organization.Name
	}
	return ""
}

// CountryName returns the guideline country name when loaded.
func (r *Recommendation) CountryName() string {
	if r.Guideline != nil && r.Guideline.Organization != nil && r.Guideline.Organization.Country != nil {
		return r.Guideline.Organization.Country.Name
	}
	return ""
}

// StrengthName returns the strength category name, empty when unset.
func (r *Recommendation) StrengthName() string {
	if r.Strength != nil {
		return r.Strength.Name
	}
	return ""
}

// EvidenceQualityName returns the evidence quality name, empty when unset.
func (r *Recommendation) EvidenceQualityName() string {
	if r.EvidenceQuality != nil {
		return r.EvidenceQuality.Name
	}
	return ""
}

type Reference struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RecommendationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"recommendation_id"`
	Recommendation   *Recommendation `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecommendationID;references:ID" json:"recommendation,omitempty"`
	Title            string          `gorm:"not null;column:title" json:"title"`
	Authors          string          `gorm:"column:authors" json:"authors"`
	Journal          string          `gorm:"column:journal" json:"journal"`
	Year             *int            `gorm:"column:year" json:"year,omitempty"`
	Volume           string          `gorm:"column:volume" json:"volume"`
	Pages            string          `gorm:"column:pages" json:"pages"`
	DOI              string          `gorm:"column:doi" json:"doi"`
	PMID             string          `gorm:"column:pmid" json:"pmid"`
	URL              string          `gorm:"column:url" json:"url"`
	ReferenceType    string          `gorm:"not null;default:'Journal Article';column:reference_type" json:"reference_type"`
	CreatedAt        time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Reference) TableName() string { return "reference" }
