package types

import (
	"time"

	"github.com/google/uuid"
)

type AgeGroup string

const (
	AgeGroup0To2   AgeGroup = "0-2"
	AgeGroup3To5   AgeGroup = "3-5"
	AgeGroup6To12  AgeGroup = "6-12"
	AgeGroup13To17 AgeGroup = "13-17"
	AgeGroup18To30 AgeGroup = "18-30"
	AgeGroup31To50 AgeGroup = "31-50"
	AgeGroup51To65 AgeGroup = "51-65"
	AgeGroup65Plus AgeGroup = "65+"
)

func (a AgeGroup) Valid() bool {
	switch a {
	case AgeGroup0To2, AgeGroup3To5, AgeGroup6To12, AgeGroup13To17,
		AgeGroup18To30, AgeGroup31To50, AgeGroup51To65, AgeGroup65Plus:
		return true
	}
	return false
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	}
	return false
}

type PeriodontalStatus string

const (
	PerioHealthy       PeriodontalStatus = "healthy"
	PerioGingivitis    PeriodontalStatus = "gingivitis"
	PerioPeriodontitis PeriodontalStatus = "periodontitis"
)

func (p PeriodontalStatus) Valid() bool {
	switch p {
	case PerioHealthy, PerioGingivitis, PerioPeriodontitis:
		return true
	}
	return false
}

type FluorideExposure string

const (
	FluorideNone         FluorideExposure = "none"
	FluorideWater        FluorideExposure = "water"
	FluorideToothpaste   FluorideExposure = "toothpaste"
	FluorideMouthwash    FluorideExposure = "mouthwash"
	FluorideProfessional FluorideExposure = "professional"
)

func (f FluorideExposure) Valid() bool {
	switch f {
	case FluorideNone, FluorideWater, FluorideToothpaste, FluorideMouthwash, FluorideProfessional:
		return true
	}
	return false
}

// UserProfile is a visitor's self-reported oral-health profile. Profiles are
// anonymous; SessionID is the opaque handle handed back to the client.
type UserProfile struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID         uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null;column:session_id" json:"session_id"`
	AgeGroup          AgeGroup          `gorm:"not null;column:age_group" json:"age_group"`
	LocationCountry   string            `gorm:"not null;column:location_country" json:"location_country"`
	CariesRisk        RiskLevel         `gorm:"not null;column:caries_risk" json:"caries_risk"`
	PeriodontalStatus PeriodontalStatus `gorm:"not null;column:periodontal_status" json:"periodontal_status"`
	FluorideExposure  FluorideExposure  `gorm:"not null;column:fluoride_exposure" json:"fluoride_exposure"`
	HasOrthodontics   bool              `gorm:"not null;default:false;column:has_orthodontics" json:"has_orthodontics"`
	HasDentalImplants bool              `gorm:"not null;default:false;column:has_dental_implants" json:"has_dental_implants"`
	HasDiabetes       bool              `gorm:"not null;default:false;column:has_diabetes" json:"has_diabetes"`
	IsPregnant        bool              `gorm:"not null;default:false;column:is_pregnant" json:"is_pregnant"`
	HasDryMouth       bool              `gorm:"not null;default:false;column:has_dry_mouth" json:"has_dry_mouth"`
	BrushingFrequency string            `gorm:"column:brushing_frequency" json:"brushing_frequency"`
	FlossingFrequency string            `gorm:"column:flossing_frequency" json:"flossing_frequency"`
	DietSugarIntake   RiskLevel         `gorm:"column:diet_sugar_intake" json:"diet_sugar_intake"`
	SpecificConcerns  string            `gorm:"column:specific_concerns" json:"specific_concerns"`
	Medications       string            `gorm:"column:medications" json:"medications"`
	CreatedAt         time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profile" }

// HasPeriodontalDisease reports a non-healthy gum status.
func (p *UserProfile) HasPeriodontalDisease() bool {
	return p.PeriodontalStatus == PerioGingivitis || p.PeriodontalStatus == PerioPeriodontitis
}
