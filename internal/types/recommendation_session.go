package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionProcessing SessionStatus = "processing"
	SessionCompleted  SessionStatus = "completed"
	SessionError      SessionStatus = "error"
)

// Terminal reports whether the session can no longer change status.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionError
}

// RecommendationSession is one end-to-end personalization run for a profile.
// Status moves pending -> processing -> completed|error and is then terminal.
type RecommendationSession struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserProfileID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_profile_id"`
	UserProfile        *UserProfile   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserProfileID;references:ID" json:"user_profile,omitempty"`
	Status             SessionStatus  `gorm:"not null;default:'pending';column:status" json:"status"`
	Analysis             string         `gorm:"column:analysis" json:"analysis"`
	RiskAssessment       string         `gorm:"column:risk_assessment" json:"risk_assessment"`
	PersonalizedAdvice   string         `gorm:"column:personalized_advice" json:"personalized_advice"`
	PreventiveStrategies string         `gorm:"column:preventive_strategies" json:"preventive_strategies"`
	ProfessionalCare     string         `gorm:"column:professional_care" json:"professional_care"`
	ImportantNotes       string         `gorm:"column:important_notes" json:"important_notes"`
	PriorityActions      datatypes.JSON `gorm:"type:jsonb;column:priority_actions" json:"priority_actions"`
	ProcessingSeconds  float64        `gorm:"column:processing_seconds" json:"processing_seconds"`
	ErrorMessage       string         `gorm:"column:error_message" json:"error_message"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (RecommendationSession) TableName() string { return "recommendation_session" }

type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "critical"
	PriorityHigh     PriorityLevel = "high"
	PriorityMedium   PriorityLevel = "medium"
	PriorityLow      PriorityLevel = "low"
)

// RecommendationMatch pairs a session with one matched recommendation and the
// derived score, priority tier, and reasoning. Never mutated after creation.
type RecommendationMatch struct {
	ID               uuid.UUID              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID        uuid.UUID              `gorm:"type:uuid;not null;index" json:"session_id"`
	Session          *RecommendationSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	RecommendationID uuid.UUID              `gorm:"type:uuid;not null;index" json:"recommendation_id"`
	Recommendation   *Recommendation        `gorm:"foreignKey:RecommendationID;references:ID" json:"recommendation,omitempty"`
	RelevanceScore   float64                `gorm:"not null;column:relevance_score" json:"relevance_score"`
	PriorityLevel    PriorityLevel          `gorm:"not null;column:priority_level" json:"priority_level"`
	Reasoning        string                 `gorm:"column:reasoning" json:"reasoning"`
	Position         int                    `gorm:"not null;column:position" json:"position"`
	CreatedAt        time.Time              `gorm:"not null;default:now()" json:"created_at"`
}

func (RecommendationMatch) TableName() string { return "recommendation_match" }
