package types

import (
	"time"

	"github.com/google/uuid"
)

type Topic struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Slug        string     `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Description string     `gorm:"column:description" json:"description"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent      *Topic     `gorm:"foreignKey:ParentID;references:ID" json:"parent,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Topic) TableName() string { return "topic" }
