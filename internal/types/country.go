package types

import (
	"time"

	"github.com/google/uuid"
)

type Country struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Code      string    `gorm:"uniqueIndex;not null;size:3;column:code" json:"code"`
	FlagEmoji string    `gorm:"column:flag_emoji" json:"flag_emoji"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Country) TableName() string { return "country" }
