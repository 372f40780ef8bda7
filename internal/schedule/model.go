package schedule

import (
	"encoding/json"
	"time"
)

// Schedule states. PROCESSING is the claim state between PENDING and a
// terminal POSTED/FAILED; a row never moves back to PENDING on its own.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusPosted     = "POSTED"
	StatusFailed     = "FAILED"
)

// Schedule is one piece of content to be published to one platform at one time.
type Schedule struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	BrandID   uint64 `gorm:"index;not null"`
	ContentID uint64 `gorm:"index;not null"`

	Platform  string    `gorm:"type:text;not null"`
	PublishAt time.Time `gorm:"index;not null"`
	Status    string    `gorm:"index;not null;default:'PENDING'"`

	Retries int             `gorm:"not null;default:0"`
	Meta    json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	ClaimedBy *string    `gorm:"type:text"`
	ClaimedAt *time.Time `gorm:"type:timestamptz"`

	LastError *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Schedule) TableName() string { return "schedules" }
