// Package eventlog is an append-only audit trail of notable state changes
// (publishes, failures). Writers treat it as best-effort.
package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type Record struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	BrandID *uint64 `gorm:"index"`

	EventType string `gorm:"type:text;not null"`
	RefTable  string `gorm:"type:text;not null;default:''"`
	RefID     uint64 `gorm:"not null;default:0"`

	Payload json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	CreatedAt time.Time `gorm:"index;not null;default:now()"`
}

func (Record) TableName() string { return "event_log" }

// Event is what callers hand to the recorder; Payload may be any
// JSON-marshalable value.
type Event struct {
	UserID    uint64
	BrandID   *uint64
	EventType string
	RefTable  string
	RefID     uint64
	Payload   any
}

type Recorder struct {
	DB *gorm.DB
}

func (r *Recorder) Record(ctx context.Context, e Event) error {
	payload := []byte("{}")
	if e.Payload != nil {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return err
		}
		payload = b
	}
	rec := Record{
		UserID:    e.UserID,
		BrandID:   e.BrandID,
		EventType: e.EventType,
		RefTable:  e.RefTable,
		RefID:     e.RefID,
		Payload:   payload,
	}
	return r.DB.WithContext(ctx).Create(&rec).Error
}
