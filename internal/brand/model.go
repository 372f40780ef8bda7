package brand

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Brand holds the voice/tone profile content is generated and published under.
type Brand struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	Name  string `gorm:"type:text;not null"`
	Tone  string `gorm:"type:text;not null;default:''"`
	Voice string `gorm:"type:text;not null;default:''"`

	Keywords pq.StringArray  `gorm:"type:text[];not null;default:'{}'"`
	Style    json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
