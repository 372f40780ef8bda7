package content

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Known content types. The data payload shape depends on the type but always
// carries a renderable text field and/or a media url.
const (
	TypeCaption = "caption"
	TypePost    = "post"
	TypeBlog    = "blog"
	TypeImage   = "image"
	TypeVideo   = "video"
)

type Content struct {
	ID      uint64 `gorm:"primaryKey"`
	UserID  uint64 `gorm:"index;not null"`
	BrandID uint64 `gorm:"index;not null"`

	Type  string `gorm:"type:text;not null"`
	Title string `gorm:"type:text;not null;default:''"`

	Data json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	Status string `gorm:"index;not null;default:'draft'"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// Singular on purpose; the rest of the schema joins against "content".
func (Content) TableName() string { return "content" }

// ValidType reports whether t is one of the known content types.
func ValidType(t string) bool {
	switch t {
	case TypeCaption, TypePost, TypeBlog, TypeImage, TypeVideo:
		return true
	}
	return false
}

// Render extracts the publishable text and media url from the data payload.
// Body preference: markdown, then text, then content, then the row title.
func (c *Content) Render() (text, mediaURL string) {
	var data struct {
		Markdown string `json:"markdown"`
		Text     string `json:"text"`
		Content  string `json:"content"`
		URL      string `json:"url"`
	}
	if len(c.Data) > 0 {
		_ = json.Unmarshal(c.Data, &data)
	}

	switch {
	case strings.TrimSpace(data.Markdown) != "":
		text = data.Markdown
	case strings.TrimSpace(data.Text) != "":
		text = data.Text
	case strings.TrimSpace(data.Content) != "":
		text = data.Content
	case strings.TrimSpace(c.Title) != "":
		text = c.Title
	default:
		text = "Post"
	}

	return text, strings.TrimSpace(data.URL)
}
