package content

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("content not found")

// Lookup is the read/mark surface the dispatch path uses. Every read is scoped
// by owner so a schedule can never resolve another user's content.
type Lookup struct {
	DB *gorm.DB
}

func (l *Lookup) Get(ctx context.Context, contentID, userID uint64) (*Content, error) {
	var c Content
	err := l.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", contentID, userID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// MarkPublished flips a draft row to published. Best-effort from the worker's
// perspective: the external post already happened, so a failure here must not
// roll back the schedule transition.
func (l *Lookup) MarkPublished(ctx context.Context, contentID uint64) error {
	return l.DB.WithContext(ctx).
		Exec(`update content set status = ?, updated_at = now() where id = ?`, StatusPublished, contentID).
		Error
}
