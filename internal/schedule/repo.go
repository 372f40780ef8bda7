package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrInvalid = errors.New("invalid schedule")

type Repo struct {
	DB *gorm.DB
}

// Create validates and persists a new row. Status and retries are forced to
// their initial values regardless of what the caller set.
func (r *Repo) Create(ctx context.Context, s *Schedule) error {
	if s.ContentID == 0 || s.Platform == "" || s.PublishAt.IsZero() {
		return ErrInvalid
	}
	s.Status = StatusPending
	s.Retries = 0
	if len(s.Meta) == 0 {
		s.Meta = []byte("{}")
	}
	return r.DB.WithContext(ctx).Create(s).Error
}

// ListDue returns up to limit PENDING rows due at or before now, oldest
// publish time first so a backlog drains fairly.
func (r *Repo) ListDue(ctx context.Context, now time.Time, limit int) ([]Schedule, error) {
	var rows []Schedule
	err := r.DB.WithContext(ctx).
		Where("status = ? AND publish_at <= ?", StatusPending, now).
		Order("publish_at asc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Claim atomically moves a PENDING row to PROCESSING for this worker.
// The affected-row count decides ownership: false means another worker
// (or a previous overlapping tick) got there first.
func (r *Repo) Claim(ctx context.Context, id uint64, workerID string) (bool, error) {
	res := r.DB.WithContext(ctx).Exec(`
update schedules
set status = ?, claimed_by = ?, claimed_at = now(), updated_at = now()
where id = ? and status = ?`, StatusProcessing, workerID, id, StatusPending)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkPosted is a no-op on rows already in a terminal state.
func (r *Repo) MarkPosted(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Exec(`
update schedules
set status = ?, claimed_by = null, claimed_at = null, last_error = null, updated_at = now()
where id = ? and status in (?, ?)`, StatusPosted, id, StatusPending, StatusProcessing).Error
}

// MarkFailed records the failure and bumps retries by exactly one. Calling it
// on an already-FAILED row changes nothing.
func (r *Repo) MarkFailed(ctx context.Context, id uint64, errMsg string) error {
	return r.DB.WithContext(ctx).Exec(`
update schedules
set status = ?, retries = retries + 1, last_error = ?, claimed_by = null, claimed_at = null, updated_at = now()
where id = ? and status in (?, ?)`, StatusFailed, errMsg, id, StatusPending, StatusProcessing).Error
}

// RequeueStuck releases PROCESSING rows whose claim is older than olderThan,
// e.g. a worker that died mid-dispatch. They become PENDING again and are
// picked up by a later tick.
func (r *Repo) RequeueStuck(ctx context.Context, olderThan time.Duration) error {
	return r.DB.WithContext(ctx).Exec(`
update schedules
set status = ?, claimed_by = null, claimed_at = null, updated_at = now()
where status = ? and claimed_at is not null and claimed_at < now() - make_interval(secs => ?)`,
		StatusPending, StatusProcessing, olderThan.Seconds()).Error
}

// ListForOwner is the read path for listings and the calendar projection.
func (r *Repo) ListForOwner(ctx context.Context, userID uint64, brandID *uint64) ([]Schedule, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if brandID != nil {
		q = q.Where("brand_id = ?", *brandID)
	}
	var rows []Schedule
	err := q.Order("publish_at asc").Find(&rows).Error
	return rows, err
}

// Retry resets a FAILED row back to PENDING on explicit user request.
// Retries are preserved; only re-creation starts the count over.
func (r *Repo) Retry(ctx context.Context, id, userID uint64) (bool, error) {
	res := r.DB.WithContext(ctx).Exec(`
update schedules
set status = ?, last_error = null, updated_at = now()
where id = ? and user_id = ? and status = ?`, StatusPending, id, userID, StatusFailed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
