package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fluxcontent/internal/content"
	"fluxcontent/internal/eventlog"
	"fluxcontent/internal/publish"

	"github.com/rs/zerolog"
)

// Store is the schedule persistence the worker needs. *Repo satisfies it;
// tests use an in-memory fake.
type Store interface {
	ListDue(ctx context.Context, now time.Time, limit int) ([]Schedule, error)
	Claim(ctx context.Context, id uint64, workerID string) (bool, error)
	MarkPosted(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64, errMsg string) error
	RequeueStuck(ctx context.Context, olderThan time.Duration) error
}

// ContentSource resolves a schedule's content under its owner and flips the
// row to published after a successful post.
type ContentSource interface {
	Get(ctx context.Context, contentID, userID uint64) (*content.Content, error)
	MarkPublished(ctx context.Context, contentID uint64) error
}

// BackendResolver picks the delivery mechanism for a platform value.
// *publish.Registry satisfies it.
type BackendResolver interface {
	Lookup(platform string) (publish.Backend, error)
}

// Auditor records publish outcomes in the event log. Optional; nil disables.
type Auditor interface {
	Record(ctx context.Context, e eventlog.Event) error
}

// Worker is the periodic dispatcher. It holds no state across ticks; all
// coordination lives in the Store, and overlapping invocations are safe
// because each job is claimed before any side effect.
type Worker struct {
	ID       string
	Store    Store
	Content  ContentSource
	Backends BackendResolver
	Events   Auditor

	BatchLimit     int
	PublishTimeout time.Duration
	ClaimTimeout   time.Duration

	Log zerolog.Logger
}

type TickSummary struct {
	Processed   int       `json:"processed"`
	Posted      int       `json:"posted"`
	Failed      int       `json:"failed"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Tick runs one bounded sweep over the due backlog. Per-job errors are logged
// and absorbed so one bad job never blocks the rest of the batch; the only
// error returned is a failure to read the due set itself.
func (w *Worker) Tick(ctx context.Context) (TickSummary, error) {
	if w.ClaimTimeout > 0 {
		if err := w.Store.RequeueStuck(ctx, w.ClaimTimeout); err != nil {
			w.Log.Warn().Err(err).Msg("requeue stuck claims")
		}
	}

	limit := w.BatchLimit
	if limit <= 0 {
		limit = 10
	}

	due, err := w.Store.ListDue(ctx, time.Now().UTC(), limit)
	if err != nil {
		return TickSummary{}, fmt.Errorf("list due schedules: %w", err)
	}

	sum := TickSummary{ProcessedAt: time.Now().UTC()}
	for i := range due {
		job := &due[i]

		claimed, err := w.Store.Claim(ctx, job.ID, w.ID)
		if err != nil {
			w.Log.Error().Err(err).Uint64("schedule_id", job.ID).Msg("claim failed")
			continue
		}
		if !claimed {
			// Lost the race to an overlapping tick.
			continue
		}

		sum.Processed++
		if w.dispatch(ctx, job) {
			sum.Posted++
		} else {
			sum.Failed++
		}
	}

	w.Log.Info().
		Int("due", len(due)).
		Int("processed", sum.Processed).
		Int("posted", sum.Posted).
		Int("failed", sum.Failed).
		Msg("tick complete")

	return sum, nil
}

// dispatch runs the publish contract for one claimed job and always leaves it
// in a terminal state. Returns true when the post went out.
func (w *Worker) dispatch(ctx context.Context, job *Schedule) bool {
	c, err := w.Content.Get(ctx, job.ContentID, job.UserID)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			w.fail(ctx, job, "content not found")
		} else {
			w.fail(ctx, job, fmt.Sprintf("content lookup: %v", err))
		}
		return false
	}

	backend, err := w.Backends.Lookup(job.Platform)
	if err != nil {
		w.fail(ctx, job, err.Error())
		return false
	}

	text, media := c.Render()
	payload := publish.Payload{
		Text:     text,
		MediaURL: media,
		Platform: job.Platform,
		BrandID:  c.BrandID,
		Meta:     job.Meta,
	}

	pubCtx := ctx
	if w.PublishTimeout > 0 {
		var cancel context.CancelFunc
		pubCtx, cancel = context.WithTimeout(ctx, w.PublishTimeout)
		defer cancel()
	}

	if err := backend.Publish(pubCtx, payload); err != nil {
		w.fail(ctx, job, err.Error())
		return false
	}

	if err := w.Store.MarkPosted(ctx, job.ID); err != nil {
		w.Log.Error().Err(err).Uint64("schedule_id", job.ID).Msg("mark posted")
		return false
	}

	// The external post already happened; content bookkeeping is best-effort.
	if err := w.Content.MarkPublished(ctx, job.ContentID); err != nil {
		w.Log.Warn().Err(err).Uint64("content_id", job.ContentID).Msg("mark content published")
	}

	w.audit(ctx, job, "schedule.posted", nil)
	w.Log.Info().
		Uint64("schedule_id", job.ID).
		Str("platform", job.Platform).
		Msg("published")
	return true
}

func (w *Worker) fail(ctx context.Context, job *Schedule, reason string) {
	if err := w.Store.MarkFailed(ctx, job.ID, reason); err != nil {
		w.Log.Error().Err(err).Uint64("schedule_id", job.ID).Msg("mark failed")
	}
	w.audit(ctx, job, "schedule.failed", map[string]any{"error": reason})
	w.Log.Warn().
		Uint64("schedule_id", job.ID).
		Str("platform", job.Platform).
		Str("reason", reason).
		Msg("publish failed")
}

func (w *Worker) audit(ctx context.Context, job *Schedule, eventType string, extra map[string]any) {
	if w.Events == nil {
		return
	}
	brandID := job.BrandID
	e := eventlog.Event{
		UserID:    job.UserID,
		BrandID:   &brandID,
		EventType: eventType,
		RefTable:  "schedules",
		RefID:     job.ID,
		Payload:   extra,
	}
	if err := w.Events.Record(ctx, e); err != nil {
		w.Log.Warn().Err(err).Str("event", eventType).Msg("event log write")
	}
}
