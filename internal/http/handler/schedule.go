package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fluxcontent/internal/auth"
	"fluxcontent/internal/content"
	"fluxcontent/internal/schedule"
)

// PlatformChecker is the insert-time slice of the backend registry: creation
// rejects platform values no backend is registered for.
type PlatformChecker interface {
	Has(platform string) bool
}

type ScheduleHandler struct {
	Repo      *schedule.Repo
	Content   *content.Lookup
	Platforms PlatformChecker
}

type createScheduleReq struct {
	ContentID uint64          `json:"content_id"`
	BrandID   uint64          `json:"brand_id"`
	Platform  string          `json:"platform"`
	PublishAt string          `json:"publish_at"` // RFC3339
	Meta      json.RawMessage `json:"meta"`
}

type scheduleDTO struct {
	ID        uint64          `json:"id"`
	BrandID   uint64          `json:"brand_id"`
	ContentID uint64          `json:"content_id"`
	Platform  string          `json:"platform"`
	PublishAt time.Time       `json:"publish_at"`
	Status    string          `json:"status"`
	Retries   int             `json:"retries"`
	Meta      json.RawMessage `json:"meta"`
	LastError *string         `json:"last_error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func toScheduleDTO(s schedule.Schedule) scheduleDTO {
	return scheduleDTO{
		ID:        s.ID,
		BrandID:   s.BrandID,
		ContentID: s.ContentID,
		Platform:  s.Platform,
		PublishAt: s.PublishAt,
		Status:    s.Status,
		Retries:   s.Retries,
		Meta:      s.Meta,
		LastError: s.LastError,
		CreatedAt: s.CreatedAt,
	}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createScheduleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.ContentID == 0 || req.BrandID == 0 || strings.TrimSpace(req.PublishAt) == "" {
		http.Error(w, "content_id, brand_id, publish_at required", http.StatusBadRequest)
		return
	}

	publishAt, err := time.Parse(time.RFC3339, req.PublishAt)
	if err != nil {
		http.Error(w, "invalid publish_at (RFC3339)", http.StatusBadRequest)
		return
	}

	req.Platform = strings.TrimSpace(strings.ToLower(req.Platform))
	if req.Platform == "" || !h.Platforms.Has(req.Platform) {
		http.Error(w, "unknown platform", http.StatusBadRequest)
		return
	}

	// content must resolve under the caller before a job is ever queued
	if _, err := h.Content.Get(r.Context(), req.ContentID, uid); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.Error(w, "content not found", http.StatusBadRequest)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	s := schedule.Schedule{
		UserID:    uid,
		BrandID:   req.BrandID,
		ContentID: req.ContentID,
		Platform:  req.Platform,
		PublishAt: publishAt.UTC(),
		Meta:      req.Meta,
	}
	if err := h.Repo.Create(r.Context(), &s); err != nil {
		if errors.Is(err, schedule.ErrInvalid) {
			http.Error(w, "invalid schedule", http.StatusBadRequest)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toScheduleDTO(s))
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var brandID *uint64
	if v := strings.TrimSpace(r.URL.Query().Get("brand_id")); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid brand_id", http.StatusBadRequest)
			return
		}
		brandID = &id
	}

	rows, err := h.Repo.ListForOwner(r.Context(), uid, brandID)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]scheduleDTO, 0, len(rows))
	for _, s := range rows {
		out = append(out, toScheduleDTO(s))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// Retry re-arms a FAILED row. The retries counter is not reset; only job
// re-creation starts over.
func (h *ScheduleHandler) Retry(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ok, err := h.Repo.Retry(r.Context(), id, uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Ticker runs one worker sweep.
type Ticker interface {
	Tick(ctx context.Context) (schedule.TickSummary, error)
}

type WorkerHandler struct {
	Worker Ticker
}

// Trigger is the external invocation point for the dispatcher. Safe to call
// repeatedly; already-terminal rows are never touched.
func (h *WorkerHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Worker.Tick(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":           true,
		"processed":    sum.Processed,
		"posted":       sum.Posted,
		"failed":       sum.Failed,
		"processed_at": sum.ProcessedAt.Format(time.RFC3339),
	})
}
