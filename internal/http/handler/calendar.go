package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fluxcontent/internal/auth"
	"fluxcontent/internal/calendar"
	"fluxcontent/internal/schedule"

	"gorm.io/gorm"
)

// CalendarHandler serves the read-side timeline: the queue view and the
// iCalendar export, both joining schedules with their content titles.
type CalendarHandler struct {
	DB *gorm.DB
}

type queueRow struct {
	ScheduleID uint64    `gorm:"column:schedule_id" json:"schedule_id"`
	BrandID    uint64    `gorm:"column:brand_id" json:"brand_id"`
	ContentID  uint64    `gorm:"column:content_id" json:"content_id"`
	Title      string    `gorm:"column:title" json:"title"`
	Type       string    `gorm:"column:type" json:"type"`
	Platform   string    `gorm:"column:platform" json:"platform"`
	PublishAt  time.Time `gorm:"column:publish_at" json:"publish_at"`
	Status     string    `gorm:"column:status" json:"status"`
	Retries    int       `gorm:"column:retries" json:"retries"`
}

func (h *CalendarHandler) rows(userID uint64, onlyPending bool) ([]queueRow, error) {
	q := h.DB.Table("schedules s").
		Select("s.id as schedule_id, s.brand_id, s.content_id, c.title, c.type, s.platform, s.publish_at, s.status, s.retries").
		Joins("join content c on c.id = s.content_id").
		Where("s.user_id = ?", userID)
	if onlyPending {
		q = q.Where("s.status = ?", schedule.StatusPending)
	}

	var rows []queueRow
	err := q.Order("s.publish_at asc").Find(&rows).Error
	return rows, err
}

func (h *CalendarHandler) Queue(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	rows, err := h.rows(uid, false)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

func (h *CalendarHandler) ICS(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	rows, err := h.rows(uid, true)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	events := make([]calendar.Event, 0, len(rows))
	for _, row := range rows {
		title := row.Title
		if title == "" {
			title = "Content"
		}
		events = append(events, calendar.Event{
			UID:     fmt.Sprintf("fluxcontent-%d@fluxcontent.app", row.ScheduleID),
			Summary: fmt.Sprintf("Publish %s on %s", title, row.Platform),
			Description: fmt.Sprintf("Content: %s\nPlatform: %s\nBrand: %d",
				title, row.Platform, row.BrandID),
			Start: row.PublishAt,
		})
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="content-calendar.ics"`)
	_, _ = w.Write([]byte(calendar.Generate(events, time.Now())))
}
