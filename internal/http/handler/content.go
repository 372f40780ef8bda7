package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"fluxcontent/internal/auth"
	"fluxcontent/internal/brand"
	"fluxcontent/internal/content"

	"gorm.io/gorm"
)

type ContentHandler struct {
	DB *gorm.DB
}

type contentReq struct {
	BrandID uint64          `json:"brand_id"`
	Type    string          `json:"type"`
	Title   string          `json:"title"`
	Data    json.RawMessage `json:"data"`
}

type contentDTO struct {
	ID      uint64          `json:"id"`
	BrandID uint64          `json:"brand_id"`
	Type    string          `json:"type"`
	Title   string          `json:"title"`
	Data    json.RawMessage `json:"data"`
	Status  string          `json:"status"`
}

func toContentDTO(c content.Content) contentDTO {
	return contentDTO{
		ID:      c.ID,
		BrandID: c.BrandID,
		Type:    c.Type,
		Title:   c.Title,
		Data:    c.Data,
		Status:  c.Status,
	}
}

func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req contentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.BrandID == 0 || !content.ValidType(req.Type) {
		http.Error(w, "brand_id and valid type required", http.StatusBadRequest)
		return
	}

	// brand must belong to the caller
	var b brand.Brand
	if err := h.DB.Where("id = ? AND user_id = ?", req.BrandID, uid).First(&b).Error; err != nil {
		http.Error(w, "brand not found", http.StatusBadRequest)
		return
	}

	if len(req.Data) == 0 {
		req.Data = []byte("{}")
	}
	c := content.Content{
		UserID:  uid,
		BrandID: req.BrandID,
		Type:    req.Type,
		Title:   strings.TrimSpace(req.Title),
		Data:    req.Data,
		Status:  content.StatusDraft,
	}
	if err := h.DB.Create(&c).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toContentDTO(c))
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	q := h.DB.Where("user_id = ?", uid)
	if v := strings.TrimSpace(r.URL.Query().Get("brand_id")); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid brand_id", http.StatusBadRequest)
			return
		}
		q = q.Where("brand_id = ?", id)
	}
	if v := strings.TrimSpace(r.URL.Query().Get("type")); v != "" {
		q = q.Where("type = ?", v)
	}

	var rows []content.Content
	if err := q.Order("created_at desc").Limit(100).Find(&rows).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]contentDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, toContentDTO(c))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var c content.Content
	if err := h.DB.Where("id = ? AND user_id = ?", id, uid).First(&c).Error; err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toContentDTO(c))
}

func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req contentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	var c content.Content
	if err := h.DB.Where("id = ? AND user_id = ?", id, uid).First(&c).Error; err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		c.Title = title
	}
	if len(req.Data) > 0 {
		c.Data = req.Data
	}

	if err := h.DB.Save(&c).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toContentDTO(c))
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, uid).Delete(&content.Content{})
	if res.Error != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
