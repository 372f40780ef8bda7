package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"fluxcontent/internal/auth"
	"fluxcontent/internal/brand"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type BrandHandler struct {
	DB *gorm.DB
}

type brandReq struct {
	Name     string          `json:"name"`
	Tone     string          `json:"tone"`
	Voice    string          `json:"voice"`
	Keywords []string        `json:"keywords"`
	Style    json.RawMessage `json:"style"`
}

type brandDTO struct {
	ID       uint64          `json:"id"`
	Name     string          `json:"name"`
	Tone     string          `json:"tone"`
	Voice    string          `json:"voice"`
	Keywords []string        `json:"keywords"`
	Style    json.RawMessage `json:"style"`
}

func toBrandDTO(b brand.Brand) brandDTO {
	return brandDTO{
		ID:       b.ID,
		Name:     b.Name,
		Tone:     b.Tone,
		Voice:    b.Voice,
		Keywords: []string(b.Keywords),
		Style:    b.Style,
	}
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req brandReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	if len(req.Style) == 0 {
		req.Style = []byte("{}")
	}

	b := brand.Brand{
		UserID:   uid,
		Name:     req.Name,
		Tone:     req.Tone,
		Voice:    req.Voice,
		Keywords: pq.StringArray(req.Keywords),
		Style:    req.Style,
	}
	if err := h.DB.Create(&b).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toBrandDTO(b))
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var rows []brand.Brand
	if err := h.DB.Where("user_id = ?", uid).Order("created_at desc").Find(&rows).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]brandDTO, 0, len(rows))
	for _, b := range rows {
		out = append(out, toBrandDTO(b))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var b brand.Brand
	if err := h.DB.Where("id = ? AND user_id = ?", id, uid).First(&b).Error; err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toBrandDTO(b))
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req brandReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	var b brand.Brand
	if err := h.DB.Where("id = ? AND user_id = ?", id, uid).First(&b).Error; err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		b.Name = name
	}
	b.Tone = req.Tone
	b.Voice = req.Voice
	if req.Keywords != nil {
		b.Keywords = pq.StringArray(req.Keywords)
	}
	if len(req.Style) > 0 {
		b.Style = req.Style
	}

	if err := h.DB.Save(&b).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toBrandDTO(b))
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, uid).Delete(&brand.Brand{})
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

func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
}
