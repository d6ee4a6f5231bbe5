package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/docugen/internal/engine"
	"github.com/diewo77/docugen/internal/httpx"
	"github.com/diewo77/docugen/internal/models"
	"github.com/diewo77/docugen/internal/sanitize"
	"github.com/diewo77/docugen/internal/service"
	"github.com/diewo77/docugen/internal/validation"
)

type TemplateHandler struct {
	db *gorm.DB
}

func NewTemplateHandler(db *gorm.DB) *TemplateHandler {
	return &TemplateHandler{db: db}
}

type templateRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type templateResponse struct {
	models.Template
	InputVariables []string `json:"input_variables"`
}

// List returns the caller's templates plus the global seed templates,
// optionally filtered by category.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	q := h.db.Where("owner_id = ? OR owner_id IS NULL", owner)
	if category := r.URL.Query().Get("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var templates []models.Template
	if err := q.Order("category, name").Find(&templates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "list_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, templates)
}

// Get returns a single template with the variables a caller must supply.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tpl, found := h.lookup(w, owner, id)
	if !found {
		return
	}
	httpx.JSON(w, http.StatusOK, templateResponse{
		Template:       tpl,
		InputVariables: service.InputVariables(&tpl),
	})
}

// Create stores a new template owned by the caller. Content is sanitized on
// write and the variable set is derived from the cleaned content.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.Required("content", req.Content, v)
	validation.OneOf("category", req.Category, []string{
		string(models.CategoryContract), string(models.CategoryInvoice), string(models.CategoryOffer),
	}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}

	content := sanitize.Clean(req.Content)
	vars, err := json.Marshal(engine.Variables(content))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}

	tpl := models.Template{
		ID:        uuid.New(),
		OwnerID:   &owner,
		Name:      req.Name,
		Category:  models.TemplateCategory(req.Category),
		Content:   content,
		Variables: vars,
	}
	if err := h.db.Create(&tpl).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, tpl)
}

// Update edits an owned template. Global templates are read-only. Content is
// re-sanitized and the variable set recomputed.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var tpl models.Template
	err := h.db.Where("id = ? AND owner_id = ?", id, owner).First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}

	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	if req.Name != "" {
		tpl.Name = req.Name
	}
	if req.Content != "" {
		tpl.Content = sanitize.Clean(req.Content)
		vars, err := json.Marshal(engine.Variables(tpl.Content))
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
			return
		}
		tpl.Variables = vars
	}

	if err := h.db.Save(&tpl).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}

// Delete removes an owned template. Documents keep their own snapshot, so
// deleting a template never breaks existing records.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res := h.db.Where("id = ? AND owner_id = ?", id, owner).Delete(&models.Template{})
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusNoContent, nil)
}

func (h *TemplateHandler) lookup(w http.ResponseWriter, owner, id uuid.UUID) (models.Template, bool) {
	var tpl models.Template
	err := h.db.Where("id = ? AND (owner_id = ? OR owner_id IS NULL)", id, owner).First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return tpl, false
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "lookup_failed", nil)
		return tpl, false
	}
	return tpl, true
}
