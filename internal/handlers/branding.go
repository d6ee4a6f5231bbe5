package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/docugen/internal/httpx"
	"github.com/diewo77/docugen/internal/models"
	"github.com/diewo77/docugen/internal/storage"
	"github.com/diewo77/docugen/internal/validation"
)

// maxLogoBytes caps uploaded logo size at 2 MiB.
const maxLogoBytes = 2 << 20

type BrandingHandler struct {
	db    *gorm.DB
	store storage.ObjectStore
}

func NewBrandingHandler(db *gorm.DB, store storage.ObjectStore) *BrandingHandler {
	return &BrandingHandler{db: db, store: store}
}

// Get returns the caller's branding profile, creating defaults on first read.
func (h *BrandingHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	profile, err := h.loadOrInit(owner)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

type brandingRequest struct {
	Position     string `json:"position"`
	Size         string `json:"size"`
	PrimaryColor string `json:"primary_color"`
}

// Update changes the logo placement defaults and the primary color.
func (h *BrandingHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req brandingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := make(validation.Violations)
	if req.Position != "" && !models.LogoPosition(req.Position).Valid() {
		v["position"] = "invalid_value"
	}
	if req.Size != "" && !models.LogoSize(req.Size).Valid() {
		v["size"] = "invalid_value"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}

	profile, err := h.loadOrInit(owner)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}

	if req.Position != "" {
		profile.Position = models.LogoPosition(req.Position)
	}
	if req.Size != "" {
		profile.Size = models.LogoSize(req.Size)
	}
	if req.PrimaryColor != "" {
		profile.PrimaryColor = req.PrimaryColor
	}

	if err := h.db.Save(profile).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

// UploadLogo stores a new logo image and points the profile at it. The
// previous logo object, if any, is removed.
func (h *BrandingHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes)
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_upload", nil)
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "missing_file", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext := logoExtension(contentType, header.Filename)
	if ext == "" {
		httpx.JSONError(w, http.StatusUnsupportedMediaType, "unsupported_image", nil)
		return
	}

	profile, err := h.loadOrInit(owner)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "upload_failed", nil)
		return
	}

	key := owner.String() + "/logo-" + uuid.NewString() + ext
	if err := h.store.Put(r.Context(), key, file, header.Size, contentType); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "upload_failed", nil)
		return
	}

	oldRef := profile.LogoRef
	profile.LogoRef = key
	if err := h.db.Save(profile).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "upload_failed", nil)
		return
	}
	if oldRef != "" {
		// best effort, a dangling object is harmless
		_ = h.store.Delete(r.Context(), oldRef)
	}
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *BrandingHandler) loadOrInit(owner uuid.UUID) (*models.BrandingProfile, error) {
	var profile models.BrandingProfile
	err := h.db.Where("owner_id = ?", owner).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.BrandingProfile{
			OwnerID:  owner,
			Position: models.PositionCenter,
			Size:     models.SizeMedium,
		}
		if err := h.db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// logoExtension validates the upload is a supported image and picks the
// object key extension.
func logoExtension(contentType, filename string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/svg+xml":
		return ".svg"
	}
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return ".png"
	case ".jpg", ".jpeg":
		return ".jpg"
	case ".svg":
		return ".svg"
	}
	return ""
}
