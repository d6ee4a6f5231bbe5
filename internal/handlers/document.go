package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/diewo77/docugen/internal/httpx"
	"github.com/diewo77/docugen/internal/ledger"
	"github.com/diewo77/docugen/internal/models"
	"github.com/diewo77/docugen/internal/service"
)

type DocumentHandler struct {
	docs *service.Documents
}

func NewDocumentHandler(docs *service.Documents) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

type generateRequest struct {
	TemplateID uuid.UUID         `json:"template_id"`
	Values     map[string]string `json:"values"`
	Items      []itemRequest     `json:"items,omitempty"`
	Position   string            `json:"logo_position,omitempty"`
	Size       string            `json:"logo_size,omitempty"`
}

type itemRequest struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

func (req *generateRequest) toInput(owner uuid.UUID) (service.GenerateInput, error) {
	in := service.GenerateInput{
		OwnerID:    owner,
		TemplateID: req.TemplateID,
		Values:     req.Values,
		Position:   models.LogoPosition(req.Position),
		Size:       models.LogoSize(req.Size),
	}
	for _, it := range req.Items {
		item, err := ledger.ParseItem(it.Description, it.Quantity, it.UnitPrice)
		if err != nil {
			return in, err
		}
		in.Items = append(in.Items, item)
	}
	return in, nil
}

// Generate runs the full pipeline and returns the document record. The
// record is returned on failure too, carrying the error status.
func (h *DocumentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	in, err := req.toInput(owner)
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := h.docs.Generate(r.Context(), in)
	if err != nil {
		if doc != nil {
			// The pending record flipped to error; surface both the record
			// and the failure kind.
			httpx.JSON(w, http.StatusInternalServerError, doc)
			return
		}
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

// Preview returns the rendered HTML fragment without creating a record or
// exporting a PDF.
func (h *DocumentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	in, err := req.toInput(owner)
	if err != nil {
		writeError(w, err)
		return
	}

	html, err := h.docs.Preview(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// List returns the caller's documents, newest first.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	docs, err := h.docs.List(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, docs)
}

// Get returns one document record.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	doc, err := h.docs.Get(r.Context(), owner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

// Download returns a short-lived URL for the PDF artifact of a completed
// document.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	url, err := h.docs.DownloadURL(r.Context(), owner, id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"url": url})
}

// Delete removes the record and its stored artifact.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.docs.Delete(r.Context(), owner, id); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusNoContent, nil)
}
