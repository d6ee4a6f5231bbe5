// Package service orchestrates document generation: record creation,
// rendering, PDF export, artifact storage, and status transitions.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/docugen/internal/branding"
	"github.com/diewo77/docugen/internal/engine"
	"github.com/diewo77/docugen/internal/errs"
	"github.com/diewo77/docugen/internal/ledger"
	"github.com/diewo77/docugen/internal/models"
	"github.com/diewo77/docugen/internal/render"
	"github.com/diewo77/docugen/internal/storage"
)

// Exporter converts a rendered HTML document into PDF bytes.
type Exporter interface {
	PDF(ctx context.Context, html string) ([]byte, error)
}

// logoURLExpiry bounds how long a presigned logo URL stays valid; it only
// needs to outlive one render plus export.
const logoURLExpiry = 15 * time.Minute

// downloadURLExpiry matches the short-lived links handed to clients.
const downloadURLExpiry = 60 * time.Second

// Documents is the document lifecycle manager. Each generation is an
// independent unit of work owning its own snapshot of all inputs, so no
// locking is needed between concurrent generations.
type Documents struct {
	db       *gorm.DB
	store    storage.ObjectStore
	exporter Exporter
	log      *zap.Logger
	taxRate  float64
	now      func() time.Time
}

// NewDocuments wires the lifecycle manager.
func NewDocuments(db *gorm.DB, store storage.ObjectStore, exporter Exporter, taxRate float64, log *zap.Logger) *Documents {
	if log == nil {
		log = zap.NewNop()
	}
	if taxRate <= 0 {
		taxRate = ledger.DefaultTaxRate
	}
	return &Documents{
		db:       db,
		store:    store,
		exporter: exporter,
		log:      log,
		taxRate:  taxRate,
		now:      time.Now,
	}
}

// GenerateInput is one generation request. Items are required for
// invoice-category templates. Position and Size override the branding
// profile defaults for this document only.
type GenerateInput struct {
	OwnerID    uuid.UUID
	TemplateID uuid.UUID
	Values     map[string]string
	Items      []ledger.Item
	Position   models.LogoPosition
	Size       models.LogoSize
}

// snapshot is the persisted ValuesSnapshot payload.
type snapshot struct {
	Values   map[string]string `json:"values"`
	Items    []ledger.Item     `json:"items,omitempty"`
	Branding *brandingChoice   `json:"branding,omitempty"`
}

type brandingChoice struct {
	LogoRef  string              `json:"logo_ref"`
	Position models.LogoPosition `json:"position"`
	Size     models.LogoSize     `json:"size"`
}

// prepared carries the validated, resolved inputs of one generation.
type prepared struct {
	tpl        models.Template
	led        *ledger.Ledger
	overlay    branding.Overlay
	logoURL    string
	titleColor string
	choice     *brandingChoice
}

// Generate runs the full pipeline for one document. The pending record is
// inserted before rendering begins so partial failures stay observable; any
// later failure flips it to error, preserving the failure stage. A terminal
// record is never reused; retrying means calling Generate again for a fresh
// record.
func (s *Documents) Generate(ctx context.Context, in GenerateInput) (*models.GeneratedDocument, error) {
	p, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	snapJSON, err := json.Marshal(snapshot{Values: in.Values, Items: in.Items, Branding: p.choice})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	now := s.now()
	doc := &models.GeneratedDocument{
		ID:               uuid.New(),
		OwnerID:          in.OwnerID,
		TemplateID:       p.tpl.ID,
		TemplateName:     p.tpl.Name,
		TemplateCategory: p.tpl.Category,
		TemplateContent:  p.tpl.Content,
		Name:             fmt.Sprintf("%s - %s", p.tpl.Name, now.Format("02.01.2006")),
		Status:           models.StatusPending,
		ValuesSnapshot:   snapJSON,
	}
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, fmt.Errorf("create document record: %w", err)
	}

	html, err := s.renderPrepared(p, in.Values, now)
	if err != nil {
		s.markError(ctx, doc, "render", err)
		return doc, err
	}

	pdf, err := s.exporter.PDF(ctx, html)
	if err != nil {
		s.markError(ctx, doc, "export", err)
		return doc, err
	}

	key := doc.ArtifactKey()
	if err := storage.PutBytes(ctx, s.store, key, pdf, "application/pdf"); err != nil {
		err = fmt.Errorf("%w: %v", errs.ErrStorage, err)
		s.markError(ctx, doc, "storage", err)
		return doc, err
	}

	// The record flips to completed only after the artifact is durably
	// stored, and only from pending.
	res := s.db.WithContext(ctx).Model(&models.GeneratedDocument{}).
		Where("id = ? AND status = ?", doc.ID, models.StatusPending).
		Updates(map[string]any{"status": models.StatusCompleted, "artifact_ref": key})
	if res.Error != nil {
		return doc, fmt.Errorf("update document record: %w", res.Error)
	}
	doc.Status = models.StatusCompleted
	doc.ArtifactRef = key

	s.log.Info("document generated",
		zap.String("document_id", doc.ID.String()),
		zap.String("owner_id", in.OwnerID.String()),
		zap.String("category", string(p.tpl.Category)),
		zap.Int("pdf_size", len(pdf)),
	)
	return doc, nil
}

// Preview renders the HTML fragment for on-screen display. It runs the exact
// same validation and rendering path as Generate, minus the export and the
// record, so preview and artifact can never diverge.
func (s *Documents) Preview(ctx context.Context, in GenerateInput) (string, error) {
	p, err := s.prepare(ctx, in)
	if err != nil {
		return "", err
	}
	return s.renderPrepared(p, in.Values, s.now())
}

// prepare loads the template and branding, validates the ledger, and
// resolves the overlay. All validation failures happen here, before any
// record is written.
func (s *Documents) prepare(ctx context.Context, in GenerateInput) (*prepared, error) {
	var tpl models.Template
	err := s.db.WithContext(ctx).
		Where("id = ? AND (owner_id = ? OR owner_id IS NULL)", in.TemplateID, in.OwnerID).
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("template %s: %w", in.TemplateID, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	p := &prepared{tpl: tpl}

	if tpl.Category == models.CategoryInvoice {
		if len(in.Items) == 0 {
			return nil, errs.NewValidation("items", "invoice_requires_item")
		}
		led := ledger.New(s.taxRate)
		for _, it := range in.Items {
			if err := led.Add(it); err != nil {
				return nil, err
			}
		}
		p.led = led
	}

	profile, err := s.brandingProfile(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		p.titleColor = profile.PrimaryColor
	}
	if profile != nil && profile.LogoRef != "" {
		resolved := *profile
		if in.Position.Valid() {
			resolved.Position = in.Position
		}
		if in.Size.Valid() {
			resolved.Size = in.Size
		}
		p.overlay = branding.Resolve(&resolved)
		p.choice = &brandingChoice{LogoRef: profile.LogoRef, Position: resolved.Position, Size: resolved.Size}

		url, err := s.store.PresignGet(ctx, profile.LogoRef, logoURLExpiry)
		if err != nil {
			// A broken logo link degrades to a logo-less document rather
			// than failing the generation.
			s.log.Warn("logo presign failed, rendering without logo",
				zap.String("owner_id", in.OwnerID.String()), zap.Error(err))
		} else {
			p.logoURL = url
		}
	}

	return p, nil
}

func (s *Documents) renderPrepared(p *prepared, values map[string]string, now time.Time) (string, error) {
	return render.Document(render.Input{
		Name:        p.tpl.Name,
		Category:    p.tpl.Category,
		Content:     p.tpl.Content,
		Values:      values,
		Ledger:      p.led,
		Overlay:     p.overlay,
		LogoURL:     p.logoURL,
		TitleColor:  p.titleColor,
		GeneratedAt: now,
	})
}

// brandingProfile returns the owner's profile or nil when none exists.
func (s *Documents) brandingProfile(ctx context.Context, ownerID uuid.UUID) (*models.BrandingProfile, error) {
	var profile models.BrandingProfile
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load branding profile: %w", err)
	}
	return &profile, nil
}

// markError flips a pending record to error, recording the failure stage for
// diagnostics. Terminal records are never touched (status guard in WHERE).
func (s *Documents) markError(ctx context.Context, doc *models.GeneratedDocument, stage string, cause error) {
	detail := cause.Error()
	if len(detail) > 1000 {
		detail = detail[:1000]
	}
	res := s.db.WithContext(ctx).Model(&models.GeneratedDocument{}).
		Where("id = ? AND status = ?", doc.ID, models.StatusPending).
		Updates(map[string]any{
			"status":         models.StatusError,
			"failure_stage":  stage,
			"failure_detail": detail,
		})
	if res.Error != nil {
		s.log.Error("failed to persist error status",
			zap.String("document_id", doc.ID.String()), zap.Error(res.Error))
		return
	}
	doc.Status = models.StatusError
	doc.FailureStage = stage
	doc.FailureDetail = detail

	s.log.Warn("document generation failed",
		zap.String("document_id", doc.ID.String()),
		zap.String("stage", stage),
		zap.Error(cause),
	)
}

// List returns the owner's documents, newest first.
func (s *Documents) List(ctx context.Context, ownerID uuid.UUID) ([]models.GeneratedDocument, error) {
	var docs []models.GeneratedDocument
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Get returns one document by ID, scoped to the owner.
func (s *Documents) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.GeneratedDocument, error) {
	var doc models.GeneratedDocument
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("document %s: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return &doc, nil
}

// DownloadURL returns a short-lived presigned URL for a completed document's
// artifact.
func (s *Documents) DownloadURL(ctx context.Context, ownerID, id uuid.UUID) (string, error) {
	doc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if !doc.IsCompleted() || doc.ArtifactRef == "" {
		return "", errs.NewValidation("status", "document_not_completed")
	}
	url, err := s.store.PresignGet(ctx, doc.ArtifactRef, downloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrStorage, err)
	}
	return url, nil
}

// Delete removes the record and, for completed documents, its stored
// artifact. Deleting is the only mutation allowed on a terminal record.
func (s *Documents) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	doc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if doc.ArtifactRef != "" {
		if err := s.store.Delete(ctx, doc.ArtifactRef); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrStorage, err)
		}
	}
	if err := s.db.WithContext(ctx).Delete(&models.GeneratedDocument{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// InputVariables returns the template variables the caller is expected to
// fill in, excluding the renderer-owned reserved tokens.
func InputVariables(tpl *models.Template) []string {
	reserved := make(map[string]struct{})
	for _, r := range models.ReservedTokens(tpl.Category) {
		reserved[r] = struct{}{}
	}
	var names []string
	for _, name := range engine.Variables(tpl.Content) {
		if _, ok := reserved[name]; ok {
			continue
		}
		names = append(names, name)
	}
	return names
}
