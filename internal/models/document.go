package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DocumentStatus is the generation state of a document record.
// pending is the only non-terminal status; a record that reaches completed or
// error is never mutated again, a retry creates a fresh record.
type DocumentStatus string

const (
	StatusPending   DocumentStatus = "pending"
	StatusCompleted DocumentStatus = "completed"
	StatusError     DocumentStatus = "error"
)

// Terminal returns true for completed and error.
func (s DocumentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// GeneratedDocument is one generation attempt. It snapshots the template
// content and the caller-supplied values so the record stays reproducible
// even if the template is later edited or deleted.
type GeneratedDocument struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`

	TemplateID       uuid.UUID        `gorm:"type:uuid;index" json:"template_id"`
	TemplateName     string           `gorm:"size:255;not null" json:"template_name"`
	TemplateCategory TemplateCategory `gorm:"size:20;not null" json:"template_category"`
	TemplateContent  string           `gorm:"type:text;not null" json:"-"`

	Name   string         `gorm:"size:255;not null" json:"name"`
	Status DocumentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	// ValuesSnapshot holds the variable map, ledger items, and branding
	// choices as supplied at generation time.
	ValuesSnapshot datatypes.JSON `json:"values_snapshot"`

	// ArtifactRef is the object storage key, set only when completed.
	ArtifactRef string `gorm:"size:500" json:"artifact_ref,omitempty"`

	// FailureStage and FailureDetail preserve the failure point for
	// diagnostics when status is error.
	FailureStage  string `gorm:"size:50" json:"failure_stage,omitempty"`
	FailureDetail string `gorm:"size:1000" json:"failure_detail,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCompleted returns true once the artifact is durably stored.
func (d *GeneratedDocument) IsCompleted() bool {
	return d.Status == StatusCompleted
}

// ArtifactKey returns the storage key convention for this document.
func (d *GeneratedDocument) ArtifactKey() string {
	return d.OwnerID.String() + "/" + d.ID.String() + ".pdf"
}
