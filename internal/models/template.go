package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TemplateCategory classifies a template by the kind of document it produces.
type TemplateCategory string

const (
	CategoryContract TemplateCategory = "contract"
	CategoryInvoice  TemplateCategory = "invoice"
	CategoryOffer    TemplateCategory = "offer"
)

// Valid reports whether the category is one of the known values.
func (c TemplateCategory) Valid() bool {
	switch c {
	case CategoryContract, CategoryInvoice, CategoryOffer:
		return true
	}
	return false
}

// Reserved tokens injected by the renderer rather than supplied by the caller.
// Invoice templates carry the ledger tokens; all other categories carry the
// branding token.
const (
	TokenLedgerTable = "tabel_produse"
	TokenSubtotal    = "subtotal"
	TokenTax         = "valoare_tva"
	TokenGrandTotal  = "total_general"
	TokenLogo        = "logo_firma"
)

// ReservedTokens returns the token names the renderer owns for a category.
func ReservedTokens(category TemplateCategory) []string {
	if category == CategoryInvoice {
		return []string{TokenLedgerTable, TokenSubtotal, TokenTax, TokenGrandTotal}
	}
	return []string{TokenLogo}
}

// Template is a stored rich-text document template with {token} placeholders.
// OwnerID is nil for global seed templates shared by every account.
// Templates are snapshot into generated documents, never referenced live.
type Template struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Category  TemplateCategory `gorm:"size:20;not null;index" json:"category"`
	Content   string     `gorm:"type:text;not null" json:"content"`

	// Variables holds the distinct token names extracted from Content,
	// recomputed whenever Content changes.
	Variables datatypes.JSON `json:"variables"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsGlobal returns true for seed templates shared across accounts.
func (t *Template) IsGlobal() bool {
	return t.OwnerID == nil
}
