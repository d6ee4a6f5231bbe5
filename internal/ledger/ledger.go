// Package ledger holds the ordered line items of an invoice document and
// computes its totals.
//
// Amounts are carried as decimals end to end; rounding to two places happens
// only when a value is formatted for display, so long ledgers do not
// accumulate rounding error.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/diewo77/docugen/internal/errs"
)

// DefaultTaxRate is the VAT rate applied when no rate is configured.
const DefaultTaxRate = 0.19

// Item is one ledger line: what was sold, how many, at what unit price.
type Item struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal returns quantity * unit price, unrounded.
func (it Item) LineTotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// Totals are the computed ledger amounts, unrounded.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Ledger is the ordered collection of line items on an invoice-category
// document. A Ledger is owned by a single generation request and is never
// shared between goroutines.
type Ledger struct {
	items   []Item
	taxRate decimal.Decimal

	// invoice enforces the at-least-one-item invariant on removal.
	invoice bool
}

// New creates an invoice ledger with the given tax rate (0..1).
func New(taxRate float64) *Ledger {
	return &Ledger{
		taxRate: decimal.NewFromFloat(taxRate),
		invoice: true,
	}
}

// Items returns a copy of the current line items.
func (l *Ledger) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of line items.
func (l *Ledger) Len() int { return len(l.items) }

// Add appends a line item after validating it.
func (l *Ledger) Add(it Item) error {
	if err := validateItem(it); err != nil {
		return err
	}
	l.items = append(l.items, it)
	return nil
}

// Remove deletes the item at index. Removing the last remaining item of an
// invoice ledger is disallowed; the ledger is left unchanged on failure.
func (l *Ledger) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return errs.NewValidation("index", "out_of_range")
	}
	if l.invoice && len(l.items) == 1 {
		return errs.NewValidation("items", "invoice_requires_item")
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// Update replaces the item at index after validating the new values.
func (l *Ledger) Update(index int, it Item) error {
	if index < 0 || index >= len(l.items) {
		return errs.NewValidation("index", "out_of_range")
	}
	if err := validateItem(it); err != nil {
		return err
	}
	l.items[index] = it
	return nil
}

// Totals computes subtotal, tax, and grand total over all items. The
// computation is pure and deterministic; values stay unrounded.
func (l *Ledger) Totals() Totals {
	subtotal := decimal.Zero
	for _, it := range l.items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	tax := subtotal.Mul(l.taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

func validateItem(it Item) error {
	v := map[string]string{}
	if it.Description == "" {
		v["description"] = "required"
	}
	if !it.Quantity.IsPositive() {
		v["quantity"] = "must_be_positive"
	}
	if it.UnitPrice.IsNegative() {
		v["unit_price"] = "must_not_be_negative"
	}
	if len(v) > 0 {
		return &errs.ValidationError{Violations: v}
	}
	return nil
}

// Format renders a decimal with two places for display.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ParseItem builds an Item from string fields, validating as it goes.
func ParseItem(description, quantity, unitPrice string) (Item, error) {
	qty, err := decimal.NewFromString(quantity)
	if err != nil {
		return Item{}, errs.NewValidation("quantity", "invalid_number")
	}
	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return Item{}, errs.NewValidation("unit_price", "invalid_number")
	}
	it := Item{Description: description, Quantity: qty, UnitPrice: price}
	if err := validateItem(it); err != nil {
		return Item{}, err
	}
	return it, nil
}
