package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/diewo77/docugen/internal/errs"
)

func mustItem(t *testing.T, desc, qty, price string) Item {
	t.Helper()
	it, err := ParseItem(desc, qty, price)
	if err != nil {
		t.Fatalf("ParseItem(%q, %q, %q) failed: %v", desc, qty, price, err)
	}
	return it
}

func TestLedger_Totals(t *testing.T) {
	tests := []struct {
		name         string
		items        [][3]string // description, quantity, unit price
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "single item",
			items:        [][3]string{{"Serviciu", "1", "10.00"}},
			wantSubtotal: "10.00",
			wantTax:      "1.90",
			wantTotal:    "11.90",
		},
		{
			name: "two items",
			items: [][3]string{
				{"Produs A", "2", "10.00"},
				{"Produs B", "1", "5.00"},
			},
			wantSubtotal: "25.00",
			wantTax:      "4.75",
			wantTotal:    "29.75",
		},
		{
			name:         "fractional quantity",
			items:        [][3]string{{"Ore consultanta", "1.5", "40.00"}},
			wantSubtotal: "60.00",
			wantTax:      "11.40",
			wantTotal:    "71.40",
		},
		{
			name:         "zero price item",
			items:        [][3]string{{"Mostra gratuita", "3", "0"}},
			wantSubtotal: "0.00",
			wantTax:      "0.00",
			wantTotal:    "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(DefaultTaxRate)
			for _, row := range tt.items {
				if err := l.Add(mustItem(t, row[0], row[1], row[2])); err != nil {
					t.Fatalf("Add() failed: %v", err)
				}
			}
			got := l.Totals()
			if s := Format(got.Subtotal); s != tt.wantSubtotal {
				t.Errorf("Subtotal = %s, want %s", s, tt.wantSubtotal)
			}
			if s := Format(got.Tax); s != tt.wantTax {
				t.Errorf("Tax = %s, want %s", s, tt.wantTax)
			}
			if s := Format(got.Total); s != tt.wantTotal {
				t.Errorf("Total = %s, want %s", s, tt.wantTotal)
			}
		})
	}
}

func TestLedger_TotalsNoAccumulatedRounding(t *testing.T) {
	// 100 lines of 0.1 * 0.3 would drift under float64 accumulation.
	l := New(DefaultTaxRate)
	for i := 0; i < 100; i++ {
		if err := l.Add(mustItem(t, "linie", "0.1", "0.3")); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}
	got := l.Totals()
	if !got.Subtotal.Equal(decimal.RequireFromString("3")) {
		t.Errorf("Subtotal = %s, want 3", got.Subtotal)
	}
	if s := Format(got.Tax); s != "0.57" {
		t.Errorf("Tax = %s, want 0.57", s)
	}
}

func TestLedger_AddRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		item  Item
		field string
	}{
		{
			name:  "empty description",
			item:  Item{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
			field: "description",
		},
		{
			name:  "zero quantity",
			item:  Item{Description: "x", UnitPrice: decimal.NewFromInt(10)},
			field: "quantity",
		},
		{
			name:  "negative quantity",
			item:  Item{Description: "x", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(10)},
			field: "quantity",
		},
		{
			name:  "negative price",
			item:  Item{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-5)},
			field: "unit_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(DefaultTaxRate)
			err := l.Add(tt.item)
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Add() error = %v, want ValidationError", err)
			}
			if _, ok := verr.Violations[tt.field]; !ok {
				t.Errorf("Violations = %v, want entry for %q", verr.Violations, tt.field)
			}
			if l.Len() != 0 {
				t.Errorf("Len() = %d after rejected Add, want 0", l.Len())
			}
		})
	}
}

func TestLedger_RemoveLastItemFails(t *testing.T) {
	l := New(DefaultTaxRate)
	if err := l.Add(mustItem(t, "Serviciu", "1", "10.00")); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	err := l.Remove(0)
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Remove() error = %v, want ValidationError", err)
	}

	// The ledger must be unchanged after the failed removal.
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	if s := Format(l.Totals().Total); s != "11.90" {
		t.Errorf("Total = %s, want 11.90", s)
	}
}

func TestLedger_RemoveKeepsOrder(t *testing.T) {
	l := New(DefaultTaxRate)
	for _, desc := range []string{"a", "b", "c"} {
		if err := l.Add(mustItem(t, desc, "1", "1")); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}
	if err := l.Remove(1); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	items := l.Items()
	if len(items) != 2 || items[0].Description != "a" || items[1].Description != "c" {
		t.Errorf("Items() = %v, want [a c]", items)
	}
}

func TestLedger_RemoveOutOfRange(t *testing.T) {
	l := New(DefaultTaxRate)
	if err := l.Remove(0); err == nil {
		t.Error("Remove(0) on empty ledger did not fail")
	}
}

func TestLedger_UpdateInvalidLeavesItem(t *testing.T) {
	l := New(DefaultTaxRate)
	if err := l.Add(mustItem(t, "Serviciu", "2", "10.00")); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	bad := Item{Description: "", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}
	if err := l.Update(0, bad); err == nil {
		t.Fatal("Update() with invalid item did not fail")
	}
	if got := l.Items()[0].Description; got != "Serviciu" {
		t.Errorf("item description = %q after failed Update, want %q", got, "Serviciu")
	}
}

func TestParseItem(t *testing.T) {
	tests := []struct {
		name      string
		qty       string
		price     string
		wantField string // empty means success
	}{
		{"valid", "2", "9.99", ""},
		{"bad quantity", "two", "9.99", "quantity"},
		{"bad price", "2", "lei", "unit_price"},
		{"zero quantity", "0", "9.99", "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItem("Produs", tt.qty, tt.price)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ParseItem() failed: %v", err)
				}
				return
			}
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ParseItem() error = %v, want ValidationError", err)
			}
			if _, ok := verr.Violations[tt.wantField]; !ok {
				t.Errorf("Violations = %v, want entry for %q", verr.Violations, tt.wantField)
			}
		})
	}
}
