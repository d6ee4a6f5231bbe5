package models

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestDocumentStatus_Terminal(t *testing.T) {
	tests := []struct {
		status DocumentStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusCompleted, true},
		{StatusError, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeneratedDocument_ArtifactKey(t *testing.T) {
	owner := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	id := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	d := &GeneratedDocument{ID: id, OwnerID: owner}
	want := "11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222.pdf"
	if got := d.ArtifactKey(); got != want {
		t.Errorf("ArtifactKey() = %q, want %q", got, want)
	}
}

func TestTemplateCategory_Valid(t *testing.T) {
	for _, c := range []TemplateCategory{CategoryContract, CategoryInvoice, CategoryOffer} {
		if !c.Valid() {
			t.Errorf("Valid() = false for %q", c)
		}
	}
	if TemplateCategory("memo").Valid() {
		t.Error("Valid() = true for unknown category")
	}
}

func TestReservedTokens(t *testing.T) {
	got := ReservedTokens(CategoryInvoice)
	want := []string{"tabel_produse", "subtotal", "valoare_tva", "total_general"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReservedTokens(invoice) = %v, want %v", got, want)
	}

	for _, c := range []TemplateCategory{CategoryContract, CategoryOffer} {
		got := ReservedTokens(c)
		if !reflect.DeepEqual(got, []string{"logo_firma"}) {
			t.Errorf("ReservedTokens(%s) = %v, want [logo_firma]", c, got)
		}
	}
}

func TestTemplate_IsGlobal(t *testing.T) {
	owner := uuid.New()
	if (&Template{OwnerID: &owner}).IsGlobal() {
		t.Error("owned template reported as global")
	}
	if !(&Template{}).IsGlobal() {
		t.Error("ownerless template not reported as global")
	}
}

func TestLogoPosition(t *testing.T) {
	tests := []struct {
		position   LogoPosition
		valid      bool
		background bool
	}{
		{PositionLeft, true, false},
		{PositionCenter, true, false},
		{PositionRight, true, false},
		{PositionBackgroundTop, true, true},
		{PositionBackgroundCenter, true, true},
		{PositionBackgroundBottom, true, true},
		{LogoPosition("diagonal"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.position), func(t *testing.T) {
			if got := tt.position.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.position.Background(); got != tt.background {
				t.Errorf("Background() = %v, want %v", got, tt.background)
			}
		})
	}
}

func TestLogoSize_Valid(t *testing.T) {
	for _, s := range []LogoSize{SizeSmall, SizeMedium, SizeLarge} {
		if !s.Valid() {
			t.Errorf("Valid() = false for %q", s)
		}
	}
	if LogoSize("huge").Valid() {
		t.Error("Valid() = true for unknown size")
	}
}
