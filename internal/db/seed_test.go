package db

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/docugen/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestSeed(t *testing.T) {
	conn := newTestDB(t)
	if err := Seed(conn); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	var templates []models.Template
	if err := conn.Find(&templates).Error; err != nil {
		t.Fatalf("load templates: %v", err)
	}
	if len(templates) != 3 {
		t.Fatalf("seeded %d templates, want 3", len(templates))
	}

	byCategory := make(map[models.TemplateCategory]models.Template)
	for _, tpl := range templates {
		if !tpl.IsGlobal() {
			t.Errorf("seed template %q has an owner", tpl.Name)
		}
		byCategory[tpl.Category] = tpl
	}

	// The invoice template carries the ledger tokens, the others the logo token.
	invoice := byCategory[models.CategoryInvoice]
	for _, token := range []string{"{tabel_produse}", "{subtotal}", "{valoare_tva}", "{total_general}"} {
		if !strings.Contains(invoice.Content, token) {
			t.Errorf("invoice seed missing %s", token)
		}
	}
	for _, c := range []models.TemplateCategory{models.CategoryContract, models.CategoryOffer} {
		if !strings.Contains(byCategory[c].Content, "{logo_firma}") {
			t.Errorf("%s seed missing {logo_firma}", c)
		}
	}

	// Variables are extracted from the content, reserved tokens included.
	if !strings.Contains(string(invoice.Variables), "numar_factura") {
		t.Errorf("invoice Variables = %s, missing extracted token", invoice.Variables)
	}
	if !strings.Contains(string(invoice.Variables), "tabel_produse") {
		t.Errorf("invoice Variables = %s, missing reserved token", invoice.Variables)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	conn := newTestDB(t)
	for i := 0; i < 3; i++ {
		if err := Seed(conn); err != nil {
			t.Fatalf("Seed() run %d failed: %v", i, err)
		}
	}
	var count int64
	conn.Model(&models.Template{}).Count(&count)
	if count != 3 {
		t.Errorf("template count = %d after repeated seeding, want 3", count)
	}
}
