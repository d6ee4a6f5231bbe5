package db

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/docugen/internal/engine"
	"github.com/diewo77/docugen/internal/models"
	"github.com/diewo77/docugen/internal/sanitize"
)

// Seed creates the global templates shared by every account. Existing
// templates are left untouched; seeding is keyed by name so it is safe to
// run on every startup.
func Seed(db *gorm.DB) error {
	seeds := []struct {
		Name     string
		Category models.TemplateCategory
		Content  string
	}{
		{
			Name:     "Contract de prestări servicii",
			Category: models.CategoryContract,
			Content: `{logo_firma}` +
				`<p>Între <strong>{prestator}</strong>, cu sediul în {adresa_prestator}, ` +
				`și <strong>{beneficiar}</strong>, cu sediul în {adresa_beneficiar}, ` +
				`se încheie prezentul contract de prestări servicii.</p>` +
				`<h2>Obiectul contractului</h2>` +
				`<p>{descriere_servicii}</p>` +
				`<h2>Durata</h2>` +
				`<p>Contractul se încheie pe perioada {data_inceput} - {data_sfarsit}.</p>` +
				`<h2>Valoarea contractului</h2>` +
				`<p>Valoarea totală a serviciilor este de {valoare} RON.</p>`,
		},
		{
			Name:     "Factură fiscală",
			Category: models.CategoryInvoice,
			Content: `<p>Factura nr. <strong>{numar_factura}</strong> din data {data_factura}</p>` +
				`<p>Furnizor: <strong>{furnizor}</strong> - CUI {cui_furnizor}</p>` +
				`<p>Client: <strong>{client}</strong> - CUI {cui_client}</p>` +
				`{tabel_produse}` +
				`<p style="text-align: right;">Subtotal: {subtotal} RON</p>` +
				`<p style="text-align: right;">TVA: {valoare_tva} RON</p>` +
				`<p style="text-align: right;"><strong>Total de plată: {total_general} RON</strong></p>`,
		},
		{
			Name:     "Ofertă comercială",
			Category: models.CategoryOffer,
			Content: `{logo_firma}` +
				`<p>Către <strong>{client}</strong>,</p>` +
				`<p>Vă transmitem oferta noastră pentru {obiect_oferta}, ` +
				`valabilă până la data de {valabilitate}.</p>` +
				`<p>{detalii_oferta}</p>` +
				`<p>Preț ofertat: <strong>{pret} RON</strong></p>`,
		},
	}

	for _, s := range seeds {
		var count int64
		if err := db.Model(&models.Template{}).
			Where("name = ? AND owner_id IS NULL", s.Name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("seed lookup %q: %w", s.Name, err)
		}
		if count > 0 {
			continue
		}

		content := sanitize.Clean(s.Content)
		vars, err := json.Marshal(engine.Variables(content))
		if err != nil {
			return fmt.Errorf("seed variables %q: %w", s.Name, err)
		}

		tpl := models.Template{
			ID:        uuid.New(),
			Name:      s.Name,
			Category:  s.Category,
			Content:   content,
			Variables: vars,
		}
		if err := db.Create(&tpl).Error; err != nil {
			return fmt.Errorf("seed create %q: %w", s.Name, err)
		}
	}
	return nil
}
