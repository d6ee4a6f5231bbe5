// Package branding maps the per-account logo directives (position and size
// enums) to concrete layout parameters.
//
// The resolver output is abstract layout directives only; the same Overlay is
// injected into both the live preview and the PDF export, so the two can
// never drift apart. For a given (position, size) pair the output is always
// byte-identical.
package branding

import (
	"fmt"
	"html"

	"github.com/diewo77/docugen/internal/models"
)

// Fixed width tiers in pixels.
const (
	widthSmall  = 64
	widthMedium = 128
	widthLarge  = 192
)

// Overlay is the resolved placement of the logo graphic.
type Overlay struct {
	Position models.LogoPosition
	WidthPx  int
	Opacity  float64
	ZIndex   int

	// Background places the logo behind the document text.
	Background bool
}

// Resolve computes the overlay placement for a branding profile. Unknown
// enum values fall back to a centered medium logo.
func Resolve(profile *models.BrandingProfile) Overlay {
	position := profile.Position
	if !position.Valid() {
		position = models.PositionCenter
	}

	width := widthMedium
	switch profile.Size {
	case models.SizeSmall:
		width = widthSmall
	case models.SizeLarge:
		width = widthLarge
	}

	if position.Background() {
		// Background logos span wide behind the text at reduced opacity.
		return Overlay{
			Position:   position,
			WidthPx:    width * 2,
			Opacity:    0.5,
			ZIndex:     0,
			Background: true,
		}
	}

	return Overlay{
		Position: position,
		WidthPx:  width,
		Opacity:  1,
		ZIndex:   10,
	}
}

// containerStyle returns the wrapper style for the overlay position.
func (o Overlay) containerStyle() string {
	switch o.Position {
	case models.PositionLeft:
		return "display: flex; justify-content: flex-start;"
	case models.PositionRight:
		return "display: flex; justify-content: flex-end;"
	case models.PositionBackgroundTop:
		return "position: absolute; top: 0; left: 0; right: 0; display: flex; justify-content: center;"
	case models.PositionBackgroundCenter:
		return "position: absolute; top: 50%; left: 0; right: 0; transform: translateY(-50%); display: flex; justify-content: center;"
	case models.PositionBackgroundBottom:
		return "position: absolute; bottom: 0; left: 0; right: 0; display: flex; justify-content: center;"
	default: // center
		return "display: flex; justify-content: center;"
	}
}

// HTML renders the overlay markup for the given logo URL. All styles are
// inlined; both renderers consume this fragment verbatim.
func (o Overlay) HTML(logoURL string) string {
	if logoURL == "" {
		return ""
	}
	return fmt.Sprintf(
		`<div style="%s z-index: %d;"><img src="%s" alt="Company Logo" style="width: %dpx; opacity: %s;"></div>`,
		o.containerStyle(), o.ZIndex, html.EscapeString(logoURL), o.WidthPx, formatOpacity(o.Opacity),
	)
}

// formatOpacity keeps opacity output stable ("1" or "0.5", never "1.000000").
func formatOpacity(v float64) string {
	if v == 1 {
		return "1"
	}
	return fmt.Sprintf("%.1f", v)
}
