package sanitize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "script tag removed",
			in:   `<script>alert(1)</script><p>hi</p>`,
			want: `<p>hi</p>`,
		},
		{
			name: "formatting kept",
			in:   `<p><strong>Contract</strong> de <em>prestari</em> servicii</p>`,
			want: `<p><strong>Contract</strong> de <em>prestari</em> servicii</p>`,
		},
		{
			name: "disallowed tag dropped text kept",
			in:   `<form><p>text</p></form>`,
			want: `<p>text</p>`,
		},
		{
			name: "event handler attribute removed",
			in:   `<p onclick="steal()">hi</p>`,
			want: `<p>hi</p>`,
		},
		{
			name: "iframe removed",
			in:   `<iframe src="https://evil.example"></iframe><p>ok</p>`,
			want: `<p>ok</p>`,
		},
		{
			name: "plain text untouched",
			in:   `Factura pentru {client}`,
			want: `Factura pentru {client}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_StyleAttribute(t *testing.T) {
	// Allowed CSS properties survive, others are stripped from the attribute.
	got := Clean(`<p style="color: red; behavior: url(evil.htc);">x</p>`)
	if !strings.Contains(got, "color: red") {
		t.Errorf("allowed style dropped: %q", got)
	}
	if strings.Contains(got, "behavior") {
		t.Errorf("disallowed style kept: %q", got)
	}
}

func TestClean_JavascriptURL(t *testing.T) {
	got := Clean(`<img src="javascript:alert(1)" alt="x">`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript URL survived: %q", got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	in := `<div style="text-align: center;"><h1>Oferta</h1><script>x()</script><ul><li>a</li></ul></div>`
	once := Clean(in)
	twice := Clean(once)
	if once != twice {
		t.Errorf("Clean not idempotent: %q != %q", once, twice)
	}
}
