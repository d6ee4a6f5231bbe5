// Package sanitize strips disallowed markup from rich-text template content
// before it is rendered or stored. The allow-list mirrors what the template
// editor can produce; anything else is removed, keeping its inner text.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// styleProps is the fixed set of CSS properties permitted in style
// attributes: text formatting plus the positioning properties the branding
// overlay relies on.
var styleProps = []string{
	"font-family", "font-size", "color", "background-color",
	"text-align", "font-weight", "font-style", "text-decoration",
	"line-height", "margin", "margin-top", "margin-bottom", "padding",
	"position", "opacity", "z-index",
	"width", "height", "max-width", "max-height",
	"top", "bottom", "left", "right", "transform",
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br",
		"strong", "b", "em", "i", "u", "s",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"span", "div",
		"sub", "sup",
		"img",
	)

	p.AllowAttrs("style", "class").Globally()
	p.AllowStyles(styleProps...).Globally()

	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https", "data")
	p.AllowDataURIImages()

	return p
}

// Clean returns rawHTML reduced to the allow-listed markup. Disallowed tags
// and attributes are removed, not escaped; their text content is preserved.
// Script and style bodies are dropped entirely. Malformed markup degrades to
// best-effort cleaned output; Clean never fails.
func Clean(rawHTML string) string {
	return policy.Sanitize(rawHTML)
}
