// Package engine implements {token} placeholder extraction and substitution
// for template content.
//
// A token is a literal '{', any run of characters containing neither '{' nor
// '}', and a literal '}'. The token body is trimmed of surrounding whitespace
// for value lookup but matched byte-for-byte for replacement. Nested braces
// are not token syntax and pass through as literal text.
package engine

import "strings"

// Variables returns the distinct variable names found in content, in first
// occurrence order. Names are trimmed and lower-cased so repeated tokens and
// case variants collapse to a single entry.
func Variables(content string) []string {
	seen := make(map[string]struct{})
	var names []string
	scan(content, func(body string) string {
		name := strings.ToLower(strings.TrimSpace(body))
		if name == "" {
			return ""
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		return ""
	})
	return names
}

// Substitute replaces every occurrence of {name} in content with values[name]
// when a non-empty value is present, and leaves the literal token in place
// otherwise so missing data stays visible in the output. Replacement values
// are emitted as opaque text and never re-scanned for tokens, which rules out
// substitution loops. Substitute is idempotent for resolved variables.
func Substitute(content string, values map[string]string) string {
	if len(values) == 0 {
		return content
	}
	return scan(content, func(body string) string {
		if v, ok := values[strings.TrimSpace(body)]; ok && v != "" {
			return v
		}
		return ""
	})
}

// scan walks content and calls resolve for each well-formed token body.
// A non-empty result replaces the token; an empty result keeps the literal
// token text. Returns the rebuilt string.
func scan(content string, resolve func(body string) string) string {
	var b strings.Builder
	b.Grow(len(content))

	for i := 0; i < len(content); {
		open := strings.IndexByte(content[i:], '{')
		if open < 0 {
			b.WriteString(content[i:])
			break
		}
		open += i
		b.WriteString(content[i:open])

		// Find the end of the token body: the next '}' with no earlier '{'.
		rest := content[open+1:]
		closeRel := strings.IndexByte(rest, '}')
		openRel := strings.IndexByte(rest, '{')
		if closeRel < 0 || (openRel >= 0 && openRel < closeRel) {
			// Unterminated or nested brace: the '{' is literal text.
			b.WriteByte('{')
			i = open + 1
			continue
		}

		body := rest[:closeRel]
		if repl := resolve(body); repl != "" {
			b.WriteString(repl)
		} else {
			b.WriteString(content[open : open+1+closeRel+1])
		}
		i = open + 1 + closeRel + 1
	}
	return b.String()
}
