// Package templates performs the placeholder substitution used to build
// generated pages. It is not a template language: tokens are literal strings,
// each occurrence is replaced once, and replaced text is never rescanned.
package templates

import (
	"html"
	"sort"
	"strings"
)

// Tokens understood by the generated pages.
const (
	TokenTitle       = "{{title}}"
	TokenURL         = "{{url}}"
	TokenDate        = "{{date}}"
	TokenDescription = "{{description}}"
	TokenBody        = "{{body}}"
)

// Values maps a literal token to its replacement. Tokens missing from the map
// are left in place.
type Values map[string]string

// Substitute replaces every token in vals inside tpl with its raw value.
func Substitute(tpl string, vals Values) string {
	return replacer(vals, false).Replace(tpl)
}

// SubstituteEscaped is Substitute with each value HTML-escaped first.
func SubstituteEscaped(tpl string, vals Values) string {
	return replacer(vals, true).Replace(tpl)
}

// Escape escapes the characters & < > " ' for inclusion in HTML or XML.
func Escape(s string) string {
	return html.EscapeString(s)
}

func replacer(vals Values, escape bool) *strings.Replacer {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		if k != "" {
			keys = append(keys, k)
		}
	}
	// Longer tokens first so a token that prefixes another never shadows it.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		v := vals[k]
		if escape {
			v = Escape(v)
		}
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...)
}
