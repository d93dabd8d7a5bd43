// Package terms expands checklist wording cells into comparable term
// variants: separator and "or" splitting, placeholder filtering, and
// country-of-origin expansion into per-language phrasings.
package terms

import (
	"strings"

	"github.com/dsotools/signcheck/internal/textnorm"
)

// Variant is one alternate phrasing derived from a wording cell, with the
// wording line it came from kept for auditability.
type Variant struct {
	Text   string
	Origin string
}

// orWords are localized standalone "or" tokens that separate alternatives
// inside one wording line.
var orWords = map[string]bool{
	"or":   true,
	"หรือ": true,
	"ou":   true,
	"oder": true,
	"o":    true,
	"или":  true,
}

// placeholders are wording cells that mean "nothing to check".
var placeholders = map[string]bool{
	"":            true,
	"-":           true,
	"--":          true,
	"n/a":         true,
	"na":          true,
	"none":        true,
	"unspecified": true,
}

// bulletCutset is trimmed off the edges of each split piece.
const bulletCutset = " \t •●▪‣·*-–—:;|/"

// IsPlaceholder reports whether a wording cell carries no checkable text.
func IsPlaceholder(wording string) bool {
	return placeholders[textnorm.Normalize(wording)]
}

// Expand turns one wording cell into its term variants. Placeholder wording
// yields nil; any other wording yields at least one variant. When the cell is
// a bare country-of-origin designation, the variants are the full origin
// statements for the declared languages (all known languages if none are
// declared).
func Expand(wording string, languages []string) []Variant {
	if IsPlaceholder(wording) {
		return nil
	}

	if key, ok := BareCountryOrigin(wording); ok {
		phrases := OriginPhrases(key, languages)
		if len(phrases) == 0 {
			phrases = OriginPhrases(key, nil)
		}
		variants := make([]Variant, 0, len(phrases))
		for _, p := range phrases {
			variants = append(variants, Variant{Text: p, Origin: wording})
		}
		if len(variants) > 0 {
			return variants
		}
	}

	var variants []Variant
	seen := map[string]bool{}
	for _, line := range splitWording(wording) {
		for _, piece := range splitAlternatives(line) {
			piece = strings.Trim(piece, bulletCutset)
			if piece == "" || IsPlaceholder(piece) {
				continue
			}
			norm := textnorm.Normalize(piece)
			if seen[norm] {
				continue
			}
			seen[norm] = true
			variants = append(variants, Variant{Text: piece, Origin: line})
		}
	}

	// Non-placeholder wording must never expand to nothing.
	if len(variants) == 0 {
		variants = append(variants, Variant{Text: strings.TrimSpace(wording), Origin: wording})
	}
	return variants
}

// splitWording breaks a cell on hard separators: newlines, semicolons,
// pipes, slashes, and bullet marks.
func splitWording(wording string) []string {
	return strings.FieldsFunc(wording, func(r rune) bool {
		switch r {
		case '\n', '\r', ';', '|', '/', '•', '●', '▪', '‣':
			return true
		}
		return false
	})
}

// splitAlternatives breaks one line on standalone localized "or" tokens.
// "Warning or Caution" yields two pieces; "Oregon" stays whole.
func splitAlternatives(line string) []string {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return []string{line}
	}

	var pieces []string
	var current []string
	for i, f := range fields {
		// An "or" at either edge is part of the phrase, not a separator.
		if i > 0 && i < len(fields)-1 && orWords[strings.ToLower(f)] {
			pieces = append(pieces, strings.Join(current, " "))
			current = nil
			continue
		}
		current = append(current, f)
	}
	pieces = append(pieces, strings.Join(current, " "))

	if len(pieces) == 1 {
		return []string{line}
	}
	return pieces
}

// BareCountryOrigin reports whether wording is a bare country-of-origin
// designation: at most two meaningful tokens, one of which names a known
// country. "Thailand" and "Origin: Thailand" qualify; a full sentence
// containing a country name does not.
func BareCountryOrigin(wording string) (string, bool) {
	norm := textnorm.Normalize(wording)
	if norm == "" {
		return "", false
	}

	meaningful := 0
	for _, tok := range strings.Fields(norm) {
		tok = strings.Trim(tok, bulletCutset+".,")
		if tok == "" || originFillerWords[tok] {
			continue
		}
		meaningful++
	}
	if meaningful > 2 {
		return "", false
	}
	return DetectCountry(norm)
}

// originFillerWords are administrative tokens that do not count toward the
// bare-origin token limit.
var originFillerWords = map[string]bool{
	"country":   true,
	"of":        true,
	"origin":    true,
	"origin:":   true,
	"country:":  true,
	"coo":       true,
	"coo:":      true,
	"ประเทศ":    true,
	"แหล่งผลิต": true,
}

// RequiredCountry reports the country a term variant designates, if any.
// The matching engine uses it for the country-equivalence condition: a term
// that names a country only matches where one of that country's name
// variants also appears.
func RequiredCountry(variant string) (string, bool) {
	return DetectCountry(variant)
}
