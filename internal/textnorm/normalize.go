// Package textnorm canonicalizes text for comparison. Every comparison in
// the checker goes through Normalize so that artwork text and checklist
// wording meet on the same footing regardless of encoding, accents,
// typographic punctuation, or spacing.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacritics covers the combining marks that Latin accents decompose into.
// Stripping all of category Mn would also erase Thai vowel signs and Arabic
// harakat, which are load-bearing, so only this range is removed.
var diacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036F, Stride: 1}},
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(diacritics)), norm.NFC)

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)|（[^）]*）`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// punctReplacer maps typographic variants onto their plain forms.
var punctReplacer = strings.NewReplacer(
	" ", " ", // no-break space
	" ", " ",
	" ", " ",
	"　", " ", // ideographic space
	"‐", "-",
	"‑", "-",
	"‒", "-",
	"–", "-",
	"—", "-",
	"―", "-",
	"−", "-", // minus sign
	"‘", "'",
	"’", "'",
	"‚", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"«", `"`,
	"»", `"`,
)

// Normalize canonicalizes s for comparison: compatibility decomposition with
// combining marks stripped, dash/quote/space variants unified, parenthetical
// asides removed, whitespace collapsed, and the result case folded.
// Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}

	folded = punctReplacer.Replace(folded)
	folded = parenthetical.ReplaceAllString(folded, " ")
	folded = whitespace.ReplaceAllString(folded, " ")
	return strings.ToLower(strings.TrimSpace(folded))
}

// LettersOnly returns only the letter runes of s.
func LettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsAllCaps reports whether s contains at least one letter and every letter
// is uppercase. Digits and punctuation are ignored.
func IsAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) && unicode.ToUpper(r) != r {
			return false
		}
		if unicode.IsLower(r) {
			return false
		}
	}
	return hasLetter
}

// Tokens splits a normalized string into its space-separated tokens.
func Tokens(s string) []string {
	fields := strings.Fields(Normalize(s))
	return fields
}
