package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Made In Thailand", "made in thailand"},
		{"strips accents", "Fabriqué en Chine", "fabrique en chine"},
		{"unifies nbsp", "made in thailand", "made in thailand"},
		{"collapses whitespace", "  WARNING:   CHOKING \t HAZARD ", "warning: choking hazard"},
		{"unifies dashes", "4LB45–MF4A", "4lb45-mf4a"},
		{"unifies quotes", "“Warning”", `"warning"`},
		{"strips parentheticals", "Warning (see manual) statement", "warning statement"},
		{"strips fullwidth parentheticals", "警告（参照）文", "警告 文"},
		{"keeps thai vowel signs", "ผลิตในประเทศไทย", "ผลิตในประเทศไทย"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Made In Thailand",
		"Fabriqué en Chine",
		"  WARNING:   CHOKING HAZARD ",
		"ผลิตในประเทศไทย",
		"4LB45–MF4A (rev A1)",
		"中国制造",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}

func TestIsAllCaps(t *testing.T) {
	assert.True(t, IsAllCaps("WARNING: CHOKING HAZARD"))
	assert.True(t, IsAllCaps("AGE 3+"))
	assert.False(t, IsAllCaps("Warning"))
	assert.False(t, IsAllCaps("123"), "no letters means not all caps")
	assert.False(t, IsAllCaps(""))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"warning:", "choking", "hazard"}, Tokens("  Warning:  CHOKING hazard "))
}

func TestLettersOnly(t *testing.T) {
	assert.Equal(t, "AGE", LettersOnly("AGE 3+"))
}
