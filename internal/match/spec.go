package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dsotools/signcheck/internal/textnorm"
)

// StyleSpec is the parsed form of a requirement's specification cell.
type StyleSpec struct {
	Bold             bool
	RequireUnderline bool
	ForbidUnderline  bool
	AllCaps          bool
	MinSizeMM        float64
	HasMinSize       bool
}

// Empty reports whether the specification demands nothing.
func (s StyleSpec) Empty() bool {
	return !s.Bold && !s.RequireUnderline && !s.ForbidUnderline && !s.AllCaps && !s.HasMinSize
}

const ptToMM = 25.4 / 72.0

var sizePattern = regexp.MustCompile(`(?:>=|≥)?\s*(\d+(?:[.,]\d+)?)\s*(mm|pt|point|มม)`)

// ParseSpec extracts style and size requirements from free-form
// specification text. A malformed size is treated as no threshold, never an
// error: the checker degrades to style-only validation for that row.
func ParseSpec(spec string) StyleSpec {
	out := StyleSpec{}
	norm := textnorm.Normalize(spec)
	if norm == "" {
		return out
	}

	if strings.Contains(norm, "bold") || strings.Contains(norm, "ตัวหนา") {
		out.Bold = true
	}

	switch {
	case strings.Contains(norm, "no underline"),
		strings.Contains(norm, "without underline"),
		strings.Contains(norm, "not underlined"):
		out.ForbidUnderline = true
	case strings.Contains(norm, "underline"), strings.Contains(norm, "ขีดเส้นใต้"):
		out.RequireUnderline = true
	}

	if strings.Contains(norm, "all caps") || strings.Contains(norm, "allcaps") ||
		strings.Contains(norm, "uppercase") || strings.Contains(norm, "ตัวพิมพ์ใหญ่") {
		out.AllCaps = true
	}

	if m := sizePattern.FindStringSubmatch(norm); m != nil {
		raw := strings.ReplaceAll(m[1], ",", ".")
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			if m[2] == "pt" || m[2] == "point" {
				v *= ptToMM
			}
			out.MinSizeMM = v
			out.HasMinSize = true
		}
	}

	return out
}
