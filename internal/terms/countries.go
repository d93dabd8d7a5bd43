package terms

import (
	"sort"
	"strings"

	"github.com/dsotools/signcheck/internal/textnorm"
)

// country groups the name variants and per-language origin phrasings for one
// country of origin. All strings are stored in source form and normalized on
// access so the tables stay readable.
type country struct {
	key      string
	variants []string
	origins  map[string][]string
}

// countries covers the origins that show up on packaging artwork for this
// product range. Variant lists mix scripts on purpose: a Thai back panel may
// carry the Thai country name next to the English origin statement.
var countries = []country{
	{
		key:      "thailand",
		variants: []string{"Thailand", "ประเทศไทย", "ไทย", "Thaïlande", "Tailandia", "泰国", "タイ"},
		origins: map[string][]string{
			"english":  {"Made in Thailand", "Product of Thailand"},
			"thai":     {"ผลิตในประเทศไทย", "ผลิตในไทย"},
			"french":   {"Fabriqué en Thaïlande"},
			"spanish":  {"Hecho en Tailandia"},
			"german":   {"Hergestellt in Thailand"},
			"chinese":  {"泰国制造"},
			"japanese": {"タイ製"},
		},
	},
	{
		key:      "china",
		variants: []string{"China", "จีน", "ประเทศจีน", "Chine", "中国", "中國"},
		origins: map[string][]string{
			"english":  {"Made in China", "Product of China"},
			"thai":     {"ผลิตในประเทศจีน", "ผลิตในจีน"},
			"french":   {"Fabriqué en Chine"},
			"spanish":  {"Hecho en China"},
			"german":   {"Hergestellt in China"},
			"chinese":  {"中国制造"},
			"japanese": {"中国製"},
		},
	},
	{
		key:      "vietnam",
		variants: []string{"Vietnam", "Viet Nam", "เวียดนาม", "ประเทศเวียดนาม", "Việt Nam", "越南", "ベトナム"},
		origins: map[string][]string{
			"english":    {"Made in Vietnam", "Made in Viet Nam"},
			"thai":       {"ผลิตในประเทศเวียดนาม", "ผลิตในเวียดนาม"},
			"french":     {"Fabriqué au Vietnam"},
			"spanish":    {"Hecho en Vietnam"},
			"german":     {"Hergestellt in Vietnam"},
			"chinese":    {"越南制造"},
			"japanese":   {"ベトナム製"},
			"vietnamese": {"Sản xuất tại Việt Nam"},
		},
	},
	{
		key:      "indonesia",
		variants: []string{"Indonesia", "อินโดนีเซีย", "Indonésie", "印度尼西亚", "インドネシア"},
		origins: map[string][]string{
			"english":    {"Made in Indonesia"},
			"thai":       {"ผลิตในประเทศอินโดนีเซีย", "ผลิตในอินโดนีเซีย"},
			"french":     {"Fabriqué en Indonésie"},
			"spanish":    {"Hecho en Indonesia"},
			"german":     {"Hergestellt in Indonesien"},
			"chinese":    {"印度尼西亚制造"},
			"japanese":   {"インドネシア製"},
			"indonesian": {"Dibuat di Indonesia"},
		},
	},
	{
		key:      "malaysia",
		variants: []string{"Malaysia", "มาเลเซีย", "Malaisie", "马来西亚", "マレーシア"},
		origins: map[string][]string{
			"english": {"Made in Malaysia"},
			"thai":    {"ผลิตในประเทศมาเลเซีย", "ผลิตในมาเลเซีย"},
			"french":  {"Fabriqué en Malaisie"},
			"spanish": {"Hecho en Malasia"},
			"german":  {"Hergestellt in Malaysia"},
			"chinese": {"马来西亚制造"},
			"malay":   {"Dibuat di Malaysia"},
		},
	},
	{
		key:      "japan",
		variants: []string{"Japan", "ญี่ปุ่น", "Japon", "Japón", "日本", "日本国"},
		origins: map[string][]string{
			"english":  {"Made in Japan"},
			"thai":     {"ผลิตในประเทศญี่ปุ่น", "ผลิตในญี่ปุ่น"},
			"french":   {"Fabriqué au Japon"},
			"spanish":  {"Hecho en Japón"},
			"german":   {"Hergestellt in Japan"},
			"chinese":  {"日本制造"},
			"japanese": {"日本製"},
		},
	},
	{
		key:      "taiwan",
		variants: []string{"Taiwan", "ไต้หวัน", "Taïwan", "台湾", "臺灣"},
		origins: map[string][]string{
			"english": {"Made in Taiwan"},
			"thai":    {"ผลิตในไต้หวัน"},
			"french":  {"Fabriqué à Taïwan"},
			"spanish": {"Hecho en Taiwán"},
			"chinese": {"台湾制造", "台灣製造"},
		},
	},
	{
		key:      "mexico",
		variants: []string{"Mexico", "México", "เม็กซิโก", "Mexique", "墨西哥", "メキシコ"},
		origins: map[string][]string{
			"english": {"Made in Mexico"},
			"thai":    {"ผลิตในเม็กซิโก"},
			"french":  {"Fabriqué au Mexique"},
			"spanish": {"Hecho en México"},
			"german":  {"Hergestellt in Mexiko"},
			"chinese": {"墨西哥制造"},
		},
	},
	{
		key:      "usa",
		variants: []string{"USA", "U.S.A.", "United States", "สหรัฐอเมริกา", "États-Unis", "Estados Unidos", "美国", "アメリカ"},
		origins: map[string][]string{
			"english": {"Made in USA", "Made in the USA", "Made in U.S.A."},
			"thai":    {"ผลิตในสหรัฐอเมริกา"},
			"french":  {"Fabriqué aux États-Unis"},
			"spanish": {"Hecho en Estados Unidos"},
			"german":  {"Hergestellt in den USA"},
			"chinese": {"美国制造"},
		},
	},
}

// originMarkers are the language-specific lead-ins of an origin statement,
// used to tell a real "made in" phrase apart from a bare country name.
var originMarkers = []string{
	"made in", "product of", "fabrique", "hecho en", "hergestellt",
	"dibuat di", "san xuat tai", "ผลิตใน", "ผลิตที่", "制造", "製造", "製",
}

func findCountry(key string) (country, bool) {
	for _, c := range countries {
		if c.key == key {
			return c, true
		}
	}
	return country{}, false
}

// DetectCountry reports which known country a piece of wording designates, by
// normalized variant containment. Longer variants are preferred implicitly:
// a text naming two countries is resolved to whichever appears, first table
// entry winning, which is stable run to run.
func DetectCountry(text string) (string, bool) {
	norm := textnorm.Normalize(text)
	if norm == "" {
		return "", false
	}
	for _, c := range countries {
		for _, v := range c.variants {
			if containsVariant(norm, textnorm.Normalize(v)) {
				return c.key, true
			}
		}
	}
	return "", false
}

// containsVariant is containment with word-ish boundaries for Latin-script
// variants, so "china" does not fire inside "machinery". CJK and Thai
// variants have no spaces and use plain containment.
func containsVariant(norm, variant string) bool {
	if variant == "" {
		return false
	}
	if !isLatin(variant) {
		return strings.Contains(norm, variant)
	}
	idx := 0
	for {
		i := strings.Index(norm[idx:], variant)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(variant)
		if boundaryAt(norm, start) && boundaryAt(norm, end) {
			return true
		}
		idx = start + 1
	}
}

func boundaryAt(s string, i int) bool {
	if i <= 0 || i >= len(s) {
		return true
	}
	prev, cur := s[i-1], s[i]
	return !isWordByte(prev) || !isWordByte(cur)
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > 0x24F {
			return false
		}
	}
	return true
}

// CountryVariants returns the normalized name variants for a country key.
// Unknown keys yield nil.
func CountryVariants(key string) []string {
	c, ok := findCountry(key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(c.variants))
	for _, v := range c.variants {
		out = append(out, textnorm.Normalize(v))
	}
	return out
}

// OriginPhrases returns the origin statements for a country in the given
// languages; with no languages declared it returns every known phrasing.
// Phrases come back in source form, ready to be used as term variants.
func OriginPhrases(key string, languages []string) []string {
	c, ok := findCountry(key)
	if !ok {
		return nil
	}

	langs := languages
	if len(langs) == 0 {
		langs = make([]string, 0, len(c.origins))
		for l := range c.origins {
			langs = append(langs, l)
		}
		// Map iteration order is random; phrase order must not be.
		sort.Strings(langs)
	}

	var phrases []string
	for _, l := range langs {
		phrases = append(phrases, c.origins[normalizeLanguage(l)]...)
	}
	return phrases
}

// normalizeLanguage folds checklist language labels onto origin table keys.
func normalizeLanguage(l string) string {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "en", "eng", "english":
		return "english"
	case "th", "tha", "thai":
		return "thai"
	case "fr", "fra", "french":
		return "french"
	case "es", "spa", "spanish":
		return "spanish"
	case "de", "deu", "ger", "german":
		return "german"
	case "zh", "chi", "chinese", "simplified chinese", "traditional chinese":
		return "chinese"
	case "ja", "jpn", "japanese":
		return "japanese"
	case "vi", "vie", "vietnamese":
		return "vietnamese"
	case "id", "ind", "indonesian":
		return "indonesian"
	case "ms", "may", "malay":
		return "malay"
	default:
		return strings.ToLower(strings.TrimSpace(l))
	}
}

// ContainsOriginStatement reports whether normalized text carries any
// language's origin lead-in. The page classifier uses this to keep pages
// whose only compliance text is the origin statement.
func ContainsOriginStatement(normalized string) bool {
	for _, m := range originMarkers {
		if strings.Contains(normalized, textnorm.Normalize(m)) {
			return true
		}
	}
	return false
}
