package leasedoc

import (
	"fmt"
	"strings"
)

// DefaultSourceLanguage labels the original artifact set.
const DefaultSourceLanguage = "English"

// DefaultPDFExclusions lists the languages whose PDF is not produced by the
// core-font composer: their scripts cannot be set in the built-in fonts.
var DefaultPDFExclusions = []string{
	"Arabic",
	"Chinese (Simplified)",
	"Chinese (Traditional)",
	"Hebrew",
	"Hindi",
	"Japanese",
	"Korean",
	"Thai",
}

// languageAliases maps alternative names and ISO codes onto the canonical
// (normalized) exclusion names.
var languageAliases = map[string]string{
	"ar":                  "arabic",
	"zh":                  "chinese (simplified)",
	"zh-cn":               "chinese (simplified)",
	"zh-hans":             "chinese (simplified)",
	"chinese":             "chinese (simplified)",
	"simplified chinese":  "chinese (simplified)",
	"zh-tw":               "chinese (traditional)",
	"zh-hk":               "chinese (traditional)",
	"zh-hant":             "chinese (traditional)",
	"traditional chinese": "chinese (traditional)",
	"he":                  "hebrew",
	"iw":                  "hebrew",
	"hi":                  "hindi",
	"ja":                  "japanese",
	"ko":                  "korean",
	"th":                  "thai",
}

// normalizeLanguage lower-cases, trims and collapses inner whitespace.
// Underscores in codes ("zh_CN") become hyphens.
func normalizeLanguage(language string) string {
	s := strings.ToLower(strings.Join(strings.Fields(language), " "))
	return strings.ReplaceAll(s, "_", "-")
}

// canonicalLanguage resolves aliases and ISO codes to a canonical name.
func canonicalLanguage(language string) string {
	key := normalizeLanguage(language)
	if c, ok := languageAliases[key]; ok {
		return c
	}
	return key
}

// exclusionSet builds a lookup of canonical language names.
func exclusionSet(languages []string) map[string]bool {
	set := make(map[string]bool, len(languages))
	for _, l := range languages {
		if c := canonicalLanguage(l); c != "" {
			set[c] = true
		}
	}
	return set
}

// IsPDFExcluded reports whether language is on the default PDF exclusion
// list. Matching is case-insensitive and accepts common aliases and ISO
// codes ("ja", "zh-TW", "Simplified Chinese").
func IsPDFExcluded(language string) bool {
	return defaultExclusions[canonicalLanguage(language)]
}

var defaultExclusions = exclusionSet(DefaultPDFExclusions)

// dedupeLanguages trims the requested languages, rejects blank names and
// drops repeats (first occurrence wins, compared case-insensitively).
func dedupeLanguages(languages []string) ([]string, error) {
	seen := make(map[string]bool, len(languages))
	out := make([]string, 0, len(languages))
	for i, l := range languages {
		name := strings.TrimSpace(l)
		if name == "" {
			return nil, fmt.Errorf("%w: languages[%d] is blank", ErrInvalidLanguage, i)
		}
		key := canonicalLanguage(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out, nil
}
