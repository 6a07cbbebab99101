package pdfdoc

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var symbolReplacer = strings.NewReplacer(
	// Checkboxes
	"☐", "[ ]", "□", "[ ]", "❑", "[ ]",
	"☑", "[x]", "☒", "[x]", "✓", "[x]", "✔", "[x]", "✅", "[x]",
	// Bullets
	"•", "-", "◦", "-", "▪", "-", "‣", "-", "∙", "-", "·", "-",
	// Dashes and minus
	"‐", "-", "‑", "-", "‒", "-", "–", "-", "—", "-", "―", "-", "−", "-",
	// Quotes
	"‘", "'", "’", "'", "‚", "'", "‛", "'",
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
	"…", "...",
	// Spaces
	"\u00a0", " ", "\u2007", " ", "\u202f", " ", "\t", " ",
	"\u200b", "", "\ufeff", "",
)

// latinFolds maps Latin letters without a canonical decomposition to their
// closest base letter.
var latinFolds = map[rune]string{
	'ł': "l", 'Ł': "L",
	'ı': "i", 'İ': "I",
	'đ': "d", 'Đ': "D",
	'ħ': "h", 'Ħ': "H",
	'ŧ': "t", 'Ŧ': "T",
	'ĸ': "k",
	'ŋ': "n", 'Ŋ': "N",
	'ø': "o", 'Ø': "O",
	'ß': "ss",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "Th",
}

// Sanitize prepares text for drawing with fonts. Typographic symbols are
// replaced by plain equivalents and Latin letters the font set lacks are
// folded to their base letter. Newlines are kept. A letter outside the Latin
// script that cannot be drawn yields ErrUnsupportedScript; other undrawable
// runes are dropped.
func Sanitize(text string, fonts FontSet) (string, error) {
	text = symbolReplacer.Replace(norm.NFC.String(text))

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n':
			sb.WriteRune(r)
		case fonts.CanRender(r):
			sb.WriteRune(r)
		case unicode.IsLetter(r):
			base, ok := foldLatin(r, fonts)
			if !ok && !unicode.Is(unicode.Latin, r) {
				return "", fmt.Errorf("%w: %q (U+%04X) with %s fonts", ErrUnsupportedScript, r, r, fonts.Name())
			}
			sb.WriteString(base)
		}
	}
	return sb.String(), nil
}

// foldLatin returns a drawable replacement for the letter r, trying the
// fold table before stripping combining marks.
func foldLatin(r rune, fonts FontSet) (string, bool) {
	if folded, ok := latinFolds[r]; ok && canRenderAll(folded, fonts) {
		return folded, true
	}
	return stripMarks(r, fonts)
}

func canRenderAll(s string, fonts FontSet) bool {
	for _, r := range s {
		if !fonts.CanRender(r) {
			return false
		}
	}
	return true
}

// stripMarks decomposes r and drops combining marks, e.g. 'ő' to 'o'.
func stripMarks(r rune, fonts FontSet) (string, bool) {
	var sb strings.Builder
	for _, d := range norm.NFD.String(string(r)) {
		if unicode.Is(unicode.Mn, d) {
			continue
		}
		if !fonts.CanRender(d) {
			return "", false
		}
		sb.WriteRune(d)
	}
	return sb.String(), sb.Len() > 0
}
