package docx

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// escape drops characters XML 1.0 forbids and escapes the rest.
func escape(s string) string {
	clean := strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(clean))
	return buf.String()
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
