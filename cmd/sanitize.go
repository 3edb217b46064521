package cmd

import "strings"

// sanitizeText prepares org content (captions, tags, attribute values and
// diagnostic messages) for printing. C0 controls and DEL become '?', so a
// document cannot emit terminal escape sequences through orgp.
func sanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '?'
		}
		return r
	}, s)
}
