package lexer

import "unicode"

// ===== Классификаторы =====

func isWhitespace(r rune) bool {
	return r != EOFRune && unicode.IsSpace(r)
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isBlank is whitespace other than a line break.
func isBlank(r rune) bool {
	return isWhitespace(r) && !isLineBreak(r)
}
