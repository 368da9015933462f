package kvjson

import (
	"strings"
)

// EscapeToken turns a raw quoted token, surrounding quotes included, into a
// JSON string literal.
//
// The steps must run in this order: backslashes first, then the outer quotes
// are stripped, then embedded quotes and forward slashes are escaped.
// Control characters are escaped last so the result always decodes.
func EscapeToken(token string) string {
	s := strings.ReplaceAll(token, `\`, `\\`)
	s = stripQuotes(s)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `/`, `\/`)
	s = escapeControl(s)
	return `"` + s + `"`
}

// Quote escapes s as if it had been read as the token "s".
func Quote(s string) string {
	return EscapeToken(`"` + s + `"`)
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

const hexDigits = "0123456789abcdef"

func escapeControl(s string) string {
	if strings.IndexFunc(s, func(r rune) bool { return r < 0x20 }) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			b.WriteString(`\u00`)
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0xf])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
