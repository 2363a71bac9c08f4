package emitter

import (
	"strconv"
	"strings"

	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/zerr"
)

// QuoteC returns s as a C string literal. Quotes, backslashes and question marks
// are escaped; bytes outside printable ASCII become three-digit octal escapes.
func QuoteC(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\' || c == '?':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			b.WriteByte('\\')
			b.WriteByte('0' + c>>6)
			b.WriteByte('0' + (c>>3)&7)
			b.WriteByte('0' + c&7)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// UnquoteC reverses QuoteC.
func UnquoteC(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "malformed string literal"), "literal", lit)
	}
	body := lit[1 : len(lit)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(body) {
			return "", zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "dangling escape"), "literal", lit)
		}
		next := body[i+1]
		if next >= '0' && next <= '7' {
			if i+4 > len(body) {
				return "", zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "short octal escape"), "literal", lit)
			}
			v, err := strconv.ParseUint(body[i+1:i+4], 8, 8)
			if err != nil {
				return "", zerr.With(zerr.Wrap(domain.ErrCorruptArchive, "bad octal escape"), "literal", lit)
			}
			b.WriteByte(byte(v))
			i += 3
			continue
		}
		b.WriteByte(next)
		i++
	}
	return b.String(), nil
}
