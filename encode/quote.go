package encode

import (
	"fmt"
	"strings"

	"github.com/kdl-format/go-kdl/token"
)

// Quote renders v as a dquote string. Characters with a short escape use
// it; anything else that cannot appear verbatim becomes `\u{...}` with
// uppercase hex digits.
func Quote(v string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		default:
			if token.MustEscape(r) {
				fmt.Fprintf(&b, `\u{%X}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ident renders s bare when the identifier rule allows it.
func ident(s string) string {
	if token.NeedsQuote(s) {
		return Quote(s)
	}
	return s
}
