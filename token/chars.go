package token

// Code point classes from the KDL character grammar. All predicates take a
// decoded rune; callers are responsible for UTF-8 decoding.

func isScalar(r rune) bool {
	return (r >= 0 && r <= 0xD7FF) || (r >= 0xE000 && r <= 0x10FFFF)
}

func isDirectionControl(r rune) bool {
	switch {
	case r == 0x200E || r == 0x200F:
		return true
	case r >= 0x202A && r <= 0x202E:
		return true
	case r >= 0x2066 && r <= 0x2069:
		return true
	}
	return false
}

func isDisallowed(r rune) bool {
	return !isScalar(r) || isDirectionControl(r)
}

const bom = '\uFEFF'

func isBOM(r rune) bool {
	return r == bom
}

func isSpace(r rune) bool {
	switch r {
	case 0x09, 0x0B, 0x20, 0xA0, 0x1680, 0x202F, 0x205F, 0x3000:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

func isNewline(r rune) bool {
	switch r {
	case 0x0A, 0x0C, 0x0D, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

func isEquals(r rune) bool {
	switch r {
	case '=', 0xFE66, 0xFF1D, 0x1F7F0:
		return true
	}
	return false
}

func isSign(r rune) bool {
	return r == '+' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentForbidden reports whether r terminates a bare term.
func isIdentForbidden(r rune) bool {
	if r < 0x20 || isDisallowed(r) || isSpace(r) || isNewline(r) || isEquals(r) || isBOM(r) {
		return true
	}
	switch r {
	case '(', ')', '{', '}', '[', ']', '/', '\\', '"', '#', ';':
		return true
	}
	return false
}

// ValidIdentifier reports whether v can appear as a bare identifier: node
// name, property key, or unquoted string value. Reserved words and anything
// that scans as the start of a number must be quoted.
func ValidIdentifier(v string) bool {
	if v == "" {
		return false
	}
	switch v {
	case "true", "false", "null", "inf", "-inf", "nan":
		return false
	}
	rs := []rune(v)
	for _, r := range rs {
		if isIdentForbidden(r) {
			return false
		}
	}
	if isDigit(rs[0]) {
		return false
	}
	if len(rs) > 1 {
		if isSign(rs[0]) && isDigit(rs[1]) {
			return false
		}
		if rs[0] == '.' && isDigit(rs[1]) {
			return false
		}
		if len(rs) > 2 && isSign(rs[0]) && rs[1] == '.' && isDigit(rs[2]) {
			return false
		}
	}
	return true
}

// NeedsQuote reports whether v must be rendered as a quoted string.
func NeedsQuote(v string) bool {
	return !ValidIdentifier(v)
}

// MustEscape reports whether r cannot appear verbatim inside a dquote
// string and needs a `\u{...}` form when no short escape exists.
func MustEscape(r rune) bool {
	return r < 0x20 || isNewline(r) || isBOM(r) || isDisallowed(r)
}
