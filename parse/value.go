package parse

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kdl-format/go-kdl/ir"
	"github.com/kdl-format/go-kdl/token"
)

// DecodeValue decodes a value-bearing token to a typed value. String
// tokens always decode to strings; terms go through DecodeTerm.
func DecodeValue(t *token.Token) (*ir.Value, error) {
	switch t.Type {
	case token.TDQuoteString, token.TRawString:
		return ir.FromString(t.Text), nil
	case token.TTerm:
		return DecodeTerm(t.Text)
	}
	return nil, NewParseErr(ErrNoTerm, t)
}

// DecodeTerm decodes a bare term lexeme: keywords, integers in four
// radixes, decimal floats, or an identifier stored verbatim.
func DecodeTerm(lexeme string) (*ir.Value, error) {
	if lexeme == "" {
		return nil, ErrNoTerm
	}
	if lexeme[0] == '#' {
		return decodeKeyword(lexeme[1:]), nil
	}
	neg := false
	rest := lexeme
	if rest[0] == '+' || rest[0] == '-' {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	switch {
	case strings.HasPrefix(rest, "0b"):
		return decodeRadix(rest[2:], 2, ir.Bin, neg, ErrInvalidBinIntegerFormat)
	case strings.HasPrefix(rest, "0o"):
		return decodeRadix(rest[2:], 8, ir.Oct, neg, ErrInvalidOctIntegerFormat)
	case strings.HasPrefix(rest, "0x"):
		return decodeRadix(rest[2:], 16, ir.Hex, neg, ErrInvalidHexIntegerFormat)
	case rest != "" && asciiDigit(rest[0]):
		return decodeDecimal(rest, neg)
	case len(rest) > 1 && rest[0] == '.' && asciiDigit(rest[1]):
		return nil, ErrInvalidFloatFormat
	}
	return ir.FromID(lexeme), nil
}

func decodeKeyword(body string) *ir.Value {
	switch body {
	case "true":
		return ir.FromBool(true)
	case "false":
		return ir.FromBool(false)
	case "null":
		return ir.Null()
	case "inf":
		return ir.Inf(false)
	case "-inf":
		return ir.Inf(true)
	case "nan":
		return ir.NaN()
	}
	return ir.FromKeyword(body)
}

func decodeRadix(body string, base int, f ir.Format, neg bool, errKind error) (*ir.Value, error) {
	if body == "" || body[0] == '_' {
		return nil, errKind
	}
	for i := 0; i < len(body); i++ {
		if body[i] != '_' && !radixDigit(body[i], base) {
			return nil, errKind
		}
	}
	stripped := strings.ReplaceAll(body, "_", "")
	if stripped == "" {
		return nil, errKind
	}
	v, ok := new(big.Int).SetString(stripped, base)
	if !ok {
		return nil, errKind
	}
	if neg {
		v.Neg(v)
	}
	return ir.FromInt(v, f), nil
}

// decodeDecimal handles digit-leading lexemes: decimal integers and
// floats. The sign has been stripped.
func decodeDecimal(s string, neg bool) (*ir.Value, error) {
	i := scanDigitRun(s, 0)
	isFloat := false
	if i < len(s) && s[i] == '.' {
		isFloat = true
		i++
		if i >= len(s) || !asciiDigit(s[i]) {
			return nil, ErrInvalidFloatFormat
		}
		i = scanDigitRun(s, i)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		isFloat = true
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= len(s) || !asciiDigit(s[i]) {
			return nil, ErrInvalidFloatFormat
		}
		i = scanDigitRun(s, i)
	}
	if i != len(s) {
		if isFloat {
			return nil, ErrInvalidFloatFormat
		}
		return nil, ErrInvalidDecIntegerFormat
	}
	stripped := strings.ReplaceAll(s, "_", "")
	if !isFloat {
		v, ok := new(big.Int).SetString(stripped, 10)
		if !ok {
			return nil, ErrInvalidDecIntegerFormat
		}
		if neg {
			v.Neg(v)
		}
		return ir.FromInt(v, ir.Dec), nil
	}
	d, err := decimal.NewFromString(stripped)
	if err != nil {
		return nil, ErrInvalidFloatFormat
	}
	if neg {
		d = d.Neg()
	}
	return ir.FromDecimal(d), nil
}

// scanDigitRun consumes [0-9_]* starting at a known digit.
func scanDigitRun(s string, i int) int {
	for i < len(s) && (asciiDigit(s[i]) || s[i] == '_') {
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func radixDigit(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	default:
		return asciiDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}
}
