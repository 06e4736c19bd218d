// Package encode encodes ir documents to canonical KDL v2 text.
package encode

import (
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kdl-format/go-kdl/ir"
	"github.com/kdl-format/go-kdl/token"
)

type EncState struct {
	depth     int
	indent    int
	intFormat ir.Format

	Color func(ir.ValueType, ColorAttr, string) string
}

// Encode writes the canonical form of doc to w. Each top-level node is
// followed by a newline; an empty document encodes as a single newline.
func Encode(doc ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 4}
	for _, opt := range opts {
		opt(es)
	}
	if len(doc) == 0 {
		return writeString(w, "\n")
	}
	for _, n := range doc {
		if err := encodeNode(n, w, es); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func (es *EncState) color(t ir.ValueType, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func encodeNode(n *ir.Node, w io.Writer, es *EncState) error {
	pad := strings.Repeat(" ", es.indent*es.depth)
	if err := writeString(w, pad); err != nil {
		return err
	}
	if len(n.Annotations) > 0 {
		if err := writeString(w, es.color(ir.IDType, AnnotationColor, "("+ident(n.Annotations[0])+")")); err != nil {
			return err
		}
	}
	if err := writeString(w, es.color(ir.IDType, NameColor, ident(n.Name))); err != nil {
		return err
	}
	for _, a := range ir.DedupAttrs(n.Attrs) {
		if err := writeString(w, " "); err != nil {
			return err
		}
		if a.IsProp() {
			key, err := encodeValue(a.Key, es, KeyColor)
			if err != nil {
				return err
			}
			if err := writeString(w, key+es.color(a.Value.Type, SepColor, "=")); err != nil {
				return err
			}
		}
		val, err := encodeValue(a.Value, es, ValueColor)
		if err != nil {
			return err
		}
		if err := writeString(w, val); err != nil {
			return err
		}
	}
	if len(n.Children) > 0 {
		if err := writeString(w, " {\n"); err != nil {
			return err
		}
		es.depth++
		for _, c := range n.Children {
			if err := encodeNode(c, w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeString(w, pad+"}"); err != nil {
			return err
		}
	}
	return writeString(w, "\n")
}

// encodeValue renders one value, with its annotation when present.
func encodeValue(v *ir.Value, es *EncState, attr ColorAttr) (string, error) {
	prefix := ""
	if len(v.Annotations) > 0 {
		prefix = es.color(v.Type, AnnotationColor, "("+ident(v.Annotations[0])+")")
	}
	var body string
	switch v.Type {
	case ir.NullType:
		body = "#null"
	case ir.BooleanType:
		if v.Bool {
			body = "#true"
		} else {
			body = "#false"
		}
	case ir.NaNType:
		body = "#nan"
	case ir.InfinityType:
		if v.Neg {
			body = "#-inf"
		} else {
			body = "#inf"
		}
	case ir.KeywordType:
		if token.NeedsQuote(v.Str) {
			return "", ErrInvalidKeyword
		}
		body = "#" + v.Str
	case ir.StringType:
		body = ident(v.Str)
	case ir.IntegerType:
		body = encodeInt(v, es)
	case ir.FloatType:
		body = decimalString(v.Dec)
	case ir.IDType:
		body = v.Str
	}
	return prefix + es.color(v.Type, attr, body), nil
}

func encodeInt(v *ir.Value, es *EncState) string {
	f := v.Format
	if es.intFormat != ir.Plain {
		f = es.intFormat
	}
	mag := new(big.Int).Abs(v.Int)
	sign := ""
	if v.Int.Sign() < 0 {
		sign = "-"
	}
	switch f {
	case ir.Bin:
		return sign + "0b" + mag.Text(2)
	case ir.Oct:
		return sign + "0o" + mag.Text(8)
	case ir.Hex:
		return sign + "0x" + mag.Text(16)
	}
	return sign + mag.Text(10)
}

// decimalString renders a decimal in scientific string form with an
// uppercase exponent marker. Small exponents render plainly; the result
// always re-parses as a float.
func decimalString(d decimal.Decimal) string {
	digits := new(big.Int).Abs(d.Coefficient()).String()
	exp := int(d.Exponent())
	adj := exp + len(digits) - 1
	var body string
	switch {
	case exp <= 0 && adj >= -6:
		point := len(digits) + exp
		switch {
		case exp == 0:
			body = digits
		case point > 0:
			body = digits[:point] + "." + digits[point:]
		default:
			body = "0." + strings.Repeat("0", -point) + digits
		}
	default:
		if len(digits) == 1 {
			body = digits
		} else {
			body = digits[:1] + "." + digits[1:]
		}
		if adj >= 0 {
			body += "E+" + strconv.Itoa(adj)
		} else {
			body += "E" + strconv.Itoa(adj)
		}
	}
	if !strings.ContainsAny(body, ".E") {
		body += ".0"
	}
	if d.Sign() < 0 {
		body = "-" + body
	}
	return body
}
