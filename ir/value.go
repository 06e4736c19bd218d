package ir

import (
	"math/big"

	"github.com/shopspring/decimal"
)

type ValueType int

const (
	IDType ValueType = iota
	IntegerType
	FloatType
	BooleanType
	StringType
	NullType
	KeywordType
	InfinityType
	NaNType
)

func (t ValueType) String() string {
	return map[ValueType]string{
		IDType:       "id",
		IntegerType:  "integer",
		FloatType:    "float",
		BooleanType:  "boolean",
		StringType:   "string",
		NullType:     "null",
		KeywordType:  "keyword",
		InfinityType: "infinity",
		NaNType:      "nan",
	}[t]
}

func Types() []ValueType {
	return []ValueType{
		IDType, IntegerType, FloatType, BooleanType, StringType,
		NullType, KeywordType, InfinityType, NaNType,
	}
}

// Format is the radix an integer was written in. Non-integers are Plain.
type Format int

const (
	Plain Format = iota
	Bin
	Oct
	Dec
	Hex
)

func (f Format) String() string {
	switch f {
	case Bin:
		return "bin"
	case Oct:
		return "oct"
	case Dec:
		return "dec"
	case Hex:
		return "hex"
	}
	return "plain"
}

// Value is an atomic attribute: a node argument, a property key, or a
// property value. The payload field in use depends on Type: Int for
// integers, Dec for floats, Str for strings, identifiers and keywords,
// Bool for booleans, Neg for the sign of an infinity. Values are immutable
// once produced by the parser.
type Value struct {
	Type        ValueType
	Format      Format
	Annotations []string

	Int  *big.Int
	Dec  decimal.Decimal
	Str  string
	Bool bool
	Neg  bool
}

func FromInt(v *big.Int, f Format) *Value {
	return &Value{Type: IntegerType, Format: f, Int: v}
}

func FromInt64(v int64) *Value {
	return FromInt(big.NewInt(v), Dec)
}

func FromDecimal(d decimal.Decimal) *Value {
	return &Value{Type: FloatType, Dec: d}
}

func FromBool(v bool) *Value {
	return &Value{Type: BooleanType, Bool: v}
}

func FromString(v string) *Value {
	return &Value{Type: StringType, Str: v}
}

func FromID(v string) *Value {
	return &Value{Type: IDType, Str: v}
}

func FromKeyword(v string) *Value {
	return &Value{Type: KeywordType, Str: v}
}

func Null() *Value {
	return &Value{Type: NullType}
}

func Inf(neg bool) *Value {
	return &Value{Type: InfinityType, Neg: neg}
}

func NaN() *Value {
	return &Value{Type: NaNType}
}

func (v *Value) WithAnnotation(ann string) *Value {
	v.Annotations = append(v.Annotations, ann)
	return v
}

// Equal reports semantic equality of two values, including annotations and
// integer format.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.Type != o.Type || v.Format != o.Format {
		return false
	}
	if len(v.Annotations) != len(o.Annotations) {
		return false
	}
	for i := range v.Annotations {
		if v.Annotations[i] != o.Annotations[i] {
			return false
		}
	}
	switch v.Type {
	case IntegerType:
		return v.Int.Cmp(o.Int) == 0
	case FloatType:
		return v.Dec.Equal(o.Dec)
	case StringType, IDType, KeywordType:
		return v.Str == o.Str
	case BooleanType:
		return v.Bool == o.Bool
	case InfinityType:
		return v.Neg == o.Neg
	}
	return true
}

// EqualPayload compares raw payloads, ignoring annotations, integer radix
// and the id/string/keyword distinction. The selector compares payloads.
func (v *Value) EqualPayload(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if sv, ok := stringPayload(v); ok {
		so, ok := stringPayload(o)
		return ok && sv == so
	}
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case IntegerType:
		return v.Int.Cmp(o.Int) == 0
	case FloatType:
		return v.Dec.Equal(o.Dec)
	case BooleanType:
		return v.Bool == o.Bool
	case InfinityType:
		return v.Neg == o.Neg
	}
	return true
}

func stringPayload(v *Value) (string, bool) {
	switch v.Type {
	case StringType, IDType, KeywordType:
		return v.Str, true
	}
	return "", false
}

func (v *Value) Clone() *Value {
	res := *v
	res.Annotations = append([]string(nil), v.Annotations...)
	if v.Int != nil {
		res.Int = new(big.Int).Set(v.Int)
	}
	return &res
}
