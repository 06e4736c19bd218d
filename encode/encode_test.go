package encode

import (
	"bytes"
	"errors"
	"testing"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/shopspring/decimal"

	"github.com/kdl-format/go-kdl/ir"
	"github.com/kdl-format/go-kdl/parse"
)

func checkEncode(t *testing.T, doc ir.Document, want string, opts ...EncodeOption) {
	t.Helper()
	got := MustString(doc, opts...)
	if got == want {
		return
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	t.Errorf("encoded form mismatch:\n%s", dmp.DiffPrettyText(diffs))
}

func reparse(t *testing.T, in string) ir.Document {
	t.Helper()
	doc, _, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatalf("%q: %v", in, err)
	}
	return doc
}

func TestEncodeEmpty(t *testing.T) {
	checkEncode(t, ir.Document{}, "\n")
}

func TestEncodeBareNode(t *testing.T) {
	checkEncode(t, ir.Document{ir.NewNode("node")}, "node\n")
}

func TestEncodeNested(t *testing.T) {
	doc := ir.Document{
		ir.NewNode("node1").AddChild(
			ir.NewNode("node2").AddChild(
				ir.NewNode("node3"))),
	}
	want := "node1 {\n    node2 {\n        node3\n    }\n}\n"
	checkEncode(t, doc, want)
}

func TestEncodeEmptyChildren(t *testing.T) {
	n := ir.NewNode("node")
	n.Children = []*ir.Node{}
	checkEncode(t, ir.Document{n}, "node\n")
}

func TestEncodeValues(t *testing.T) {
	doc := ir.Document{
		ir.NewNode("node").
			AddArg(ir.Null()).
			AddArg(ir.FromBool(true)).
			AddArg(ir.FromBool(false)).
			AddArg(ir.NaN()).
			AddArg(ir.Inf(false)).
			AddArg(ir.Inf(true)).
			AddArg(ir.FromKeyword("vec")).
			AddArg(ir.FromInt64(42)).
			AddArg(ir.FromString("plain")).
			AddArg(ir.FromString("needs quote")),
	}
	want := "node #null #true #false #nan #inf #-inf #vec 42 plain \"needs quote\"\n"
	checkEncode(t, doc, want)
}

func TestEncodeRadixes(t *testing.T) {
	in := "n 0xff 0b10 0o7 42"
	checkEncode(t, reparse(t, in), in+"\n")
}

func TestEncodeIntegerFormatOverride(t *testing.T) {
	doc := reparse(t, "n 0xff 0b10 42")
	checkEncode(t, doc, "n 255 2 42\n", IntegerFormat(ir.Dec))
	checkEncode(t, doc, "n 0xff 0x2 0x2a\n", IntegerFormat(ir.Hex))
}

func TestEncodeNegativeIntegers(t *testing.T) {
	checkEncode(t, reparse(t, "n -0xff -42"), "n -0xff -42\n")
}

func TestEncodeFloats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.5", "1.5"},
		{"-1.5", "-1.5"},
		{"0.001", "0.001"},
		{"1.23e-1000", "1.23E-1000"},
		{"1e10", "1E+10"},
		{"5e0", "5.0"},
	}
	for _, tst := range tests {
		d, err := decimal.NewFromString(tst.in)
		if err != nil {
			t.Fatal(err)
		}
		doc := ir.Document{ir.NewNode("f").AddArg(ir.FromDecimal(d))}
		checkEncode(t, doc, "f "+tst.want+"\n")
	}
}

func TestEncodeProperties(t *testing.T) {
	doc := ir.Document{
		ir.NewNode("node").
			AddArg(ir.FromInt64(1)).
			AddProp("key", ir.FromString("value")),
	}
	checkEncode(t, doc, "node 1 key=value\n")
}

func TestEncodePropertyDedup(t *testing.T) {
	doc := ir.Document{
		ir.NewNode("node").
			AddProp("a", ir.FromInt64(1)).
			AddProp("b", ir.FromInt64(2)).
			AddProp("a", ir.FromInt64(3)),
	}
	checkEncode(t, doc, "node b=2 a=3\n")
}

func TestEncodeAnnotations(t *testing.T) {
	doc := ir.Document{
		ir.NewNode("numbers").
			WithAnnotation("layout").
			AddArg(ir.FromInt64(10).WithAnnotation("u8")).
			AddProp("f", ir.FromDecimal(decimal.RequireFromString("1.5")).WithAnnotation("f32")),
	}
	checkEncode(t, doc, "(layout)numbers (u8)10 f=(f32)1.5\n")
}

func TestEncodeQuotedNames(t *testing.T) {
	doc := ir.Document{ir.NewNode("two words")}
	checkEncode(t, doc, "\"two words\"\n")
	doc = ir.Document{ir.NewNode("true")}
	checkEncode(t, doc, "\"true\"\n")
}

func TestEncodeEscapes(t *testing.T) {
	doc := ir.Document{
		ir.NewNode("s").AddArg(ir.FromString("a\"b\\c\nd\te\x00f\u2028g")),
	}
	want := "s \"a\\\"b\\\\c\\nd\\te\\u{0}f\\u{2028}g\"\n"
	checkEncode(t, doc, want)
}

func TestEncodeInvalidKeyword(t *testing.T) {
	doc := ir.Document{ir.NewNode("n").AddArg(ir.FromKeyword("bad keyword"))}
	err := Encode(doc, bytes.NewBuffer(nil))
	if err == nil || !errors.Is(err, ErrInvalidKeyword) {
		t.Fatalf("got %v, want %v", err, ErrInvalidKeyword)
	}
}
