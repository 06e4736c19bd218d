package token

import (
	"errors"
	"testing"
)

func kinds(toks []Token) []TokenType {
	res := make([]TokenType, len(toks))
	for i := range toks {
		res[i] = toks[i].Type
	}
	return res
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		in   string
		want []TokenType
	}{
		{"", nil},
		{"node", []TokenType{TTerm}},
		{"node arg", []TokenType{TTerm, TSpace, TTerm}},
		{"a=1", []TokenType{TTerm, TEqual, TTerm}},
		{"a＝1", []TokenType{TTerm, TEqual, TTerm}},
		{"a;b", []TokenType{TTerm, TSemicolon, TTerm}},
		{"(u8)1", []TokenType{TOpenAnnotation, TTerm, TCloseAnnotation, TTerm}},
		{"a {\n}", []TokenType{TTerm, TSpace, TOpenBlock, TNewline, TCloseBlock}},
		{"/- a", []TokenType{TSlashDash, TSpace, TTerm}},
		{"// c", []TokenType{TComment}},
		{"/* c */", []TokenType{TComment}},
		{"a \\\nb", []TokenType{TTerm, TSpace, TFold, TNewline, TTerm}},
		{"\"hi\"", []TokenType{TDQuoteString}},
		{"#\"hi\"#", []TokenType{TRawString}},
		{"#true", []TokenType{TTerm}},
		{"\ufeffnode", []TokenType{TTerm}},
		{"a\r\nb", []TokenType{TTerm, TNewline, TTerm}},
		{"a\u0085b", []TokenType{TTerm, TNewline, TTerm}},
		{"a\u00a0b", []TokenType{TTerm, TSpace, TTerm}},
	}
	for _, tst := range tests {
		toks, err := Tokenize(nil, []byte(tst.in))
		if err != nil {
			t.Errorf("%q: unexpected error %v", tst.in, err)
			continue
		}
		got := kinds(toks)
		if len(got) != len(tst.want) {
			t.Errorf("%q: got %v want %v", tst.in, got, tst.want)
			continue
		}
		for i := range got {
			if got[i] != tst.want[i] {
				t.Errorf("%q: token %d: got %s want %s", tst.in, i, got[i], tst.want[i])
			}
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	toks, err := Tokenize(nil, []byte("node arg\n  child ✓x"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Pos{
		{1, 1}, // node
		{1, 5}, // space
		{1, 6}, // arg
		{1, 9}, // newline
		{2, 1}, // space
		{2, 3}, // child
		{2, 8}, // space
		{2, 9}, // ✓x
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Pos != w {
			t.Errorf("token %d (%s): got %s want %s", i, toks[i].Type, toks[i].Pos, w)
		}
	}
}

func TestTokenizeMonotonePositions(t *testing.T) {
	in := "a b=1 {\n  c \"s\" #true\n  /- d /* x */ 0xff\n}\n"
	toks, err := Tokenize(nil, []byte(in))
	if err != nil {
		t.Fatal(err)
	}
	line, col := 1, 0
	for i := range toks {
		p := toks[i].Pos
		if p.Line < 1 || p.Col < 1 {
			t.Fatalf("token %d: bad position %s", i, p)
		}
		if p.Line < line || (p.Line == line && p.Col <= col) {
			t.Fatalf("token %d: position %s not advancing from line %d col %d", i, p, line, col)
		}
		line, col = p.Line, p.Col
	}
}

func TestTokenizeComments(t *testing.T) {
	tests := []struct {
		in   string
		kind CommentKind
		text string
	}{
		{"// hi", LineComment, " hi"},
		{"/* hi */", SpanComment, " hi "},
		{"/* a /* b */ c */", SpanComment, " a /* b */ c "},
		{"/* a\nb */", MultilineComment, " a\nb "},
	}
	for _, tst := range tests {
		toks, err := Tokenize(nil, []byte(tst.in))
		if err != nil {
			t.Errorf("%q: %v", tst.in, err)
			continue
		}
		if len(toks) != 1 || toks[0].Type != TComment {
			t.Errorf("%q: got %v", tst.in, kinds(toks))
			continue
		}
		if toks[0].Comment != tst.kind {
			t.Errorf("%q: kind %s, want %s", tst.in, toks[0].Comment, tst.kind)
		}
		if toks[0].Text != tst.text {
			t.Errorf("%q: text %q, want %q", tst.in, toks[0].Text, tst.text)
		}
	}
}

func TestTokenizeStrings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"hi"`, "hi"},
		{`""`, ""},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"a\sb"`, "a b"},
		{`"q\""`, `q"`},
		{`"b\\"`, `b\`},
		{`"\u{48}i"`, "Hi"},
		{`"\u{10FFFF}"`, "\U0010FFFF"},
		{"\"a\\   \n   b\"", "ab"},
		{`#"no \n escape"#`, `no \n escape`},
		{`##"quote "# inside"##`, `quote "# inside`},
	}
	for _, tst := range tests {
		toks, err := Tokenize(nil, []byte(tst.in))
		if err != nil {
			t.Errorf("%q: %v", tst.in, err)
			continue
		}
		if len(toks) != 1 {
			t.Errorf("%q: got %d tokens", tst.in, len(toks))
			continue
		}
		if toks[0].Text != tst.want {
			t.Errorf("%q: got %q want %q", tst.in, toks[0].Text, tst.want)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		in string
		e  error
	}{
		{`"unterminated`, ErrUnterminatedDQuoteString},
		{"\"nl\n\"", ErrNewlineInString},
		{`"bad \q"`, ErrInvalidDQuoteEscape},
		{`"\u{}"`, ErrInvalidDQuoteEscape},
		{`"\u{D800}"`, ErrInvalidUnicodeScalar},
		{`"\u{110000}"`, ErrInvalidUnicodeScalar},
		{`#"unterminated`, ErrUnterminatedRawString},
		{"#\"nl\n\"#", ErrNewlineInString},
		{`#"x"##`, ErrInvalidRawStringBody},
		{`""" x`, ErrInvalidMultilineString},
		{"ab#cd", ErrInvalidIdentifier},
		{"/* unterminated", ErrPrematureTermination},
		{"\x01", ErrBadTokenize},
		{"\x7f", ErrBadTokenize},
		{"a\u200eb", ErrBadTokenize},
		{"\xff\xfe", ErrInvalidUnicodeScalar},
		{"/x", ErrUnexpectedCharacter},
		{"a[b]", ErrUnexpectedCharacter},
		{"a ]", ErrUnexpectedCharacter},
		{"##x", ErrUnexpectedCharacter},
		{"# x", ErrUnexpectedCharacter},
	}
	for _, tst := range tests {
		_, err := Tokenize(nil, []byte(tst.in))
		if err == nil {
			t.Errorf("%q: no error, want %v", tst.in, tst.e)
			continue
		}
		if !errors.Is(err, tst.e) {
			t.Errorf("%q: got %v, want %v", tst.in, err, tst.e)
		}
		tkErr := &TokenizeErr{}
		if !errors.As(err, &tkErr) {
			t.Errorf("%q: error carries no position", tst.in)
		}
	}
}
