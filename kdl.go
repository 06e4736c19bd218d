// Package kdl decodes, encodes and queries KDL v2 documents.
//
// Decoding is strictly linear: bytes are tokenized, parsed into an
// ir.Document, and the document is immutable from then on. Encoding is the
// reverse and produces a canonical, re-parseable form. Calls share no
// state; concurrent decodes and encodes of distinct inputs need no
// coordination.
package kdl

import (
	"bytes"

	"github.com/kdl-format/go-kdl/encode"
	"github.com/kdl-format/go-kdl/ir"
	"github.com/kdl-format/go-kdl/parse"
	"github.com/kdl-format/go-kdl/token"
)

// Decode parses a KDL v2 document. The input may begin with a byte order
// mark. On success the returned token slice is the unconsumed remainder,
// empty for a fully parsed document.
func Decode(d []byte) (ir.Document, []token.Token, error) {
	return parse.Parse(d)
}

// MustDecode is Decode panicking on error.
func MustDecode(d []byte) ir.Document {
	doc, _, err := parse.Parse(d)
	if err != nil {
		panic(err)
	}
	return doc
}

// Encode renders doc in canonical KDL v2.
func Encode(doc ir.Document, opts ...encode.EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustEncode is Encode panicking on error. It accepts the same options as
// Encode.
func MustEncode(doc ir.Document, opts ...encode.EncodeOption) []byte {
	d, err := Encode(doc, opts...)
	if err != nil {
		panic(err)
	}
	return d
}
