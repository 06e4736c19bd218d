package parse

import (
	"errors"
	"fmt"

	"github.com/kdl-format/go-kdl/token"
)

var (
	ErrInvalidParseState           = errors.New("invalid parse state")
	ErrInvalidAnnotation           = errors.New("invalid annotation")
	ErrInvalidAnnotationParseState = errors.New("invalid annotation parse state")
	ErrInvalidAttributeToken       = errors.New("invalid attribute token")
	ErrInvalidAttributeValue       = errors.New("invalid attribute value")
	ErrInvalidAttributeValueAnn    = errors.New("invalid attribute value annotation")
	ErrInvalidBareIdentifier       = errors.New("invalid bare identifier")
	ErrInvalidNodeAttributes       = errors.New("invalid node attributes")
	ErrKeyAnnotationsNotAllowed    = errors.New("key annotations not allowed")
	ErrUnexpectedTokenAfterName    = errors.New("unexpected token after node name")
	ErrNotAcceptingAttributes      = errors.New("node not accepting attributes now")
	ErrUnexpectedSlashdashOrigin   = errors.New("unexpected slashdash origin")
	ErrUnexpectedSlashdashStop     = errors.New("unexpected slashdash stop token")
	ErrUnexpectedSlashdashTarget   = errors.New("unexpected slashdash target")
	ErrUnexpectedEndOfDocument     = errors.New("unexpected end of document")
	ErrSlashdashNothing            = errors.New("slashdash nothing")
	ErrRawBlockInDocument          = errors.New("raw block in document")
	ErrUnresolvedAnnotation        = errors.New("unresolved annotation")
	ErrUnresolvedExitState         = errors.New("unresolved exit state")

	ErrInvalidBinIntegerFormat = errors.New("invalid bin integer format")
	ErrInvalidOctIntegerFormat = errors.New("invalid oct integer format")
	ErrInvalidDecIntegerFormat = errors.New("invalid dec integer format")
	ErrInvalidHexIntegerFormat = errors.New("invalid hex integer format")
	ErrInvalidIntegerFormat    = errors.New("invalid integer format")
	ErrInvalidFloatFormat      = errors.New("invalid float format")
	ErrNoTerm                  = errors.New("no term")
)

// ParseErr wraps a sentinel parse error with the offending token and its
// position.
type ParseErr struct {
	Err error
	Pos token.Pos
	Tok *token.Token
}

func NewParseErr(e error, tok *token.Token) *ParseErr {
	res := &ParseErr{Err: e, Tok: tok}
	if tok != nil {
		res.Pos = tok.Pos
	}
	return res
}

func (e *ParseErr) Unwrap() error {
	return e.Err
}

func (e *ParseErr) Error() string {
	if e.Tok == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s at %s", e.Err.Error(), e.Tok.Type, e.Pos)
}
