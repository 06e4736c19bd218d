package kdl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kdl-format/go-kdl/ir"
	"github.com/kdl-format/go-kdl/parse"
)

var ErrBadPath = errors.New("bad path")

// ParsePath compiles a path string into a selector path. Segments are
// separated by dots; a segment is a node name, bare or quoted, with
// optional bracketed attribute filters:
//
//	server
//	config.server
//	server[port]
//	server[port=8080]
//	server[=primary]
//	"two words"[key="v"]
//
// `[key]` requires the property to be present, `[key=value]` matches its
// value, and `[=value]` matches a positional argument.
func ParsePath(s string) ([]Selector, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBadPath)
	}
	p := &pathScanner{src: []rune(s)}
	var res []Selector
	for {
		sel, err := p.segment()
		if err != nil {
			return nil, err
		}
		res = append(res, sel)
		if p.eof() {
			return res, nil
		}
		if !p.accept('.') {
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrBadPath, p.cur(), p.i)
		}
	}
}

func MustParsePath(s string) []Selector {
	res, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return res
}

// SelectPath is Select over a compiled path string.
func SelectPath(doc ir.Document, path string) ([]*ir.Node, error) {
	sels, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return Select(doc, sels), nil
}

type pathScanner struct {
	src []rune
	i   int
}

func (p *pathScanner) eof() bool {
	return p.i >= len(p.src)
}

func (p *pathScanner) cur() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.i]
}

func (p *pathScanner) accept(r rune) bool {
	if p.cur() == r {
		p.i++
		return true
	}
	return false
}

func (p *pathScanner) segment() (Selector, error) {
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	var filters []Selector
	for p.accept('[') {
		f, err := p.filter()
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
		if !p.accept(']') {
			return nil, fmt.Errorf("%w: missing ] at %d", ErrBadPath, p.i)
		}
	}
	if len(filters) == 0 {
		return NameSelector(name), nil
	}
	return NodeSelector{Name: name, Attrs: filters}, nil
}

func (p *pathScanner) name() (string, error) {
	if p.cur() == '"' {
		return p.quoted()
	}
	start := p.i
	for !p.eof() {
		switch p.cur() {
		case '.', '[', ']', '=':
			goto done
		}
		p.i++
	}
done:
	if p.i == start {
		return "", fmt.Errorf("%w: empty segment at %d", ErrBadPath, p.i)
	}
	return string(p.src[start:p.i]), nil
}

func (p *pathScanner) quoted() (string, error) {
	p.i++ // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			return "", fmt.Errorf("%w: unterminated quote", ErrBadPath)
		}
		r := p.src[p.i]
		p.i++
		switch r {
		case '"':
			return b.String(), nil
		case '\\':
			if p.eof() {
				return "", fmt.Errorf("%w: dangling escape", ErrBadPath)
			}
			e := p.src[p.i]
			p.i++
			switch e {
			case '"', '\\':
				b.WriteRune(e)
			default:
				return "", fmt.Errorf("%w: bad escape %q", ErrBadPath, e)
			}
		default:
			b.WriteRune(r)
		}
	}
}

// filter parses the inside of a bracket: `key`, `key=value` or `=value`.
func (p *pathScanner) filter() (Selector, error) {
	if p.accept('=') {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		return ValueSelector{Value: v}, nil
	}
	key, err := p.name()
	if err != nil {
		return nil, err
	}
	if !p.accept('=') {
		return AttrSelector{Key: key}, nil
	}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	return AttrSelector{Key: key, Value: v}, nil
}

func (p *pathScanner) value() (*ir.Value, error) {
	if p.cur() == '"' {
		s, err := p.quoted()
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	}
	start := p.i
	for !p.eof() && p.cur() != ']' {
		p.i++
	}
	lexeme := string(p.src[start:p.i])
	v, err := parse.DecodeTerm(lexeme)
	if err != nil {
		return nil, fmt.Errorf("%w: value %q: %v", ErrBadPath, lexeme, err)
	}
	return v, nil
}
