// Package parse provides KDL v2 parsing support.
package parse

import (
	"github.com/kdl-format/go-kdl/debug"
	"github.com/kdl-format/go-kdl/ir"
	"github.com/kdl-format/go-kdl/token"
)

// Parse decodes a UTF-8 document. It returns the parsed document and any
// unconsumed tokens; the token slice is empty when the whole input parsed.
func Parse(d []byte, opts ...ParseOption) (ir.Document, []token.Token, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(nil, d)
	if err != nil {
		return nil, nil, err
	}
	p := &parser{toks: toks, opts: pOpts}
	nodes, err := p.parseNodes(0)
	if err != nil {
		return nil, nil, err
	}
	return ir.Document(nodes), p.toks[p.i:], nil
}

type parser struct {
	toks []token.Token
	i    int
	opts *parseOpts
}

func (p *parser) cur() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	return &p.toks[p.i]
}

func (p *parser) advance() {
	p.i++
}

func (p *parser) trackPos(node *ir.Node, pos token.Pos) {
	if p.opts.positions != nil {
		p.opts.positions[node] = pos
	}
}

// docItem is one entry of a node-sequence accumulator: a completed node, a
// slash-dash marker awaiting its target, or a raw block.
type docItem struct {
	node      *ir.Node
	slashdash bool
	rawBlock  bool
	tok       *token.Token
}

type pendingAnn struct {
	ann string
	tok *token.Token
}

// parseNodes parses a node sequence: the whole document at depth 0, a
// brace block otherwise. At depth > 0 the matching close brace is
// consumed.
func (p *parser) parseNodes(depth int) ([]*ir.Node, error) {
	items := []docItem{}
	var anns []pendingAnn
	for {
		t := p.cur()
		if t == nil {
			if depth > 0 {
				return nil, NewParseErr(ErrUnexpectedEndOfDocument, nil)
			}
			return p.finalizeNodes(items, anns)
		}
		switch t.Type {
		case token.TSpace, token.TComment, token.TNewline, token.TSemicolon:
			p.advance()
		case token.TFold:
			p.advance()
			if err := p.consumeFoldNewline(); err != nil {
				return nil, err
			}
		case token.TSlashDash:
			if len(anns) > 0 {
				return nil, NewParseErr(ErrUnexpectedSlashdashOrigin, t)
			}
			p.advance()
			items = append(items, docItem{slashdash: true, tok: t})
		case token.TOpenAnnotation:
			p.advance()
			ann, err := p.parseAnnotation(t)
			if err != nil {
				return nil, err
			}
			anns = append(anns, pendingAnn{ann: ann, tok: t})
		case token.TTerm, token.TDQuoteString, token.TRawString:
			if t.Type == token.TTerm && !token.ValidIdentifier(t.Text) {
				return nil, NewParseErr(token.ErrInvalidIdentifier, t)
			}
			if t.Text == "" {
				return nil, NewParseErr(token.ErrInvalidIdentifier, t)
			}
			p.advance()
			node, err := p.parseNode(t, drainAnns(&anns), depth)
			if err != nil {
				return nil, err
			}
			items = append(items, docItem{node: node, tok: t})
		case token.TOpenBlock:
			p.advance()
			if _, err := p.parseNodes(depth + 1); err != nil {
				return nil, err
			}
			items = append(items, docItem{rawBlock: true, tok: t})
		case token.TCloseBlock:
			if depth == 0 {
				return nil, NewParseErr(ErrInvalidParseState, t)
			}
			p.advance()
			return p.finalizeNodes(items, anns)
		default:
			return nil, NewParseErr(ErrInvalidParseState, t)
		}
	}
}

func drainAnns(anns *[]pendingAnn) []string {
	if len(*anns) == 0 {
		return nil
	}
	res := make([]string, len(*anns))
	for i, a := range *anns {
		res[i] = a.ann
	}
	*anns = nil
	return res
}

// finalizeNodes resolves slash-dash markers: each marker drops the single
// item after it. A raw block surviving resolution cannot appear in a
// document.
func (p *parser) finalizeNodes(items []docItem, anns []pendingAnn) ([]*ir.Node, error) {
	if len(anns) > 0 {
		return nil, NewParseErr(ErrUnresolvedAnnotation, anns[0].tok)
	}
	nodes := []*ir.Node{}
	i := 0
	for i < len(items) {
		it := items[i]
		if it.slashdash {
			if i+1 >= len(items) {
				return nil, NewParseErr(ErrSlashdashNothing, it.tok)
			}
			if items[i+1].slashdash {
				return nil, NewParseErr(ErrUnexpectedSlashdashTarget, items[i+1].tok)
			}
			if debug.Parse() {
				debug.Logf("slashdash drops item at %s\n", items[i+1].tok.Pos)
			}
			i += 2
			continue
		}
		if it.rawBlock {
			return nil, NewParseErr(ErrRawBlockInDocument, it.tok)
		}
		nodes = append(nodes, it.node)
		i++
	}
	return nodes, nil
}

// consumeFoldNewline consumes the newline a line fold splices away. The
// newline may arrive via spaces or comments; a multiline comment carries
// its own newline.
func (p *parser) consumeFoldNewline() error {
	for {
		t := p.cur()
		if t == nil {
			return nil
		}
		switch t.Type {
		case token.TSpace:
			p.advance()
		case token.TComment:
			p.advance()
			if t.Comment == token.MultilineComment {
				return nil
			}
		case token.TNewline:
			p.advance()
			return nil
		default:
			return NewParseErr(ErrInvalidParseState, t)
		}
	}
}

// parseAnnotation parses the inside of `( ... )`: exactly one value whose
// string payload becomes the annotation.
func (p *parser) parseAnnotation(open *token.Token) (string, error) {
	p.skipSpaceComments()
	t := p.cur()
	if t == nil {
		return "", NewParseErr(ErrUnexpectedEndOfDocument, open)
	}
	if !t.ValueBearing() {
		return "", NewParseErr(ErrInvalidAnnotation, t)
	}
	val, err := DecodeValue(t)
	if err != nil {
		return "", NewParseErr(err, t)
	}
	p.advance()
	switch val.Type {
	case ir.IDType, ir.StringType:
	default:
		return "", NewParseErr(ErrInvalidAnnotation, t)
	}
	p.skipSpaceComments()
	t = p.cur()
	if t == nil {
		return "", NewParseErr(ErrUnexpectedEndOfDocument, open)
	}
	if t.Type != token.TCloseAnnotation {
		return "", NewParseErr(ErrInvalidAnnotationParseState, t)
	}
	p.advance()
	return val.Str, nil
}

func (p *parser) skipSpaceComments() {
	for {
		t := p.cur()
		if t == nil {
			return
		}
		switch t.Type {
		case token.TSpace, token.TComment:
			p.advance()
		default:
			return
		}
	}
}

// attrItem is one entry of a node's attribute accumulator.
type attrItem struct {
	arg       *ir.Value
	key, val  *ir.Value
	isPair    bool
	slashdash bool
	tok       *token.Token
}

// parseNode parses everything after a node's name token: attributes, an
// optional children block, and the terminator.
func (p *parser) parseNode(nameTok *token.Token, anns []string, depth int) (*ir.Node, error) {
	node := &ir.Node{Name: nameTok.Text, Annotations: anns}
	p.trackPos(node, nameTok.Pos)
	if debug.Parse() {
		debug.Logf("node %q at %s\n", node.Name, nameTok.Pos)
	}

	items := []attrItem{}
	var children []*ir.Node
	var valAnn *pendingAnn
	spaces := 0
	inChildren := false
	awaitSlash := false

scan:
	for {
		t := p.cur()
		if t == nil {
			if depth > 0 {
				return nil, NewParseErr(ErrUnexpectedEndOfDocument, nil)
			}
			break scan
		}
		switch t.Type {
		case token.TSpace:
			spaces++
			p.advance()
		case token.TComment:
			p.advance()
		case token.TFold:
			p.advance()
			if err := p.consumeFoldNewline(); err != nil {
				return nil, err
			}
			spaces++
		case token.TNewline:
			if awaitSlash {
				spaces++
				p.advance()
				continue
			}
			p.advance()
			break scan
		case token.TSemicolon:
			if awaitSlash {
				return nil, NewParseErr(ErrUnexpectedSlashdashStop, t)
			}
			p.advance()
			break scan
		case token.TCloseBlock:
			if awaitSlash {
				return nil, NewParseErr(ErrUnexpectedSlashdashStop, t)
			}
			break scan
		case token.TSlashDash:
			if valAnn != nil {
				return nil, NewParseErr(ErrUnexpectedSlashdashOrigin, t)
			}
			p.advance()
			items = append(items, attrItem{slashdash: true, tok: t})
			awaitSlash = true
		case token.TOpenAnnotation:
			if spaces == 0 {
				return nil, NewParseErr(ErrUnexpectedTokenAfterName, t)
			}
			if inChildren {
				return nil, NewParseErr(ErrNotAcceptingAttributes, t)
			}
			if valAnn != nil {
				return nil, NewParseErr(ErrInvalidAttributeValueAnn, t)
			}
			p.advance()
			ann, err := p.parseAnnotation(t)
			if err != nil {
				return nil, err
			}
			valAnn = &pendingAnn{ann: ann, tok: t}
		case token.TOpenBlock:
			if spaces == 0 {
				return nil, NewParseErr(ErrUnexpectedTokenAfterName, t)
			}
			if valAnn != nil {
				return nil, NewParseErr(ErrUnresolvedAnnotation, valAnn.tok)
			}
			p.advance()
			kids, err := p.parseNodes(depth + 1)
			if err != nil {
				return nil, err
			}
			if awaitSlash {
				items = items[:len(items)-1]
				awaitSlash = false
			} else {
				if children != nil {
					return nil, NewParseErr(ErrInvalidNodeAttributes, t)
				}
				children = kids
			}
			inChildren = true
			spaces = 0
		case token.TEqual:
			return nil, NewParseErr(ErrInvalidAttributeToken, t)
		case token.TTerm, token.TDQuoteString, token.TRawString:
			if spaces == 0 {
				return nil, NewParseErr(ErrUnexpectedTokenAfterName, t)
			}
			if inChildren {
				return nil, NewParseErr(ErrNotAcceptingAttributes, t)
			}
			item, err := p.parseAttribute(t, &valAnn)
			if err != nil {
				return nil, err
			}
			items = append(items, *item)
			awaitSlash = false
			spaces = 0
		default:
			return nil, NewParseErr(ErrInvalidParseState, t)
		}
	}

	if valAnn != nil {
		return nil, NewParseErr(ErrUnresolvedAnnotation, valAnn.tok)
	}
	attrs, err := p.finalizeAttrs(items)
	if err != nil {
		return nil, err
	}
	node.Attrs = attrs
	node.Children = children
	return node, nil
}

// parseAttribute decodes one value-bearing token and, when an equals sign
// follows, the property it keys.
func (p *parser) parseAttribute(t *token.Token, valAnn **pendingAnn) (*attrItem, error) {
	val, err := DecodeValue(t)
	if err != nil {
		return nil, NewParseErr(err, t)
	}
	p.advance()
	if *valAnn != nil {
		val.WithAnnotation((*valAnn).ann)
		*valAnn = nil
	}

	save := p.i
	p.skipSpaceComments()
	eq := p.cur()
	if eq == nil || eq.Type != token.TEqual {
		p.i = save
		if val.Type == ir.IDType && !token.ValidIdentifier(val.Str) {
			return nil, NewParseErr(ErrInvalidBareIdentifier, t)
		}
		return &attrItem{arg: val, tok: t}, nil
	}

	if val.Type != ir.IDType {
		return nil, NewParseErr(ErrInvalidAttributeToken, t)
	}
	if len(val.Annotations) > 0 {
		return nil, NewParseErr(ErrKeyAnnotationsNotAllowed, t)
	}
	p.advance()
	p.skipSpaceComments()

	var ann *string
	if open := p.cur(); open != nil && open.Type == token.TOpenAnnotation {
		p.advance()
		a, err := p.parseAnnotation(open)
		if err != nil {
			return nil, err
		}
		ann = &a
		p.skipSpaceComments()
	}
	vt := p.cur()
	if vt == nil {
		return nil, NewParseErr(ErrUnexpectedEndOfDocument, eq)
	}
	if !vt.ValueBearing() {
		return nil, NewParseErr(ErrInvalidAttributeValue, vt)
	}
	pv, err := DecodeValue(vt)
	if err != nil {
		return nil, NewParseErr(err, vt)
	}
	p.advance()
	if ann != nil {
		pv.WithAnnotation(*ann)
	}
	return &attrItem{key: val, val: pv, isPair: true, tok: t}, nil
}

// finalizeAttrs resolves slash-dash markers over the attribute accumulator
// and collapses duplicate property keys.
func (p *parser) finalizeAttrs(items []attrItem) ([]ir.Attr, error) {
	attrs := []ir.Attr{}
	i := 0
	for i < len(items) {
		it := items[i]
		if it.slashdash {
			if i+1 >= len(items) {
				return nil, NewParseErr(ErrSlashdashNothing, it.tok)
			}
			if items[i+1].slashdash {
				return nil, NewParseErr(ErrUnexpectedSlashdashTarget, items[i+1].tok)
			}
			i += 2
			continue
		}
		if it.isPair {
			attrs = append(attrs, ir.Attr{Key: it.key, Value: it.val})
		} else {
			attrs = append(attrs, ir.Attr{Value: it.arg})
		}
		i++
	}
	return ir.DedupAttrs(attrs), nil
}
