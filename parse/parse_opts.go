package parse

import (
	"github.com/kdl-format/go-kdl/ir"
	"github.com/kdl-format/go-kdl/token"
)

type parseOpts struct {
	positions map[*ir.Node]token.Pos
}

type ParseOption func(*parseOpts)

// WithPositions records the source position of each parsed node into m.
func WithPositions(m map[*ir.Node]token.Pos) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}
