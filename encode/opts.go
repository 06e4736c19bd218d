package encode

import "github.com/kdl-format/go-kdl/ir"

type EncodeOption func(*EncState)

// IntegerFormat overrides the radix of every encoded integer. ir.Plain
// (the default) keeps each value's own format.
func IntegerFormat(f ir.Format) EncodeOption {
	return func(es *EncState) { es.intFormat = f }
}

// Depth sets the starting indentation depth.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// Indent sets the per-level indent width. The canonical form uses four
// spaces.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
