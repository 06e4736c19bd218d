package kdl

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/kdl-format/go-kdl/debug"
	"github.com/kdl-format/go-kdl/ir"
)

// Selector matches a single node. A path is an ordered sequence of
// selectors; see Select.
type Selector interface {
	Match(n *ir.Node) bool
}

// NameSelector matches nodes by name.
type NameSelector string

func (s NameSelector) Match(n *ir.Node) bool {
	return n.Name == string(s)
}

// AttrSelector matches nodes carrying a property with the given key, and
// value when Value is non-nil. Values compare by payload, ignoring
// annotations and integer radix.
type AttrSelector struct {
	Key   string
	Value *ir.Value
}

func (s AttrSelector) Match(n *ir.Node) bool {
	for _, a := range n.Attrs {
		if !a.IsProp() || a.Key.Str != s.Key {
			continue
		}
		if s.Value == nil || a.Value.EqualPayload(s.Value) {
			return true
		}
	}
	return false
}

// ValueSelector matches nodes carrying an equal positional argument.
type ValueSelector struct {
	Value *ir.Value
}

func (s ValueSelector) Match(n *ir.Node) bool {
	for _, a := range n.Attrs {
		if !a.IsProp() && a.Value.EqualPayload(s.Value) {
			return true
		}
	}
	return false
}

// NodeSelector matches nodes whose name equals Name and for which every
// attribute selector matches.
type NodeSelector struct {
	Name  string
	Attrs []Selector
}

func (s NodeSelector) Match(n *ir.Node) bool {
	if n.Name != s.Name {
		return false
	}
	for _, a := range s.Attrs {
		if !a.Match(n) {
			return false
		}
	}
	return true
}

// Path builds a selector path from plain node names.
func Path(names ...string) []Selector {
	res := make([]Selector, len(names))
	for i, name := range names {
		res[i] = NameSelector(name)
	}
	return res
}

// ExprSelector matches nodes by evaluating a compiled boolean expression
// against an environment of the node's name, annotations, args, props and
// child count.
type ExprSelector struct {
	src  string
	prog *vm.Program
}

// Where compiles an expression selector, e.g.
//
//	kdl.Where(`name == "server" && props.port == 8080`)
func Where(src string) (*ExprSelector, error) {
	prog, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, err
	}
	return &ExprSelector{src: src, prog: prog}, nil
}

func MustWhere(src string) *ExprSelector {
	s, err := Where(src)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *ExprSelector) Match(n *ir.Node) bool {
	env := map[string]any{
		"name":        n.Name,
		"annotations": n.Annotations,
		"args":        argsEnv(n),
		"props":       propsEnv(n),
		"children":    len(n.Children),
	}
	out, err := expr.Run(s.prog, env)
	if err != nil {
		if debug.Match() {
			debug.Logf("expr %q on %q: %v\n", s.src, n.Name, err)
		}
		return false
	}
	b, _ := out.(bool)
	return b
}

func argsEnv(n *ir.Node) []any {
	res := []any{}
	for _, a := range n.Attrs {
		if !a.IsProp() {
			res = append(res, valueEnv(a.Value))
		}
	}
	return res
}

func propsEnv(n *ir.Node) map[string]any {
	res := map[string]any{}
	for _, a := range n.Attrs {
		if a.IsProp() {
			res[a.Key.Str] = valueEnv(a.Value)
		}
	}
	return res
}

func valueEnv(v *ir.Value) any {
	switch v.Type {
	case ir.IntegerType:
		if v.Int.IsInt64() {
			return int(v.Int.Int64())
		}
		return v.Int.String()
	case ir.FloatType:
		f, _ := v.Dec.Float64()
		return f
	case ir.BooleanType:
		return v.Bool
	case ir.NullType:
		return nil
	case ir.InfinityType:
		if v.Neg {
			return "#-inf"
		}
		return "#inf"
	case ir.NaNType:
		return "#nan"
	}
	return v.Str
}

// Select returns every node in doc matched by path. The path is tried
// anchored at every node in the tree: a node matching the first selector
// anchors the rest of the path down its child chain, and the node matched
// by the final selector is included.
func Select(doc ir.Document, path []Selector) []*ir.Node {
	if len(path) == 0 {
		return nil
	}
	var res []*ir.Node
	selectNodes([]*ir.Node(doc), path, &res)
	return res
}

func selectNodes(nodes []*ir.Node, path []Selector, res *[]*ir.Node) {
	for _, n := range nodes {
		matchPath(n, path, res)
		selectNodes(n.Children, path, res)
	}
}

func matchPath(n *ir.Node, path []Selector, res *[]*ir.Node) {
	if !path[0].Match(n) {
		return
	}
	if debug.Match() {
		debug.Logf("selector hit %q, %d left\n", n.Name, len(path)-1)
	}
	if len(path) == 1 {
		*res = append(*res, n)
		return
	}
	for _, c := range n.Children {
		matchPath(c, path[1:], res)
	}
}
