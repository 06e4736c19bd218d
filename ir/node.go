package ir

// Attr is one node attribute: a positional argument (Key nil) or a
// key=value property. Property keys are IDType values without annotations.
type Attr struct {
	Key   *Value
	Value *Value
}

func Arg(v *Value) Attr {
	return Attr{Value: v}
}

func Prop(key string, v *Value) Attr {
	return Attr{Key: FromID(key), Value: v}
}

func (a Attr) IsProp() bool {
	return a.Key != nil
}

func (a Attr) Equal(o Attr) bool {
	if (a.Key == nil) != (o.Key == nil) {
		return false
	}
	if a.Key != nil && !a.Key.Equal(o.Key) {
		return false
	}
	return a.Value.Equal(o.Value)
}

// Node is one document element. Children is nil when the node had no brace
// block, and non-nil (possibly empty) when it did.
type Node struct {
	Name        string
	Annotations []string
	Attrs       []Attr
	Children    []*Node
}

func NewNode(name string) *Node {
	return &Node{Name: name}
}

func (n *Node) WithAnnotation(ann string) *Node {
	n.Annotations = append(n.Annotations, ann)
	return n
}

func (n *Node) AddArg(v *Value) *Node {
	n.Attrs = append(n.Attrs, Arg(v))
	return n
}

func (n *Node) AddProp(key string, v *Value) *Node {
	n.Attrs = append(n.Attrs, Prop(key, v))
	return n
}

func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	return n
}

// Args returns the positional arguments in order.
func (n *Node) Args() []*Value {
	var res []*Value
	for _, a := range n.Attrs {
		if !a.IsProp() {
			res = append(res, a.Value)
		}
	}
	return res
}

// Arg returns the i-th positional argument, or nil.
func (n *Node) Arg(i int) *Value {
	for _, a := range n.Attrs {
		if a.IsProp() {
			continue
		}
		if i == 0 {
			return a.Value
		}
		i--
	}
	return nil
}

// Prop returns the value of the property named key, or nil.
func (n *Node) Prop(key string) *Value {
	for _, a := range n.Attrs {
		if a.IsProp() && a.Key.Str == key {
			return a.Value
		}
	}
	return nil
}

func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Name != o.Name {
		return false
	}
	if len(n.Annotations) != len(o.Annotations) ||
		len(n.Attrs) != len(o.Attrs) ||
		len(n.Children) != len(o.Children) ||
		(n.Children == nil) != (o.Children == nil) {
		return false
	}
	for i := range n.Annotations {
		if n.Annotations[i] != o.Annotations[i] {
			return false
		}
	}
	for i := range n.Attrs {
		if !n.Attrs[i].Equal(o.Attrs[i]) {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) Clone() *Node {
	res := &Node{
		Name:        n.Name,
		Annotations: append([]string(nil), n.Annotations...),
	}
	if n.Attrs != nil {
		res.Attrs = make([]Attr, len(n.Attrs))
		for i, a := range n.Attrs {
			if a.Key != nil {
				res.Attrs[i].Key = a.Key.Clone()
			}
			res.Attrs[i].Value = a.Value.Clone()
		}
	}
	if n.Children != nil {
		res.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			res.Children[i] = c.Clone()
		}
	}
	return res
}

// Visit walks the node and its children pre- and post-order. Returning
// dive=false from the pre visit skips the children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	_, err = f(n, true)
	return err
}

// DedupAttrs collapses duplicate property keys to the latest occurrence.
// Survivors sit at the position of their latest appearance; positional
// arguments keep their original interleaving.
func DedupAttrs(attrs []Attr) []Attr {
	seen := map[string]bool{}
	res := make([]Attr, 0, len(attrs))
	for i := len(attrs) - 1; i >= 0; i-- {
		a := attrs[i]
		if a.IsProp() {
			if seen[a.Key.Str] {
				continue
			}
			seen[a.Key.Str] = true
		}
		res = append(res, a)
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// Document is an ordered sequence of top-level nodes.
type Document []*Node

func (d Document) Equal(o Document) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if !d[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
