// Package kdlyaml converts between YAML and KDL documents.
//
// YAML maps become nodes, scalar entries become single-argument nodes,
// sequences of maps repeat a node, and sequences of scalars become the
// node's arguments. This gives tooling a natural YAML spelling for KDL
// configuration while the KDL parser and encoder stay the single source of
// truth for the wire form.
package kdlyaml

import (
	"fmt"
	"maps"
	"math/big"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"

	"github.com/kdl-format/go-kdl/encode"
	"github.com/kdl-format/go-kdl/ir"
)

// ToKDL converts YAML to canonical KDL text. The top level must be a map.
func ToKDL(d []byte) ([]byte, error) {
	var root map[string]any
	if err := yaml.Unmarshal(d, &root); err != nil {
		return nil, err
	}
	doc, err := docFromMap(root)
	if err != nil {
		return nil, err
	}
	return []byte(encode.MustString(doc)), nil
}

// ToDocument converts YAML to a document without rendering it.
func ToDocument(d []byte) (ir.Document, error) {
	var root map[string]any
	if err := yaml.Unmarshal(d, &root); err != nil {
		return nil, err
	}
	return docFromMap(root)
}

// FromDocument renders a document as YAML.
func FromDocument(doc ir.Document) ([]byte, error) {
	root := map[string]any{}
	for _, n := range doc {
		v, err := nodeToAny(n)
		if err != nil {
			return nil, err
		}
		if prev, ok := root[n.Name]; ok {
			if list, ok := prev.([]any); ok {
				root[n.Name] = append(list, v)
			} else {
				root[n.Name] = []any{prev, v}
			}
			continue
		}
		root[n.Name] = v
	}
	return yaml.Marshal(root)
}

func docFromMap(m map[string]any) (ir.Document, error) {
	doc := ir.Document{}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		nodes, err := nodesFromEntry(key, m[key])
		if err != nil {
			return nil, err
		}
		doc = append(doc, nodes...)
	}
	return doc, nil
}

func nodesFromEntry(name string, v any) ([]*ir.Node, error) {
	switch x := v.(type) {
	case map[string]any:
		kids, err := docFromMap(x)
		if err != nil {
			return nil, err
		}
		n := ir.NewNode(name)
		n.Children = []*ir.Node(kids)
		return []*ir.Node{n}, nil
	case []any:
		if allMaps(x) {
			var res []*ir.Node
			for _, item := range x {
				nodes, err := nodesFromEntry(name, item)
				if err != nil {
					return nil, err
				}
				res = append(res, nodes...)
			}
			return res, nil
		}
		n := ir.NewNode(name)
		for _, item := range x {
			val, err := valueFromAny(item)
			if err != nil {
				return nil, err
			}
			n.AddArg(val)
		}
		return []*ir.Node{n}, nil
	default:
		val, err := valueFromAny(v)
		if err != nil {
			return nil, err
		}
		return []*ir.Node{ir.NewNode(name).AddArg(val)}, nil
	}
}

func allMaps(items []any) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return false
		}
	}
	return true
}

func valueFromAny(v any) (*ir.Value, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt64(int64(x)), nil
	case int64:
		return ir.FromInt64(x), nil
	case uint64:
		return ir.FromInt(new(big.Int).SetUint64(x), ir.Dec), nil
	case float64:
		return ir.FromDecimal(decimal.NewFromFloat(x)), nil
	}
	return nil, fmt.Errorf("cannot represent %T as a value", v)
}

func nodeToAny(n *ir.Node) (any, error) {
	args := n.Args()
	props := map[string]any{}
	for _, a := range ir.DedupAttrs(n.Attrs) {
		if a.IsProp() {
			props[a.Key.Str] = valueToAny(a.Value)
		}
	}
	if len(n.Children) == 0 && len(props) == 0 {
		switch len(args) {
		case 0:
			return nil, nil
		case 1:
			return valueToAny(args[0]), nil
		default:
			res := make([]any, len(args))
			for i, a := range args {
				res[i] = valueToAny(a)
			}
			return res, nil
		}
	}
	res := map[string]any{}
	for k, v := range props {
		res[k] = v
	}
	if len(args) > 0 {
		list := make([]any, len(args))
		for i, a := range args {
			list[i] = valueToAny(a)
		}
		res["-"] = list
	}
	for _, c := range n.Children {
		v, err := nodeToAny(c)
		if err != nil {
			return nil, err
		}
		if prev, ok := res[c.Name]; ok {
			if list, ok := prev.([]any); ok {
				res[c.Name] = append(list, v)
			} else {
				res[c.Name] = []any{prev, v}
			}
			continue
		}
		res[c.Name] = v
	}
	return res, nil
}

func valueToAny(v *ir.Value) any {
	switch v.Type {
	case ir.IntegerType:
		if v.Int.IsInt64() {
			return v.Int.Int64()
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
