// Package kdljson converts KDL documents to and from a stable JSON shape.
//
// The JSON form spells out the document model: nodes carry name,
// annotations, args, props and children; numeric payloads travel as
// strings so arbitrary precision survives the trip.
package kdljson

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/kdl-format/go-kdl/ir"
)

type jsonNode struct {
	Name        string      `json:"name"`
	Annotations []string    `json:"annotations,omitempty"`
	Args        []jsonValue `json:"args,omitempty"`
	Props       []jsonProp  `json:"props,omitempty"`
	Children    []*jsonNode `json:"children"`

	HasChildren bool `json:"has_children,omitempty"`
}

type jsonProp struct {
	Key   string    `json:"key"`
	Value jsonValue `json:"value"`
}

type jsonValue struct {
	Type        string   `json:"type"`
	Value       any      `json:"value,omitempty"`
	Format      string   `json:"format,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
}

// Marshal renders doc as JSON.
func Marshal(doc ir.Document) ([]byte, error) {
	nodes := make([]*jsonNode, len(doc))
	for i, n := range doc {
		nodes[i] = toJSONNode(n)
	}
	return json.MarshalIndent(nodes, "", "  ")
}

// Unmarshal parses the JSON form back into a document.
func Unmarshal(d []byte) (ir.Document, error) {
	var nodes []*jsonNode
	if err := json.Unmarshal(d, &nodes); err != nil {
		return nil, err
	}
	doc := make(ir.Document, len(nodes))
	for i, jn := range nodes {
		n, err := fromJSONNode(jn)
		if err != nil {
			return nil, err
		}
		doc[i] = n
	}
	return doc, nil
}

func toJSONNode(n *ir.Node) *jsonNode {
	res := &jsonNode{
		Name:        n.Name,
		Annotations: n.Annotations,
		HasChildren: n.Children != nil,
	}
	for _, a := range n.Attrs {
		if a.IsProp() {
			res.Props = append(res.Props, jsonProp{Key: a.Key.Str, Value: toJSONValue(a.Value)})
		} else {
			res.Args = append(res.Args, toJSONValue(a.Value))
		}
	}
	for _, c := range n.Children {
		res.Children = append(res.Children, toJSONNode(c))
	}
	return res
}

func toJSONValue(v *ir.Value) jsonValue {
	res := jsonValue{Type: v.Type.String(), Annotations: v.Annotations}
	switch v.Type {
	case ir.IntegerType:
		res.Value = v.Int.String()
		res.Format = v.Format.String()
	case ir.FloatType:
		res.Value = v.Dec.String()
	case ir.BooleanType:
		res.Value = v.Bool
	case ir.StringType, ir.IDType, ir.KeywordType:
		res.Value = v.Str
	case ir.InfinityType:
		res.Value = v.Neg
	}
	return res
}

func fromJSONNode(jn *jsonNode) (*ir.Node, error) {
	n := &ir.Node{Name: jn.Name, Annotations: jn.Annotations}
	for _, a := range jn.Args {
		v, err := fromJSONValue(a)
		if err != nil {
			return nil, err
		}
		n.Attrs = append(n.Attrs, ir.Arg(v))
	}
	for _, p := range jn.Props {
		v, err := fromJSONValue(p.Value)
		if err != nil {
			return nil, err
		}
		n.Attrs = append(n.Attrs, ir.Prop(p.Key, v))
	}
	if jn.HasChildren || len(jn.Children) > 0 {
		n.Children = []*ir.Node{}
	}
	for _, c := range jn.Children {
		cn, err := fromJSONNode(c)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}

func fromJSONValue(jv jsonValue) (*ir.Value, error) {
	var res *ir.Value
	switch jv.Type {
	case "integer":
		s, ok := jv.Value.(string)
		if !ok {
			return nil, fmt.Errorf("integer value must be a string, got %T", jv.Value)
		}
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("bad integer %q", s)
		}
		res = ir.FromInt(i, formatFromString(jv.Format))
	case "float":
		s, ok := jv.Value.(string)
		if !ok {
			return nil, fmt.Errorf("float value must be a string, got %T", jv.Value)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		res = ir.FromDecimal(d)
	case "boolean":
		b, _ := jv.Value.(bool)
		res = ir.FromBool(b)
	case "string":
		s, _ := jv.Value.(string)
		res = ir.FromString(s)
	case "id":
		s, _ := jv.Value.(string)
		res = ir.FromID(s)
	case "keyword":
		s, _ := jv.Value.(string)
		res = ir.FromKeyword(s)
	case "null":
		res = ir.Null()
	case "infinity":
		neg, _ := jv.Value.(bool)
		res = ir.Inf(neg)
	case "nan":
		res = ir.NaN()
	default:
		return nil, fmt.Errorf("unknown value type %q", jv.Type)
	}
	res.Annotations = jv.Annotations
	return res, nil
}

func formatFromString(s string) ir.Format {
	switch s {
	case "bin":
		return ir.Bin
	case "oct":
		return ir.Oct
	case "hex":
		return ir.Hex
	}
	return ir.Dec
}
