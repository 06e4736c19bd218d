// Package ir provides the document model shared by the KDL parser,
// encoder and selector.
//
// A Document is an ordered sequence of Nodes. A Node has a name, optional
// type annotations, an ordered attribute list (positional arguments and
// key=value properties) and optional children. Atomic payloads are Values:
// identifiers, strings, keywords, booleans, null, nan, signed infinity,
// arbitrary-precision integers (math/big) with a radix hint, and
// arbitrary-precision decimal floats (shopspring/decimal).
//
// Entities are immutable once produced by the parser; build documents
// programmatically with the constructors and With/Add helpers:
//
//	node := ir.NewNode("server").
//	    AddArg(ir.FromString("primary")).
//	    AddProp("port", ir.FromInt64(8080))
//	doc := ir.Document{node}
//
// The model is version-agnostic: nothing in it is specific to one KDL wire
// dialect.
package ir
