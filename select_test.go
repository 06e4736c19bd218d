package kdl

import (
	"testing"

	"github.com/kdl-format/go-kdl/ir"
)

const selectDoc = `config {
    server "primary" port=8080 {
        tls enabled=#true
    }
    server "backup" port=9090
    limits cpu=4 "strict"
}
server "rogue" port=8080
`

func TestSelectByName(t *testing.T) {
	doc := MustDecode([]byte(selectDoc))
	got := Select(doc, Path("server"))
	if len(got) != 3 {
		t.Fatalf("got %d nodes, want 3", len(got))
	}
	got = Select(doc, Path("config", "server"))
	if len(got) != 2 {
		t.Fatalf("got %d nodes, want 2", len(got))
	}
	got = Select(doc, Path("server", "tls"))
	if len(got) != 1 || got[0].Name != "tls" {
		t.Fatalf("got %v", got)
	}
}

func TestSelectSubtree(t *testing.T) {
	doc := MustDecode([]byte("node1 {\n  node2 {\n    node3\n  }\n}"))
	got := Select(doc, Path("node2"))
	if len(got) != 1 {
		t.Fatalf("got %d nodes", len(got))
	}
	if got[0].Name != "node2" || len(got[0].Children) != 1 ||
		got[0].Children[0].Name != "node3" {
		t.Fatalf("wrong subtree: %v", got[0])
	}
}

func TestSelectAttr(t *testing.T) {
	doc := MustDecode([]byte(selectDoc))
	got := Select(doc, []Selector{AttrSelector{Key: "port"}})
	if len(got) != 3 {
		t.Fatalf("got %d nodes, want 3", len(got))
	}
	got = Select(doc, []Selector{AttrSelector{Key: "port", Value: ir.FromInt64(9090)}})
	if len(got) != 1 || got[0].Arg(0).Str != "backup" {
		t.Fatalf("got %v", got)
	}
}

func TestSelectValue(t *testing.T) {
	doc := MustDecode([]byte(selectDoc))
	got := Select(doc, []Selector{ValueSelector{Value: ir.FromString("strict")}})
	if len(got) != 1 || got[0].Name != "limits" {
		t.Fatalf("got %v", got)
	}
}

func TestSelectNode(t *testing.T) {
	doc := MustDecode([]byte(selectDoc))
	sel := NodeSelector{
		Name: "server",
		Attrs: []Selector{
			AttrSelector{Key: "port", Value: ir.FromInt64(8080)},
			ValueSelector{Value: ir.FromString("primary")},
		},
	}
	got := Select(doc, []Selector{sel})
	if len(got) != 1 || got[0].Arg(0).Str != "primary" {
		t.Fatalf("got %v", got)
	}
}

// selector values compare by payload: radix and annotations do not matter
func TestSelectPayloadEquality(t *testing.T) {
	doc := MustDecode([]byte("n port=0x1f90"))
	got := Select(doc, []Selector{AttrSelector{Key: "port", Value: ir.FromInt64(8080)}})
	if len(got) != 1 {
		t.Fatalf("got %d nodes", len(got))
	}
}

func TestSelectEmptyPath(t *testing.T) {
	doc := MustDecode([]byte(selectDoc))
	if got := Select(doc, nil); got != nil {
		t.Fatalf("got %v", got)
	}
}

func TestSelectWhere(t *testing.T) {
	doc := MustDecode([]byte(selectDoc))
	sel, err := Where(`name == "server" && props.port == 8080`)
	if err != nil {
		t.Fatal(err)
	}
	got := Select(doc, []Selector{sel})
	if len(got) != 2 {
		t.Fatalf("got %d nodes, want 2", len(got))
	}
	got = Select(doc, []Selector{MustWhere(`"primary" in args`)})
	if len(got) != 1 {
		t.Fatalf("got %d nodes, want 1", len(got))
	}
	got = Select(doc, []Selector{MustWhere(`children > 0`)})
	if len(got) != 2 {
		t.Fatalf("got %d nodes, want 2", len(got))
	}
}

func TestWhereCompileError(t *testing.T) {
	if _, err := Where("1 +"); err == nil {
		t.Fatal("no error")
	}
}
