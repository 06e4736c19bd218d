package kdl

import (
	"errors"
	"testing"
)

type pathTest struct {
	path string
	doc  string
	want []string
}

var pathTests = []pathTest{
	{
		path: "server",
		doc:  selectDoc,
		want: []string{"server", "server", "server"},
	},
	{
		path: "config.server",
		doc:  selectDoc,
		want: []string{"server", "server"},
	},
	{
		path: "config.server.tls",
		doc:  selectDoc,
		want: []string{"tls"},
	},
	{
		path: "server[port]",
		doc:  selectDoc,
		want: []string{"server", "server", "server"},
	},
	{
		path: "server[port=9090]",
		doc:  selectDoc,
		want: []string{"server"},
	},
	{
		path: "server[port=8080][=primary]",
		doc:  selectDoc,
		want: []string{"server"},
	},
	{
		path: `server[="primary"]`,
		doc:  selectDoc,
		want: []string{"server"},
	},
	{
		path: "limits[cpu=4]",
		doc:  selectDoc,
		want: []string{"limits"},
	},
	{
		path: "missing",
		doc:  selectDoc,
		want: nil,
	},
	{
		path: `"two words"`,
		doc:  "\"two words\" 1",
		want: []string{"two words"},
	},
	{
		path: "flag[on=#true]",
		doc:  "flag on=#true\nflag on=#false",
		want: []string{"flag"},
	},
}

func TestSelectPath(t *testing.T) {
	for _, tst := range pathTests {
		doc := MustDecode([]byte(tst.doc))
		got, err := SelectPath(doc, tst.path)
		if err != nil {
			t.Errorf("%q: %v", tst.path, err)
			continue
		}
		if len(got) != len(tst.want) {
			t.Errorf("%q: got %d nodes, want %d", tst.path, len(got), len(tst.want))
			continue
		}
		for i, n := range got {
			if n.Name != tst.want[i] {
				t.Errorf("%q: node %d is %q, want %q", tst.path, i, n.Name, tst.want[i])
			}
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, bad := range []string{
		"", ".", "a.", "a..b", "a[", "a[k", "a[k=]", `a["unterminated]`, "a]b",
	} {
		if _, err := ParsePath(bad); err == nil {
			t.Errorf("%q: no error", bad)
		} else if !errors.Is(err, ErrBadPath) {
			t.Errorf("%q: %v is not ErrBadPath", bad, err)
		}
	}
}

func TestMustParsePathPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("no panic")
		}
	}()
	MustParsePath("a[")
}
