package resolver

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/agilira/chiron-sub000/internal/manifest"
	"github.com/agilira/chiron-sub000/internal/registry"
)

func countDeduped(n *Node) int {
	count := 0
	if n.Deduped {
		count++
	}
	for _, c := range n.Children {
		count += countDeduped(c)
	}
	return count
}

func TestTree(t *testing.T) {
	scanner := plugin("scanner")
	scanner.Provides = []string{"cookie-detection"}
	consent := plugin("consent", "i18n", "cookie-detection")
	consent.Dependencies.Optional = []manifest.DependencySpec{{Name: "analytics"}}
	r := newResolver(t, consent, scanner, plugin("i18n"))

	root, err := r.Tree("consent")
	if err != nil {
		t.Fatalf("Tree() error: %v", err)
	}
	if root.Name != "consent" || len(root.Children) != 3 {
		t.Fatalf("root = %+v", root)
	}
	if c := root.Children[1]; c.Name != "scanner" || c.Via != "cookie-detection" {
		t.Errorf("capability child = %+v", c)
	}
	if c := root.Children[2]; !c.Optional || !c.Missing || c.Name != "analytics" {
		t.Errorf("optional child = %+v", c)
	}
}

func TestTree_DedupAndCycle(t *testing.T) {
	r := newResolver(t, plugin("A", "B", "C"), plugin("B", "C"), plugin("C", "A"))
	root, err := r.Tree("A")
	if err != nil {
		t.Fatalf("Tree() error: %v", err)
	}
	if countDeduped(root) == 0 {
		t.Error("expected C to be deduped on its second appearance")
	}

	c := root.Children[0].Children[0]
	if c.Name != "C" || len(c.Children) != 1 || !c.Children[0].Cycle {
		t.Errorf("cycle not marked: %+v", c)
	}
}

func TestTree_NotFound(t *testing.T) {
	r := newResolver(t, plugin("A"))
	if _, err := r.Tree("ghost"); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("Tree() error = %v, want ErrNotFound", err)
	}
}

func TestPrintTree(t *testing.T) {
	d := plugin("seo")
	d.Dependencies.Required = []manifest.DependencySpec{{Name: "components", Version: "^1.0"}}
	r := newResolver(t, d, plugin("components", "i18n"), plugin("i18n"))

	root, err := r.Tree("seo")
	if err != nil {
		t.Fatalf("Tree() error: %v", err)
	}
	var buf bytes.Buffer
	PrintTree(&buf, root, "", true)

	want := strings.Join([]string{
		"  seo@1.0.0",
		"   └── components@1.0.0 [^1.0]",
		"       └── i18n@1.0.0",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("PrintTree output:\n%s\nwant:\n%s", buf.String(), want)
	}
}
