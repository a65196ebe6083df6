package doctor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agilira/chiron-sub000/internal/registry"
)

func writeDescriptor(t *testing.T, root, dir, content string) {
	t.Helper()
	path := filepath.Join(root, dir, "plugin.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCheckHealthy(t *testing.T) {
	root := t.TempDir()
	writeDescriptor(t, root, "i18n", "name: i18n\n")
	writeDescriptor(t, root, "seo", "name: seo\ndependencies:\n  required: [i18n]\n")

	var buf bytes.Buffer
	res, err := Check(context.Background(), &buf, []registry.Source{{Name: "plugins", BasePath: root}})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !res.Healthy() || res.Warn != 0 {
		t.Errorf("result = %+v\n%s", res, buf.String())
	}
	if !strings.Contains(buf.String(), "all 2 plugins resolve") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestCheckProblems(t *testing.T) {
	root := t.TempDir()
	extra := t.TempDir()
	writeDescriptor(t, root, "a", "name: a\ndependencies:\n  required: [b]\n")
	writeDescriptor(t, root, "b", "name: b\ndependencies:\n  required: [a]\n")
	writeDescriptor(t, root, "x", "name: x\nprovides: [ui-kit]\n")
	writeDescriptor(t, root, "y", "name: y\nprovides: [ui-kit]\n")
	writeDescriptor(t, root, "bad", "name: [bad\n")
	writeDescriptor(t, extra, "x", "name: x\n")

	sources := []registry.Source{
		{Name: "plugins", BasePath: root},
		{Name: "extra", BasePath: extra},
		{Name: "gone", BasePath: filepath.Join(extra, "missing")},
	}
	var buf bytes.Buffer
	res, err := Check(context.Background(), &buf, sources)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	out := buf.String()

	if res.Healthy() {
		t.Errorf("expected failures:\n%s", out)
	}
	if res.Miss != 1 {
		t.Errorf("Miss = %d, want 1", res.Miss)
	}
	for _, want := range []string{
		"circular dependency detected",
		`capability "ui-kit" provided by x, y`,
		"shadowed by",
		"bad",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckMissingPrimary(t *testing.T) {
	var buf bytes.Buffer
	res, err := Check(context.Background(), &buf, []registry.Source{{Name: "plugins", BasePath: filepath.Join(t.TempDir(), "nope")}})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if res.Healthy() {
		t.Errorf("expected failure:\n%s", buf.String())
	}
}

func TestCheckNoSources(t *testing.T) {
	if _, err := Check(context.Background(), &bytes.Buffer{}, nil); err == nil {
		t.Fatal("expected error")
	}
}
