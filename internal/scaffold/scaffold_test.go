package scaffold

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/agilira/chiron-sub000/internal/manifest"
)

func TestNewScaffoldData(t *testing.T) {
	d := NewScaffoldData("cookie-consent")
	if d.Name != "cookie-consent" {
		t.Errorf("Name = %q, want %q", d.Name, "cookie-consent")
	}
	if d.Version != "0.1.0" {
		t.Errorf("Version = %q, want %q", d.Version, "0.1.0")
	}
	if !strings.Contains(d.Description, "cookie-consent") {
		t.Errorf("Description = %q", d.Description)
	}
	if d.Year == 0 {
		t.Error("Year should not be zero")
	}
}

func TestParseDependency(t *testing.T) {
	tests := []struct {
		in   string
		want manifest.DependencySpec
	}{
		{"i18n", manifest.DependencySpec{Name: "i18n"}},
		{"components@^1.2", manifest.DependencySpec{Name: "components", Version: "^1.2"}},
		{" seo@>=3 ", manifest.DependencySpec{Name: "seo", Version: ">=3"}},
		{"@acme/search", manifest.DependencySpec{Name: "@acme/search"}},
		{"@acme/search@~2.1", manifest.DependencySpec{Name: "@acme/search", Version: "~2.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseDependency(tt.in); got != tt.want {
				t.Errorf("ParseDependency(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	got := ParseDependencies([]string{"a", "", "  ", "b@1.0.0"})
	want := []manifest.DependencySpec{{Name: "a"}, {Name: "b", Version: "1.0.0"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseDependencies() = %+v, want %+v", got, want)
	}
}

func TestGenerateMinimal(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "search")

	result, err := Generate(NewScaffoldData("search"), outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	assertFiles(t, result, []string{"README.md", "plugin.yaml"})
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v", result.Warnings)
	}

	content := readGenerated(t, outDir, "plugin.yaml")
	assertContains(t, content, `name: "search"`)
	assertContains(t, content, `version: "0.1.0"`)
	assertNotContains(t, content, "dependencies:")
	assertNotContains(t, content, "provides:")
	assertManifestValid(t, outDir, "plugin.yaml")

	readme := readGenerated(t, outDir, "README.md")
	assertContains(t, readme, "# search")
}

func TestGenerateFull(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "cookie-consent")

	data := NewScaffoldData("cookie-consent")
	data.Description = `Consent banner with "strict" mode`
	data.Provides = []string{"consent"}
	data.Required = ParseDependencies([]string{"i18n", "components@^1.2"})
	data.Optional = ParseDependencies([]string{"analytics"})

	result, err := Generate(data, outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v", result.Warnings)
	}
	assertManifestValid(t, outDir, "plugin.yaml")

	d, err := manifest.Parse(filepath.Join(outDir, "plugin.yaml"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if d.Description != data.Description {
		t.Errorf("Description = %q", d.Description)
	}
	if !reflect.DeepEqual(d.Provides, []string{"consent"}) {
		t.Errorf("Provides = %v", d.Provides)
	}
	if !reflect.DeepEqual(d.Dependencies.Required, data.Required) {
		t.Errorf("Required = %+v, want %+v", d.Dependencies.Required, data.Required)
	}
	if !reflect.DeepEqual(d.Dependencies.Optional, data.Optional) {
		t.Errorf("Optional = %+v", d.Dependencies.Optional)
	}

	readme := readGenerated(t, outDir, "README.md")
	assertContains(t, readme, "## Requires")
	assertContains(t, readme, "`components@^1.2`")
	assertContains(t, readme, "## Optional")
}

func TestGenerateInvalidConstraintWarns(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "seo")
	data := NewScaffoldData("seo")
	data.Required = ParseDependencies([]string{"components@not-a-range"})

	result, err := Generate(data, outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for the unparsable constraint")
	}
}

func TestGenerateEmptyName(t *testing.T) {
	if _, err := Generate(NewScaffoldData(" "), t.TempDir()); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestGenerateNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Generate(NewScaffoldData("test"), dir)
	if err == nil {
		t.Fatal("expected error for non-empty directory")
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("error = %v, want 'not empty' message", err)
	}
}

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}

func assertManifestValid(t *testing.T, dir, filename string) {
	t.Helper()
	result, err := manifest.ValidateFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("descriptor validation error: %v", err)
	}
	if !result.Valid {
		var msgs []string
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			msgs = append(msgs, msg)
		}
		t.Errorf("generated descriptor %s is invalid:\n  %s", filename, strings.Join(msgs, "\n  "))
	}
}
