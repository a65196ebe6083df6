package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agilira/chiron-sub000/internal/manifest"
)

// execute runs the root command with an isolated config file and the
// testdata plugins root.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	base := []string{
		"--config", filepath.Join(t.TempDir(), "config.yaml"),
		"--plugins-dir", filepath.Join("testdata", "plugins"),
		"--log-level", "error",
		"--site", t.TempDir(),
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(base, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, "resolve", "--json=false", "seo")
	if err != nil {
		t.Fatalf("resolve error: %v\n%s", err, out)
	}
	if got, want := strings.Fields(out), []string{"i18n", "components", "seo"}; strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("resolve output = %v, want %v", got, want)
	}
}

func TestResolveCommandJSON(t *testing.T) {
	out, err := execute(t, "resolve", "--json", "components")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	var got struct {
		Order []string `json:"order"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if strings.Join(got.Order, ",") != "i18n,components" {
		t.Errorf("order = %v", got.Order)
	}
}

func TestResolveCommandNotFound(t *testing.T) {
	_, err := execute(t, "resolve", "--json=false", "ghost")
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error = %v, want not found naming ghost", err)
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--json=false", "seo")
	if err != nil {
		t.Fatalf("validate error: %v\n%s", err, out)
	}
	for _, want := range []string{"valid", "[missing_optional]", "Skipped descriptors", "[malformed_descriptor]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "validate", "--json=false", "seo", "ghost")
	if !errors.Is(err, errReported) {
		t.Errorf("error = %v, want errReported", err)
	}
	if !strings.Contains(out, "[not_found]") {
		t.Errorf("output missing not_found:\n%s", out)
	}
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list", "--json=false", "--skipped=false", "--search", "")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	for _, want := range []string{"NAME", "components", "ui-kit", "i18n", "seo"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "list", "--json=false", "--skipped")
	if err != nil {
		t.Fatalf("list --skipped error: %v", err)
	}
	if !strings.Contains(out, "broken") || !strings.Contains(out, "malformed descriptor") {
		t.Errorf("skipped output:\n%s", out)
	}

	out, err = execute(t, "list", "--json=false", "--skipped=false", "--search", "search engine")
	if err != nil {
		t.Fatalf("list --search error: %v", err)
	}
	if !strings.Contains(out, "seo") || strings.Contains(out, "i18n") {
		t.Errorf("search output:\n%s", out)
	}
}

func TestCreateCommand(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "consent")
	out, err := execute(t, "create", "consent", "--output-dir", outDir, "--requires", "i18n,ui-kit@^1.0")
	if err != nil {
		t.Fatalf("create error: %v\n%s", err, out)
	}
	if strings.Contains(out, "Warning") {
		t.Errorf("unexpected warnings:\n%s", out)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "plugin.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `version: "^1.0"`) {
		t.Errorf("descriptor:\n%s", data)
	}
}

func TestCreateCommandInvalidName(t *testing.T) {
	if _, err := execute(t, "create", "bad name", "--output-dir", t.TempDir()); err == nil {
		t.Fatal("expected error for invalid name")
	}
}

func TestShowCommand(t *testing.T) {
	out, err := execute(t, "show", "--json=false", "components")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	for _, want := range []string{"Name:        components", "ui-kit", "Requires:", "i18n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTreeCommand(t *testing.T) {
	out, err := execute(t, "tree", "--json=false", "seo")
	if err != nil {
		t.Fatalf("tree error: %v", err)
	}
	for _, want := range []string{"seo@2.0.0", "components@1.3.0 (provides ui-kit)", "analytics (optional) (missing)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMatchesSearch(t *testing.T) {
	d := &manifest.Descriptor{
		Name:        "cookie-consent",
		Description: "GDPR banner",
		Provides:    []string{"consent-ui"},
	}
	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"cookie", true},
		{"COOKIE", true},
		{"gdpr", true},
		{"consent-ui", true},
		{"analytics", false},
	}
	for _, tt := range tests {
		if got := matchesSearch(d, tt.query); got != tt.want {
			t.Errorf("matchesSearch(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestSiteFlow(t *testing.T) {
	siteDir := t.TempDir()

	if out, err := execute(t, "--site", siteDir, "init", "seo"); err != nil {
		t.Fatalf("init error: %v\n%s", err, out)
	}
	if out, err := execute(t, "--site", siteDir, "enable", "--force=false", "ui-kit", "seo"); err != nil {
		t.Fatalf("enable error: %v\n%s", err, out)
	}
	if _, err := execute(t, "--site", siteDir, "enable", "--force=false", "ghost"); err == nil {
		t.Error("enable of an unknown plugin should fail without --force")
	}

	out, err := execute(t, "--site", siteDir, "resolve", "--json=false")
	if err != nil {
		t.Fatalf("resolve error: %v\n%s", err, out)
	}
	if got := strings.Join(strings.Fields(out), " "); got != "i18n components seo" {
		t.Errorf("resolve output = %q", got)
	}

	if out, err := execute(t, "--site", siteDir, "disable", "seo", "ui-kit"); err != nil {
		t.Fatalf("disable error: %v\n%s", err, out)
	}
	if _, err := execute(t, "--site", siteDir, "resolve", "--json=false"); err == nil {
		t.Error("resolve with an empty enabled list should fail")
	}
}

func TestResolveWithoutSiteOrArgs(t *testing.T) {
	_, err := execute(t, "resolve", "--json=false")
	if err == nil || !strings.Contains(err.Error(), "no site file") {
		t.Errorf("error = %v", err)
	}
}

func TestDoctorCommand(t *testing.T) {
	out, err := execute(t, "doctor")
	if !errors.Is(err, errReported) {
		t.Fatalf("doctor error = %v, want errReported for the broken descriptor\n%s", err, out)
	}
	for _, want := range []string{"Plugin roots:", "3 plugins loaded", "[FAIL]", "broken"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
