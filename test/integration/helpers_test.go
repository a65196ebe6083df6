//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, so ~/.chiron never touches the real user config
	SiteDir    string // a mock documentation site
	PluginsDir string // <site>/plugins, the primary plugins root
	VendorDir  string // a secondary plugins root
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	site := t.TempDir()
	env := &testEnv{
		HomeDir:    t.TempDir(),
		SiteDir:    site,
		PluginsDir: filepath.Join(site, "plugins"),
		VendorDir:  filepath.Join(site, "vendor", "plugins"),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("CHIRON_PLUGINS_DIR", env.PluginsDir)

	for _, dir := range []string{env.PluginsDir, env.VendorDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	return env
}

// setupSite writes a synthetic documentation-site plugin tree: a theme
// stack, a consent banner reaching its scanner through a capability, and one
// corrupted descriptor.
func setupSite(t *testing.T, pluginsDir string) {
	t.Helper()

	writeDescriptor(t, pluginsDir, "i18n", `name: i18n
version: "2.3.0"
description: Locale negotiation and message catalogs
`)

	writeDescriptor(t, pluginsDir, "components", `name: components
version: "1.6.0"
description: Shared UI components
provides:
  - ui-kit
dependencies:
  required:
    - i18n
`)

	writeDescriptor(t, pluginsDir, "search", `name: search
version: "0.8.1"
dependencies:
  required:
    - name: ui-kit
      version: "^1.5"
    - i18n
`)

	writeDescriptor(t, pluginsDir, "seo", `name: seo
version: "3.0.0"
dependencies:
  required:
    - name: components
      version: ">=1.2 <2"
  optional:
    - analytics
`)

	writeDescriptor(t, pluginsDir, "cookie-scanner", `name: cookie-scanner
version: "1.0.0"
provides: [cookie-detection]
`)

	writeDescriptor(t, pluginsDir, "cookie-consent", `name: cookie-consent
version: "1.1.0"
dependencies:
  required:
    - i18n
    - cookie-detection
  optional:
    - name: analytics
      version: "^2"
`)

	writeFile(t, filepath.Join(pluginsDir, "corrupted", "plugin.yaml"), "name: corrupted\ndependencies:\n  required: [i18n\n")
	writeFile(t, filepath.Join(pluginsDir, "assets", "logo.svg"), "<svg/>\n")
}

// writeDescriptor creates <root>/<dir>/plugin.yaml.
func writeDescriptor(t *testing.T, root, dir, content string) {
	t.Helper()
	writeFile(t, filepath.Join(root, dir, "plugin.yaml"), content)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertBefore fails unless every pair (dep, dependent) appears in order.
func assertBefore(t *testing.T, order []string, pairs ...[2]string) {
	t.Helper()
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	for _, p := range pairs {
		dep, ok1 := pos[p[0]]
		dependent, ok2 := pos[p[1]]
		if !ok1 || !ok2 {
			t.Errorf("order %v is missing %s or %s", order, p[0], p[1])
			continue
		}
		if dep >= dependent {
			t.Errorf("%s must precede %s in %v", p[0], p[1], order)
		}
	}
}
