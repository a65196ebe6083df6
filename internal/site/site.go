package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/agilira/chiron-sub000/internal/branding"
	"go.yaml.in/yaml/v3"
)

const siteFile = "site.yaml"

// ErrNoSite is returned when a directory has no site file.
var ErrNoSite = errors.New("no site file")

// Config represents the .chiron/site.yaml structure.
type Config struct {
	PluginsDir string   `yaml:"plugins_dir,omitempty"`
	Roots      []string `yaml:"roots,omitempty"`
	Plugins    []string `yaml:"plugins"`
}

// Path returns the full path to .chiron/site.yaml for a site.
func Path(siteDir string) string {
	return filepath.Join(siteDir, branding.HomeDir(), siteFile)
}

// Load reads and parses the site file from the given site directory.
func Load(siteDir string) (*Config, error) {
	data, err := os.ReadFile(Path(siteDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", siteDir, ErrNoSite)
		}
		return nil, fmt.Errorf("reading site config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing site config: %w", err)
	}
	return &cfg, nil
}

// Save writes the site config to .chiron/site.yaml.
func Save(siteDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling site config: %w", err)
	}
	if err := os.WriteFile(Path(siteDir), data, 0644); err != nil {
		return fmt.Errorf("writing site config: %w", err)
	}
	return nil
}

// Init creates .chiron/site.yaml enabling plugins. It refuses to overwrite an
// existing site file.
func Init(siteDir, pluginsDir string, plugins []string) (*Config, error) {
	dir := filepath.Dir(Path(siteDir))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	if _, err := os.Stat(Path(siteDir)); err == nil {
		return nil, fmt.Errorf("site already initialized: %s", Path(siteDir))
	}

	cfg := &Config{PluginsDir: pluginsDir, Plugins: []string{}}
	for _, p := range plugins {
		cfg.Enable(p)
	}
	if err := Save(siteDir, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Enable adds name to the enabled plugins. It reports whether the list changed.
func (c *Config) Enable(name string) bool {
	if slices.Contains(c.Plugins, name) {
		return false
	}
	c.Plugins = append(c.Plugins, name)
	return true
}

// Disable removes name from the enabled plugins. It reports whether the list
// changed.
func (c *Config) Disable(name string) bool {
	i := slices.Index(c.Plugins, name)
	if i < 0 {
		return false
	}
	c.Plugins = slices.Delete(c.Plugins, i, i+1)
	return true
}

// ResolvePaths returns the plugins root and extra roots made absolute
// against siteDir. Empty values are returned unchanged.
func (c *Config) ResolvePaths(siteDir string) (string, []string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(siteDir, p)
	}
	roots := make([]string, 0, len(c.Roots))
	for _, r := range c.Roots {
		roots = append(roots, abs(r))
	}
	return abs(c.PluginsDir), roots
}
