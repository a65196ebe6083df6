package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/agilira/chiron-sub000/internal/semver"
)

// FindDescriptor returns the descriptor file inside dir, trying
// DescriptorNames in order. It returns an error wrapping ErrNoDescriptor when
// none exists.
func FindDescriptor(dir string) (string, error) {
	for _, name := range DescriptorNames {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", p, err)
		}
	}
	return "", fmt.Errorf("%s: %w", dir, ErrNoDescriptor)
}

// Parse reads, validates and decodes the descriptor at path. Any failure is
// returned as a *MalformedError.
func Parse(path string) (*Descriptor, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, malformed(path, "unreadable", err)
	}
	return ParseBytes(data, path)
}

// ParseBytes validates and decodes descriptor data. path is recorded as the
// descriptor's SourcePath and used in error messages.
func ParseBytes(data []byte, path string) (*Descriptor, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, malformed(path, "invalid YAML", err)
	}
	if !result.Valid {
		return nil, &MalformedError{
			Path:   path,
			Reason: "schema validation failed",
			Issues: result.Issues,
		}
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, malformed(path, "decoding descriptor", err)
	}
	d.SourcePath = path

	if err := d.check(); err != nil {
		return nil, malformed(path, err.Error(), err)
	}
	return &d, nil
}

// check enforces the rules the schema cannot express: parseable versions and
// constraints, and non-blank names.
func (d *Descriptor) check() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return fmt.Errorf("missing plugin name")
	}

	d.Version = strings.TrimSpace(d.Version)
	if d.Version != "" {
		if _, err := semver.ParseVersion(d.Version); err != nil {
			return err
		}
	}

	for i, p := range d.Provides {
		d.Provides[i] = strings.TrimSpace(p)
		if d.Provides[i] == "" {
			return fmt.Errorf("provides[%d] is blank", i)
		}
	}

	if err := checkSpecs("required", d.Dependencies.Required); err != nil {
		return err
	}
	return checkSpecs("optional", d.Dependencies.Optional)
}

func checkSpecs(group string, specs []DependencySpec) error {
	for i, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("dependencies.%s[%d] has no name", group, i)
		}
		if spec.Version == "" {
			continue
		}
		if _, err := semver.ParseConstraint(spec.Version); err != nil {
			return fmt.Errorf("dependencies.%s[%d] (%s): %w", group, i, spec.Name, err)
		}
	}
	return nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
