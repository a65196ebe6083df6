package manifest

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DescriptorNames is the fallback order for finding a descriptor file inside
// a plugin directory.
var DescriptorNames = []string{"plugin.yaml", "plugin.yml"}

// Descriptor is the parsed metadata for one plugin.
type Descriptor struct {
	Name         string       `yaml:"name" json:"name"`
	Version      string       `yaml:"version,omitempty" json:"version,omitempty"`
	Description  string       `yaml:"description,omitempty" json:"description,omitempty"`
	Provides     []string     `yaml:"provides,omitempty" json:"provides,omitempty"`
	Dependencies Dependencies `yaml:"dependencies,omitempty" json:"dependencies"`

	// SourcePath is the descriptor file the plugin was loaded from.
	SourcePath string `yaml:"-" json:"source_path,omitempty"`
}

// Dependencies groups the required and optional prerequisites of a plugin.
type Dependencies struct {
	Required []DependencySpec `yaml:"required,omitempty" json:"required,omitempty"`
	Optional []DependencySpec `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// DependencySpec names a plugin or capability, optionally with a version
// constraint. In YAML it is either a bare string or a {name, version} mapping.
type DependencySpec struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

// UnmarshalYAML accepts both the simple and the versioned dependency form.
func (d *DependencySpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*d = DependencySpec{Name: strings.TrimSpace(node.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Name    string `yaml:"name"`
			Version string `yaml:"version"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*d = DependencySpec{
			Name:    strings.TrimSpace(raw.Name),
			Version: strings.TrimSpace(raw.Version),
		}
		return nil
	default:
		return fmt.Errorf("line %d: dependency must be a name or a name/version mapping", node.Line)
	}
}

// String renders the spec as "name" or "name@constraint".
func (d DependencySpec) String() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + "@" + d.Version
}

// HasConstraint reports whether the spec carries a version constraint.
func (d DependencySpec) HasConstraint() bool {
	return d.Version != "" && d.Version != "*"
}

// ProvidesCapability reports whether the plugin declares the capability.
func (d *Descriptor) ProvidesCapability(capability string) bool {
	for _, p := range d.Provides {
		if p == capability {
			return true
		}
	}
	return false
}

// RequiredNames returns the names of the required dependencies in declaration order.
func (d *Descriptor) RequiredNames() []string {
	names := make([]string, 0, len(d.Dependencies.Required))
	for _, dep := range d.Dependencies.Required {
		names = append(names, dep.Name)
	}
	return names
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	c.Provides = append([]string(nil), d.Provides...)
	c.Dependencies.Required = append([]DependencySpec(nil), d.Dependencies.Required...)
	c.Dependencies.Optional = append([]DependencySpec(nil), d.Dependencies.Optional...)
	return &c
}
