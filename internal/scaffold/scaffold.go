package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/agilira/chiron-sub000/internal/branding"
	"github.com/agilira/chiron-sub000/internal/manifest"
)

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name        string // e.g., "cookie-consent"
	Description string
	Version     string // Semver, e.g., "0.1.0"
	Provides    []string
	Required    []manifest.DependencySpec
	Optional    []manifest.DependencySpec
	Year        int
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewScaffoldData creates a ScaffoldData with defaults populated.
func NewScaffoldData(name string) *ScaffoldData {
	return &ScaffoldData{
		Name:        name,
		Version:     "0.1.0",
		Description: fmt.Sprintf("%s plugin: %s", branding.DisplayName(), name),
		Year:        time.Now().Year(),
	}
}

// ParseDependency parses "name" or "name@constraint" into a DependencySpec.
// A leading "@" belongs to the name (scoped plugins such as "@acme/search").
func ParseDependency(s string) manifest.DependencySpec {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "@"); i > 0 {
		return manifest.DependencySpec{Name: s[:i], Version: s[i+1:]}
	}
	return manifest.DependencySpec{Name: s}
}

// ParseDependencies applies ParseDependency to every non-empty entry.
func ParseDependencies(list []string) []manifest.DependencySpec {
	var out []manifest.DependencySpec
	for _, s := range list {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, ParseDependency(s))
	}
	return out
}

const templateSet = "plugin"

var funcs = template.FuncMap{
	"quote": strconv.Quote,
}

// Generate creates a new plugin directory from the scaffolding templates.
func Generate(data *ScaffoldData, outputDir string) (*Result, error) {
	if strings.TrimSpace(data.Name) == "" {
		return nil, fmt.Errorf("plugin name is required")
	}

	templatesDir := path.Join("scaffolds", templateSet)
	entries, err := fs.ReadDir(scaffoldFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", templateSet, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tmplPath := path.Join(templatesDir, entry.Name())
		tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(outputDir, outName)

		tmpl, err := template.New(entry.Name()).Funcs(funcs).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
	}

	// Validate the generated descriptor against the schema and the semantic checks.
	descriptorFile := filepath.Join(outputDir, branding.DescriptorFile())
	valResult, valErr := manifest.ValidateFile(descriptorFile)
	switch {
	case valErr != nil:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate descriptor: %v", valErr))
	case !valResult.Valid:
		for _, issue := range valResult.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			result.Warnings = append(result.Warnings, msg)
		}
	default:
		if _, err := manifest.Parse(descriptorFile); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		}
	}

	return result, nil
}
