package framework

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type document struct {
	Categories []categoryDocument `mapstructure:"categories"`
}

type categoryDocument struct {
	Name        string             `mapstructure:"name"`
	Description string             `mapstructure:"description"`
	Style       string             `mapstructure:"style"`
	Accent      string             `mapstructure:"accent"`
	Keywords    map[string]float64 `mapstructure:"keywords"`
}

// Load reads a framework document from a YAML file.
func Load(path string) (*Framework, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("framework path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading framework file %q: %w", path, err)
	}

	fw, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("framework file %q: %w", path, err)
	}

	return fw, nil
}

// Parse builds a framework from a YAML document. Unknown fields are rejected
// so that typos in the vocabulary file do not silently drop data.
func Parse(data []byte) (*Framework, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("parse yaml: %v", err)}
	}

	var doc document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("decode document: %v", err)}
	}

	categories := make([]Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		categories = append(categories, Category{
			Name:        c.Name,
			Description: c.Description,
			Style:       c.Style,
			Accent:      c.Accent,
			Keywords:    c.Keywords,
		})
	}

	return New(categories)
}
