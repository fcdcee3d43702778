// Package framework holds the weighted RoleColor keyword vocabulary.
//
// A Framework is immutable once built. The default one is embedded from
// rolecolor.yaml; alternative vocabularies are loaded from YAML documents of
// the same shape, so categories and keywords change without code changes.
package framework

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"sync"

	_ "embed"

	"github.com/spigell/rolecolor/internal/utils"
)

// Canonical category names of the default framework, in precedence order.
const (
	Builder   = "Builder"
	Enabler   = "Enabler"
	Thriver   = "Thriver"
	Supportee = "Supportee"
)

//go:embed rolecolor.yaml
var defaultDocument []byte

var (
	defaultOnce      sync.Once
	defaultFramework *Framework
)

// Category is a single contribution style with its vocabulary.
type Category struct {
	Name        string
	Description string
	Style       string
	Accent      string
	Keywords    map[string]float64
}

// Framework maps ordered categories to their keyword weights.
type Framework struct {
	categories []Category
	index      map[string]int
}

// Default returns the embedded RoleColor framework. It panics if the embedded
// document is invalid, which can only happen through a broken build.
func Default() *Framework {
	defaultOnce.Do(func() {
		fw, err := Parse(defaultDocument)
		if err != nil {
			panic(fmt.Sprintf("embedded keyword framework: %v", err))
		}
		defaultFramework = fw
	})
	return defaultFramework
}

// New validates the given categories and builds a Framework. Keywords are
// normalized the same way resume text is before matching. The input is copied.
func New(categories []Category) (*Framework, error) {
	if len(categories) == 0 {
		return nil, &ConfigurationError{Reason: "no categories defined"}
	}

	fw := &Framework{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}

	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, &ConfigurationError{Reason: "category name must not be empty"}
		}
		if _, ok := fw.index[name]; ok {
			return nil, &ConfigurationError{Category: name, Reason: "duplicate category"}
		}
		if len(c.Keywords) == 0 {
			return nil, &ConfigurationError{Category: name, Reason: "no keywords defined"}
		}

		keywords := make(map[string]float64, len(c.Keywords))
		for raw, weight := range c.Keywords {
			keyword := utils.NormalizeText(raw)
			if keyword == "" {
				return nil, &ConfigurationError{Category: name, Keyword: raw, Reason: "keyword must not be empty"}
			}
			if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
				return nil, &ConfigurationError{Category: name, Keyword: raw, Reason: fmt.Sprintf("weight must be a positive number, got %v", weight)}
			}
			if _, ok := keywords[keyword]; ok {
				return nil, &ConfigurationError{Category: name, Keyword: raw, Reason: "duplicate keyword"}
			}
			keywords[keyword] = weight
		}

		fw.index[name] = len(fw.categories)
		fw.categories = append(fw.categories, Category{
			Name:        name,
			Description: strings.TrimSpace(c.Description),
			Style:       strings.TrimSpace(c.Style),
			Accent:      strings.TrimSpace(c.Accent),
			Keywords:    keywords,
		})
	}

	return fw, nil
}

// Categories returns the category names in precedence order.
func (f *Framework) Categories() []string {
	names := make([]string, 0, len(f.categories))
	for _, c := range f.categories {
		names = append(names, c.Name)
	}
	return names
}

// Len returns the number of categories.
func (f *Framework) Len() int {
	return len(f.categories)
}

// Keywords returns a copy of the keyword weights for the named category.
func (f *Framework) Keywords(category string) (map[string]float64, error) {
	c, err := f.Category(category)
	if err != nil {
		return nil, err
	}
	return c.Keywords, nil
}

// Category returns a copy of the named category.
func (f *Framework) Category(name string) (Category, error) {
	i, ok := f.index[name]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownCategory, name, strings.Join(f.Categories(), ", "))
	}

	c := f.categories[i]
	c.Keywords = maps.Clone(c.Keywords)
	return c, nil
}

// Keyword is a single vocabulary entry.
type Keyword struct {
	Term   string
	Weight float64
}

// SortedKeywords returns the category vocabulary ordered by weight
// descending, then term ascending.
func (f *Framework) SortedKeywords(category string) ([]Keyword, error) {
	i, ok := f.index[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	keywords := make([]Keyword, 0, len(f.categories[i].Keywords))
	for term, weight := range f.categories[i].Keywords {
		keywords = append(keywords, Keyword{Term: term, Weight: weight})
	}

	slices.SortFunc(keywords, func(a, b Keyword) int {
		if a.Weight != b.Weight {
			if a.Weight > b.Weight {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Term, b.Term)
	})

	return keywords, nil
}
