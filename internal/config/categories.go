package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category defines how an expense category is offered and displayed.
type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon,omitempty"`
}

type categoriesFile struct {
	Categories []Category `yaml:"categories"`
}

// DefaultCategories is the catalog used when no categories file is configured.
var DefaultCategories = []Category{
	{ID: "food", Name: "Food", Icon: "🍽"},
	{ID: "transport", Name: "Transport", Icon: "🚌"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍"},
	{ID: "bills", Name: "Bills", Icon: "💡"},
	{ID: "health", Name: "Health", Icon: "💊"},
	{ID: "other", Name: "Other", Icon: "📦"},
}

// LoadCategories reads a YAML catalog of the form
//
//	categories:
//	  - id: food
//	    name: Food
//	    icon: "🍽"
//
// An empty path returns DefaultCategories.
func LoadCategories(path string) ([]Category, error) {
	if path == "" {
		return append([]Category(nil), DefaultCategories...), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}

	var f categoriesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing categories file: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Categories))
	out := make([]Category, 0, len(f.Categories))
	for _, c := range f.Categories {
		c.ID = strings.ToLower(strings.TrimSpace(c.ID))
		if c.ID == "" {
			return nil, fmt.Errorf("parsing categories file: category with empty id")
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("parsing categories file: duplicate category %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Name == "" {
			c.Name = c.ID
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("parsing categories file: no categories defined")
	}
	return out, nil
}
