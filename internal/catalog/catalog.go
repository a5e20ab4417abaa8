// Package catalog holds the static service menu: name, duration and price.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("service not found")

type ServiceDefinition struct {
	Name        string  `yaml:"name" json:"name"`
	DurationMin int     `yaml:"duration_min" json:"duration_min"`
	Price       float64 `yaml:"price" json:"price"`
	Category    string  `yaml:"category" json:"category,omitempty"`
	Description string  `yaml:"description" json:"description,omitempty"`
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	byName map[string]ServiceDefinition
	sorted []ServiceDefinition
}

type file struct {
	Services []ServiceDefinition `yaml:"services"`
}

func New(defs []ServiceDefinition) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]ServiceDefinition, len(defs))}

	for i, d := range defs {
		d.Name = strings.TrimSpace(d.Name)
		switch {
		case d.Name == "":
			return nil, fmt.Errorf("catalog entry %d: name is required", i)
		case d.DurationMin <= 0:
			return nil, fmt.Errorf("catalog entry %q: duration_min must be positive", d.Name)
		case d.Price < 0:
			return nil, fmt.Errorf("catalog entry %q: price must not be negative", d.Name)
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate name", d.Name)
		}
		c.byName[d.Name] = d
		c.sorted = append(c.sorted, d)
	}

	if len(c.sorted) == 0 {
		return nil, errors.New("catalog is empty")
	}

	sort.Slice(c.sorted, func(i, j int) bool { return c.sorted[i].Name < c.sorted[j].Name })
	return c, nil
}

// Load reads a YAML document with a top-level services list.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Services)
}

func (c *Catalog) Lookup(name string) (ServiceDefinition, error) {
	d, ok := c.byName[strings.TrimSpace(name)]
	if !ok {
		return ServiceDefinition{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d, nil
}

func (c *Catalog) List() []ServiceDefinition {
	out := make([]ServiceDefinition, len(c.sorted))
	copy(out, c.sorted)
	return out
}
