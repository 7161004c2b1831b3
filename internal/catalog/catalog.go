// Package catalog provides the asset catalog: the fixed lists of base shapes
// and charms the shop offers, plus the shop's contact details.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the catalog file looked up inside the assets directory.
const ManifestName = "manifest.json"

// Entry is one offered base shape or charm design.
type Entry struct {
	Name  string  `json:"name"`
	Path  string  `json:"path"`  // image file, relative to the assets directory
	Price float64 `json:"price"`
}

// ShopInfo carries the business details shown in the UI and used for the
// order handoff.
type ShopInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"` // international format, digits and separators
	Currency string `json:"currency"`
	Tagline  string `json:"tagline,omitempty"`
}

// FormatPrice renders an amount with the shop's currency symbol.
func (s ShopInfo) FormatPrice(v float64) string {
	return fmt.Sprintf("%s%.2f", s.Currency, v)
}

// Catalog is the full asset manifest. The customizer consumes entries as
// opaque paths plus their index; names and prices feed the order summary.
type Catalog struct {
	Shop   ShopInfo `json:"shop"`
	Bases  []Entry  `json:"bases"`
	Charms []Entry  `json:"charms"`
}

// Base returns the base entry at index.
func (c *Catalog) Base(index int) Entry {
	return c.Bases[index]
}

// Charm returns the charm entry at index.
func (c *Catalog) Charm(index int) Entry {
	return c.Charms[index]
}

// Validate checks the catalog for the minimum a usable shop needs.
// An empty phone is allowed; ordering is simply disabled without one.
func (c *Catalog) Validate() error {
	if c.Shop.Name == "" {
		return fmt.Errorf("shop name is required")
	}
	if len(c.Bases) == 0 {
		return fmt.Errorf("at least one base shape is required")
	}
	if len(c.Charms) == 0 {
		return fmt.Errorf("at least one charm is required")
	}
	for i, e := range c.Bases {
		if e.Name == "" || e.Path == "" {
			return fmt.Errorf("base %d needs both a name and a path", i)
		}
		if e.Price < 0 {
			return fmt.Errorf("base %q has a negative price", e.Name)
		}
	}
	for i, e := range c.Charms {
		if e.Name == "" || e.Path == "" {
			return fmt.Errorf("charm %d needs both a name and a path", i)
		}
		if e.Price < 0 {
			return fmt.Errorf("charm %q has a negative price", e.Name)
		}
	}
	return nil
}

// ResolveDir rewrites relative entry paths against the assets directory.
// Absolute paths are left alone.
func (c *Catalog) ResolveDir(dir string) {
	resolve := func(entries []Entry) {
		for i := range entries {
			if !filepath.IsAbs(entries[i].Path) {
				entries[i].Path = filepath.Join(dir, entries[i].Path)
			}
		}
	}
	resolve(c.Bases)
	resolve(c.Charms)
}

// SaveToFile writes the catalog as an indented JSON manifest.
func (c *Catalog) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads and validates a manifest file. Entry paths are returned
// as written; call ResolveDir to anchor them.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &cat, nil
}

// Load reads dir/manifest.json and anchors all entry paths to dir.
func Load(dir string) (*Catalog, error) {
	cat, err := LoadFromFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	cat.ResolveDir(dir)
	return cat, nil
}

// Default returns the built-in catalog used when no manifest is present.
// Paths are relative; anchor them with ResolveDir.
func Default() *Catalog {
	return &Catalog{
		Shop: ShopInfo{
			Name:     "Charm & Key",
			Phone:    "1 555 012 3456",
			Currency: "$",
			Tagline:  "Custom keychains, made to order",
		},
		Bases: []Entry{
			{Name: "Rounded Tag", Path: "bases/tag.png", Price: 7.50},
			{Name: "Heart", Path: "bases/heart.png", Price: 8.50},
			{Name: "Hexagon", Path: "bases/hexagon.png", Price: 8.00},
			{Name: "Scallop", Path: "bases/scallop.png", Price: 9.00},
		},
		Charms: []Entry{
			{Name: "Star", Path: "charms/star.png", Price: 2.50},
			{Name: "Moon", Path: "charms/moon.png", Price: 2.50},
			{Name: "Little Heart", Path: "charms/heart.png", Price: 2.00},
			{Name: "Dewdrop", Path: "charms/drop.png", Price: 2.00},
			{Name: "Ring", Path: "charms/ring.png", Price: 3.00},
			{Name: "Bolt", Path: "charms/bolt.png", Price: 2.75},
		},
	}
}
