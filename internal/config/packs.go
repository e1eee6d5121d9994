package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed packs.yaml
var defaultCatalog []byte

// Pack is a purchasable block of call minutes.
type Pack struct {
	Type     string          `yaml:"-" json:"type"`
	Minutes  int             `yaml:"minutes" json:"minutes"`
	Price    decimal.Decimal `yaml:"-" json:"price"`
	RawPrice string          `yaml:"price" json:"-"`
}

// Catalog lists the minute packs and the subscription tier of each plan
// price id.
type Catalog struct {
	Packs map[string]Pack `yaml:"packs"`
	Plans struct {
		DefaultTier string            `yaml:"default_tier"`
		Prices      map[string]string `yaml:"prices"`
	} `yaml:"plans"`
}

// LoadCatalog parses the embedded catalog, or the file at path when path is
// not empty.
func LoadCatalog(path string) (*Catalog, error) {
	raw := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read pack catalog: %w", err)
		}
		raw = b
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates a catalog document.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse pack catalog: %w", err)
	}
	if len(c.Packs) == 0 {
		return nil, fmt.Errorf("pack catalog has no packs")
	}
	for name, p := range c.Packs {
		price, err := decimal.NewFromString(strings.TrimSpace(p.RawPrice))
		if err != nil {
			return nil, fmt.Errorf("pack %s: invalid price %q: %w", name, p.RawPrice, err)
		}
		if p.Minutes <= 0 || !price.IsPositive() {
			return nil, fmt.Errorf("pack %s: minutes and price must be positive", name)
		}
		p.Type = name
		p.Price = price
		c.Packs[name] = p
	}
	if c.Plans.DefaultTier == "" {
		c.Plans.DefaultTier = "basic"
	}
	return &c, nil
}

// Pack looks up a pack by its type (S, M, L, XL).
func (c *Catalog) Pack(packType string) (Pack, bool) {
	p, ok := c.Packs[strings.ToUpper(strings.TrimSpace(packType))]
	return p, ok
}

// List returns the packs ordered by minutes.
func (c *Catalog) List() []Pack {
	out := make([]Pack, 0, len(c.Packs))
	for _, p := range c.Packs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Minutes < out[j].Minutes })
	return out
}

// TierForPrice maps a plan price id to its tier; unknown ids fall back to
// the default tier.
func (c *Catalog) TierForPrice(priceID string) string {
	if t, ok := c.Plans.Prices[priceID]; ok {
		return t
	}
	return c.Plans.DefaultTier
}
