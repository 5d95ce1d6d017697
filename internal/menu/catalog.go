// Package menu holds the coffee shop catalog and prices orders against it.
package menu

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

// Catalog is the ordered, read-only list of drinks on offer. Names are
// unique ignoring case.
type Catalog struct {
	items []domain.MenuItem
	log   *logger.Logger
}

// NewCatalog builds a catalog from the given items, keeping their order.
// It rejects empty names, negative prices, and case-insensitive duplicates.
func NewCatalog(log *logger.Logger, items ...domain.MenuItem) (*Catalog, error) {
	seen := make(map[string]bool, len(items))
	out := make([]domain.MenuItem, 0, len(items))

	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("item %d: %w: empty name", i, domain.ErrInvalidItem)
		}
		if item.BasePrice < 0 {
			return nil, fmt.Errorf("item %q: %w: negative price %d", name, domain.ErrInvalidItem, item.BasePrice)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("item %q: %w", name, domain.ErrDuplicateItem)
		}
		seen[key] = true

		item.Name = name
		// A drink that is always iced trivially supports being iced.
		if item.ForcedIced {
			item.SupportsIced = true
		}
		out = append(out, item)
	}

	log.Debug("catalog built with %d items", len(out))
	return &Catalog{items: out, log: log}, nil
}

// Default returns the house menu of the Robot Coffee Shop.
func Default(log *logger.Logger) *Catalog {
	c, err := NewCatalog(log, houseMenu()...)
	if err != nil {
		// houseMenu is static; this only fires if someone breaks it.
		panic(fmt.Sprintf("menu: invalid house menu: %v", err))
	}
	return c
}

// Items returns a copy of the catalog in menu order.
func (c *Catalog) Items() []domain.MenuItem {
	out := make([]domain.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items on the menu.
func (c *Catalog) Len() int { return len(c.items) }

// Find looks an item up by name, ignoring case and surrounding whitespace.
// The first exact match wins.
func (c *Catalog) Find(name string) (domain.MenuItem, error) {
	want := strings.TrimSpace(name)
	for _, item := range c.items {
		if strings.EqualFold(item.Name, want) {
			return item, nil
		}
	}
	c.log.Debug("menu item not found: %q", name)
	return domain.MenuItem{}, domain.ErrNotFound
}

// Suggest returns up to limit item names that fuzzily match name, best
// match first. It never affects Find, which only accepts exact names.
func (c *Catalog) Suggest(name string, limit int) []string {
	want := strings.TrimSpace(name)
	if want == "" || limit <= 0 {
		return nil
	}
	names := make([]string, len(c.items))
	for i, item := range c.items {
		names[i] = item.Name
	}
	matches := fuzzy.Find(want, names)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}

func houseMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{Name: "Black Coffee", BasePrice: 20},
		{Name: "Espresso", BasePrice: 25},
		{Name: "Latte", BasePrice: 40, SupportsIced: true, SupportsWhippedCream: true},
		{Name: "Cappuccino", BasePrice: 35, SupportsWhippedCream: true},
		{Name: "Mocha", BasePrice: 50, SupportsIced: true, SupportsWhippedCream: true},
		{Name: "Americano", BasePrice: 25, SupportsIced: true},
		{Name: "Macchiato", BasePrice: 35},
		{Name: "Iced Coffee", BasePrice: 35, SupportsIced: true, ForcedIced: true},
		{Name: "Caramel Frappuccino", BasePrice: 65, SupportsIced: true, SupportsWhippedCream: true},
		{Name: "Chai Latte", BasePrice: 45, SupportsIced: true},
		{Name: "Hot Chocolate", BasePrice: 35, SupportsWhippedCream: true},
	}
}
