// Package domain defines the core types and interfaces for the coffee shop.
// All other packages depend on domain; domain depends on nothing.
package domain

import "fmt"

// MenuItem is a single purchasable drink. Values are immutable once the
// catalog is built.
type MenuItem struct {
	Name                 string
	BasePrice            int // whole currency units
	SupportsIced         bool
	SupportsWhippedCream bool
	ForcedIced           bool // always served iced, e.g. "Iced Coffee"
}

// String renders the item the way the menu board shows it.
func (m MenuItem) String() string {
	return fmt.Sprintf("%s: R%d", m.Name, m.BasePrice)
}

// Selection is a validated item + quantity + modifiers combination.
// It is produced by menu validation and only read afterwards.
type Selection struct {
	Item         MenuItem
	Quantity     int
	WhippedCream bool
	Iced         bool
}
