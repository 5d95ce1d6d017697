package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/robobarista/internal/domain"
)

// Flat per-unit surcharges for optional modifiers.
const (
	WhippedCreamSurcharge = 10
	IcedSurcharge         = 7
)

// MaxQuantity is the largest quantity a single order line accepts.
const MaxQuantity = 1000

// QuantityError reports why a quantity was rejected. It matches
// domain.ErrInvalidQuantity with errors.Is.
type QuantityError struct {
	Raw       string
	NotNumber bool // true when Raw is not an integer at all
	TooLarge  bool // true when Raw exceeds MaxQuantity
}

func (e *QuantityError) Error() string {
	if e.NotNumber {
		return fmt.Sprintf("invalid quantity %q: not a whole number", e.Raw)
	}
	if e.TooLarge {
		return fmt.Sprintf("invalid quantity %q: at most %d per order", e.Raw, MaxQuantity)
	}
	return fmt.Sprintf("invalid quantity %q: must be positive", e.Raw)
}

// Is lets errors.Is(err, domain.ErrInvalidQuantity) succeed.
func (e *QuantityError) Is(target error) bool {
	return target == domain.ErrInvalidQuantity
}

// ParseQuantity turns raw customer input into a quantity in
// [1, MaxQuantity].
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.Atoi(s)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, &QuantityError{Raw: s, TooLarge: !strings.HasPrefix(s, "-")}
		}
		return 0, &QuantityError{Raw: s, NotNumber: true}
	}
	if err := checkQuantity(n, s); err != nil {
		return 0, err
	}
	return n, nil
}

func checkQuantity(n int, raw string) error {
	switch {
	case n <= 0:
		return &QuantityError{Raw: raw}
	case n > MaxQuantity:
		return &QuantityError{Raw: raw, TooLarge: true}
	}
	return nil
}

// Validate builds a Selection. Options the item does not support are
// dropped silently; items marked ForcedIced are always iced.
func Validate(item domain.MenuItem, quantity int, wantsWhippedCream, wantsIced bool) (domain.Selection, error) {
	if err := checkQuantity(quantity, strconv.Itoa(quantity)); err != nil {
		return domain.Selection{}, err
	}

	sel := domain.Selection{
		Item:         item,
		Quantity:     quantity,
		WhippedCream: wantsWhippedCream && item.SupportsWhippedCream,
		Iced:         wantsIced && item.SupportsIced,
	}
	if item.ForcedIced {
		sel.Iced = true
	}
	return sel, nil
}

// Quote is the price breakdown of a selection.
type Quote struct {
	Base         int // item base price per unit
	WhippedCream int // surcharge per unit, 0 if not applied
	Iced         int // surcharge per unit, 0 if not applied
	Unit         int
	Quantity     int
	Total        int
}

// QuoteFor prices a selection. Surcharges are flat and added once per unit.
func QuoteFor(sel domain.Selection) Quote {
	q := Quote{Base: sel.Item.BasePrice, Quantity: sel.Quantity}
	if sel.WhippedCream {
		q.WhippedCream = WhippedCreamSurcharge
	}
	if sel.Iced {
		q.Iced = IcedSurcharge
	}
	q.Unit = q.Base + q.WhippedCream + q.Iced
	q.Total = q.Unit * q.Quantity
	return q
}

// Price returns the total for a selection.
func Price(sel domain.Selection) int {
	return QuoteFor(sel).Total
}
