// lines.go centralises every spoken string.
// Edit this file to change the barista's personality. Functions ending in
// Spoken return the variant that is read aloud when it differs from the
// printed one (no currency symbols, no "(s)").

package speech

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hammamikhairi/robobarista/internal/domain"
)

// ── Greeting / name ──────────────────────────────────────────────

func LineWelcome(customer, shop string) string {
	return fmt.Sprintf("Hello %s! Welcome to the %s!", customer, shop)
}

func LineInvalidName() string {
	return "Invalid input. Please enter your name."
}

// ── Menu ─────────────────────────────────────────────────────────

func LineMenuHeader() string {
	return "Here is our menu:"
}

// LineMenuItem is one printed menu row, e.g. "Latte: R40".
func LineMenuItem(item domain.MenuItem, currency string) string {
	return fmt.Sprintf("%s: %s%d", item.Name, currency, item.BasePrice)
}

// LineMenuSpoken reads the whole menu as one utterance.
func LineMenuSpoken(items []domain.MenuItem) string {
	var b strings.Builder
	b.WriteString(LineMenuHeader())
	for i, item := range items {
		if i > 0 && i == len(items)-1 {
			b.WriteString(", and")
		} else if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, " %s, %d", item.Name, item.BasePrice)
	}
	b.WriteString(".")
	return b.String()
}

// ── Ordering ─────────────────────────────────────────────────────

func LineWhatWouldYouLike(customer string) string {
	return fmt.Sprintf("%s, what would you like to order?", customer)
}

func LineNotOnMenu(customer string) string {
	return fmt.Sprintf("Sorry, %s, we don't have that here.", customer)
}

// LineDidYouMean offers close menu names after a miss.
func LineDidYouMean(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Did you mean %s?", names[0])
	default:
		return fmt.Sprintf("Did you mean %s or %s?", strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
	}
}

func LineQuantityNotNumber() string {
	return "Invalid input. Quantity must be a number."
}

func LineQuantityNotPositive() string {
	return "Invalid quantity. Please enter a positive number."
}

func LineQuantityTooLarge(max int) string {
	return fmt.Sprintf("Sorry, we can only make up to %d of those in one order.", max)
}

func LineWantWhippedCream() string {
	return "Do you want whipped cream? (yes/no)"
}

func LineWantIced() string {
	return "Do you want it iced? (yes/no)"
}

func LineInvalidAnswer() string {
	return "Invalid input."
}

// ── Confirmation ─────────────────────────────────────────────────

func LineOrderConfirmed(customer string, qty int, item string) string {
	return fmt.Sprintf("Great %s, your order of %d %s(s) will be ready in a moment.", customer, qty, item)
}

func LineOrderConfirmedSpoken(customer string, qty int, item string) string {
	return fmt.Sprintf("Great %s, your order of %d %ss will be ready in a moment.", customer, qty, item)
}

func LineWithWhippedCream() string {
	return "with whipped cream"
}

func LineIced() string {
	return "Iced"
}

// LineAlwaysIced is said for drinks that only come iced.
func LineAlwaysIced(item string) string {
	name := strings.ToLower(item)
	article := "a"
	if name != "" && strings.ContainsRune("aeiou", rune(name[0])) {
		article = "an"
	}
	return fmt.Sprintf("It's %s %s", article, name)
}

func LineTotal(currency string, total int) string {
	return fmt.Sprintf("Your total will be: %s%d", currency, total)
}

func LineTotalSpoken(total int) string {
	return fmt.Sprintf("Your total will be %d", total)
}

func LineBye(customer string) string {
	return fmt.Sprintf("Enjoy your coffee, %s. Bye!", customer)
}

// ── Cleanup ──────────────────────────────────────────────────────

var bracketPrefix = regexp.MustCompile(`^\[[A-Za-z]+\]\s*`)
var ansiCodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// CleanForSpeech strips formatting artifacts that shouldn't be spoken:
// ANSI colour codes, log-style "[TAG]" prefixes, and line breaks.
func CleanForSpeech(msg string) string {
	cleaned := ansiCodes.ReplaceAllString(msg, "")
	cleaned = bracketPrefix.ReplaceAllString(cleaned, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
