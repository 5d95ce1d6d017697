package display

import "fmt"

// Prompt labels shown next to the input cursor.

func promptName() string { return "Enter your name" }

func promptItem(customer string) string {
	if customer == "" {
		return "Enter your order"
	}
	return fmt.Sprintf("%s, enter your order", customer)
}

func promptQuantity(item string) string {
	return fmt.Sprintf("How many %s(s) would you like?", item)
}
