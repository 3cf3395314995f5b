package utils

import (
	"fmt"
	"math"
)

// Round2 rounds a monetary amount to two decimal places for display.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatAmount renders an amount with its currency label, e.g. "KES 1250.50".
func FormatAmount(currency string, value float64) string {
	return fmt.Sprintf("%s %.2f", currency, Round2(value))
}
