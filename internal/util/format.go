package util

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// zeroDecimalCurrencies are charged in whole units, so the stored amount has no minor part.
var zeroDecimalCurrencies = map[string]bool{
	"jpy": true,
	"krw": true,
	"vnd": true,
}

// FormatAmount renders an amount stored in minor units with thousands separators.
// Ví dụ: 123456, "usd" -> "1,234.56 USD"; 1000000, "vnd" -> "1,000,000 VND".
func FormatAmount(amount int64, currency string) string {
	code := strings.ToUpper(currency)

	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return strings.TrimSpace(fmt.Sprintf("%s %s", humanize.Comma(amount), code))
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	formatted := fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(amount/100), amount%100)
	return strings.TrimSpace(fmt.Sprintf("%s %s", formatted, code))
}

// TruncateContent shortens s to maxLength runes, appending "..." when it was cut.
func TruncateContent(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength]) + "..."
}
