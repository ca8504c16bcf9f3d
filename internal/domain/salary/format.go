package salary

import (
	"strings"

	"github.com/shopspring/decimal"
)

const rupeeSymbol = "₹"

// FormatINR renders a whole-rupee amount with lakh/crore grouping, e.g. ₹12,34,567.
func FormatINR(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + rupeeSymbol + groupIndian(rounded.String())
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	groups := make([]string, 0, len(head)/2+2)
	for len(head) > 2 {
		groups = append(groups, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append(groups, head)
	}
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(append(groups, tail), ",")
}

func FormatPercent(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(1) + "%"
}
