// Package display derives presentation values from stored listings without
// touching the records themselves.
package display

import (
	"math"
	"strconv"
	"strings"
)

const (
	lakh  = 100000
	crore = 10000000
)

// FormatPrice renders a price the way the detail pages show it: plain rupees
// below one lakh, then lakhs, then crores, with at most two decimals.
//
//	FormatPrice(99999)    == "₹99,999"
//	FormatPrice(100000)   == "1 Lakhs"
//	FormatPrice(12500000) == "1.25 Cr"
func FormatPrice(price float64) string {
	switch {
	case price >= crore:
		return formatDecimal(price/crore) + " Cr"
	case price >= lakh:
		return formatDecimal(price/lakh) + " Lakhs"
	}
	return FormatCurrency(price)
}

// FormatCurrency is the card and list formatter: rupees, no decimals.
func FormatCurrency(amount float64) string {
	n := int64(math.Round(amount))
	if n < 0 {
		return "-₹" + groupIndian(strconv.FormatInt(-n, 10))
	}
	return "₹" + groupIndian(strconv.FormatInt(n, 10))
}

// FormatArea renders a built-up area in square feet.
func FormatArea(area float64) string {
	return formatDecimal(area) + " sqft"
}

// formatDecimal rounds to two places, drops trailing zeros and groups the
// integer part.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	out := groupIndian(intPart)
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian inserts separators in the Indian convention: the last three
// digits, then groups of two (12,34,567).
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
