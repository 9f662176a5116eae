package estimate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// nbsp separates thousands groups in currency amounts.
const nbsp = "\u00a0"

// FormatHoursMinutes renders a duration as whole minutes, rounded half up:
// "H ч M мин" from one hour on, "M мин" below.
func FormatHoursMinutes(hours float64) string {
	total := int(math.Floor(hours*60 + 0.5))
	if total >= 60 {
		return fmt.Sprintf("%d ч %d мин", total/60, total%60)
	}
	return fmt.Sprintf("%d мин", total)
}

// FormatCurrency renders an amount in whole rubles with thousands separated
// by no-break spaces, e.g. "19 980 ₽".
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	s := groupThousands(strconv.FormatInt(int64(math.Round(amount)), 10))
	if negative && s != "0" {
		s = "-" + s
	}
	return s + nbsp + "₽"
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(nbsp)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatCoefficient renders a multiplier as "×1.2" with trailing zeros
// trimmed.
func FormatCoefficient(c float64) string {
	return "×" + formatNumber(c)
}

// FormatDistanceCoefficient renders the remoteness multiplier with two
// decimals, e.g. "×1.03".
func FormatDistanceCoefficient(c float64) string {
	return fmt.Sprintf("×%.2f", c)
}

// FormatHours renders hours with two decimals, e.g. "3.32 ч".
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f ч", h)
}

// DistanceLabel names the remoteness band of a site.
func DistanceLabel(km float64) string {
	d := formatNumber(km)
	switch {
	case km <= 0:
		return "Местная (0 км)"
	case km <= 50:
		return fmt.Sprintf("Местная (%s км)", d)
	case km <= 200:
		return fmt.Sprintf("Региональная (%s км)", d)
	case km <= 500:
		return fmt.Sprintf("Удаленная (%s км)", d)
	default:
		return fmt.Sprintf("Очень удаленная (%s км)", d)
	}
}

// formatNumber prints v with at most three decimals and no trailing zeros.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
