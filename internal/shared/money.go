package shared

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Monetary values cross the API and storage boundary as decimal strings
// ("15000", "15000.00") and are held internally as int64 whole-rupiah
// amounts. Arithmetic never runs on the raw strings or on floats.

// ErrInvalidAmount indicates a malformed or out-of-range decimal string.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a decimal string into whole currency units.
// A fractional part is accepted only when it is zero; rupiah carries no
// minor units and silently rounding prices would corrupt totals.
func ParseAmount(s string) (int64, error) {
	whole, frac, err := splitDecimal(s)
	if err != nil {
		return 0, err
	}
	if strings.Trim(frac, "0") != "" {
		return 0, fmt.Errorf("%w: fractional rupiah %q", ErrInvalidAmount, s)
	}
	v, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// ParsePercent converts a percentage decimal string (up to two decimal
// places) into basis points, e.g. "7.5" -> 750.
func ParsePercent(s string) (int64, error) {
	whole, frac, err := splitDecimal(s)
	if err != nil {
		return 0, err
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: percent precision %q", ErrInvalidAmount, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	v, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// FormatAmount renders an internal amount back to the boundary string form.
func FormatAmount(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatPercent renders basis points as a percentage decimal string.
func FormatPercent(bp int64) string {
	if bp%100 == 0 {
		return strconv.FormatInt(bp/100, 10)
	}
	s := fmt.Sprintf("%d.%02d", bp/100, bp%100)
	return strings.TrimRight(s, "0")
}

func splitDecimal(s string) (whole, frac string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") {
		return "", "", fmt.Errorf("%w: negative %q", ErrInvalidAmount, s)
	}
	whole, frac, _ = strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return "", "", fmt.Errorf("%w: %q", ErrInvalidAmount, s)
			}
		}
	}
	return whole, frac, nil
}
