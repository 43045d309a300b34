package timesheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// parseDecimal parses an exported number such as "1,234.50", "85,00" or "85".
// A comma followed by one or two trailing digits is a decimal comma; other
// separators and currency symbols are dropped.
func parseDecimal(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		}

		return -1
	}, s)

	if i := strings.LastIndexByte(clean, ','); i >= 0 && i > strings.LastIndexByte(clean, '.') {
		if frac := len(clean) - i - 1; frac == 1 || frac == 2 {
			clean = strings.ReplaceAll(clean[:i], ".", "") + "." + clean[i+1:]
		}
	}

	return decimal.NewFromString(strings.ReplaceAll(clean, ",", ""))
}

// parseDuration parses "H:MM:SS" (hours may exceed 24) into whole minutes.
// Seconds are dropped.
func parseDuration(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	if len(parts) == 3 {
		if secs, err := strconv.Atoi(parts[2]); err != nil || secs < 0 || secs > 59 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
	}

	return hours*60 + minutes, nil
}

// hourlyRate derives the rate for a row from either the rate or the billed amount.
func hourlyRate(mode rateMode, value decimal.Decimal, minutes int) float64 {
	if mode == rateFromAmount {
		if minutes == 0 {
			return 0
		}

		value = value.Mul(decimal.NewFromInt(60)).Div(decimal.NewFromInt(int64(minutes)))
	}

	return value.Round(2).InexactFloat64()
}
