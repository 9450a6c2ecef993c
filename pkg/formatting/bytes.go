// Package formatting renders and parses byte sizes and decodes JSON out of
// chat model replies.
package formatting

import (
	"fmt"
	"strconv"
	"strings"
)

const unitStep = 1024

var units = [...]string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders n with the largest base-1024 unit that keeps the value
// at or above 1. Plain byte counts are never given decimals. A negative
// precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	if n < unitStep {
		return fmt.Sprintf("%s%d B", sign, n)
	}

	value := float64(n)
	i := 0
	for value >= unitStep && i < len(units)-1 {
		value /= unitStep
		i++
	}

	return sign + strconv.FormatFloat(value, 'f', max(precision, 0), 64) + " " + units[i]
}

// ParseBytes reads sizes such as "50MB", "1.5 kb", "10M", "2GiB", or a bare
// byte count. Units are base-1024 and case-insensitive.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	number, suffix := s, ""
	if split >= 0 {
		number, suffix = s[:split], strings.TrimSpace(s[split:])
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	mult, ok := unitMultiplier(suffix)
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit: %q", suffix)
	}

	return int64(value * float64(mult)), nil
}

func unitMultiplier(suffix string) (int64, bool) {
	u := strings.ToUpper(suffix)
	u = strings.TrimSuffix(u, "IB")
	u = strings.TrimSuffix(u, "B")

	if u == "" {
		return 1, true
	}

	mult := int64(1)
	for _, name := range units[1:] {
		mult *= unitStep
		if name[:1] == u {
			return mult, true
		}
	}
	return 0, false
}
