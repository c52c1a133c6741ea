// Package sizetoken converts human-readable size tokens like "100mb" or
// "1.5gb" to byte counts and back to display strings.
package sizetoken

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Binary (1024-based) unit scales.
const (
	KB = 1 << 10
	MB = 1 << 20
	GB = 1 << 30
)

// tokenPattern matches "<number><unit>" with no space in between: one or
// more digits, an optional fractional part, then a lowercase unit suffix.
// Tokens are lowercased upstream, so the match is case-sensitive here.
var tokenPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(kb|mb|gb)$`)

// ToBytes returns the number of bytes a size token denotes.
// Tokens that do not match the expected grammar (wrong unit, missing unit,
// negative sign, extra characters) resolve to 0 rather than an error; callers
// that need strict validation must check the token before it reaches here.
func ToBytes(token string) float64 {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return 0
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	switch m[2] {
	case "kb":
		return value * KB
	case "mb":
		return value * MB
	case "gb":
		return value * GB
	}
	return 0
}

// FormatForDisplay renders a size token as a human-readable string using
// binary thresholds, largest unit first. Gigabyte values keep one decimal
// place with a trailing ".0" suppressed; smaller units round to whole
// numbers. Unparseable tokens render as "0 KB".
func FormatForDisplay(token string) string {
	b := ToBytes(token)
	switch {
	case b >= GB:
		v := strconv.FormatFloat(b/GB, 'f', 1, 64)
		v = strings.TrimSuffix(v, ".0")
		return v + " GB"
	case b >= MB:
		return fmt.Sprintf("%d MB", int64(math.Round(b/MB)))
	default:
		return fmt.Sprintf("%d KB", int64(math.Round(b/KB)))
	}
}
