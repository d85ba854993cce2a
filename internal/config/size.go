// Package config builds scan configuration from CLI flags, YAML defaults
// files, and pattern files.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// sizeUnits maps unit suffixes to byte multipliers. K, KB, and KiB all mean
// 1024 here, matching du-style expectations rather than SI.
var sizeUnits = map[string]uint64{
	"K": 1 << 10,
	"M": 1 << 20,
	"G": 1 << 30,
	"T": 1 << 40,
	"P": 1 << 50,
}

var sizeRe = regexp.MustCompile(`^([\d.]+)\s*([A-Za-z]+)?$`)

// ParseSize parses a human-readable size string such as "10M", "1.5G",
// "512KiB", or a bare byte count into bytes.
func ParseSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}

	m := sizeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid size format %q", s)
	}

	number, err := strconv.ParseFloat(m[1], 64)
	if err != nil || number < 0 {
		return 0, fmt.Errorf("invalid numeric part %q", m[1])
	}

	unit := strings.ToUpper(m[2])
	if unit == "" || unit == "B" {
		return uint64(number), nil
	}

	// Accept K, KB, and KiB spellings alike.
	unit = strings.TrimSuffix(unit, "IB")
	unit = strings.TrimSuffix(unit, "B")
	mult, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("invalid size unit in %q", s)
	}
	return uint64(number * float64(mult)), nil
}
