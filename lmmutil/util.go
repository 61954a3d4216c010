// SPDX-License-Identifier: MIT
package lmmutil

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloatNA parses a table cell, mapping the usual missing-value markers
// ("NA", "NaN", "nan", "") to NaN.
func ParseFloatNA(input string) (float64, error) {
	switch strings.TrimSpace(input) {
	case "", "NA", "NaN", "nan":
		return math.NaN(), nil
	default:
		return strconv.ParseFloat(strings.TrimSpace(input), 64)
	}
}

// FormatFloat writes the shortest exact representation in exponent notation,
// "NA" for NaN.
func FormatFloat(number float64) string {
	if math.IsNaN(number) {
		return "NA"
	}
	var withDecimalExponent byte = 'e'
	precisionExactSmallest := -1

	return strconv.FormatFloat(number, withDecimalExponent, precisionExactSmallest, 64)
}

func allFinite(slice []float64) bool {
	for _, v := range slice {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
