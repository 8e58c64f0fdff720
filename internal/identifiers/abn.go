// Package identifiers implements checksum validation for Australian
// business identifiers (ABN and ACN).
package identifiers

import (
	"strings"
	"unicode"
)

// ABN digit weights per the ATO checksum algorithm.
var abnWeights = [11]int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

// ValidateABN reports whether input is a checksum-valid 11-digit Australian
// Business Number. Whitespace is ignored; any other non-digit fails.
func ValidateABN(input string) bool {
	s := stripSpace(input)
	if len(s) != 11 {
		return false
	}
	sum := 0
	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		d := int(r - '0')
		if i == 0 {
			// The algorithm subtracts 1 from the leading digit.
			d--
		}
		sum += d * abnWeights[i]
	}
	return sum%89 == 0
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
