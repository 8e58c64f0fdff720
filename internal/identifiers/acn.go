package identifiers

// ACN weights apply to the first eight digits; the ninth is a check digit.
var acnWeights = [8]int{8, 7, 6, 5, 4, 3, 2, 1}

// ValidateACN reports whether input is a checksum-valid 9-digit Australian
// Company Number. Whitespace is ignored; any other non-digit fails.
func ValidateACN(input string) bool {
	s := stripSpace(input)
	if len(s) != 9 {
		return false
	}
	sum := 0
	for i := 0; i < 8; i++ {
		r := s[i]
		if r < '0' || r > '9' {
			return false
		}
		sum += int(r-'0') * acnWeights[i]
	}
	last := s[8]
	if last < '0' || last > '9' {
		return false
	}
	check := (10 - sum%10) % 10
	return check == int(last-'0')
}
