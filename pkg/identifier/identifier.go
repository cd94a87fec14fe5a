// Package identifier validates and extracts Turkish national identity
// numbers (TC, 11 digits) and tax identification numbers (VKN, 10 digits)
// from free-form OCR text. Both validators implement the official checksum
// algorithms; extraction returns the first candidate in reading order that
// passes its checksum.
package identifier

import "regexp"

// Kind distinguishes the two identifier families.
type Kind string

const (
	KindTC  Kind = "tc"
	KindVKN Kind = "vkn"
)

// Identifier is a checksum-validated TC or VKN candidate.
type Identifier struct {
	Kind  Kind
	Value string
}

var (
	tcPattern  = regexp.MustCompile(`\b\d{11}\b`)
	vknPattern = regexp.MustCompile(`\b\d{10}\b`)
)

// ValidateTC reports whether s is a valid TC identity number: exactly 11
// digits, leading digit non-zero, with both official check digits correct.
func ValidateTC(s string) bool {
	if len(s) != 11 {
		return false
	}
	digits := make([]int, 11)
	for i := 0; i < 11; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}
	if digits[0] == 0 {
		return false
	}

	sum := 0
	for _, d := range digits[:10] {
		sum += d
	}
	if sum%10 != digits[10] {
		return false
	}

	oddSum := digits[0] + digits[2] + digits[4] + digits[6] + digits[8]
	evenSum := digits[1] + digits[3] + digits[5] + digits[7]
	return ((oddSum*7-evenSum)%10+10)%10 == digits[9]
}

// ValidateVKN reports whether s is a valid VKN tax number: exactly 10
// digits with the official check digit correct.
func ValidateVKN(s string) bool {
	if len(s) != 10 {
		return false
	}
	digits := make([]int, 10)
	for i := 0; i < 10; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}

	total := 0
	for i := 0; i < 9; i++ {
		t := (digits[i] + (9 - i)) % 10
		if t == 0 {
			t = 10
		}
		// The modulus is applied per term, not to the running sum.
		total += (t << uint(9-i)) % 9
	}

	check := (10 - (total % 10)) % 10
	return digits[9] == check
}

// ExtractTC scans text for word-bounded 11-digit runs in order of
// appearance and returns the first valid TC number.
func ExtractTC(text string) (string, bool) {
	for _, m := range tcPattern.FindAllString(text, -1) {
		if ValidateTC(m) {
			return m, true
		}
	}
	return "", false
}

// ExtractVKN scans text for word-bounded 10-digit runs in order of
// appearance and returns the first valid VKN number.
func ExtractVKN(text string) (string, bool) {
	for _, m := range vknPattern.FindAllString(text, -1) {
		if ValidateVKN(m) {
			return m, true
		}
	}
	return "", false
}

// Extract returns the best identifier in text. A valid TC always wins over
// a valid VKN, regardless of their relative positions.
func Extract(text string) (Identifier, bool) {
	if tc, ok := ExtractTC(text); ok {
		return Identifier{Kind: KindTC, Value: tc}, true
	}
	if vkn, ok := ExtractVKN(text); ok {
		return Identifier{Kind: KindVKN, Value: vkn}, true
	}
	return Identifier{}, false
}
