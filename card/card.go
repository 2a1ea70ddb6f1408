// Package card holds total functions over primary account numbers. None of
// them fail: malformed input yields false, UNKNOWN, the unchanged input or an
// absent value.
package card

import (
	"strconv"
	"strings"
)

// Brand is a card scheme
type Brand string

// Card brands
const (
	BrandVisa       Brand = "VISA"
	BrandMastercard Brand = "MASTERCARD"
	BrandAmex       Brand = "AMEX"
	BrandDiscover   Brand = "DISCOVER"
	BrandDiners     Brand = "DINERS"
	BrandJCB        Brand = "JCB"
	BrandUnknown    Brand = "UNKNOWN"
)

const (
	minLength  = 13
	maxLength  = 19
	binLength  = 6
	lastLength = 4
)

// prefixRange matches a card whose first Digits digits fall in [Low, High]
type prefixRange struct {
	Digits int
	Low    int
	High   int
}

// brandRanges is checked in order, the first brand with a matching range wins
var brandRanges = []struct {
	brand  Brand
	ranges []prefixRange
}{
	{BrandVisa, []prefixRange{{1, 4, 4}}},
	{BrandMastercard, []prefixRange{{2, 51, 55}, {4, 2221, 2720}}},
	{BrandAmex, []prefixRange{{2, 34, 34}, {2, 37, 37}}},
	{BrandDiscover, []prefixRange{{4, 6011, 6011}, {2, 65, 65}, {3, 644, 649}, {6, 622126, 622925}}},
	{BrandDiners, []prefixRange{{3, 300, 305}, {2, 36, 36}, {2, 38, 38}}},
	{BrandJCB, []prefixRange{{4, 3528, 3589}}},
}

// Clean strips every non-digit character from pan
func Clean(pan string) string {
	var b strings.Builder
	b.Grow(len(pan))
	for _, r := range pan {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidLength reports whether pan has between 13 and 19 digits
func IsValidLength(pan string) bool {
	n := len(Clean(pan))
	return n >= minLength && n <= maxLength
}

// LuhnCheck reports whether the digits of pan satisfy the Luhn checksum. A pan
// with no digits fails.
func LuhnCheck(pan string) bool {
	digits := Clean(pan)
	if digits == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// IsValid reports whether pan has a valid length and checksum
func IsValid(pan string) bool {
	return IsValidLength(pan) && LuhnCheck(pan)
}

// DetectBrand classifies pan by its leading digits
func DetectBrand(pan string) Brand {
	digits := Clean(pan)

	for _, candidate := range brandRanges {
		for _, r := range candidate.ranges {
			if r.matches(digits) {
				return candidate.brand
			}
		}
	}

	return BrandUnknown
}

func (r prefixRange) matches(digits string) bool {
	if len(digits) < r.Digits {
		return false
	}
	prefix, err := strconv.Atoi(digits[:r.Digits])
	if err != nil {
		return false
	}
	return prefix >= r.Low && prefix <= r.High
}

// Mask keeps the first six and last four digits of pan and stars the rest.
// Input with fewer than ten digits is returned unchanged.
func Mask(pan string) string {
	digits := Clean(pan)
	if len(digits) < binLength+lastLength {
		return pan
	}

	return digits[:binLength] +
		strings.Repeat("*", len(digits)-binLength-lastLength) +
		digits[len(digits)-lastLength:]
}

// BIN returns the first six digits of pan
func BIN(pan string) (string, bool) {
	digits := Clean(pan)
	if len(digits) < binLength {
		return "", false
	}
	return digits[:binLength], true
}

// LastFour returns the last four digits of pan
func LastFour(pan string) (string, bool) {
	digits := Clean(pan)
	if len(digits) < lastLength {
		return "", false
	}
	return digits[len(digits)-lastLength:], true
}

// Details is everything that may be safely shown or logged about a pan
type Details struct {
	Valid    bool
	Brand    Brand
	Masked   string
	BIN      string
	LastFour string
}

// Inspect gathers the safe details of pan. Masked, BIN and LastFour stay empty
// when pan is too short to mask, so no more than ten digits are ever exposed.
func Inspect(pan string) Details {
	details := Details{
		Valid: IsValid(pan),
		Brand: DetectBrand(pan),
	}
	if len(Clean(pan)) < binLength+lastLength {
		return details
	}

	details.Masked = Mask(pan)
	details.BIN, _ = BIN(pan)
	details.LastFour, _ = LastFour(pan)
	return details
}
