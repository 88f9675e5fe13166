// Package phone canonicalizes raw phone values into E.164 digit strings so CRM
// and dialer records can be joined on pure string equality.
package phone

import (
	"math"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/rotisserie/eris"
)

// domesticLength is the digit count treated as a national number lacking its
// country calling code.
const domesticLength = 10

// unknownRegion tells the parser to infer the region from the leading '+'.
const unknownRegion = "ZZ"

// Normalizer maps raw phone values to canonical digits. The zero value is not
// usable; construct with NewNormalizer. Safe for concurrent use.
type Normalizer struct {
	countryCode string
}

// NewNormalizer returns a Normalizer that prepends defaultCode to bare 10-digit
// numbers. defaultCode is a calling code ("91", "+91") or an ISO region ("IN").
func NewNormalizer(defaultCode string) (*Normalizer, error) {
	code := strings.TrimPrefix(strings.TrimSpace(defaultCode), "+")
	if code == "" {
		return nil, eris.New("phone: default country code is required")
	}

	if isDigits(code) {
		cc, err := strconv.Atoi(code)
		if err != nil || len(RegionsForCallingCode(cc)) == 0 {
			return nil, eris.Errorf("phone: unknown country calling code %q", defaultCode)
		}
		return &Normalizer{countryCode: code}, nil
	}

	cc := CallingCodeForRegion(code)
	if cc == 0 {
		return nil, eris.Errorf("phone: unknown region %q", defaultCode)
	}
	return &Normalizer{countryCode: strconv.Itoa(cc)}, nil
}

// CountryCode returns the calling code prepended to domestic numbers.
func (n *Normalizer) CountryCode() string {
	return n.countryCode
}

// Normalize returns the E.164 digits (no '+') for raw, or "" when raw is
// missing, unparseable or not a valid number. It never fails loudly.
func (n *Normalizer) Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return ""
	}

	international := strings.HasPrefix(s, "+")
	if expanded, ok := expandFloat(s); ok {
		s = expanded
	}

	digits := stripNonDigits(s)
	if digits == "" {
		return ""
	}

	if len(digits) == domesticLength && !international {
		digits = n.countryCode + digits
	}

	num, err := phonenumbers.Parse("+"+digits, unknownRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+")
}

// Region returns the ISO 3166-1 alpha-2 region of a canonical phone, or "" if
// it cannot be determined.
func (n *Normalizer) Region(canonical string) string {
	if canonical == "" {
		return ""
	}
	num, err := phonenumbers.Parse("+"+canonical, unknownRegion)
	if err != nil {
		return ""
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == unknownRegion {
		return ""
	}
	return region
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "nat", "<na>":
		return true
	}
	return false
}

// expandFloat rewrites spreadsheet float renderings such as "9876543210.0" or
// "9.87654321E9" into plain integer digits. Anything else is left alone.
func expandFloat(s string) (string, bool) {
	if !strings.ContainsAny(s, ".eE") {
		return "", false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', 0, 64), true
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
