package validators

import "strings"

// NormalizePhone canonicalizes Kenyan mobile numbers to the 2547XXXXXXXX
// form M-Pesa expects. Returns "" when the input cannot be a phone number.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	p := digits.String()

	switch {
	case strings.HasPrefix(p, "254") && len(p) == 12:
		return p
	case strings.HasPrefix(p, "0") && len(p) == 10:
		return "254" + p[1:]
	case strings.HasPrefix(p, "7") && len(p) == 9:
		return "254" + p
	case strings.HasPrefix(p, "1") && len(p) == 9:
		return "254" + p
	}
	return ""
}
