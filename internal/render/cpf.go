package render

import "strings"

// FormatCPF groups a CPF's digits as XXX.XXX.XXX-XX. Non-digits are stripped
// first; partial input keeps whatever grouping its length allows, and digits
// beyond the eleventh are dropped.
func FormatCPF(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 11 {
		digits = digits[:11]
	}

	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 6:
		return digits[:3] + "." + digits[3:]
	case len(digits) <= 9:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:]
	default:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
	}
}
