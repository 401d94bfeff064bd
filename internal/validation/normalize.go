package validation

import (
	"regexp"
	"strings"

	"github.com/rojgari/candidate-intake/internal/types"
)

var nonDigits = regexp.MustCompile(`\D`)

// StripNonDigits removes every non-digit rune from the input.
func StripNonDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// NormalizeIndianPhone canonicalizes a phone number into +91 form.
// A 12-digit number starting with the country code gains a plus; a bare
// 10-digit number gains the +91 prefix. Anything else is returned
// unchanged and left to the mobile-number rule to reject.
func NormalizeIndianPhone(input string) string {
	digits := StripNonDigits(input)
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		return "+" + digits
	}
	if len(digits) == 10 {
		return "+91" + digits
	}
	return input
}

// NormalizePhones canonicalizes the form's phone fields in place. The
// alternate mobile is optional and only normalized when present.
func NormalizePhones(f *types.ResumeForm) {
	f.Phone = NormalizeIndianPhone(f.Phone)
	if f.AlternateMobile != "" {
		f.AlternateMobile = NormalizeIndianPhone(f.AlternateMobile)
	}
}
