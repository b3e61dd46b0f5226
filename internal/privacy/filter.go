// Package privacy decides which recognized text must never be surfaced to
// the user. Both checks are deliberately simple heuristics: the cost of a
// false positive is a withheld caption, the cost of a false negative is a
// card number read aloud in public.
package privacy

import (
	"strings"

	"vision-assist/internal/model"
)

// sensitiveTerms flag text that likely belongs to credentials or identity
// documents.
var sensitiveTerms = []string{
	"ssn",
	"social security",
	"password",
	"pin",
	"secret",
	"username",
	"login",
	"account",
}

// Classify reports whether text looks like a payment card number and whether
// it contains sensitive keywords. Pure function.
func Classify(text string) (isCardNumber, isSensitive bool) {
	digits := 0
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	// 15 covers Amex, 16 covers the other major card schemes.
	isCardNumber = digits == 15 || digits == 16

	lower := strings.ToLower(text)
	for _, term := range sensitiveTerms {
		if strings.Contains(lower, term) {
			isSensitive = true
			break
		}
	}

	return isCardNumber, isSensitive
}

// ClassifyAll applies Classify to each detected text in place.
func ClassifyAll(texts []model.DetectedText) {
	for i := range texts {
		texts[i].IsCardNumber, texts[i].IsSensitive = Classify(texts[i].Text)
	}
}

// Blocked reports whether a detected text must be withheld from captions and
// voice feedback.
func Blocked(t model.DetectedText) bool {
	return t.IsCardNumber || t.IsSensitive
}
