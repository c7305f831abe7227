package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 -]{6,17}$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z .'-]{1,99}$`)

	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeString strips HTML and escapes what remains. Free-text booking
// fields (symptoms, notes, medical history) end up rendered in operator
// tooling, so they are cleaned on the way in.
func SanitizeString(input string) string {
	sanitized := htmlTagRegex.ReplaceAllString(input, "")
	return strings.TrimSpace(html.EscapeString(sanitized))
}

// ValidateEmail checks the email shape
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone accepts international numbers with optional +, spaces and
// dashes.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidateName accepts human names: letters, spaces, dots, apostrophes and
// hyphens.
func ValidateName(name string) bool {
	return nameRegex.MatchString(name)
}
