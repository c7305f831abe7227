package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("a@x.com"))
	assert.True(t, ValidateEmail("first.last+tag@clinic.example.org"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+1 555 0101"))
	assert.True(t, ValidatePhone("0123456789"))
	assert.True(t, ValidatePhone("+91-12345-67890"))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone("12"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "alert(1)", SanitizeString("<script>alert(1)</script>"))
	assert.NotContains(t, SanitizeString(`<img onerror="x">fever`), "<")
}
