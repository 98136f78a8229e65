package general

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "50|% done", EscapeLike("50% done"))
	assert.Equal(t, "a|_b", EscapeLike("a_b"))
	assert.Equal(t, "x||y", EscapeLike("x|y"))
	assert.Equal(t, "مهمة العمل", EscapeLike("مهمة العمل"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("someone@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}

func TestGeneratePassword(t *testing.T) {
	pw := GeneratePassword(12, 1, 1, 1, 1)
	assert.Len(t, pw, 12)
	assert.True(t, strings.ContainsAny(pw, "0123456789"))
	assert.True(t, strings.ContainsAny(pw, "!@#$%&*"))
}

func TestDateFormats(t *testing.T) {
	d := time.Date(2026, 9, 1, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-01", FormatDateOnly(d))
	assert.Equal(t, "2026-09-01T13:45:00Z", FormatWithZWithoutChangingTime(d))
}

func TestTruncateSheetName(t *testing.T) {
	long := strings.Repeat("x", 40)
	assert.Len(t, TruncateSheetName(long), 31)
	assert.Equal(t, "Tasks", TruncateSheetName("Tasks"))
}

func TestParseTemplateEmailToPlainText(t *testing.T) {
	text := ParseTemplateEmailToPlainText("<html><body><p>Hello</p><p>World</p></body></html>")
	assert.Contains(t, text, "Hello")
	assert.Contains(t, text, "World")
}
