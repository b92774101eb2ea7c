package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	goodFirst    = "Jess"
	goodLast     = "Doe"
	goodEmail    = "jess@example.com"
	goodPassword = "pass1!word"
)

func TestValidateRegistrationOK(t *testing.T) {
	errs := ValidateRegistration(goodFirst, goodLast, goodEmail, goodPassword, goodPassword)
	assert.Empty(t, errs)
}

// Каждое одиночное нарушение даёт ровно один ключ в карте ошибок
func TestValidateRegistrationSingleViolations(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		password  string
		confirm   string
		wantKey   string
	}{
		{"first name too short", "J", goodLast, goodEmail, goodPassword, goodPassword, "firstName"},
		{"first name too long", strings.Repeat("a", 36), goodLast, goodEmail, goodPassword, goodPassword, "firstName"},
		{"first name too long multibyte", strings.Repeat("я", 36), goodLast, goodEmail, goodPassword, goodPassword, "firstName"},
		{"last name empty", goodFirst, "", goodEmail, goodPassword, goodPassword, "lastName"},
		{"last name too long", goodFirst, strings.Repeat("b", 36), goodEmail, goodPassword, goodPassword, "lastName"},
		{"email no at", goodFirst, goodLast, "jess.example.com", goodPassword, goodPassword, "email"},
		{"email no domain dot", goodFirst, goodLast, "jess@example", goodPassword, goodPassword, "email"},
		{"email with spaces", goodFirst, goodLast, "je ss@example.com", goodPassword, goodPassword, "email"},
		{"email too long", goodFirst, goodLast, strings.Repeat("a", 315) + "@ex.com", goodPassword, goodPassword, "email"},
		{"password too short", goodFirst, goodLast, goodEmail, "a1!", "a1!", "password"},
		{"password no digit", goodFirst, goodLast, goodEmail, "password!", "password!", "password"},
		{"password no symbol", goodFirst, goodLast, goodEmail, "password1", "password1", "password"},
		{"password too long", goodFirst, goodLast, goodEmail, strings.Repeat("a", 199) + "1!", strings.Repeat("a", 199) + "1!", "password"},
		{"confirmation mismatch", goodFirst, goodLast, goodEmail, goodPassword, "other1!pass", "confirmPswd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegistration(tt.firstName, tt.lastName, tt.email, tt.password, tt.confirm)
			assert.Len(t, errs, 1)
			assert.Contains(t, errs, tt.wantKey)
		})
	}
}

// Нарушения собираются все разом, а не до первого
func TestValidateRegistrationCollectsAll(t *testing.T) {
	errs := ValidateRegistration("J", "", "bad-email", "short", "different")

	assert.Contains(t, errs, "firstName")
	assert.Contains(t, errs, "lastName")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "confirmPswd")
}

// Лимиты меряются в символах, не в байтах: кириллическое имя
// из 20 букв занимает 40 байт и обязано проходить
func TestValidateRegistrationCountsRunes(t *testing.T) {
	errs := ValidateRegistration(strings.Repeat("я", 20), "Ёлкина", goodEmail, goodPassword, goodPassword)
	assert.Empty(t, errs)

	errs = ValidateRegistration(goodFirst, strings.Repeat("ж", 35), goodEmail, "парольно1!", "парольно1!")
	assert.Empty(t, errs)
}

// Поля сравниваются после trim
func TestValidateRegistrationTrims(t *testing.T) {
	errs := ValidateRegistration("  Jess  ", " Doe ", " jess@example.com ", " pass1!word ", "pass1!word")
	assert.Empty(t, errs)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("@b.co"))
}
