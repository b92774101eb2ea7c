package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	firstNameMin = 2
	firstNameMax = 35
	lastNameMin  = 1
	lastNameMax  = 35
	emailMax     = 320
	passwordMin  = 6
	passwordMax  = 200

	passwordSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?`~"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail проверяет формат и длину адреса после trim
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	return utf8.RuneCountInString(email) <= emailMax && emailRe.MatchString(email)
}

// ValidateRegistration собирает все нарушения разом, не останавливаясь
// на первом: поле -> сообщение
func ValidateRegistration(firstName, lastName, email, password, confirm string) map[string]string {
	errs := map[string]string{}

	if n := utf8.RuneCountInString(strings.TrimSpace(firstName)); n < firstNameMin || n > firstNameMax {
		errs["firstName"] = "First name must be between 2 and 35 characters"
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(lastName)); n < lastNameMin || n > lastNameMax {
		errs["lastName"] = "Last name must be between 1 and 35 characters"
	}
	if !ValidEmail(email) {
		errs["email"] = "Invalid email address"
	}
	for field, msg := range ValidatePasswordPair(password, confirm) {
		errs[field] = msg
	}

	return errs
}

// ValidatePasswordPair политика пароля: длина 6..200, минимум одна цифра
// и один символ из набора; подтверждение должно совпадать после trim
func ValidatePasswordPair(password, confirm string) map[string]string {
	errs := map[string]string{}

	pswd := strings.TrimSpace(password)
	if !validPassword(pswd) {
		errs["password"] = "Password must be at least 6 characters and contain a digit and a symbol"
	}
	if pswd != strings.TrimSpace(confirm) {
		errs["confirmPswd"] = "Passwords do not match"
	}

	return errs
}

func validPassword(pswd string) bool {
	if n := utf8.RuneCountInString(pswd); n < passwordMin || n > passwordMax {
		return false
	}
	hasDigit := strings.ContainsAny(pswd, "0123456789")
	hasSymbol := strings.ContainsAny(pswd, passwordSymbols)
	return hasDigit && hasSymbol
}
