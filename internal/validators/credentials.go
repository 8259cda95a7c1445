package validators

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 4

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,50}$`)

func IsUsernameValid(username string) bool {
	return usernamePattern.MatchString(strings.TrimSpace(username))
}

func IsPasswordValid(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)

// IsPhoneValid accepts an empty phone, which is optional.
func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	return phone == "" || phonePattern.MatchString(phone)
}
