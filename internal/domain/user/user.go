package user

import (
	"strings"

	"github.com/BruksfildServices01/appointease/internal/models"
)

// ValidRole reports whether r names a known role.
func ValidRole(r string) bool {
	return r == models.RoleUser || r == models.RoleAdmin
}

// NormalizeUsername lower-cases and trims so lookups are case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
