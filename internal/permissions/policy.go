// Package permissions holds the role/ownership access rules as plain
// functions so they can be exercised without a router or database.
package permissions

import (
	"net/http"

	"reviewhub/internal/models"
)

// safe reports whether the method is read-only.
func safe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAdmin allows only authenticated admins, any method.
func IsAdmin(role string) bool {
	return role == models.RoleAdmin
}

// AdminOrReadOnly allows reads for everyone and writes for admins.
func AdminOrReadOnly(role, method string) bool {
	return safe(method) || role == models.RoleAdmin
}

// CanModifyContribution is the object-level rule for reviews and comments:
// reads are open, writes require the author, a moderator or an admin.
func CanModifyContribution(role string, isOwner bool, method string) bool {
	if safe(method) {
		return true
	}
	return isOwner || role == models.RoleModerator || role == models.RoleAdmin
}
