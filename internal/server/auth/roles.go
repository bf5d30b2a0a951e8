package auth

import "github.com/avoronov/factura/internal/server/models"

// HasRequiredRole reports whether the identity's role is one of the allowed
// roles. A nil identity or an empty role never passes. Pure function, no
// failure modes.
func HasRequiredRole(identity *Identity, allowed ...models.Role) bool {
	if identity == nil || identity.Role == "" {
		return false
	}
	for _, role := range allowed {
		if identity.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity holds the admin role.
func IsAdmin(identity *Identity) bool {
	return HasRequiredRole(identity, models.RoleAdmin)
}

// IsAdminOrUser reports whether the identity holds the admin or user role.
func IsAdminOrUser(identity *Identity) bool {
	return HasRequiredRole(identity, models.RoleAdmin, models.RoleUser)
}
