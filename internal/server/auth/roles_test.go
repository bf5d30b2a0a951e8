package auth

import (
	"testing"

	"github.com/avoronov/factura/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func identityWithRole(role models.Role) *Identity {
	return &Identity{UserID: 1, Username: "x", Role: role}
}

func TestHasRequiredRole(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		allowed  []models.Role
		want     bool
	}{
		{name: "nil identity", identity: nil, allowed: []models.Role{models.RoleAdmin}, want: false},
		{name: "empty role", identity: &Identity{}, allowed: []models.Role{models.RoleAdmin}, want: false},
		{name: "exact match", identity: identityWithRole(models.RoleAdmin), allowed: []models.Role{models.RoleAdmin}, want: true},
		{name: "one of several", identity: identityWithRole(models.RoleUser), allowed: []models.Role{models.RoleAdmin, models.RoleUser}, want: true},
		{name: "not allowed", identity: identityWithRole(models.RoleVisitor), allowed: []models.Role{models.RoleAdmin, models.RoleUser}, want: false},
		{name: "empty allowed set", identity: identityWithRole(models.RoleAdmin), allowed: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasRequiredRole(tc.identity, tc.allowed...))
		})
	}
}

func TestConvenienceChecks(t *testing.T) {
	assert.True(t, IsAdmin(identityWithRole(models.RoleAdmin)))
	assert.False(t, IsAdmin(identityWithRole(models.RoleUser)))
	assert.False(t, IsAdmin(nil))

	assert.True(t, IsAdminOrUser(identityWithRole(models.RoleAdmin)))
	assert.True(t, IsAdminOrUser(identityWithRole(models.RoleUser)))
	assert.False(t, IsAdminOrUser(identityWithRole(models.RoleVisitor)))
}
