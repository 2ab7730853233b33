package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/models"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(models.RoleAdmin))
	assert.False(t, IsAdmin(models.RoleModerator))
	assert.False(t, IsAdmin(models.RoleUser))
	assert.False(t, IsAdmin(""))
}

func TestAdminOrReadOnly(t *testing.T) {
	// reads are open regardless of role
	assert.True(t, AdminOrReadOnly("", http.MethodGet))
	assert.True(t, AdminOrReadOnly(models.RoleUser, http.MethodHead))

	// writes are admin-only
	assert.True(t, AdminOrReadOnly(models.RoleAdmin, http.MethodPost))
	assert.False(t, AdminOrReadOnly(models.RoleModerator, http.MethodPost))
	assert.False(t, AdminOrReadOnly(models.RoleUser, http.MethodDelete))
	assert.False(t, AdminOrReadOnly("", http.MethodPatch))
}

func TestCanModifyContribution(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		isOwner bool
		method  string
		want    bool
	}{
		{"AnonymousRead", "", false, http.MethodGet, true},
		{"OwnerPatch", models.RoleUser, true, http.MethodPatch, true},
		{"OwnerDelete", models.RoleUser, true, http.MethodDelete, true},
		{"ModeratorPatch", models.RoleModerator, false, http.MethodPatch, true},
		{"AdminDelete", models.RoleAdmin, false, http.MethodDelete, true},
		{"StrangerPatch", models.RoleUser, false, http.MethodPatch, false},
		{"StrangerDelete", models.RoleUser, false, http.MethodDelete, false},
		{"AnonymousPost", "", false, http.MethodPost, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModifyContribution(tt.role, tt.isOwner, tt.method))
		})
	}
}
