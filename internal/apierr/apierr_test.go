package apierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "username: FORBIDDEN_NAME", Validation("username", MsgForbiddenName).Error())
	assert.Equal(t, "user not found", NotFound("user not found").Error())
}

func TestStatuses(t *testing.T) {
	assert.Equal(t, 400, Validation("year", MsgIncorrectYear).Status)
	assert.Equal(t, 400, Conflict("email", MsgEmailExists).Status)
	assert.Equal(t, 404, NotFound("x").Status)
	assert.Equal(t, 403, Forbidden("x").Status)
	assert.Equal(t, 401, Unauthorized("x").Status)
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create user: %w", unique)))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestViolatedConstraint(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.Equal(t, "users_email_key", ViolatedConstraint(unique))
	assert.Equal(t, "users_email_key", ViolatedConstraint(fmt.Errorf("update user: %w", unique)))

	// Only unique violations carry a constraint worth reporting.
	assert.Equal(t, "", ViolatedConstraint(&pgconn.PgError{Code: "23503", ConstraintName: "titles_category_id_fkey"}))
	assert.Equal(t, "", ViolatedConstraint(errors.New("plain")))
	assert.Equal(t, "", ViolatedConstraint(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503"}
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("delete category: %w", fk)))

	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
	assert.False(t, IsForeignKeyViolation(nil))
}
