package service

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub/internal/apierr"
)

func TestCategoryDelete_StillAssignedToTitles(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("DeleteBySlug", "films").Return(&pgconn.PgError{Code: "23503"})

	svc := NewCategoryService(repo)

	err := svc.Delete("films")

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
