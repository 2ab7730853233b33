package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/models"
)

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(titleID int64, authorID string, req dto.CreateReviewDTO) (*models.Review, error) {
	args := m.Called(titleID, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Update(titleID, reviewID int64, req dto.UpdateReviewDTO) (*models.Review, error) {
	args := m.Called(titleID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Delete(titleID, reviewID int64) error {
	args := m.Called(titleID, reviewID)
	return args.Error(0)
}

func (m *MockReviewService) GetByID(titleID, reviewID int64) (*models.Review, error) {
	args := m.Called(titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(titleID, page, pageSize)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

// fakeAuth stands in for AuthMiddleware with fixed identity.
func fakeAuth(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxRole, role)
		c.Next()
	}
}

func patchJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest("PATCH", path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func reviewOwnedBy(authorID string) *models.Review {
	return &models.Review{
		ID:       5,
		TitleID:  1,
		AuthorID: authorID,
		Text:     "original",
		Score:    8,
		Author:   models.User{Username: "owner"},
	}
}

func TestUpdateReview_StrangerForbidden(t *testing.T) {
	mockSvc := new(MockReviewService)
	handler := NewReviewHandler(mockSvc)
	router := setupRouter()

	v1 := router.Group("")
	handler.RegisterRoutes(v1, fakeAuth("stranger-id", models.RoleUser))

	mockSvc.On("GetByID", int64(1), int64(5)).Return(reviewOwnedBy("owner-id"), nil)

	text := "hijack"
	w := patchJSON(router, "/titles/1/reviews/5", dto.UpdateReviewDTO{Text: &text})

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateReview_OwnerAllowed(t *testing.T) {
	mockSvc := new(MockReviewService)
	handler := NewReviewHandler(mockSvc)
	router := setupRouter()

	v1 := router.Group("")
	handler.RegisterRoutes(v1, fakeAuth("owner-id", models.RoleUser))

	text := "edited"
	mockSvc.On("GetByID", int64(1), int64(5)).Return(reviewOwnedBy("owner-id"), nil)
	mockSvc.On("Update", int64(1), int64(5), dto.UpdateReviewDTO{Text: &text}).
		Return(reviewOwnedBy("owner-id"), nil)

	w := patchJSON(router, "/titles/1/reviews/5", dto.UpdateReviewDTO{Text: &text})

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUpdateReview_ModeratorAllowed(t *testing.T) {
	mockSvc := new(MockReviewService)
	handler := NewReviewHandler(mockSvc)
	router := setupRouter()

	v1 := router.Group("")
	handler.RegisterRoutes(v1, fakeAuth("mod-id", models.RoleModerator))

	text := "moderated"
	mockSvc.On("GetByID", int64(1), int64(5)).Return(reviewOwnedBy("owner-id"), nil)
	mockSvc.On("Update", int64(1), int64(5), dto.UpdateReviewDTO{Text: &text}).
		Return(reviewOwnedBy("owner-id"), nil)

	w := patchJSON(router, "/titles/1/reviews/5", dto.UpdateReviewDTO{Text: &text})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateReview_AnonymousUnauthorized(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockAuth := new(MockAuthService)
	handler := NewReviewHandler(mockSvc)
	router := setupRouter()

	v1 := router.Group("")
	handler.RegisterRoutes(v1, middleware.AuthMiddleware(mockAuth))

	// no Authorization header
	w := postJSON(router, "/titles/1/reviews", dto.CreateReviewDTO{Text: "x", Score: 5})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestListReviews_Anonymous(t *testing.T) {
	mockSvc := new(MockReviewService)
	handler := NewReviewHandler(mockSvc)
	router := setupRouter()

	v1 := router.Group("")
	handler.RegisterRoutes(v1, fakeAuth("", ""))

	mockSvc.On("ListByTitle", int64(1), 1, 20).
		Return([]models.Review{*reviewOwnedBy("owner-id")}, int64(1), nil)

	req, _ := http.NewRequest("GET", "/titles/1/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.Paginated[dto.ReviewResponse]
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "owner", response.Data[0].Author)
}
