package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/apierr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/models"
)

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(req dto.CreateUserDTO) (*models.User, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(username string, req dto.UpdateUserDTO) (*models.User, error) {
	args := m.Called(username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(userID string, req dto.UpdateProfileDTO) (*models.User, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockUserService) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(search string, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(search, page, pageSize)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func TestUpdateProfile_ReservedUsernameRejected(t *testing.T) {
	mockSvc := new(MockUserService)
	handler := NewUserHandler(mockSvc)
	router := setupRouter()

	v1 := router.Group("")
	handler.RegisterRoutes(v1, fakeAuth("user-1", models.RoleUser))

	// The username field must reach the service, not be dropped at binding.
	mockSvc.On("UpdateProfile", "user-1", mock.MatchedBy(func(req dto.UpdateProfileDTO) bool {
		return req.Username != nil && *req.Username == "me"
	})).Return(nil, apierr.Validation("username", apierr.MsgForbiddenName))

	w := patchJSON(router, "/users/me", map[string]string{"username": "me"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, []string{apierr.MsgForbiddenName}, response["username"])
	mockSvc.AssertExpectations(t)
}

func TestUpdateProfile_UsernameChangeApplied(t *testing.T) {
	mockSvc := new(MockUserService)
	handler := NewUserHandler(mockSvc)
	router := setupRouter()

	v1 := router.Group("")
	handler.RegisterRoutes(v1, fakeAuth("user-1", models.RoleUser))

	renamed := &models.User{ID: "user-1", Username: "alice2", Email: "a@x.com", Role: models.RoleUser}
	mockSvc.On("UpdateProfile", "user-1", mock.MatchedBy(func(req dto.UpdateProfileDTO) bool {
		return req.Username != nil && *req.Username == "alice2"
	})).Return(renamed, nil)

	w := patchJSON(router, "/users/me", map[string]string{"username": "alice2"})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.UserResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice2", response.Username)
}
