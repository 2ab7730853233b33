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

	"reviewhub/internal/apierr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(email, username string) (*models.User, error) {
	args := m.Called(email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(username, confirmationCode string) (string, error) {
	args := m.Called(username, confirmationCode)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignUp_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/signup", handler.SignUp)

	mockAuth.On("SignUp", "a@x.com", "alice").Return(&models.User{
		Username: "alice",
		Email:    "a@x.com",
	}, nil)

	w := postJSON(router, "/signup", dto.SignUpRequest{Email: "a@x.com", Username: "alice"})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response["username"])
	assert.Equal(t, "a@x.com", response["email"])

	mockAuth.AssertExpectations(t)
}

func TestSignUp_ForbiddenName(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/signup", handler.SignUp)

	mockAuth.On("SignUp", "a@x.com", "me").
		Return(nil, apierr.Validation("username", apierr.MsgForbiddenName))

	w := postJSON(router, "/signup", dto.SignUpRequest{Email: "a@x.com", Username: "me"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, []string{apierr.MsgForbiddenName}, response["username"])
}

func TestToken_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuth.On("IssueToken", "alice", "code-123").Return("signed.jwt.token", nil)

	w := postJSON(router, "/token", dto.TokenRequest{Username: "alice", ConfirmationCode: "code-123"})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotEmpty(t, response["token"])
}

func TestToken_UnknownUsername(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuth.On("IssueToken", "ghost", "code-123").
		Return("", apierr.NotFound("user not found"))

	w := postJSON(router, "/token", dto.TokenRequest{Username: "ghost", ConfirmationCode: "code-123"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToken_WrongCode(t *testing.T) {
	mockAuth := new(MockAuthService)
	handler := NewAuthHandler(mockAuth)
	router := setupRouter()
	router.POST("/token", handler.Token)

	mockAuth.On("IssueToken", "alice", "wrong").
		Return("", apierr.BadRequest("invalid confirmation code"))

	w := postJSON(router, "/token", dto.TokenRequest{Username: "alice", ConfirmationCode: "wrong"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
