package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewhub/internal/apierr"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carried by every access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	SignUp(email, username string) (*models.User, error)
	IssueToken(username, confirmationCode string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	mail      mailer.Mailer
	log       *slog.Logger
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config, log *slog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		mail:      mail,
		log:       log,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

// ConfirmationCode derives the code from the email as a namespaced
// UUIDv3, so re-running sign-up for the same address is idempotent and
// codes issued by earlier deployments stay valid.
func ConfirmationCode(email string) string {
	return uuid.NewMD5(uuid.NameSpaceX500, []byte(email)).String()
}

// SignUp gets-or-creates the user for the submitted identity and
// dispatches the confirmation code out-of-band. Mail delivery is
// fire-and-forget: the request succeeds once the record is persisted.
func (s *authService) SignUp(email, username string) (*models.User, error) {
	if username == "" {
		return nil, apierr.Validation("username", apierr.MsgMissingUsername)
	}
	if username == models.ReservedUsername {
		return nil, apierr.Validation("username", apierr.MsgForbiddenName)
	}
	if email == "" {
		return nil, apierr.Validation("email", apierr.MsgMissingEmail)
	}

	byUsername, err := s.userRepo.FindByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if byUsername != nil && byUsername.Email != email {
		return nil, apierr.Conflict("username", apierr.MsgUsernameExists)
	}

	byEmail, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if byEmail != nil && byEmail.Username != username {
		return nil, apierr.Conflict("email", apierr.MsgEmailExists)
	}

	user := byUsername
	if user == nil {
		user = &models.User{
			Username:         username,
			Email:            email,
			Role:             models.RoleUser,
			ConfirmationCode: ConfirmationCode(email),
		}
		if err := s.userRepo.Create(user); err != nil {
			// A concurrent sign-up may win the race; the unique
			// constraints are the source of truth.
			if apierr.IsUniqueViolation(err) {
				return nil, identityConflict(err)
			}
			return nil, err
		}
	} else {
		user.ConfirmationCode = ConfirmationCode(email)
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	go func(to, code string) {
		if err := s.mail.SendConfirmationCode(to, code); err != nil {
			s.log.Warn("confirmation mail delivery failed", "to", to, "error", err)
		}
	}(user.Email, user.ConfirmationCode)

	return user, nil
}

// IssueToken exchanges a confirmation code for a signed access token.
func (s *authService) IssueToken(username, confirmationCode string) (string, error) {
	if username == "" {
		return "", apierr.Validation("username", apierr.MsgMissingUsername)
	}
	if confirmationCode == "" {
		return "", apierr.Validation("confirmation_code", apierr.MsgMissingCode)
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierr.NotFound("user not found")
		}
		return "", err
	}

	if confirmationCode != user.ConfirmationCode {
		return "", apierr.BadRequest("invalid confirmation code")
	}

	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
