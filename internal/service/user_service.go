package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"reviewhub/internal/apierr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

type UserService interface {
	Create(req dto.CreateUserDTO) (*models.User, error)
	Update(username string, req dto.UpdateUserDTO) (*models.User, error)
	UpdateProfile(userID string, req dto.UpdateProfileDTO) (*models.User, error)
	Delete(username string) error
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	List(search string, page, pageSize int) ([]models.User, int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// validateUsername guards every path a username can change through.
func validateUsername(username string) error {
	if username == "" {
		return apierr.Validation("username", apierr.MsgMissingUsername)
	}
	if username == models.ReservedUsername {
		return apierr.Validation("username", apierr.MsgForbiddenName)
	}
	return nil
}

// identityConflict maps a users unique violation onto the field whose
// constraint fired.
func identityConflict(err error) *apierr.Error {
	if strings.Contains(apierr.ViolatedConstraint(err), "email") {
		return apierr.Conflict("email", apierr.MsgEmailExists)
	}
	return apierr.Conflict("username", apierr.MsgUsernameExists)
}

// Create is the admin path: the user record is written directly, with a
// confirmation code derived from the email so the account can still go
// through the normal token exchange.
func (s *userService) Create(req dto.CreateUserDTO) (*models.User, error) {
	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Username:         req.Username,
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Bio:              req.Bio,
		Role:             role,
		ConfirmationCode: ConfirmationCode(req.Email),
	}

	if err := s.userRepo.Create(user); err != nil {
		if apierr.IsUniqueViolation(err) {
			return nil, identityConflict(err)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Update(username string, req dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, err
	}

	if req.Username != nil {
		if err := validateUsername(*req.Username); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		user.Email = *req.Email
		// Email is what the confirmation code is derived from.
		user.ConfirmationCode = ConfirmationCode(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		if apierr.IsUniqueViolation(err) {
			return nil, identityConflict(err)
		}
		return nil, err
	}

	return user, nil
}

// UpdateProfile is the self-service path; the DTO has no role field, so
// role escalation through /users/me is impossible by construction.
func (s *userService) UpdateProfile(userID string, req dto.UpdateProfileDTO) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, err
	}

	if req.Username != nil {
		if err := validateUsername(*req.Username); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		user.Email = *req.Email
		user.ConfirmationCode = ConfirmationCode(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		if apierr.IsUniqueViolation(err) {
			return nil, identityConflict(err)
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Delete(username string) error {
	if err := s.userRepo.Delete(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("user not found")
		}
		return err
	}
	return nil
}

func (s *userService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(search, page, pageSize)
}
