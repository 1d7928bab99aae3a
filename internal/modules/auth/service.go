package auth

import (
	"errors"
	"time"

	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/pkg/apperr"
	"github.com/tagshop/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// Service implements credential auth. Sessions are stateless: the signed
// token is the whole session, nothing is persisted beyond the user row.
type Service struct {
	db *gorm.DB

	// failureDelay throttles credential guessing. Zeroed in tests.
	failureDelay time.Duration
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, failureDelay: 3 * time.Second}
}

// Register creates a user account and signs them in.
func (s *Service) Register(dto *RegisterDTO) (*SessionPayload, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return nil, apperr.Internal("failed to check email", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcryptCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := models.UserModel{
		Email:    dto.Email,
		Password: string(hashed),
		Name:     dto.Name,
		Role:     models.PlatformRoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}

	return s.issueSession(&user)
}

// Login verifies credentials and issues a token. Invalid email and invalid
// password are indistinguishable to the caller.
func (s *Service) Login(dto *LoginDTO) (*SessionPayload, error) {
	var user models.UserModel
	err := s.db.Where("email = ?", dto.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.loginFailure()
	}
	if err != nil {
		return nil, apperr.Internal("failed to query user", err)
	}

	// Accounts provisioned externally carry no password and cannot use
	// credential login.
	if user.Password == "" {
		return nil, s.loginFailure()
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)) != nil {
		return nil, s.loginFailure()
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login_time", &now).Error; err != nil {
		return nil, apperr.Internal("failed to record login", err)
	}
	user.LastLoginTime = &now

	return s.issueSession(&user)
}

// Me loads the authenticated user's profile.
func (s *Service) Me(userID string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("account no longer exists")
	}
	if err != nil {
		return nil, apperr.Internal("failed to query user", err)
	}
	return &user, nil
}

func (s *Service) issueSession(user *models.UserModel) (*SessionPayload, error) {
	token, err := jwt.Sign(user.ID, user.Email, user.Name, string(user.Role), jwt.DefaultTTL)
	if err != nil {
		return nil, apperr.Internal("failed to sign token", err)
	}
	return &SessionPayload{Token: token, User: user}, nil
}

func (s *Service) loginFailure() error {
	if s.failureDelay > 0 {
		time.Sleep(s.failureDelay)
	}
	return apperr.Unauthorized("invalid email or password")
}
