package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecobin/ecobin-backend/internal/config"
	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken          = errors.New("user already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidSecretKey    = errors.New("invalid secret key")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRole         = errors.New("invalid role")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters")
	ErrAddressRequired     = errors.New("address is required for non-admin users")
	ErrAdminFieldsRequired = errors.New("phone number and secret key are required for admin registration")
)

const bcryptCost = 12

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = models.RoleResident
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Name == "" {
		return nil, errors.New("name and email are required")
	}
	if len(req.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	if role == models.RoleAdmin {
		if req.Phone == "" || req.SecretKey == "" {
			return nil, ErrAdminFieldsRequired
		}
	} else if strings.TrimSpace(req.Address) == "" {
		return nil, ErrAddressRequired
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if role == models.RoleAdmin {
		user.Phone = req.Phone
		keyHash, err := bcrypt.GenerateFromPassword([]byte(req.SecretKey), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash secret key: %w", err)
		}
		user.SecretKey = string(keyHash)
	} else {
		user.Address = strings.TrimSpace(req.Address)
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return s.authResponse(&user)
}

// AdminLogin additionally verifies the admin secret key.
func (s *AuthService) AdminLogin(req *dto.AdminLoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.SecretKey == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.Where("email = ? AND role = ?", strings.ToLower(strings.TrimSpace(req.Email)), models.RoleAdmin).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SecretKey), []byte(req.SecretKey)); err != nil {
		return nil, ErrInvalidSecretKey
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return s.authResponse(&user)
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.AuthResponse{
		Success: true,
		Token:   token,
		User:    mapUser(user),
	}, nil
}

func mapUser(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		Address:  user.Address,
		Phone:    user.Phone,
		IsActive: user.IsActive,
		Credits:  user.Credits,
	}
}
