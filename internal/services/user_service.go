package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecobin/ecobin-backend/internal/dto"
	"github.com/ecobin/ecobin-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminDeactivate = errors.New("admin accounts cannot be deactivated")
	ErrAdminDelete     = errors.New("cannot delete admin accounts")
)

// UserService is the admin-facing user management surface. Admin accounts
// are immutable with respect to deactivation and deletion.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List() ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	result := make([]dto.UserResponse, len(users))
	for i := range users {
		result[i] = mapUser(&users[i])
	}
	return result, nil
}

func (s *UserService) Create(req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, errors.New("name, email, password and role are required")
	}
	if !models.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
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
		Role:     req.Role,
		IsActive: true,
	}
	if req.Role != models.RoleAdmin && req.Address != "" {
		user.Address = req.Address
	}
	if req.Role == models.RoleAdmin && req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	resp := mapUser(&user)
	return &resp, nil
}

// Update applies the isActive flag and the direct credits write. Any
// activation change on an admin account is rejected.
func (s *UserService) Update(id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.IsActive != nil && user.Role == models.RoleAdmin {
		return nil, ErrAdminDeactivate
	}

	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Credits != nil {
		updates["credits"] = *req.Credits
	}
	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	resp := mapUser(&user)
	return &resp, nil
}

func (s *UserService) Delete(id uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Role == models.RoleAdmin {
		return ErrAdminDelete
	}
	return s.db.Delete(&user).Error
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
