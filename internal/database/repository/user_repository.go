package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gr3edydevel0per/N-Layer-API/internal/database/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	UpdateLastLogin(id string) error
	// SetApiToken stores the API token digest for a user, but only if no
	// digest is present yet. Returns ErrTokenAlreadySet when the conditional
	// write hits zero rows, which closes the check-then-set race between two
	// concurrent issuance calls.
	SetApiToken(id string, tokenHash string) error
	FindAllWithApiToken() ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(id string) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", gorm.Expr("CURRENT_TIMESTAMP"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetApiToken(id string, tokenHash string) error {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND api_token IS NULL", id).
		Update("api_token", tokenHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenAlreadySet
	}
	return nil
}

func (r *userRepository) FindAllWithApiToken() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("api_token IS NOT NULL").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Repository errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrTokenAlreadySet = errors.New("api token already set")
)
