package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gr3edydevel0per/N-Layer-API/internal/auth"
	"github.com/gr3edydevel0per/N-Layer-API/internal/config"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/models"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/repository"
)

// UserService defines the interface for identity business logic
type UserService interface {
	Register(email, password string) (*models.User, error)
	Login(email, password string) (*models.User, *AccessToken, error)
	GenerateApiToken(userID string) (string, error)
	FetchUser(userID string) (*models.User, error)
}

// AccessToken is a freshly minted short-lived credential
type AccessToken struct {
	Token     string
	ExpiresIn time.Duration
}

type userService struct {
	userRepo   repository.UserRepository
	codec      *auth.TokenCodec
	bcryptCost int
	logger     *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo repository.UserRepository,
	codec *auth.TokenCodec,
	cfg *config.Config,
	logger *slog.Logger,
) UserService {
	return &userService{
		userRepo:   userRepo,
		codec:      codec,
		bcryptCost: int(cfg.BcryptCost),
		logger:     logger,
	}
}

func (s *userService) Register(email, password string) (*models.User, error) {
	s.logger.Info("📝 [UserService] Registration attempt", "email", email)

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [UserService] Database error", "error", err)
		return nil, err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [UserService] Email already registered", "email", email)
		return nil, ErrEmailAlreadyExists
	}

	// Hash before the row ever touches the repository; plaintext is never
	// persisted or logged.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost a race against a concurrent registration; the unique
			// index on email is the arbiter.
			s.logger.Warn("⚠️ [UserService] Email already registered", "email", email)
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("❌ [UserService] Failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [UserService] User registered successfully", "user_id", user.ID)
	return user, nil
}

func (s *userService) Login(email, password string) (*models.User, *AccessToken, error) {
	s.logger.Info("🔐 [UserService] Login attempt", "email", email)

	// Unknown email and wrong password must be indistinguishable to the
	// caller.
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [UserService] User not found", "email", email)
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [UserService] Database error", "error", err)
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [UserService] Invalid password", "email", email)
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		s.logger.Error("❌ [UserService] Failed to update last login", "error", err)
		return nil, nil, err
	}

	token, expiresIn, err := s.codec.SignAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to sign access token", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [UserService] User logged in successfully", "user_id", user.ID)
	return user, &AccessToken{Token: token, ExpiresIn: expiresIn}, nil
}

func (s *userService) GenerateApiToken(userID string) (string, error) {
	s.logger.Info("🔑 [UserService] API token generation attempt", "user_id", userID)

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [UserService] User not found", "user_id", userID)
			return "", repository.ErrUserNotFound
		}
		s.logger.Error("❌ [UserService] Database error", "error", err)
		return "", err
	}

	if user.HasApiToken() {
		s.logger.Warn("⚠️ [UserService] API token already issued", "user_id", userID)
		return "", ErrTokenAlreadyIssued
	}

	plaintext, storageHash, err := s.codec.IssueAPIToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to issue API token", "error", err)
		return "", err
	}

	// Conditional write: if another issuance slipped in between the check
	// above and here, zero rows match and the call fails instead of
	// overwriting the stored digest.
	if err := s.userRepo.SetApiToken(user.ID, storageHash); err != nil {
		if errors.Is(err, repository.ErrTokenAlreadySet) {
			s.logger.Warn("⚠️ [UserService] API token already issued", "user_id", userID)
			return "", ErrTokenAlreadyIssued
		}
		s.logger.Error("❌ [UserService] Failed to store API token hash", "error", err)
		return "", err
	}

	s.logger.Info("✅ [UserService] API token issued", "user_id", userID)
	return plaintext, nil
}

func (s *userService) FetchUser(userID string) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

// Service errors
var (
	ErrEmailAlreadyExists = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenAlreadyIssued = errors.New("api token already generated for this user")
)
