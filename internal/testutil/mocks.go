package testutil

import (
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/gr3edydevel0per/N-Layer-API/internal/config"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/models"
)

// ==================== MOCK USER REPOSITORY ====================

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) SetApiToken(id string, tokenHash string) error {
	args := m.Called(id, tokenHash)
	return args.Error(0)
}

func (m *MockUserRepository) FindAllWithApiToken() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// ==================== MOCK GADGET REPOSITORY ====================

// MockGadgetRepository implements repository.GadgetRepository for testing
type MockGadgetRepository struct {
	mock.Mock
}

func (m *MockGadgetRepository) Create(gadget *models.Gadget) error {
	args := m.Called(gadget)
	return args.Error(0)
}

func (m *MockGadgetRepository) FindByID(id string) (*models.Gadget, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gadget), args.Error(1)
}

func (m *MockGadgetRepository) FindByName(name string) (*models.Gadget, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gadget), args.Error(1)
}

func (m *MockGadgetRepository) FetchAll() ([]models.Gadget, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Gadget), args.Error(1)
}

func (m *MockGadgetRepository) FetchAllWithStatus(status models.GadgetStatus) ([]models.Gadget, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Gadget), args.Error(1)
}

func (m *MockGadgetRepository) Patch(id string, fields map[string]interface{}) (*models.Gadget, error) {
	args := m.Called(id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gadget), args.Error(1)
}

func (m *MockGadgetRepository) Decommission(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockGadgetRepository) UpdateStatus(id string, status models.GadgetStatus) (*models.Gadget, error) {
	args := m.Called(id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gadget), args.Error(1)
}

// ==================== TEST HELPERS ====================

// TestConfig returns a config suitable for unit tests
func TestConfig() *config.Config {
	return &config.Config{
		AppEnv:                "test",
		AccessTokenSecret:     "test-access-secret",
		ApiTokenSecret:        "test-api-secret",
		AccessTokenExpiration: 3600,
		ApiTokenExpiration:    604800,
		BcryptCost:            4,
	}
}

// TestLogger returns a logger that discards all output
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
