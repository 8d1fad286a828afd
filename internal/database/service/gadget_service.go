package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gr3edydevel0per/N-Layer-API/internal/database/models"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/repository"
)

// GadgetService defines the interface for gadget inventory business logic
type GadgetService interface {
	Register() (*models.Gadget, error)
	FetchAll() ([]models.Gadget, error)
	FetchAllWithStatus(status models.GadgetStatus) ([]models.Gadget, error)
	Decommission(name string) (bool, error)
	Patch(id string, name *string, status *models.GadgetStatus) (*models.Gadget, error)
	SelfDestruct(id string) (*models.Gadget, string, error)
}

type gadgetService struct {
	gadgetRepo repository.GadgetRepository
	names      *models.NameGenerator
	logger     *slog.Logger
}

// NewGadgetService creates a new gadget service instance
func NewGadgetService(
	gadgetRepo repository.GadgetRepository,
	names *models.NameGenerator,
	logger *slog.Logger,
) GadgetService {
	return &gadgetService{
		gadgetRepo: gadgetRepo,
		names:      names,
		logger:     logger,
	}
}

func (s *gadgetService) Register() (*models.Gadget, error) {
	name := s.names.Generate()

	existing, err := s.gadgetRepo.FindByName(name)
	if err != nil && !errors.Is(err, repository.ErrGadgetNotFound) {
		s.logger.Error("❌ [GadgetService] Database error", "error", err)
		return nil, err
	}
	if existing != nil {
		s.logger.Warn("⚠️ [GadgetService] Generated name already taken", "name", name)
		return nil, ErrGadgetNameTaken
	}

	gadget := &models.Gadget{
		ID:     uuid.NewString(),
		Name:   name,
		Status: models.StatusAvailable,
	}

	if err := s.gadgetRepo.Create(gadget); err != nil {
		s.logger.Error("❌ [GadgetService] Failed to create gadget", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [GadgetService] Gadget registered", "gadget_id", gadget.ID, "name", gadget.Name)
	return gadget, nil
}

func (s *gadgetService) FetchAll() ([]models.Gadget, error) {
	return s.gadgetRepo.FetchAll()
}

func (s *gadgetService) FetchAllWithStatus(status models.GadgetStatus) ([]models.Gadget, error) {
	return s.gadgetRepo.FetchAllWithStatus(status)
}

func (s *gadgetService) Decommission(name string) (bool, error) {
	decommissioned, err := s.gadgetRepo.Decommission(name)
	if err != nil {
		s.logger.Error("❌ [GadgetService] Failed to decommission gadget", "name", name, "error", err)
		return false, err
	}
	if decommissioned {
		s.logger.Info("✅ [GadgetService] Gadget decommissioned", "name", name)
	} else {
		s.logger.Warn("⚠️ [GadgetService] No gadget found to decommission", "name", name)
	}
	return decommissioned, nil
}

func (s *gadgetService) Patch(id string, name *string, status *models.GadgetStatus) (*models.Gadget, error) {
	fields := map[string]interface{}{}
	if name != nil {
		fields["name"] = *name
	}
	if status != nil {
		fields["status"] = *status
		// The decommission timestamp tracks the status: stamped on entry,
		// cleared on any other transition.
		if *status == models.StatusDecommissioned {
			now := time.Now()
			fields["decommissioned_at"] = &now
		} else {
			fields["decommissioned_at"] = nil
		}
	}
	if len(fields) == 0 {
		return nil, ErrNoFieldsToPatch
	}

	gadget, err := s.gadgetRepo.Patch(id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrGadgetNotFound) {
			s.logger.Warn("⚠️ [GadgetService] No gadget found to patch", "gadget_id", id)
			return nil, err
		}
		s.logger.Error("❌ [GadgetService] Failed to patch gadget", "gadget_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [GadgetService] Gadget patched", "gadget_id", id)
	return gadget, nil
}

func (s *gadgetService) SelfDestruct(id string) (*models.Gadget, string, error) {
	gadget, err := s.gadgetRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrGadgetNotFound) {
			s.logger.Warn("⚠️ [GadgetService] No gadget found to self-destruct", "gadget_id", id)
			return nil, "", err
		}
		s.logger.Error("❌ [GadgetService] Database error", "gadget_id", id, "error", err)
		return nil, "", err
	}

	// Destroyed is terminal: a second self-destruct is a conflict, alters
	// nothing and mints no confirmation code.
	if gadget.Status == models.StatusDestroyed {
		s.logger.Warn("⚠️ [GadgetService] Gadget already destroyed", "gadget_id", id)
		return gadget, "", ErrGadgetAlreadyDestroyed
	}

	confirmationCode, err := generateConfirmationCode()
	if err != nil {
		s.logger.Error("❌ [GadgetService] Failed to generate confirmation code", "error", err)
		return nil, "", err
	}

	updated, err := s.gadgetRepo.UpdateStatus(id, models.StatusDestroyed)
	if err != nil {
		s.logger.Error("❌ [GadgetService] Failed to update gadget status", "gadget_id", id, "error", err)
		return nil, "", err
	}

	s.logger.Info("💥 [GadgetService] Self-destruct sequence initiated", "gadget_id", id)
	return updated, confirmationCode, nil
}

// generateConfirmationCode returns an 8-character uppercase hex code.
func generateConfirmationCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Service errors
var (
	ErrGadgetNameTaken        = errors.New("gadget already exists with this name")
	ErrGadgetAlreadyDestroyed = errors.New("gadget is already destroyed")
	ErrNoFieldsToPatch        = errors.New("no fields provided for update")
)
