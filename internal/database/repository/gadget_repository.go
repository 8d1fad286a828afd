package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gr3edydevel0per/N-Layer-API/internal/database/models"
)

// GadgetRepository defines the interface for gadget data operations
type GadgetRepository interface {
	Create(gadget *models.Gadget) error
	FindByID(id string) (*models.Gadget, error)
	FindByName(name string) (*models.Gadget, error)
	FetchAll() ([]models.Gadget, error)
	FetchAllWithStatus(status models.GadgetStatus) ([]models.Gadget, error)
	// Patch applies the given field updates and returns the fresh row.
	Patch(id string, fields map[string]interface{}) (*models.Gadget, error)
	// Decommission soft-deletes by name: status becomes Decommissioned and
	// the decommission timestamp is stamped. Returns false when no gadget
	// carries that name.
	Decommission(name string) (bool, error)
	UpdateStatus(id string, status models.GadgetStatus) (*models.Gadget, error)
}

type gadgetRepository struct {
	db *gorm.DB
}

// NewGadgetRepository creates a new gadget repository instance
func NewGadgetRepository(db *gorm.DB) GadgetRepository {
	return &gadgetRepository{db: db}
}

func (r *gadgetRepository) Create(gadget *models.Gadget) error {
	return r.db.Create(gadget).Error
}

func (r *gadgetRepository) FindByID(id string) (*models.Gadget, error) {
	var gadget models.Gadget
	err := r.db.Where("id = ?", id).First(&gadget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGadgetNotFound
		}
		return nil, err
	}
	return &gadget, nil
}

func (r *gadgetRepository) FindByName(name string) (*models.Gadget, error) {
	var gadget models.Gadget
	err := r.db.Where("name = ?", name).First(&gadget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGadgetNotFound
		}
		return nil, err
	}
	return &gadget, nil
}

func (r *gadgetRepository) FetchAll() ([]models.Gadget, error) {
	var gadgets []models.Gadget
	err := r.db.Find(&gadgets).Error
	if err != nil {
		return nil, err
	}
	return gadgets, nil
}

func (r *gadgetRepository) FetchAllWithStatus(status models.GadgetStatus) ([]models.Gadget, error) {
	var gadgets []models.Gadget
	err := r.db.Where("status = ?", status).Find(&gadgets).Error
	if err != nil {
		return nil, err
	}
	return gadgets, nil
}

func (r *gadgetRepository) Patch(id string, fields map[string]interface{}) (*models.Gadget, error) {
	result := r.db.Model(&models.Gadget{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrGadgetNotFound
	}
	return r.FindByID(id)
}

func (r *gadgetRepository) Decommission(name string) (bool, error) {
	now := time.Now()
	result := r.db.Model(&models.Gadget{}).
		Where("name = ?", name).
		Updates(map[string]interface{}{
			"status":            models.StatusDecommissioned,
			"decommissioned_at": &now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gadgetRepository) UpdateStatus(id string, status models.GadgetStatus) (*models.Gadget, error) {
	result := r.db.Model(&models.Gadget{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrGadgetNotFound
	}
	return r.FindByID(id)
}

// Repository errors
var (
	ErrGadgetNotFound = errors.New("gadget not found")
)
