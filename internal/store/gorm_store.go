package store

import (
	"errors"
	"fmt"

	"github.com/careerboard/careerboard-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore persists applications as single rows; rounds, attachments and
// documents are jsonb columns, so Save is one atomic row write.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(app *models.Application) error {
	if err := s.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

func (s *GormStore) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := s.db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return &app, nil
}

func (s *GormStore) FindByOwner(ownerID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *GormStore) Save(app *models.Application) error {
	if err := s.db.Save(app).Error; err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

func (s *GormStore) Delete(app *models.Application) error {
	if err := s.db.Delete(app).Error; err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}
