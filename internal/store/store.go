// Package store is the persistence boundary for application records. The
// service layer owns ownership checks and validation; implementations here
// only promise that a single Save lands atomically. Concurrent
// read-modify-write cycles against the same record are last-write-wins.
package store

import (
	"errors"

	"github.com/careerboard/careerboard-backend/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no application exists with the given id.
var ErrNotFound = errors.New("application not found")

type ApplicationStore interface {
	Insert(app *models.Application) error

	// FindByID returns ErrNotFound when the id is absent, regardless of owner.
	FindByID(id uuid.UUID) (*models.Application, error)

	// FindByOwner lists applications for one user, newest first.
	FindByOwner(ownerID uuid.UUID) ([]models.Application, error)

	// Save replaces the whole record, embedded collections included.
	Save(app *models.Application) error

	Delete(app *models.Application) error
}
