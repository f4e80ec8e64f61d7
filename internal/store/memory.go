package store

import (
	"sort"
	"sync"
	"time"

	"github.com/careerboard/careerboard-backend/internal/models"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory ApplicationStore used in tests and local
// development. Records are copied on the way in and out so callers never
// share slices with the stored state.
type MemoryStore struct {
	mu   sync.RWMutex
	apps map[uuid.UUID]models.Application
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{apps: make(map[uuid.UUID]models.Application)}
}

func (s *MemoryStore) Insert(app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	s.apps[app.ID] = clone(*app)
	return nil
}

func (s *MemoryStore) FindByID(id uuid.UUID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := clone(app)
	return &c, nil
}

func (s *MemoryStore) FindByOwner(ownerID uuid.UUID) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Application
	for _, app := range s.apps {
		if app.OwnerID == ownerID {
			out = append(out, clone(app))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Save(app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[app.ID]; !ok {
		return ErrNotFound
	}
	app.UpdatedAt = time.Now().UTC()
	s.apps[app.ID] = clone(*app)
	return nil
}

func (s *MemoryStore) Delete(app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[app.ID]; !ok {
		return ErrNotFound
	}
	delete(s.apps, app.ID)
	return nil
}

func clone(app models.Application) models.Application {
	app.Rounds = append(app.Rounds[:0:0], app.Rounds...)
	app.Attachments = append(app.Attachments[:0:0], app.Attachments...)
	app.Documents = append(app.Documents[:0:0], app.Documents...)
	return app
}
