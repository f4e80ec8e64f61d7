package services

import (
	"errors"
	"strings"
	"time"

	"github.com/careerboard/careerboard-backend/internal/dto"
	"github.com/careerboard/careerboard-backend/internal/models"
	"github.com/careerboard/careerboard-backend/internal/storage"
	"github.com/careerboard/careerboard-backend/internal/store"
	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound   = errors.New("application not found")
	ErrRoundNotFound         = errors.New("round not found")
	ErrAttachmentNotFound    = errors.New("attachment not found")
	ErrNotOwner              = errors.New("you do not own this application")
	ErrMissingFields         = errors.New("company name and role are required")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidRoundStatus    = errors.New("invalid round status")
	ErrRoundNameRequired     = errors.New("round name is required")
	ErrInvalidAttachmentType = errors.New("attachment type must be resume or jd")
)

// ApplicationService enforces ownership and validation on every operation
// before touching the store. Each call is one load-mutate-save cycle against a
// single record; concurrent writers to the same record are last-write-wins.
type ApplicationService struct {
	store store.ApplicationStore
	blobs storage.BlobStore
}

func NewApplicationService(st store.ApplicationStore, blobs storage.BlobStore) *ApplicationService {
	return &ApplicationService{store: st, blobs: blobs}
}

func (s *ApplicationService) Create(callerID uuid.UUID, req dto.CreateApplicationRequest) (*models.Application, error) {
	companyName := strings.TrimSpace(req.CompanyName)
	role := strings.TrimSpace(req.Role)
	if companyName == "" || role == "" {
		return nil, ErrMissingFields
	}

	status := req.Status
	if status == "" {
		status = models.StatusApplied
	}
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var rounds []models.Round
	if len(req.Rounds) > 0 {
		// Caller-supplied pipeline replaces the default verbatim.
		rounds = make([]models.Round, 0, len(req.Rounds))
		for _, r := range req.Rounds {
			roundStatus := r.Status
			if roundStatus == "" {
				roundStatus = models.RoundPending
			}
			rounds = append(rounds, models.Round{
				ID:     uuid.New(),
				Name:   r.Name,
				Status: roundStatus,
				Notes:  r.Notes,
			})
		}
	} else {
		rounds = models.DefaultPipeline()
	}

	app := &models.Application{
		ID:          uuid.New(),
		OwnerID:     callerID,
		CompanyName: companyName,
		Role:        role,
		Status:      status,
		Notes:       req.Notes,
		Rounds:      rounds,
		Attachments: []models.Attachment{},
		Documents:   []models.Document{},
	}

	if err := s.store.Insert(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) List(callerID uuid.UUID) ([]models.Application, error) {
	return s.store.FindByOwner(callerID)
}

func (s *ApplicationService) Get(callerID, appID uuid.UUID) (*models.Application, error) {
	return s.getOwned(callerID, appID)
}

func (s *ApplicationService) Update(callerID, appID uuid.UUID, req dto.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.getOwned(callerID, appID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		app.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.Role != nil {
		app.Role = strings.TrimSpace(*req.Role)
	}
	if app.CompanyName == "" || app.Role == "" {
		return nil, ErrMissingFields
	}

	if req.Status != nil {
		if !models.IsValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		app.Status = *req.Status
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}
	if req.Rounds != nil {
		rounds := *req.Rounds
		for i := range rounds {
			if rounds[i].ID == uuid.Nil {
				rounds[i].ID = uuid.New()
			}
		}
		app.Rounds = rounds
	}
	if req.Attachments != nil {
		attachments := *req.Attachments
		for i := range attachments {
			if attachments[i].ID == uuid.Nil {
				attachments[i].ID = uuid.New()
			}
		}
		app.Attachments = attachments
	}
	if req.Documents != nil {
		app.Documents = *req.Documents
	}

	if err := s.store.Save(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) Delete(callerID, appID uuid.UUID) error {
	app, err := s.getOwned(callerID, appID)
	if err != nil {
		return err
	}
	return s.store.Delete(app)
}

func (s *ApplicationService) SetStatus(callerID, appID uuid.UUID, status string) (*models.Application, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	app, err := s.getOwned(callerID, appID)
	if err != nil {
		return nil, err
	}

	app.Status = status
	if err := s.store.Save(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) AddRound(callerID, appID uuid.UUID, name string) (*models.Application, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoundNameRequired
	}

	app, err := s.getOwned(callerID, appID)
	if err != nil {
		return nil, err
	}

	app.Rounds = append(app.Rounds, models.Round{
		ID:     uuid.New(),
		Name:   name,
		Status: models.RoundPending,
	})

	if err := s.store.Save(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) SetRoundStatus(callerID, appID, roundID uuid.UUID, status string) (*models.Application, error) {
	if !models.IsValidRoundStatus(status) {
		return nil, ErrInvalidRoundStatus
	}

	app, err := s.getOwned(callerID, appID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range app.Rounds {
		if app.Rounds[i].ID == roundID {
			app.Rounds[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return nil, ErrRoundNotFound
	}

	if err := s.store.Save(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) DeleteRound(callerID, appID, roundID uuid.UUID) (*models.Application, error) {
	app, err := s.getOwned(callerID, appID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range app.Rounds {
		if app.Rounds[i].ID == roundID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrRoundNotFound
	}
	app.Rounds = append(app.Rounds[:idx], app.Rounds[idx+1:]...)

	if err := s.store.Save(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) AddAttachment(callerID, appID uuid.UUID, attachmentType string, data []byte, originalFilename string) (*models.Application, error) {
	if !models.IsValidAttachmentType(attachmentType) {
		return nil, ErrInvalidAttachmentType
	}

	app, err := s.getOwned(callerID, appID)
	if err != nil {
		return nil, err
	}

	filename, url, err := s.blobs.Save(data, originalFilename)
	if err != nil {
		return nil, err
	}

	// Accumulates: an existing attachment of the same type is kept, the most
	// recent upload is the current one.
	app.Attachments = append(app.Attachments, models.Attachment{
		ID:         uuid.New(),
		Type:       attachmentType,
		Filename:   filename,
		URL:        url,
		UploadedAt: time.Now().UTC(),
	})

	if err := s.store.Save(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) DeleteAttachment(callerID, appID, attachmentID uuid.UUID) (*models.Application, error) {
	app, err := s.getOwned(callerID, appID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range app.Attachments {
		if app.Attachments[i].ID == attachmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrAttachmentNotFound
	}

	// Record removal only; the stored blob stays on disk.
	app.Attachments = append(app.Attachments[:idx], app.Attachments[idx+1:]...)

	if err := s.store.Save(app); err != nil {
		return nil, err
	}
	return app, nil
}

// getOwned loads by id first, then compares owners: a missing record is
// NotFound, an existing record with another owner is Forbidden.
func (s *ApplicationService) getOwned(callerID, appID uuid.UUID) (*models.Application, error) {
	app, err := s.store.FindByID(appID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if app.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	return app, nil
}
