package handlers

import (
	"errors"
	"io"

	"github.com/careerboard/careerboard-backend/internal/auth"
	"github.com/careerboard/careerboard-backend/internal/dto"
	"github.com/careerboard/careerboard-backend/internal/services"
	"github.com/careerboard/careerboard-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	service       *services.ApplicationService
	maxUploadSize int64
}

func NewApplicationHandler(service *services.ApplicationService, maxUploadSize int64) *ApplicationHandler {
	return &ApplicationHandler{service: service, maxUploadSize: maxUploadSize}
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	app, err := h.service.Create(callerID, req)
	if err != nil {
		return h.serviceError(c, err, "Failed to create application")
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	apps, err := h.service.List(callerID)
	if err != nil {
		return h.serviceError(c, err, "Failed to fetch applications")
	}

	return c.JSON(apps)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID")
	}

	app, err := h.service.Get(callerID, appID)
	if err != nil {
		return h.serviceError(c, err, "Failed to fetch application")
	}

	return c.JSON(app)
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID")
	}

	var req dto.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	app, err := h.service.Update(callerID, appID, req)
	if err != nil {
		return h.serviceError(c, err, "Failed to update application")
	}

	return c.JSON(app)
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID")
	}

	if err := h.service.Delete(callerID, appID); err != nil {
		return h.serviceError(c, err, "Failed to delete application")
	}

	return c.JSON(dto.DeleteApplicationResponse{Message: "Application deleted"})
}

func (h *ApplicationHandler) SetStatus(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID")
	}

	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	app, err := h.service.SetStatus(callerID, appID, req.Status)
	if err != nil {
		return h.serviceError(c, err, "Failed to update status")
	}

	return c.JSON(app)
}

func (h *ApplicationHandler) AddRound(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID")
	}

	var req dto.AddRoundRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	app, err := h.service.AddRound(callerID, appID, req.Name)
	if err != nil {
		return h.serviceError(c, err, "Failed to add round")
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) SetRoundStatus(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID")
	}

	roundID, err := uuid.Parse(c.Params("roundId"))
	if err != nil {
		return badRequest(c, "Invalid round ID")
	}

	var req dto.RoundStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	app, err := h.service.SetRoundStatus(callerID, appID, roundID, req.Status)
	if err != nil {
		return h.serviceError(c, err, "Failed to update round")
	}

	return c.JSON(app)
}

func (h *ApplicationHandler) DeleteRound(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID")
	}

	roundID, err := uuid.Parse(c.Params("roundId"))
	if err != nil {
		return badRequest(c, "Invalid round ID")
	}

	app, err := h.service.DeleteRound(callerID, appID, roundID)
	if err != nil {
		return h.serviceError(c, err, "Failed to delete round")
	}

	return c.JSON(app)
}

func (h *ApplicationHandler) AddAttachment(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID")
	}

	attachmentType := c.FormValue("type")

	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "File is required")
	}
	if file.Size > h.maxUploadSize {
		return badRequest(c, "File exceeds the maximum upload size")
	}

	f, err := file.Open()
	if err != nil {
		return internalError(c, "Failed to read file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return internalError(c, "Failed to read file data")
	}

	app, err := h.service.AddAttachment(callerID, appID, attachmentType, data, file.Filename)
	if err != nil {
		return h.serviceError(c, err, "Failed to upload attachment")
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) DeleteAttachment(c *fiber.Ctx) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application ID")
	}

	attachmentID, err := uuid.Parse(c.Params("attachmentId"))
	if err != nil {
		return badRequest(c, "Invalid attachment ID")
	}

	app, err := h.service.DeleteAttachment(callerID, appID, attachmentID)
	if err != nil {
		return h.serviceError(c, err, "Failed to delete attachment")
	}

	return c.JSON(app)
}

// serviceError maps service sentinel errors onto HTTP statuses. Anything not
// recognized is a store failure and surfaces as an opaque 500.
func (h *ApplicationHandler) serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrRoundNotFound),
		errors.Is(err, services.ErrAttachmentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidRoundStatus),
		errors.Is(err, services.ErrRoundNameRequired),
		errors.Is(err, services.ErrInvalidAttachmentType),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrEmptyFile),
		errors.Is(err, storage.ErrEmptyFilename):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return internalError(c, fallback)
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
