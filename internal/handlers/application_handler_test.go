package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerboard/careerboard-backend/internal/config"
	"github.com/careerboard/careerboard-backend/internal/handlers"
	"github.com/careerboard/careerboard-backend/internal/models"
	"github.com/careerboard/careerboard-backend/internal/routes"
	"github.com/careerboard/careerboard-backend/internal/services"
	"github.com/careerboard/careerboard-backend/internal/storage"
	"github.com/careerboard/careerboard-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:     testSecret,
		UploadDir:     t.TempDir(),
		MaxUploadSize: 10 * 1024 * 1024,
	}

	blobs, err := storage.NewLocalStore(cfg.UploadDir, "/uploads", cfg.MaxUploadSize)
	require.NoError(t, err)

	applicationService := services.NewApplicationService(store.NewMemoryStore(), blobs)

	authService := services.NewAuthService(store.NewMemoryAuthStore(), cfg)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	applicationHandler := handlers.NewApplicationHandler(applicationService, cfg.MaxUploadSize)

	app := fiber.New()
	routes.Setup(app, cfg, authHandler, healthHandler, applicationHandler)
	return app
}

func bearerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeApplication(t *testing.T, resp *http.Response) models.Application {
	t.Helper()
	var app models.Application
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&app))
	return app
}

func createApplication(t *testing.T, app *fiber.App, token string) models.Application {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/applications", token, fiber.Map{
		"company_name": "Acme",
		"role":         "Engineer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeApplication(t, resp)
}

func TestApplications_RequireAuth(t *testing.T) {
	app := newTestApp(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/applications"},
		{http.MethodGet, "/applications"},
		{http.MethodGet, "/applications/" + uuid.NewString()},
		{http.MethodPut, "/applications/" + uuid.NewString()},
		{http.MethodDelete, "/applications/" + uuid.NewString()},
		{http.MethodPatch, "/applications/" + uuid.NewString() + "/status"},
	} {
		resp := doJSON(t, app, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestCreateApplication(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t, uuid.New())

	created := createApplication(t, app, token)
	assert.Equal(t, "Acme", created.CompanyName)
	assert.Equal(t, models.StatusApplied, created.Status)
	assert.Len(t, created.Rounds, 5)
}

func TestCreateApplication_MissingFields(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t, uuid.New())

	resp := doJSON(t, app, http.MethodPost, "/applications", token, fiber.Map{
		"company_name": "Acme",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetApplication_OwnershipStatuses(t *testing.T) {
	app := newTestApp(t)
	owner := bearerToken(t, uuid.New())
	intruder := bearerToken(t, uuid.New())

	created := createApplication(t, app, owner)

	resp := doJSON(t, app, http.MethodGet, "/applications/"+created.ID.String(), owner, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/applications/"+created.ID.String(), intruder, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/applications/"+uuid.NewString(), owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListApplications_OwnerScoped(t *testing.T) {
	app := newTestApp(t)
	owner := bearerToken(t, uuid.New())
	other := bearerToken(t, uuid.New())

	createApplication(t, app, owner)
	createApplication(t, app, owner)
	createApplication(t, app, other)

	resp := doJSON(t, app, http.MethodGet, "/applications", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.Application
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 2)
}

func TestUpdateApplication(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t, uuid.New())
	created := createApplication(t, app, token)

	resp := doJSON(t, app, http.MethodPut, "/applications/"+created.ID.String(), token, fiber.Map{
		"company_name": "Globex",
		"notes":        "second interview scheduled",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decodeApplication(t, resp)
	assert.Equal(t, "Globex", updated.CompanyName)
	assert.Equal(t, "Engineer", updated.Role)
	assert.Equal(t, "second interview scheduled", updated.Notes)
}

func TestDeleteApplication(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t, uuid.New())
	created := createApplication(t, app, token)

	resp := doJSON(t, app, http.MethodDelete, "/applications/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/applications/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSetStatus(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t, uuid.New())
	created := createApplication(t, app, token)

	resp := doJSON(t, app, http.MethodPatch, "/applications/"+created.ID.String()+"/status", token, fiber.Map{
		"status": "Offered",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Offered", decodeApplication(t, resp).Status)

	resp = doJSON(t, app, http.MethodPatch, "/applications/"+created.ID.String()+"/status", token, fiber.Map{
		"status": "Ghosted",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoundLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t, uuid.New())
	created := createApplication(t, app, token)
	base := "/applications/" + created.ID.String()

	// Empty name rejected.
	resp := doJSON(t, app, http.MethodPost, base+"/rounds", token, fiber.Map{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, base+"/rounds", token, fiber.Map{"name": "System Design"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	withRound := decodeApplication(t, resp)
	require.Len(t, withRound.Rounds, 6)
	roundID := withRound.Rounds[5].ID

	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("%s/rounds/%s", base, roundID), token, fiber.Map{
		"status": "Passed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Passed", decodeApplication(t, resp).Rounds[5].Status)

	// Unknown round id.
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("%s/rounds/%s", base, uuid.NewString()), token, fiber.Map{
		"status": "Passed",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("%s/rounds/%s", base, roundID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeApplication(t, resp).Rounds, 5)
}

func multipartUpload(t *testing.T, attachmentType, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("type", attachmentType))
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestAttachmentLifecycle(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()
	token := bearerToken(t, userID)
	created := createApplication(t, app, token)
	base := "/applications/" + created.ID.String()

	body, contentType := multipartUpload(t, "resume", "resume.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, base+"/attachments", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	uploaded := decodeApplication(t, resp)
	require.Len(t, uploaded.Attachments, 1)
	att := uploaded.Attachments[0]
	assert.Equal(t, "resume", att.Type)
	assert.Contains(t, att.URL, "/uploads/")

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("%s/attachments/%s", base, att.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeApplication(t, resp).Attachments, 0)

	resp = doJSON(t, app, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeApplication(t, resp).Attachments, 0)
}

func TestAttachment_InvalidType(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t, uuid.New())
	created := createApplication(t, app, token)

	body, contentType := multipartUpload(t, "cover-letter", "cl.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/applications/"+created.ID.String()+"/attachments", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
