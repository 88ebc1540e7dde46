package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"ai-notes-be/internal/pkg/serverutils"
	"ai-notes-be/internal/repository/memory"
	"ai-notes-be/internal/service"
	"ai-notes-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

const testSecret = "controller-test-secret"

func newTestApp(t *testing.T, provider llm.LLMProvider) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	factory := memory.NewRepositoryFactory()
	noteService := service.NewNoteService(factory, nil)
	aiService := service.NewAiService(provider, factory, nil, nil)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nopLogger{}))

	api := app.Group("/api")
	NewNoteController(noteService).RegisterRoutes(api)
	NewAiController(aiService).RegisterRoutes(api)

	return app
}

func signToken(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope), string(raw))
	}
	return resp, envelope
}

func TestNotesRequireAuthentication(t *testing.T) {
	app := newTestApp(t, nil)

	resp, envelope := doJSON(t, app, "GET", "/api/notes", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
	assert.NotEmpty(t, envelope["error"])
}

func TestCreateNoteEnvelope(t *testing.T) {
	app := newTestApp(t, nil)
	token := signToken(t, uuid.New())

	resp, envelope := doJSON(t, app, "POST", "/api/notes", token, map[string]interface{}{
		"title":   "First note",
		"content": "Hello from the API test",
		"tags":    []string{" Mixed ", "mixed"},
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "First note", data["title"])
	assert.Equal(t, "other", data["category"])
	assert.Equal(t, "#ffffff", data["color"])
	assert.Equal(t, []interface{}{"mixed"}, data["tags"])
	assert.NotEmpty(t, data["formattedDate"])
}

func TestCreateNoteValidation(t *testing.T) {
	app := newTestApp(t, nil)
	token := signToken(t, uuid.New())

	resp, envelope := doJSON(t, app, "POST", "/api/notes", token, map[string]interface{}{
		"content": "missing title",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Validation failed", envelope["error"])
	assert.NotEmpty(t, envelope["details"])

	resp, _ = doJSON(t, app, "POST", "/api/notes", token, map[string]interface{}{
		"title":   "bad color",
		"content": "content",
		"color":   "#fff",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStatsRouteIsNotShadowedByIdRoute(t *testing.T) {
	app := newTestApp(t, nil)
	token := signToken(t, uuid.New())

	resp, envelope := doJSON(t, app, "GET", "/api/notes/stats", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	assert.Contains(t, data, "totalNotes")
	assert.Contains(t, data, "categoryStats")
}

func TestShowNoteStatuses(t *testing.T) {
	app := newTestApp(t, nil)
	ownerToken := signToken(t, uuid.New())
	strangerToken := signToken(t, uuid.New())

	_, created := doJSON(t, app, "POST", "/api/notes", ownerToken, map[string]interface{}{
		"title":   "mine",
		"content": "owner content",
	})
	noteId := created["data"].(map[string]interface{})["id"].(string)

	resp, _ := doJSON(t, app, "GET", "/api/notes/"+noteId, ownerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/notes/"+noteId, strangerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/notes/"+uuid.NewString(), ownerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// A malformed id cannot match any note.
	resp, _ = doJSON(t, app, "GET", "/api/notes/not-a-uuid", ownerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTogglePinEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	token := signToken(t, uuid.New())

	_, created := doJSON(t, app, "POST", "/api/notes", token, map[string]interface{}{
		"title":   "pin me",
		"content": "content",
	})
	noteId := created["data"].(map[string]interface{})["id"].(string)

	resp, envelope := doJSON(t, app, "PATCH", "/api/notes/"+noteId+"/pin", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, envelope["data"].(map[string]interface{})["isPinned"])

	resp, envelope = doJSON(t, app, "PATCH", "/api/notes/"+noteId+"/pin", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, envelope["data"].(map[string]interface{})["isPinned"])
}

func TestListNotesPaginationEnvelope(t *testing.T) {
	app := newTestApp(t, nil)
	token := signToken(t, uuid.New())

	for i := 0; i < 12; i++ {
		doJSON(t, app, "POST", "/api/notes", token, map[string]interface{}{
			"title":   fmt.Sprintf("note %d", i),
			"content": "content",
		})
	}

	resp, envelope := doJSON(t, app, "GET", "/api/notes?page=2&limit=5", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	pagination := envelope["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, pagination["currentPage"])
	assert.EqualValues(t, 3, pagination["totalPages"])
	assert.EqualValues(t, 12, pagination["totalItems"])
	assert.EqualValues(t, 5, pagination["itemsPerPage"])
	assert.Len(t, envelope["data"].([]interface{}), 5)
}

func TestAiSummarizeEndpoint(t *testing.T) {
	app := newTestApp(t, &stubLLM{response: "A short summary."})
	token := signToken(t, uuid.New())

	resp, envelope := doJSON(t, app, "POST", "/api/ai/summarize", token, map[string]interface{}{
		"content": "This content is definitely long enough to summarize.",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "A short summary.", data["summary"])

	// Too-short content fails validation before the provider is reached.
	resp, _ = doJSON(t, app, "POST", "/api/ai/summarize", token, map[string]interface{}{
		"content": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAiQuotaSurfacesAs429(t *testing.T) {
	app := newTestApp(t, &stubLLM{err: fmt.Errorf("%w: out of credits", llm.ErrQuotaExceeded)})
	token := signToken(t, uuid.New())

	resp, envelope := doJSON(t, app, "POST", "/api/ai/tags", token, map[string]interface{}{
		"content": "This content is definitely long enough to tag properly.",
	})
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}
