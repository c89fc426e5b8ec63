package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"luma-chat-be/internal/dto"
	"luma-chat-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	res *dto.ChatResponse
	err error
}

func (s *stubChatService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

type stubPublisherService struct {
	err       error
	published int
}

func (s *stubPublisherService) PublishReindexRequest(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.published++
	return nil
}

func newTestApp(chatSvc *stubChatService, pubSvc *stubPublisherService) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	NewChatController(chatSvc, pubSvc).RegisterRoutes(api)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))

	return resp.StatusCode, parsed
}

func TestChatEndpointSuccess(t *testing.T) {
	chatSvc := &stubChatService{res: &dto.ChatResponse{
		Response:         "a supportive reply",
		DetectedIntent:   "study_anxiety",
		RetrievedContext: "Pomodoro",
		SessionId:        "sess-1",
	}}
	app := newTestApp(chatSvc, &stubPublisherService{})

	status, body := postJSON(t, app, "/api/v1/chat", dto.ChatRequest{Message: "exam tomorrow", SessionId: "sess-1"})

	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(200), body["code"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "a supportive reply", data["response"])
	assert.Equal(t, "study_anxiety", data["detected_intent"])
}

func TestChatEndpointUnavailableMapsTo503(t *testing.T) {
	chatSvc := &stubChatService{err: llm.ErrUnavailable}
	app := newTestApp(chatSvc, &stubPublisherService{})

	status, body := postJSON(t, app, "/api/v1/chat", dto.ChatRequest{Message: "hello"})

	assert.Equal(t, 503, status)
	assert.Equal(t, false, body["success"])
}

func TestChatEndpointOtherErrorsMapTo500(t *testing.T) {
	chatSvc := &stubChatService{err: context.DeadlineExceeded}
	app := newTestApp(chatSvc, &stubPublisherService{})

	status, _ := postJSON(t, app, "/api/v1/chat", dto.ChatRequest{Message: "hello"})

	assert.Equal(t, 500, status)
}

func TestChatEndpointRejectsMissingMessage(t *testing.T) {
	app := newTestApp(&stubChatService{}, &stubPublisherService{})

	status, _ := postJSON(t, app, "/api/v1/chat", map[string]string{"session_id": "s"})

	assert.Equal(t, 400, status)
}

func TestReindexEndpointQueues(t *testing.T) {
	pubSvc := &stubPublisherService{}
	app := newTestApp(&stubChatService{}, pubSvc)

	status, body := postJSON(t, app, "/api/v1/kb/reindex", map[string]string{})

	assert.Equal(t, 202, status)
	assert.Equal(t, float64(202), body["code"], "envelope code should match the HTTP status")
	assert.Equal(t, 1, pubSvc.published)
}
