package handlers_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copydesk/agent"
	"copydesk/api/dto"
	"copydesk/api/handlers"
	"copydesk/services"
)

type fakeChatService struct {
	result *services.ChatResult
	err    error
	last   services.ChatInput
}

func (f *fakeChatService) Ask(_ context.Context, in services.ChatInput) (*services.ChatResult, error) {
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newQueryRouter(svc handlers.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/query", handlers.QueryHandler(svc))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQueryEmptyInputIsBadRequest(t *testing.T) {
	svc := &fakeChatService{err: services.ErrEmptyInput}
	r := newQueryRouter(svc)

	w := postJSON(t, r, "/api/v1/query", gin.H{"input": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Type)
	assert.Equal(t, "Input cannot be empty", resp.Message)
}

func TestQueryTextResponse(t *testing.T) {
	svc := &fakeChatService{result: &services.ChatResult{
		Type:      agent.KindText,
		Message:   "Rainy mornings, cozy feelings. ☔",
		SessionID: "sess-1",
		UserID:    "user-1",
	}}
	r := newQueryRouter(svc)

	w := postJSON(t, r, "/api/v1/query", gin.H{
		"input":   "Write a 2-line Instagram caption about rainy mornings",
		"user_id": "user-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.TextResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "text", resp.Type)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, "user-1", resp.UserID)

	assert.Equal(t, "user-1", svc.last.UserID)
	assert.Equal(t, "Write a 2-line Instagram caption about rainy mornings", svc.last.Input)
}

func TestQueryImageResponseStreamsPNG(t *testing.T) {
	raw := []byte("fake png bytes")
	svc := &fakeChatService{result: &services.ChatResult{
		Type:      agent.KindImage,
		Message:   "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw),
		SessionID: "sess-1",
		UserID:    "user-1",
	}}
	r := newQueryRouter(svc)

	w := postJSON(t, r, "/api/v1/query", gin.H{"input": "design a poster image"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "sess-1", w.Header().Get("X-Session-Id"))
	assert.Equal(t, "user-1", w.Header().Get("X-User-Id"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")
	assert.Equal(t, raw, w.Body.Bytes())
}

func TestQueryImageDownloadDisposition(t *testing.T) {
	svc := &fakeChatService{result: &services.ChatResult{
		Type:      agent.KindImage,
		Message:   "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png")),
		SessionID: "sess-1",
		UserID:    "user-1",
	}}
	r := newQueryRouter(svc)

	w := postJSON(t, r, "/api/v1/query", gin.H{"input": "design a poster image", "download": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "generated.png")
}

func TestQueryServiceFailureIsServerError(t *testing.T) {
	svc := &fakeChatService{err: assert.AnError}
	r := newQueryRouter(svc)

	w := postJSON(t, r, "/api/v1/query", gin.H{"input": "write an ad"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp dto.ErrorResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Type)
	assert.Contains(t, resp.Message, "Server error")
}

func TestQueryMalformedBodyIsBadRequest(t *testing.T) {
	svc := &fakeChatService{}
	r := newQueryRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
