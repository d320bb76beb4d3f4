package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younsl/rightsizer/pkg/config"
)

func newTestTogether(url string, maxInput int) *TogetherClient {
	return NewTogetherClient(config.SummarizerConfig{
		APIKey:        "test-key",
		Endpoint:      url,
		Model:         config.DefaultTogetherModel,
		MaxTokens:     350,
		MaxInputChars: maxInput,
		Timeout:       5 * time.Second,
	}, logr.Discard())
}

func TestTogetherClient_Summarize(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Two instances are idle."}}]}`))
	}))
	defer server.Close()

	summary, err := newTestTogether(server.URL, 3000).Summarize(context.Background(), "report body")
	require.NoError(t, err)

	assert.Equal(t, "Two instances are idle.", summary)
	assert.Equal(t, config.DefaultTogetherModel, got.Model)
	assert.Equal(t, 350, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "Summarize this document:\nreport body", got.Messages[0].Content)
}

func TestTogetherClient_TruncatesInput(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client := newTestTogether(server.URL, 10).WithPrompt(NotesPrompt)
	_, err := client.Summarize(context.Background(), strings.Repeat("x", 50))
	require.NoError(t, err)

	assert.Equal(t, NotesPrompt+strings.Repeat("x", 10), got.Messages[0].Content)
}

func TestTogetherClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{name: "http error", status: http.StatusUnauthorized, body: `{"error":"bad key"}`, errMsg: "API error 401"},
		{name: "no choices", status: http.StatusOK, body: `{"error":{"message":"model not found"}}`, errMsg: "no choices"},
		{name: "not json", status: http.StatusOK, body: `<html>`, errMsg: "unmarshal response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestTogether(server.URL, 3000).Summarize(context.Background(), "text")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
