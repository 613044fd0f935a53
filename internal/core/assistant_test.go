package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriLogo/internal/config"
)

func fakeCompletions(t *testing.T, message map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		tools, _ := req["tools"].([]interface{})
		if len(tools) != 1 {
			http.Error(w, fmt.Sprintf("expected one tool, got %d", len(tools)), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test",
			"choices": []interface{}{map[string]interface{}{
				"index":         0,
				"message":       message,
				"finish_reason": "stop",
			}},
		})
	}))
}

func assistantFor(t *testing.T, url string) *Assistant {
	t.Helper()
	cfg := config.Default()
	profile := cfg.Profiles["default"]
	profile.APIKey = "test-key"
	profile.BaseURL = url + "/v1"
	cfg.Profiles["default"] = profile
	require.NoError(t, cfg.Use("default"))

	a := NewAssistant(cfg)
	require.NotNil(t, a)
	return a
}

func TestAssistantDrawToolCall(t *testing.T) {
	server := fakeCompletions(t, map[string]interface{}{
		"role":    "assistant",
		"content": "",
		"tool_calls": []interface{}{map[string]interface{}{
			"id":   "call_1",
			"type": "function",
			"function": map[string]interface{}{
				"name":      "draw",
				"arguments": `{"source":"repeat 4 [fd 50 rt 90]"}`,
			},
		}},
	})
	defer server.Close()

	source, err := assistantFor(t, server.URL).Draw(context.Background(), "a square")
	require.NoError(t, err)
	assert.Equal(t, "repeat 4 [fd 50 rt 90]", source)
}

func TestAssistantRejectsInvalidLogo(t *testing.T) {
	server := fakeCompletions(t, map[string]interface{}{
		"role": "assistant",
		"tool_calls": []interface{}{map[string]interface{}{
			"id":   "call_1",
			"type": "function",
			"function": map[string]interface{}{
				"name":      "draw",
				"arguments": `{"source":"paint it red"}`,
			},
		}},
	})
	defer server.Close()

	_, err := assistantFor(t, server.URL).Draw(context.Background(), "something")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Logo")
}

func TestAssistantPlainTextFallback(t *testing.T) {
	server := fakeCompletions(t, map[string]interface{}{
		"role":    "assistant",
		"content": "`fd 20 rt 120`",
	})
	defer server.Close()

	source, err := assistantFor(t, server.URL).Draw(context.Background(), "a line")
	require.NoError(t, err)
	assert.Equal(t, "fd 20 rt 120", source)
}

func TestAssistantNoDrawing(t *testing.T) {
	server := fakeCompletions(t, map[string]interface{}{
		"role":    "assistant",
		"content": "I cannot draw that.",
	})
	defer server.Close()

	_, err := assistantFor(t, server.URL).Draw(context.Background(), "a feeling")
	assert.ErrorIs(t, err, ErrNoDrawing)
}

func TestNewAssistantWithoutKey(t *testing.T) {
	assert.Nil(t, NewAssistant(config.Default()))
}
