package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakeLLM is an httptest chat-completion endpoint with scripted replies.
type FakeLLM struct {
	Server *httptest.Server

	mu      sync.Mutex
	status  int
	reply   func(prompt string) string
	prompts []string
	apiKeys []string
}

// NewFakeLLM starts a server answering every prompt with reply.
func NewFakeLLM(t testing.TB, reply string) *FakeLLM {
	t.Helper()
	return NewFakeLLMFunc(t, func(string) string { return reply })
}

// NewFakeLLMFunc starts a server whose reply depends on the prompt.
func NewFakeLLMFunc(t testing.TB, reply func(prompt string) string) *FakeLLM {
	t.Helper()
	fake := &FakeLLM{status: http.StatusOK, reply: reply}
	fake.Server = httptest.NewServer(http.HandlerFunc(fake.handle))
	t.Cleanup(fake.Server.Close)
	return fake
}

// URL is the endpoint to place in llm.base_url.
func (f *FakeLLM) URL() string {
	return f.Server.URL + "/api/v1/chat/completions"
}

// FailWith makes subsequent requests return status with a short error body.
func (f *FakeLLM) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Prompts returns the prompts received so far.
func (f *FakeLLM) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// Requests reports how many requests reached the server.
func (f *FakeLLM) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.apiKeys)
}

// LastAuthorization returns the Authorization header of the latest request.
func (f *FakeLLM) LastAuthorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.apiKeys) == 0 {
		return ""
	}
	return f.apiKeys[len(f.apiKeys)-1]
}

func (f *FakeLLM) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var payload struct {
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	_ = json.Unmarshal(body, &payload)
	prompt := ""
	if len(payload.Messages) > 0 {
		prompt = payload.Messages[len(payload.Messages)-1].Content
	}

	f.mu.Lock()
	f.apiKeys = append(f.apiKeys, r.Header.Get("Authorization"))
	f.prompts = append(f.prompts, prompt)
	status := f.status
	reply := f.reply
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"message":"scripted failure"}}`))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{"role": "assistant", "content": reply(prompt)},
			},
		},
	})
}
