package classifier_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus/internal/classifier"
	"nimbus/internal/services/llm"
)

type fakeCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func assertScores(t *testing.T, result classifier.Result, hot classifier.Category) {
	t.Helper()
	require.Len(t, result.Scores, 4)
	for _, model := range classifier.ServiceModels {
		want := 0.0
		if model == hot {
			want = 1.0
		}
		assert.Equal(t, want, result.Scores[model], "score for %s", model)
	}
}

func TestClassifyDecisiveReply(t *testing.T) {
	completer := &fakeCompleter{reply: "IaaS"}
	c := classifier.New(completer, classifier.Settings{})

	result, err := c.Classify(context.Background(), "Amazon EC2: servidores virtuales en la nube!")
	require.NoError(t, err)

	assert.Equal(t, classifier.IaaS, result.Category)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, classifier.MethodRemote, result.Method)
	assert.Equal(t, "Amazon EC2: servidores virtuales en la nube!", result.OriginalText)
	assert.Equal(t, "amazon ec2 servidores virtuales en la nube", result.NormalizedText)
	assert.Equal(t, "IaaS", result.Reply)
	assert.NotEmpty(t, result.RequestID)
	assertScores(t, result, classifier.IaaS)

	require.Equal(t, 1, completer.calls())
	assert.Contains(t, completer.prompts[0], "Amazon EC2: servidores virtuales en la nube!")
}

func TestClassifyHedgedReply(t *testing.T) {
	completer := &fakeCompleter{reply: "This could be IaaS or possibly PaaS depending on context"}
	c := classifier.New(completer, classifier.Settings{})

	result, err := c.Classify(context.Background(), "some hosting product")
	require.NoError(t, err)
	assert.Equal(t, classifier.IaaS, result.Category)
	assert.Equal(t, 0.5, result.Confidence)
	assertScores(t, result, classifier.IaaS)
}

func TestClassifyUndeterminedReply(t *testing.T) {
	completer := &fakeCompleter{reply: "I cannot tell from that description."}
	c := classifier.New(completer, classifier.Settings{})

	result, err := c.Classify(context.Background(), "Servicio de nube para aplicaciones")
	require.NoError(t, err)
	assert.Equal(t, classifier.Undetermined, result.Category)
	assert.Equal(t, classifier.MethodRemote, result.Method)
	assert.False(t, result.Failed())
	assertScores(t, result, classifier.Undetermined)
}

func TestClassifyRemoteFailureBecomesErrorResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing key", llm.ErrMissingAPIKey},
		{"status", &llm.StatusError{StatusCode: http.StatusUnauthorized, Body: "nope"}},
		{"transport", errors.New("connection refused")},
		{"cancelled", context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{err: tt.err}
			c := classifier.New(completer, classifier.Settings{})

			result, err := c.Classify(context.Background(), "Heroku para aplicaciones")
			require.NoError(t, err)
			assert.Equal(t, classifier.Error, result.Category)
			assert.Equal(t, 0.0, result.Confidence)
			assert.Equal(t, classifier.MethodError, result.Method)
			assert.Empty(t, result.Reply)
			assert.True(t, result.Failed())
			assertScores(t, result, classifier.Error)
		})
	}
}

func TestClassifyWithoutCompleter(t *testing.T) {
	c := classifier.New(nil, classifier.Settings{})
	result, err := c.Classify(context.Background(), "Salesforce CRM")
	require.NoError(t, err)
	assert.Equal(t, classifier.Error, result.Category)
}

func TestClassifyValidationSkipsRemoteCall(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  classifier.ValidationKind
	}{
		{"empty", "", classifier.EmptyInput},
		{"blank", "    ", classifier.EmptyInput},
		{"two characters", "ab", classifier.TooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{reply: "IaaS"}
			c := classifier.New(completer, classifier.Settings{})

			_, err := c.Classify(context.Background(), tt.input)
			var validationErr *classifier.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.want, validationErr.Kind)
			assert.ErrorIs(t, err, classifier.ErrValidation)
			assert.Zero(t, completer.calls())
		})
	}
}

func TestClassifyHonoursBounds(t *testing.T) {
	completer := &fakeCompleter{reply: "SaaS"}
	c := classifier.New(completer, classifier.Settings{Bounds: classifier.Bounds{MinLength: 10, MaxLength: 20}})
	assert.Equal(t, classifier.Bounds{MinLength: 10, MaxLength: 20}, c.Bounds())

	_, err := c.Classify(context.Background(), "Slack app")
	assert.ErrorIs(t, err, classifier.ErrValidation)

	_, err = c.Classify(context.Background(), "Slack para equipos de trabajo")
	assert.ErrorIs(t, err, classifier.ErrValidation)
	assert.Zero(t, completer.calls())
}

func TestClassifyLogsRemoteFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	completer := &fakeCompleter{err: llm.ErrMissingAPIKey}
	c := classifier.New(completer, classifier.Settings{Logger: logger})

	result, err := c.Classify(context.Background(), "Google Cloud Storage")
	require.NoError(t, err)

	var warn map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["level"] == "WARN" {
			warn = entry
		}
	}
	require.NotNil(t, warn, "expected a warning entry in %s", buf.String())
	assert.Equal(t, "classifier", warn["component"])
	assert.Equal(t, "classification_failed", warn["event_type"])
	assert.Equal(t, "set OPENROUTER_API_KEY or llm.api_key", warn["error_hint"])
	assert.Equal(t, result.RequestID, warn["correlation_id"])
}

func TestClassifyOverHTTP(t *testing.T) {
	reply := "SaaS"
	status := http.StatusOK
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"boom"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": reply}}},
		})
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{
		APIKey:      "test",
		BaseURL:     server.URL,
		Model:       "deepseek/deepseek-chat",
		MaxTokens:   50,
		Temperature: 0.1,
	})
	c := classifier.New(client, classifier.Settings{})

	t.Run("success", func(t *testing.T) {
		result, err := c.Classify(context.Background(), "Office 365 para productividad")
		require.NoError(t, err)
		assert.Equal(t, classifier.SaaS, result.Category)
		assert.Equal(t, 0.9, result.Confidence)
	})

	t.Run("server error", func(t *testing.T) {
		status = http.StatusInternalServerError
		before := requests
		result, err := c.Classify(context.Background(), "Office 365 para productividad")
		require.NoError(t, err)
		assert.Equal(t, classifier.Error, result.Category)
		assert.Equal(t, 0.0, result.Confidence)
		assert.Equal(t, classifier.MethodError, result.Method)
		assert.Equal(t, 1, requests-before)
	})
}

func TestClassifyConcurrentUse(t *testing.T) {
	completer := &fakeCompleter{reply: "FaaS"}
	c := classifier.New(completer, classifier.Settings{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := c.Classify(context.Background(), "AWS Lambda functions")
			assert.NoError(t, err)
			assert.Equal(t, classifier.FaaS, result.Category)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, completer.calls())
}

func TestClassifyMissingReplyContentIsError(t *testing.T) {
	bodies := map[string]string{
		"choice without message":  `{"choices":[{}]}`,
		"message without content": `{"choices":[{"message":{"role":"assistant"}}]}`,
		"null content":            `{"choices":[{"message":{"content":null}}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			client := llm.NewClient(llm.Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
			c := classifier.New(client, classifier.Settings{})

			result, err := c.Classify(context.Background(), "Google App Engine")
			require.NoError(t, err)
			assert.Equal(t, classifier.Error, result.Category)
			assert.Equal(t, 0.0, result.Confidence)
			assert.Equal(t, classifier.MethodError, result.Method)
			assertScores(t, result, classifier.Error)
		})
	}
}

func TestClassifyExplicitEmptyReplyIsUndetermined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	c := classifier.New(client, classifier.Settings{})

	result, err := c.Classify(context.Background(), "Google App Engine")
	require.NoError(t, err)
	assert.Equal(t, classifier.Undetermined, result.Category)
	assert.Equal(t, classifier.MethodRemote, result.Method)
}
