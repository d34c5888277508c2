package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"nimbus/internal/services/llm"
)

// LLMTimeout bounds the remote health request.
const LLMTimeout = 30 * time.Second

// CheckLLM verifies that the chat-completion API is reachable and the key is
// accepted. It makes a single attempt.
func CheckLLM(ctx context.Context, name string, client *llm.Client) Result {
	if client == nil {
		return Result{Name: name, Detail: "client not configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, LLMTimeout)
	defer cancel()

	started := time.Now()
	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeLLMError(err)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("responded in %s", time.Since(started).Round(time.Millisecond)),
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeLLMError(err error) string {
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return "API key missing"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("http %d", statusErr.StatusCode)
	}
	return err.Error()
}
