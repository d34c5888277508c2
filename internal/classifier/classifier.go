package classifier

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"nimbus/internal/logging"
	"nimbus/internal/services"
	"nimbus/internal/services/llm"
	"nimbus/internal/textutil"
)

// Completer sends a prompt to the remote model and returns its reply text.
// *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings configures a Classifier.
type Settings struct {
	Bounds Bounds
	Logger *slog.Logger
}

// Classifier runs the validate, normalize, complete, parse pipeline. It holds
// no mutable state and may be shared between goroutines.
type Classifier struct {
	completer Completer
	bounds    Bounds
	logger    *slog.Logger
}

// New constructs a Classifier. A nil completer is allowed; every valid input
// then classifies as Error.
func New(completer Completer, settings Settings) *Classifier {
	return &Classifier{
		completer: completer,
		bounds:    settings.Bounds.withDefaults(),
		logger:    logging.NewComponentLogger(settings.Logger, "classifier"),
	}
}

// Bounds reports the input limits in force.
func (c *Classifier) Bounds() Bounds {
	return c.bounds
}

// Classify validates text and asks the remote model for its service model.
//
// Only validation failures are returned as errors. Remote failures of any kind
// produce a Result with Category Error so callers always get a well-formed
// value once the input is accepted.
func (c *Classifier) Classify(ctx context.Context, text string) (Result, error) {
	if err := Validate(text, c.bounds); err != nil {
		return Result{}, err
	}

	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	logger := logging.WithContext(ctx, c.logger)

	normalized := textutil.Normalize(text)
	logger.Debug("classification requested",
		logging.Int("text_runes", textutil.RuneLength(text)),
		logging.String("normalized_text", normalized),
	)

	if c.completer == nil {
		logging.WarnWithContext(logger, "classification failed", "classification_failed",
			logging.String(logging.FieldErrorHint, "configure the remote model client"),
			logging.String(logging.FieldImpact, "result reported as Error"),
		)
		return newErrorResult(text, normalized, requestID), nil
	}

	started := time.Now()
	reply, err := c.completer.Complete(ctx, BuildPrompt(text))
	if err != nil {
		logging.WarnWithContext(logger, "classification failed", "classification_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, remoteErrorHint(err)),
			logging.String(logging.FieldImpact, "result reported as Error"),
			logging.Duration("elapsed", time.Since(started)),
		)
		return newErrorResult(text, normalized, requestID), nil
	}

	category := ParseCategory(reply)
	confidence := EstimateConfidence(reply)
	attrs := logging.DecisionAttrs("service_model", category.String(), "reply parsed")
	attrs = append(attrs,
		logging.Float64("confidence", confidence),
		logging.String("reply", reply),
		logging.Duration("elapsed", time.Since(started)),
	)
	logger.Debug("classification complete", logging.Args(attrs...)...)

	return Result{
		Category:       category,
		Confidence:     confidence,
		Scores:         oneHotScores(category),
		OriginalText:   text,
		NormalizedText: normalized,
		Method:         MethodRemote,
		Reply:          reply,
		RequestID:      requestID,
	}, nil
}

func remoteErrorHint(err error) string {
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return "set OPENROUTER_API_KEY or llm.api_key"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "request was cancelled or timed out; raise llm.timeout_seconds if needed"
	}
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "check the API key"
		case http.StatusNotFound:
			return "check llm.base_url and llm.model"
		case http.StatusTooManyRequests:
			return "rate limited by the remote service; try again later"
		}
		return "remote service rejected the request"
	}
	if errors.Is(err, llm.ErrEmptyChoices) || errors.Is(err, llm.ErrMissingContent) {
		return "remote reply had no usable content; check llm.model"
	}
	return "check network connectivity and llm.base_url"
}
