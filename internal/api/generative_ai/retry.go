package generativeAI

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingGenerator struct {
	base   TextGenerator
	delay  time.Duration
	logger *slog.Logger
}

// NewRetryingGenerator retries a failed call once when the failure looks
// transient.
func NewRetryingGenerator(base TextGenerator, logger *slog.Logger) TextGenerator {
	return &retryingGenerator{base: base, delay: retryBaseDelay, logger: logger}
}

func (r *retryingGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, err := r.base.GenerateText(ctx, prompt)
	if err == nil || !shouldRetry(err) || ctx.Err() != nil {
		return text, err
	}

	r.logger.WarnContext(ctx, "Retrying text generation", slog.Int("attempt", 1), slog.Any("error", err))
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return r.base.GenerateText(ctx, prompt)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= http.StatusInternalServerError || apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return geminiErr.Code >= http.StatusInternalServerError || geminiErr.Code == http.StatusTooManyRequests
	}

	msg := strings.ToLower(err.Error())
	for _, transient := range []string{"connection reset", "connection refused", "broken pipe", "tls handshake timeout", "eof"} {
		if strings.Contains(msg, transient) {
			return true
		}
	}
	return false
}
