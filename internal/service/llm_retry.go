package service

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
)

const (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 10 * time.Second
)

// StatusError is returned by completers when the provider answered with a
// non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return "llm provider returned status " + strconv.Itoa(e.StatusCode) + ": " + e.Body
}

type retryingCompleter struct {
	next       ChatCompleter
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewRetryingCompleter retries transient failures of next up to maxRetries
// times with jittered exponential backoff.
func NewRetryingCompleter(next ChatCompleter, maxRetries int) ChatCompleter {
	return &retryingCompleter{
		next:       next,
		maxRetries: maxRetries,
		baseDelay:  retryBaseDelay,
		maxDelay:   retryMaxDelay,
		sleep:      sleepContext,
	}
}

func (r *retryingCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		text, err := r.next.Complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if attempt >= r.maxRetries || ctx.Err() != nil || !IsRetryableError(err) {
			return "", lastErr
		}

		delay := r.backoff(attempt, err)
		log.Warn().Err(err).Int("attempt", attempt+1).Dur("delay", delay).Msg("LLM call failed, retrying")
		if err := r.sleep(ctx, delay); err != nil {
			return "", lastErr
		}
	}
}

// Close releases the wrapped completer's client, if it holds one.
func (r *retryingCompleter) Close() error {
	if c, ok := r.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (r *retryingCompleter) backoff(attempt int, err error) time.Duration {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.RetryAfter > 0 {
		if statusErr.RetryAfter > r.maxDelay {
			return r.maxDelay
		}
		return statusErr.RetryAfter
	}
	delay := r.baseDelay << attempt
	if delay <= 0 || delay > r.maxDelay {
		delay = r.maxDelay
	}
	return jitter(delay)
}

func IsRetryableStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

func IsRetryableError(err error) bool {
	if err == nil || errors.Is(err, ErrLLMUnavailable) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return IsRetryableStatus(statusErr.StatusCode)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return IsRetryableStatus(apiErr.Code)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// retryAfter parses the delay-seconds form of the Retry-After header.
func retryAfter(header http.Header) time.Duration {
	ra := strings.TrimSpace(header.Get("Retry-After"))
	if ra == "" {
		return 0
	}
	secs, err := strconv.Atoi(ra)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// jitter spreads d by +/-20%.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	delta := float64(d) * 0.2
	return time.Duration(float64(d) - delta + rand.Float64()*2*delta)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
