package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ProviderError is one failed attempt against a candidate model.
type ProviderError struct {
	Model       string
	RateLimited bool
	Err         error
}

func (e *ProviderError) Error() string {
	kind := "provider error"
	if e.RateLimited {
		kind = "rate limited"
	}
	return fmt.Sprintf("%s: %s: %v", e.Model, kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ExhaustedError is returned when no candidate produced content.
type ExhaustedError struct {
	Failures []*ProviderError
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return "all candidate models failed: " + strings.Join(parts, "; ")
}

// RateLimited reports whether the final recorded failure was a quota or
// rate-limit rejection.
func (e *ExhaustedError) RateLimited() bool {
	if len(e.Failures) == 0 {
		return false
	}
	return e.Failures[len(e.Failures)-1].RateLimited
}

func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// ClassifyError tags err with the model it came from and whether it is a
// rate-limit/quota condition.
func ClassifyError(err error, model string) *ProviderError {
	return &ProviderError{Model: model, RateLimited: isRateLimited(err), Err: err}
}

func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota")
}
