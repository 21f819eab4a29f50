package llm

import (
	"context"
	"errors"
	"fmt"

	"zara/zara/utils/logging"

	"go.uber.org/zap"
)

type outcome int

const (
	succeeded outcome = iota
	recoverable
	terminal
)

type attemptResult struct {
	outcome outcome
	text    string
	err     *ProviderError
}

// Result is a successful completion and the model that produced it.
type Result struct {
	Model string
	Text  string
}

// Chain tries candidate models in order and stops at the first one that
// returns content. There is no retry on the same model.
type Chain struct {
	client     Completer
	candidates []string
}

func NewChain(client Completer, candidates []string) *Chain {
	return &Chain{client: client, candidates: candidates}
}

func (c *Chain) Candidates() []string {
	return c.candidates
}

// Complete returns the first non-empty completion, or an *ExhaustedError
// listing every failure.
func (c *Chain) Complete(ctx context.Context, messages []Message) (Result, error) {
	exhausted := &ExhaustedError{}
	for _, model := range c.candidates {
		logging.AppLogger.Info("trying model", zap.String("model", model))
		res := c.attempt(ctx, model, messages)
		switch res.outcome {
		case succeeded:
			logging.AppLogger.Info("model succeeded", zap.String("model", model))
			return Result{Model: model, Text: res.text}, nil
		case recoverable:
			exhausted.Failures = append(exhausted.Failures, res.err)
			if res.err.RateLimited {
				logging.ErrorLogger.Warn("model rate limited", zap.String("model", model), zap.Error(res.err.Err))
			} else {
				logging.ErrorLogger.Error("model failed", zap.String("model", model), zap.Error(res.err.Err))
			}
		case terminal:
			exhausted.Failures = append(exhausted.Failures, res.err)
			logging.ErrorLogger.Error("completion aborted", zap.String("model", model), zap.Error(res.err.Err))
			return Result{}, exhausted
		}
	}
	if len(exhausted.Failures) == 0 {
		exhausted.Failures = append(exhausted.Failures, &ProviderError{Err: errors.New("no candidate models")})
	}
	return Result{}, exhausted
}

func (c *Chain) attempt(ctx context.Context, model string, messages []Message) (res attemptResult) {
	if err := ctx.Err(); err != nil {
		return attemptResult{outcome: terminal, err: &ProviderError{Model: model, Err: err}}
	}
	defer func() {
		if r := recover(); r != nil {
			res = attemptResult{outcome: recoverable, err: &ProviderError{Model: model, Err: fmt.Errorf("panic: %v", r)}}
		}
	}()
	text, err := c.client.Complete(ctx, model, messages)
	if err != nil {
		if ctx.Err() != nil {
			return attemptResult{outcome: terminal, err: &ProviderError{Model: model, Err: err}}
		}
		return attemptResult{outcome: recoverable, err: ClassifyError(err, model)}
	}
	if text == "" {
		return attemptResult{outcome: recoverable, err: &ProviderError{Model: model, Err: ErrEmptyCompletion}}
	}
	return attemptResult{outcome: succeeded, text: text}
}
