package llm

import (
	"context"
	"errors"
	"testing"
)

type scriptedCompleter struct {
	replies map[string]func() (string, error)
	calls   []string
}

func (s *scriptedCompleter) Complete(_ context.Context, model string, _ []Message) (string, error) {
	s.calls = append(s.calls, model)
	if fn, ok := s.replies[model]; ok {
		return fn()
	}
	return "", errors.New("unknown model")
}

func reply(text string) func() (string, error) {
	return func() (string, error) { return text, nil }
}

func fail(msg string) func() (string, error) {
	return func() (string, error) { return "", errors.New(msg) }
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	sc := &scriptedCompleter{replies: map[string]func() (string, error){
		"a": reply("from a"),
		"b": reply("from b"),
	}}
	res, err := NewChain(sc, []string{"a", "b"}).Complete(context.Background(), nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.Text != "from a" || res.Model != "a" {
		t.Errorf("unexpected result %+v", res)
	}
	if len(sc.calls) != 1 {
		t.Errorf("expected a single call, got %v", sc.calls)
	}
}

func TestChainSkipsFailuresAndEmptyContent(t *testing.T) {
	sc := &scriptedCompleter{replies: map[string]func() (string, error){
		"a": fail("boom"),
		"b": reply(""),
		"c": func() (string, error) { panic("driver exploded") },
		"d": reply("from d"),
	}}
	res, err := NewChain(sc, []string{"a", "b", "c", "d"}).Complete(context.Background(), nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.Model != "d" {
		t.Errorf("expected d, got %q", res.Model)
	}
	if len(sc.calls) != 4 {
		t.Errorf("expected 4 calls, got %v", sc.calls)
	}
}

func TestChainExhaustion(t *testing.T) {
	sc := &scriptedCompleter{replies: map[string]func() (string, error){
		"a": fail("error, status code: 429, message: Rate limit exceeded"),
		"b": fail("connection refused"),
	}}
	_, err := NewChain(sc, []string{"a", "b"}).Complete(context.Background(), nil)
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if len(exhausted.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(exhausted.Failures))
	}
	if !exhausted.Failures[0].RateLimited || exhausted.Failures[1].RateLimited {
		t.Errorf("unexpected classification %+v", exhausted.Failures)
	}
	if exhausted.RateLimited() {
		t.Error("last failure was not a rate limit")
	}
}

func TestChainRateLimitedExhaustion(t *testing.T) {
	sc := &scriptedCompleter{replies: map[string]func() (string, error){
		"a": fail("Quota exceeded for today"),
	}}
	_, err := NewChain(sc, []string{"a"}).Complete(context.Background(), nil)
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) || !exhausted.RateLimited() {
		t.Fatalf("expected rate-limited exhaustion, got %v", err)
	}
}

func TestChainCancelledContextIsTerminal(t *testing.T) {
	sc := &scriptedCompleter{replies: map[string]func() (string, error){"a": reply("x")}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewChain(sc, []string{"a", "b"}).Complete(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
	if len(sc.calls) != 0 {
		t.Errorf("expected no provider calls, got %v", sc.calls)
	}
}

func TestUnconfiguredAlwaysFails(t *testing.T) {
	_, err := NewChain(Unconfigured{}, []string{"a"}).Complete(context.Background(), nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
