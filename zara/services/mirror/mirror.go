// Package mirror copies registrations and chat exchanges to secondary
// stores. Callers treat every failure as log-only.
package mirror

import (
	"context"
	"errors"
	"time"
)

const GuestLabel = "Guest"

type Registration struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Exchange struct {
	UserEmail   string    `json:"user_email"`
	UserMessage string    `json:"user_message"`
	BotReply    string    `json:"bot_reply"`
	CreatedAt   time.Time `json:"created_at"`
}

type Sink interface {
	RecordRegistration(ctx context.Context, r Registration) error
	RecordExchange(ctx context.Context, e Exchange) error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRegistration(context.Context, Registration) error { return nil }
func (Nop) RecordExchange(context.Context, Exchange) error         { return nil }

// Multi writes to each sink in turn and joins their errors.
type Multi []Sink

func (m Multi) RecordRegistration(ctx context.Context, r Registration) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.RecordRegistration(ctx, r))
	}
	return errors.Join(errs...)
}

func (m Multi) RecordExchange(ctx context.Context, e Exchange) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.RecordExchange(ctx, e))
	}
	return errors.Join(errs...)
}

// Combine returns Nop for no sinks, the sink itself for one, Multi otherwise.
func Combine(sinks ...Sink) Sink {
	switch len(sinks) {
	case 0:
		return Nop{}
	case 1:
		return sinks[0]
	default:
		return Multi(sinks)
	}
}
