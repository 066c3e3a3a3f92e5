// Package mail delivers recovery codes to account email addresses.
//
// Delivery runs on a background worker so the request path never blocks on a
// mail transport. The shipped transport writes to the structured log, which
// is what development and CI environments use; a real SMTP transport plugs in
// behind the same Transport func.
package mail

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

const queueBuffer = 64

var ErrQueueFull = errors.New("mail queue full")

type message struct {
	email string
	code  string
}

// Transport performs the actual delivery of one code.
type Transport func(ctx context.Context, email, code string) error

// Sender queues OTP mail and delivers it on a single background worker,
// preserving per-enqueue ordering.
type Sender struct {
	queue     chan message
	transport Transport
	log       zerolog.Logger
}

// NewSender creates a Sender. A nil transport falls back to log delivery.
func NewSender(transport Transport, log zerolog.Logger) *Sender {
	s := &Sender{
		queue:     make(chan message, queueBuffer),
		transport: transport,
		log:       log,
	}
	if s.transport == nil {
		s.transport = s.logTransport
	}
	return s
}

// Start launches the delivery worker. The worker stops when ctx is cancelled.
func (s *Sender) Start(ctx context.Context) {
	go s.run(ctx)
}

// Send enqueues a code for delivery. It never blocks; when the queue is full
// the caller gets ErrQueueFull and the request fails rather than stalls.
func (s *Sender) Send(_ context.Context, email, code string) error {
	select {
	case s.queue <- message{email: email, code: code}:
		return nil
	default:
		return ErrQueueFull
	}
}

func (s *Sender) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.queue:
			if !ok {
				return
			}
			if err := s.transport(ctx, msg.email, msg.code); err != nil {
				s.log.Error().Err(err).Str("email", msg.email).Msg("otp delivery failed")
			}
		}
	}
}

func (s *Sender) logTransport(_ context.Context, email, code string) error {
	s.log.Info().Str("email", email).Str("code", code).Msg("otp mail dispatched")
	return nil
}
