package recommendation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Generator is the external text-generation service.
type Generator interface {
	Send(ctx context.Context, systemInstruction, sessionID, userMessage string) (string, error)
}

var errNoGenerator = errors.New("no text generator configured")

// Orchestrator picks between the generative path and GenerateFallback. It
// holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	gen Generator
	now func() time.Time
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the clock used to derive session ids.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator wires an Orchestrator around gen. A nil gen makes every call
// take the fallback path.
func NewOrchestrator(gen Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{gen: gen, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// sendResult is the outcome of the single outbound call: either text or the
// cause of failure, never both.
type sendResult struct {
	text string
	err  error
}

func (o *Orchestrator) send(ctx context.Context, sessionID, userMessage string) sendResult {
	if o.gen == nil {
		return sendResult{err: errNoGenerator}
	}
	text, err := o.gen.Send(ctx, SystemInstruction, sessionID, userMessage)
	if err != nil {
		return sendResult{err: err}
	}
	return sendResult{text: text}
}

// Generate returns the best bundle available for s. It never fails: transport
// errors and unusable model output both resolve to GenerateFallback(s).
func (o *Orchestrator) Generate(ctx context.Context, s Snapshot) Bundle {
	logger := zerolog.Ctx(ctx).With().Str("user_id", s.UserID).Logger()

	sessionID := SessionID(s.UserID, o.now())
	res := o.send(ctx, sessionID, BuildUserMessage(s))

	if res.err != nil {
		logger.Warn().Err(res.err).Str("session_id", sessionID).Msg("AI recommendation call failed, using rule-based fallback")
		return GenerateFallback(s)
	}

	bundle, err := ParseBundle(res.text)
	if err != nil {
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("AI recommendation output unusable, using rule-based fallback")
		return GenerateFallback(s)
	}

	logger.Info().Int("count", len(bundle.Recommendations)).Msg("AI recommendations generated")
	return bundle
}
