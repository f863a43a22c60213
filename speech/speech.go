// Package speech turns chunk text into audio. Providers are tried in a
// fixed order; the terminal provider never fails, it hands synthesis off
// to the listener's device so playback is always possible offline.
package speech

import (
	"context"
	"errors"
	"log/slog"
)

// Request is one synthesis job.
type Request struct {
	Text     string  `json:"text"`
	Language string  `json:"language"` // short code: "en", "hi", "kn", ...
	Rate     float64 `json:"rate"`     // 1.0 = normal speed
	Pitch    float64 `json:"pitch"`    // 1.0 = normal pitch
}

// Audio is the synthesis result. Data is nil when synthesis is delegated
// to the listener's device; Voice then tells the device which voice to use.
type Audio struct {
	Data     []byte `json:"data,omitempty"`
	MIME     string `json:"mime,omitempty"`
	Voice    string `json:"voice"`
	Provider string `json:"provider"`
}

// Synthesizer converts text to speech audio.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, req Request) (Audio, error)
}

// MinRate and MaxRate bound playback speed and pitch. Spoken "faster"
// commands step toward the bound and stop there.
const (
	MinRate = 0.5
	MaxRate = 2.0
)

// ClampRate bounds a rate or pitch value to [MinRate, MaxRate]. Zero or
// negative input means "unset" and resolves to 1.0.
func ClampRate(v float64) float64 {
	switch {
	case v <= 0:
		return 1.0
	case v < MinRate:
		return MinRate
	case v > MaxRate:
		return MaxRate
	default:
		return v
	}
}

// Chain tries synthesizers in order, falling back on failure. Context
// cancellation is never retried downstream: the caller gave up, the
// provider did not fail.
type Chain struct {
	providers []Synthesizer
	logger    *slog.Logger
}

// NewChain builds a fallback chain. The last provider should be one that
// cannot fail, such as ClientSide.
func NewChain(logger *slog.Logger, providers ...Synthesizer) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{providers: providers, logger: logger}
}

// Synthesize runs the chain.
func (c *Chain) Synthesize(ctx context.Context, req Request) (Audio, error) {
	if len(c.providers) == 0 {
		return Audio{}, errors.New("speech: no providers configured")
	}

	req.Rate = ClampRate(req.Rate)
	req.Pitch = ClampRate(req.Pitch)

	var lastErr error
	for i, p := range c.providers {
		audio, err := p.Synthesize(ctx, req)
		if err == nil {
			return audio, nil
		}
		if ctx.Err() != nil {
			return Audio{}, err
		}
		lastErr = err
		if i < len(c.providers)-1 {
			c.logger.WarnContext(ctx, "speech provider failed, falling back",
				"provider", p.Name(),
				"next", c.providers[i+1].Name(),
				"error", err)
		}
	}
	return Audio{}, lastErr
}

// ClientSide is the terminal provider: it produces no audio bytes and
// instead returns the voice the listener's device should use. It never
// fails.
type ClientSide struct{}

func (ClientSide) Name() string { return "client" }

func (ClientSide) Synthesize(_ context.Context, req Request) (Audio, error) {
	return Audio{
		Voice:    VoiceFor(req.Language),
		Provider: "client",
	}, nil
}
