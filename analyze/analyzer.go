package analyze

import (
	"context"
	"log/slog"
	"time"
)

// Remote is an optional higher-quality provider tried ahead of the local
// algorithms. Implementations must treat every failure as recoverable: the
// caller always has a local answer.
type Remote interface {
	Summarize(ctx context.Context, text, language string) (string, error)
	DescribeMedia(ctx context.Context, kind, context string) (string, error)
}

// Config configures an Analyzer.
type Config struct {
	// Remote is the optional upgrade provider; nil means local-only.
	Remote Remote

	// RemoteTimeout bounds each remote call (default: 10s). After the
	// timeout the local algorithm answers instead.
	RemoteTimeout time.Duration

	// Logger for fallback warnings.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.RemoteTimeout <= 0 {
		c.RemoteTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Analyzer answers summarize/describe requests, preferring the remote
// provider when one is configured and silently degrading to the local
// deterministic algorithms on any remote failure. The local path is the
// always-available baseline, never an error surface.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer with the given configuration.
func New(cfg Config) *Analyzer {
	cfg.defaults()
	return &Analyzer{cfg: cfg}
}

// Summarize returns a summary of text in the given language, remote-first.
// The local fallback is English-only extractive summarization.
func (a *Analyzer) Summarize(ctx context.Context, text, language string) string {
	if a.cfg.Remote != nil {
		rctx, cancel := context.WithTimeout(ctx, a.cfg.RemoteTimeout)
		summary, err := a.cfg.Remote.Summarize(rctx, text, language)
		cancel()
		if err == nil && summary != "" {
			return summary
		}
		a.cfg.Logger.WarnContext(ctx, "remote summarize failed, falling back to local",
			"language", language, "error", err)
	}
	return Summarize(text, DefaultMaxSentences)
}

// DescribeMedia returns a spoken description of a media element, remote-first.
func (a *Analyzer) DescribeMedia(ctx context.Context, kind, surrounding string) string {
	if a.cfg.Remote != nil {
		rctx, cancel := context.WithTimeout(ctx, a.cfg.RemoteTimeout)
		desc, err := a.cfg.Remote.DescribeMedia(rctx, kind, surrounding)
		cancel()
		if err == nil && desc != "" {
			return desc
		}
		a.cfg.Logger.WarnContext(ctx, "remote describe failed, falling back to local",
			"kind", kind, "error", err)
	}
	return DescribeMedia(kind, surrounding)
}
