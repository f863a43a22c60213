package main

import (
	"context"
	"crypto/tls"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/lectio/analyze"
	"github.com/hazyhaar/lectio/assistant"
	"github.com/hazyhaar/lectio/docpipe"
	"github.com/hazyhaar/lectio/library"
	"github.com/hazyhaar/lectio/mcpquic"
	"github.com/hazyhaar/lectio/session"
	"github.com/hazyhaar/lectio/speech"
	"github.com/hazyhaar/lectio/users"
)

func main() {
	cfg := assistant.Defaults()
	if path := env("CONFIG", ""); path != "" {
		loaded, err := assistant.LoadFile(path)
		if err != nil {
			slog.Error("config load", "path", path, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Logging.
	logLevel := env("LOG_LEVEL", cfg.LogLevel)
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	// Logs go to stderr: stdout belongs to the MCP stdio transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// User accounts.
	userStore, err := users.OpenStore(cfg.UserDB)
	if err != nil {
		slog.Error("user db", "error", err)
		os.Exit(1)
	}
	defer userStore.Close()
	if len(cfg.DemoUsers) > 0 {
		if err := userStore.Seed(ctx, cfg.DemoUsers); err != nil {
			slog.Error("seed users", "error", err)
			os.Exit(1)
		}
	}

	// Reading positions and the command audit trail.
	sessionStore, err := session.OpenStore(cfg.SessionDB)
	if err != nil {
		slog.Error("session db", "error", err)
		os.Exit(1)
	}
	defer sessionStore.Close()

	// Text analysis, remote-upgraded when an API key is configured.
	apiKey := env("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	analyzerCfg := analyze.Config{Logger: logger}
	if apiKey != "" {
		analyzerCfg.Remote = analyze.NewOpenAIRemote(apiKey, cfg.OpenAI.Model)
		slog.Info("remote analysis enabled", "model", cfg.OpenAI.Model)
	}

	// Speech chain: remote synthesis first when configured, client-side
	// voice selection as the terminal fallback.
	var providers []speech.Synthesizer
	if cfg.Speech.Endpoint != "" {
		providers = append(providers, speech.NewHTTPSpeech(cfg.Speech.Endpoint, cfg.Speech.APIKey))
	}
	providers = append(providers, speech.ClientSide{})

	cfg.Library.Logger = logger
	lib := library.New(cfg.Library)
	pipeline := docpipe.New(docpipe.Config{Logger: logger})

	engine := assistant.New(assistant.Config{
		WordsPerChunk: cfg.WordsPerChunk,
		Users:         userStore,
		Store:         sessionStore,
		Library:       lib,
		Pipeline:      pipeline,
		Analyzer:      analyze.New(analyzerCfg),
		Speech:        speech.NewChain(logger, providers...),
		Logger:        logger,
	})

	mcpSrv := mcp.NewServer(&mcp.Implementation{
		Name:    "lectio",
		Version: "1.0.0",
	}, nil)
	engine.RegisterMCP(mcpSrv)
	pipeline.RegisterMCP(mcpSrv)
	lib.RegisterMCP(mcpSrv)

	if env("MCP_TRANSPORT", "stdio") == "quic" {
		if err := serveQUIC(ctx, mcpSrv, logger); err != nil && ctx.Err() == nil {
			slog.Error("MCP QUIC", "error", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("lectio ready", "transport", "stdio")
	if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		slog.Error("MCP stdio", "error", err)
		os.Exit(1)
	}
}

func serveQUIC(ctx context.Context, mcpSrv *mcp.Server, logger *slog.Logger) error {
	addr := env("MCP_QUIC_ADDR", ":9444")
	certFile := env("TLS_CERT", "")
	keyFile := env("TLS_KEY", "")

	var tlsCfg *tls.Config
	var err error
	if certFile != "" && keyFile != "" {
		tlsCfg, err = mcpquic.ServerTLSConfig(certFile, keyFile)
	} else {
		tlsCfg, err = mcpquic.SelfSignedTLSConfig()
	}
	if err != nil {
		return err
	}

	ql, err := mcpquic.NewListener(addr, tlsCfg, mcpSrv, logger)
	if err != nil {
		return err
	}
	defer ql.Close()

	slog.Info("lectio ready", "transport", "quic", "addr", addr)
	return ql.Serve(ctx)
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
