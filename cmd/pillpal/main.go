// Package main initializes and starts the PillPal application: configuration,
// logging, the local key-value store, the extraction gateway, the application
// core, and the local web UI.
package main

import (
	"fmt"
	"os"

	nethttp "net/http"

	"go.uber.org/zap"

	"pillpal/internal/app"
	"pillpal/internal/config"
	"pillpal/internal/gateway"
	"pillpal/internal/logger"
	"pillpal/internal/store"
	"pillpal/internal/webui"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init("Info"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Open the durable key-value store.
	st, err := store.Open(options.DataDir)
	if err != nil {
		zapLogger.Fatal("cannot open store", zap.Error(err))
	}
	defer func() { _ = st.Close() }()

	// Pick the extraction gateway: the real AI service when an API key is
	// configured, the stub otherwise.
	var parser gateway.Parser
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		parser = gateway.NewOpenAIParser(apiKey, options.Model)
		zapLogger.Info("using OpenAI extraction gateway", zap.String("model", options.Model))
	} else {
		parser = gateway.Stub{}
		zapLogger.Warn("OPENAI_API_KEY not set, prescription extraction is disabled")
	}

	// Build the application core and load persisted state.
	core := app.New(st, parser, zapLogger)
	if err := core.Bootstrap(); err != nil {
		zapLogger.Fatal("cannot load persisted state", zap.Error(err))
	}

	// Serve the local web UI.
	ui := webui.New(core, zapLogger)
	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: ui.Router(),
	}

	zapLogger.Info("starting PillPal", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}

// orDefault returns s, or def when s is empty. Equivalent to cmp.Or for
// strings; inlined because the local toolchain predates Go 1.22.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
