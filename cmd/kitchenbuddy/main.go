// KitchenBuddy is a voice-driven cooking assistant service.
//
// Usage:
//
//	kitchenbuddy [-verbose] [-quiet] [-addr :8080]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kfarah/kitchenbuddy/internal/ai"
	"github.com/kfarah/kitchenbuddy/internal/config"
	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/intent"
	"github.com/kfarah/kitchenbuddy/internal/logger"
	"github.com/kfarah/kitchenbuddy/internal/pipeline"
	"github.com/kfarah/kitchenbuddy/internal/recipe"
	"github.com/kfarah/kitchenbuddy/internal/server"
	"github.com/kfarah/kitchenbuddy/internal/session"
	"github.com/kfarah/kitchenbuddy/internal/speech"
	"github.com/kfarah/kitchenbuddy/internal/storage"
	"github.com/kfarah/kitchenbuddy/internal/timer"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	addr := flag.String("addr", "", "listen address (overrides KB_ADDR)")
	logFile := flag.String("log-file", "", "file to write logs to (overrides KB_LOG_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	// Configure logger. Flags win over the environment.
	logLevel := logger.ParseLevel(cfg.LogLevel)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		dir := filepath.Dir(cfg.LogFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to the
	// same output.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Wire dependencies.
	recipes := recipe.NewMemorySource(log)
	narrator := speech.NewLogNarrator(log)

	var sessions domain.SessionStore
	var commands domain.CommandLog
	switch cfg.SessionBackend {
	case "redis":
		store, err := storage.NewRedisStore(cfg.RedisURL, cfg.SessionTTL, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		sessions = store
		commands = storage.NewRedisCommandLog(store)
		log.Info("session backend: redis (%s)", cfg.RedisURL)
	default:
		sessions = storage.NewMemoryStore(log)
		commands = storage.NewMemoryCommandLog()
		log.Info("session backend: memory")
	}

	timers := timer.NewManager(narrator, log)
	defer timers.StopAll()

	// Build AI responder. Without credentials it still answers from the
	// local knowledge base.
	var responder domain.Responder
	if cfg.AIEnabled() {
		var clientOpts []ai.ClientOption
		if cfg.AIModel != "" {
			clientOpts = append(clientOpts, ai.WithModel(cfg.AIModel))
		}
		client := ai.NewClient(cfg.AIEndpoint, cfg.AIKey, log, clientOpts...)
		responder = ai.NewResponder(client, log)
		log.Info("AI responder enabled (endpoint=%s)", cfg.AIEndpoint)
	} else {
		responder = ai.NewResponder(nil, log)
		log.Info("AI responder in local-only mode: set KB_AI_ENDPOINT and KB_AI_KEY to enable remote answers")
	}

	controller := session.New(recipes, sessions, timers, log,
		session.WithNarrator(narrator),
		session.WithResponder(responder),
	)
	classifier := intent.NewClassifier(log)
	pipe := pipeline.New(classifier, controller, log,
		pipeline.WithCommandLog(commands),
		pipeline.WithTranscriber(speech.NoopTranscriber{}),
	)

	srv := server.New(pipe, recipes, sessions, timers, log,
		server.WithResponder(responder),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown: %v", err)
		}
	}()

	log.Info("listening on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
