// Package main is the entry point for roadmapctl, the command-line client
// for the roadmap learning platform.
//
// The architecture follows Clean Architecture and DDD:
//   - Domain: pure business logic without external dependencies
//   - Application: use case orchestration (Commands/Queries)
//   - Infrastructure: backend API client, durable session storage
//   - Interface: this CLI
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/roadmap-saas/roadmap-hub/config"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/api"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/session"
)

// app bundles the wired dependencies every command needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *api.Client
	session *session.Manager
}

var current *app

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "roadmapctl",
	Short: "roadmapctl - client for the roadmap learning platform",
	Long: `roadmapctl manages learning roadmaps, their modules, and your
per-module completion progress against the roadmap backend.

Authentication state is kept in a local session file, so a login
survives across invocations until it is verified invalid or you
log out.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		current, err = newApp()
		return err
	},
}

func newApp() (*app, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := setupLogger(cfg)

	clientCfg := api.DefaultClientConfig(cfg.API.BaseURL)
	clientCfg.Timeout = cfg.API.RequestTimeout
	clientCfg.Logger = logger
	clientCfg.Debug = cfg.App.Debug
	client := api.NewClient(clientCfg)

	store, err := session.NewStore(cfg.Session.StateDir)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	mgr, err := session.NewManager(store, client, logger)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &app{cfg: cfg, logger: logger, client: client, session: mgr}, nil
}

// setupLogger configures structured logging on stderr so command output on
// stdout stays clean.
func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Observability.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	// Development and explicit APP_DEBUG both force debug logging.
	if cfg.App.Debug || cfg.IsDevelopment() {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func main() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(moduleCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(sharedCmd)
	rootCmd.AddCommand(adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
