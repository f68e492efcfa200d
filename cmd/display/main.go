// Command display renders the leaderboard presentation in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okian/podium/internal/adapters/http/client"
	"github.com/okian/podium/internal/adapters/tui"
	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/pkg/logger"
)

func main() {
	var (
		serverURL = flag.String("url", "", "Base URL of the service (overrides server_url)")
		logFile   = flag.String("log", "", "Write logs to this file")
	)
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}

	// The terminal belongs to the renderer; logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(out)); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	log := logger.Named("display")
	log.Info(ctx, "starting terminal display",
		logger.String("server", cfg.ServerURL),
		logger.Duration("refresh", cfg.RefreshInterval))

	model := tui.New(client.New(cfg.ServerURL),
		tui.WithFrameInterval(cfg.FrameInterval()),
		tui.WithReloadInterval(cfg.RefreshInterval),
	)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running display: %v\n", err)
		os.Exit(1)
	}
}
