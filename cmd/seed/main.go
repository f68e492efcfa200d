package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/podium/internal/seed"
)

const (
	defaultWorkers  = 4
	defaultTimeout  = 30 * time.Second
	defaultDeadline = 2 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		students     = flag.Int("students", 0, "Number of random students to generate; 0 posts the sample roster")
		tie          = flag.String("tie", "shared", "Tie breaker: shared or stable")
		serverImport = flag.Bool("import", false, "Parse the sample through the server's /import endpoint")
		workers      = flag.Int("workers", defaultWorkers, "Concurrent rank lookups")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile   = flag.String("output", "", "Write the posted roster to this JSON file")
		logFile      = flag.String("log", "", "Also write logs to this file")
		verbose      = flag.Bool("verbose", false, "Print the whole leaderboard")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := seed.SetupLogging(*logFile); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultDeadline)
	defer cancel()

	_, err := seed.Run(ctx, &seed.Config{
		BaseURL:      *baseURL,
		Students:     *students,
		TieBreaker:   *tie,
		Workers:      *workers,
		Timeout:      *timeout,
		OutputFile:   *outputFile,
		ServerImport: *serverImport,
		Verbose:      *verbose,
	})
	if err != nil {
		_, _ = os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
