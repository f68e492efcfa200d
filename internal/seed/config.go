package seed

import "time"

// Config holds configuration for a seed run.
type Config struct {
	BaseURL string // Base URL of the service
	// Students is the number of generated students. Zero posts the sample
	// roster instead.
	Students   int
	TieBreaker string        // shared or stable
	Workers    int           // Concurrent rank lookups
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional JSON dump of the posted roster
	// ServerImport parses the sample roster through POST /import instead of
	// locally.
	ServerImport bool
	Verbose      bool
}

// Stats holds run statistics.
type Stats struct {
	StudentsPosted     int
	LeaderboardEntries int
	RanksChecked       int
	RanksFailed        int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
