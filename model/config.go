package model

import "time"

// CrawlConfig represents configuration for a crawl run
type CrawlConfig struct {
	// Checkpoint parameters
	OutputDir string `json:"output_dir"` // Directory for per-entity checkpoint files

	// Scheduler parameters
	Workers int `json:"workers"` // Bounded worker pool size for the frontier loop

	// Page source parameters
	Language       string        `json:"language"`        // Wikipedia language code
	UserAgent      string        `json:"user_agent"`      // User agent sent to the API
	RequestTimeout time.Duration `json:"request_timeout"` // Per-request timeout
	RequestsPerSec float64       `json:"requests_per_sec"` // Rate limit towards the API
	MaxRetries     int           `json:"max_retries"`      // Retries on transient fetch failures
}

// DefaultCrawlConfig returns a sensible default configuration.
// One worker reproduces the sequential reference behavior.
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		OutputDir:      "Wiki_Person_Connections",
		Workers:        1,
		Language:       "en",
		UserAgent:      "wikigraph/1.0",
		RequestTimeout: 30 * time.Second,
		RequestsPerSec: 5,
		MaxRetries:     3,
	}
}
