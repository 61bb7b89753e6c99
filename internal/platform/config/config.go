package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	MetricsAddr string
	// ScanSuppressionWindow is how long a repeat read of the same tag is
	// ignored after an acceptance. Hardware scanners tend to fire the same
	// read several times in quick succession.
	ScanSuppressionWindow time.Duration
	ShutdownTimeout       time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CLEANPOS_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	metricsAddr := os.Getenv("CLEANPOS_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	window := 3 * time.Second
	if raw := os.Getenv("SCAN_SUPPRESSION_WINDOW"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			window = d
		}
	}

	return Server{
		Addr:                  addr,
		MetricsAddr:           metricsAddr,
		ScanSuppressionWindow: window,
		ShutdownTimeout:       10 * time.Second,
	}
}
