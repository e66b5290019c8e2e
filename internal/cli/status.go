package cli

import (
	"fmt"

	"github.com/tkwhitaker/gatelock/pkg/lock"
)

// StatusResult contains lock status information.
type StatusResult struct {
	Port int  `json:"port"`
	Held bool `json:"held"`
}

// Status probes whether the lock port is currently held.
// It does not identify the holder; the bind is the only signal.
func Status(port int) StatusResult {
	return StatusResult{
		Port: port,
		Held: !lock.Available(port),
	}
}

// FormatStatus renders a human-readable status line.
func FormatStatus(result StatusResult) string {
	if result.Held {
		return fmt.Sprintf("Lock on 127.0.0.1:%d is held\n", result.Port)
	}
	return fmt.Sprintf("Lock on 127.0.0.1:%d is free\n", result.Port)
}
