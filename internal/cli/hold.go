package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tkwhitaker/gatelock/pkg/lock"
)

// Hold acquires the lock and blocks until SIGTERM/SIGINT or context
// cancellation, then releases it. Returns an error if the lock could
// not be acquired.
func Hold(ctx context.Context, port int) error {
	var portLock lock.PortLock
	if !portLock.Acquire(port) {
		return fmt.Errorf("lock on 127.0.0.1:%d is held by another process", port)
	}
	defer portLock.Release()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	// Wait for signal or cancellation
	select {
	case sig := <-sigCh:
		fmt.Fprintf(os.Stderr, "Received signal %v, releasing lock...\n", sig)
	case <-ctx.Done():
	}

	return nil
}
