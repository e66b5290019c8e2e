package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/tkwhitaker/gatelock/pkg/lock"
)

// RunGuarded acquires the lock, runs the given command with inherited
// stdio while holding it, then releases. Returns the child's exit code.
// The lock is held for the full lifetime of the child, so the command
// runs as the single instance on the host.
func RunGuarded(port int, argv []string) (int, error) {
	if len(argv) == 0 {
		return 1, fmt.Errorf("no command given")
	}

	var portLock lock.PortLock
	if !portLock.Acquire(port) {
		return 1, fmt.Errorf("lock on 127.0.0.1:%d is held by another process", port)
	}
	defer portLock.Release()

	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // G204 - command comes from the caller's own argv
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("failed to run command: %w", err)
	}

	return 0, nil
}
