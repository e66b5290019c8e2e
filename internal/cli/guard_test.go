//go:build unix

package cli

import (
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/tkwhitaker/gatelock/pkg/lock"
)

func TestRunGuarded(t *testing.T) {
	port := freePort(t)

	code, err := RunGuarded(port, []string{"sh", "-c", "exit 0"})
	if err != nil {
		t.Fatalf("guarded run failed: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	// Lock is released once the child exits
	if !lock.Available(port) {
		t.Fatal("expected port to be released after guarded run")
	}
}

func TestRunGuardedPropagatesExitCode(t *testing.T) {
	port := freePort(t)

	code, err := RunGuarded(port, []string{"sh", "-c", "exit 3"})
	if err != nil {
		t.Fatalf("guarded run failed: %v", err)
	}
	if code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
}

func TestRunGuardedHoldsLockDuringChild(t *testing.T) {
	port := freePort(t)

	// The child probes its own lock port: a refused connection would mean
	// the parent bound nothing, so success here proves the lock is held
	// for the child's lifetime.
	script := "exec 3<>/dev/tcp/127.0.0.1/" + strconv.Itoa(port)
	code, err := RunGuarded(port, []string{"bash", "-c", script})
	if err != nil {
		t.Fatalf("guarded run failed: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected child to see the lock port bound, exit code %d", code)
	}
}

func TestRunGuardedFailsWhenHeld(t *testing.T) {
	port := freePort(t)

	holder, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		t.Fatalf("failed to bind holder socket: %v", err)
	}
	defer func() { _ = holder.Close() }()

	code, err := RunGuarded(port, []string{"sh", "-c", "exit 0"})
	if err == nil {
		t.Fatal("expected error when lock is already held")
	}
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(err.Error(), "held") {
		t.Fatalf("expected 'held' error, got: %v", err)
	}
}

func TestRunGuardedNoCommand(t *testing.T) {
	port := freePort(t)

	code, err := RunGuarded(port, nil)
	if err == nil {
		t.Fatal("expected error for empty command")
	}
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
