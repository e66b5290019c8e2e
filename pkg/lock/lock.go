// Package lock implements a process-singleton lock backed by an exclusive
// TCP bind on the loopback interface.
//
// The OS kernel guarantees only one process can bind a given address/port
// pair. The bound socket is released automatically when the holding process
// dies (even SIGKILL), so there are no stale locks to clean up.
package lock

import (
	"fmt"
	"net"
)

// PortLock holds a singleton lock as a listening socket bound to
// 127.0.0.1:<port>. The zero value is an unlocked handle.
//
// PortLock has no internal synchronization. Callers serialize Acquire and
// Release, typically by invoking them only from startup/shutdown code.
type PortLock struct {
	port int
	ln   net.Listener
}

// Acquire tries to bind 127.0.0.1:<port> as a singleton lock.
// Returns true if the lock was acquired. All bind failures (port already
// held by another process, permission denied) collapse to false; a false
// result is a normal outcome meaning another instance is already running.
// Acquire on a handle that already holds the lock is a no-op returning true.
func (l *PortLock) Acquire(port int) bool {
	if l.ln != nil {
		// Already held: a handle never rebinds over a lock it holds
		return l.port == port
	}
	if port < 1 || port > 65535 {
		return false
	}
	// The listener is never accepted on — the bind itself is the mutex.
	ln, err := net.Listen("tcp", lockAddr(port))
	if err != nil {
		return false
	}
	l.port = port
	l.ln = ln
	return true
}

// Release closes the lock socket if held, freeing the port for rebinding.
// Safe to call multiple times — subsequent calls are no-ops.
func (l *PortLock) Release() {
	if l.ln == nil {
		return
	}
	// Capture and nil before closing to prevent double-release
	ln := l.ln
	l.ln = nil
	l.port = 0
	_ = ln.Close()
}

// Held reports whether this handle currently holds the lock.
func (l *PortLock) Held() bool {
	return l.ln != nil
}

// Port returns the locked port, or 0 when the lock is not held.
func (l *PortLock) Port() int {
	return l.port
}

// Available checks whether the lock port can currently be bound.
// A false result usually means another instance holds the lock.
func Available(port int) bool {
	if port < 1 || port > 65535 {
		return false
	}
	ln, err := net.Listen("tcp", lockAddr(port))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

func lockAddr(port int) string {
	return fmt.Sprintf("127.0.0.1:%d", port)
}
