package sky

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// fileLock is the process-level mutual exclusion guarding one object
// file. The lock file records the holder's PID; a recorded PID whose
// process is no longer alive is treated as stale and reclaimed. The
// liveness probe is a best-effort heuristic, not a correctness
// guarantee.
type fileLock struct {
	path string
	held bool
}

func newFileLock(path string) *fileLock {
	return &fileLock{path: path}
}

// lock acquires the lock or fails with ErrLockHeld when a live process
// (including another handle in this one) already holds it. The PID write
// goes through temp-file-plus-rename so a reader never observes a
// half-written PID.
func (l *fileLock) lock() error {
	data, err := os.ReadFile(l.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err == nil {
		pid, perr := strconv.Atoi(strings.TrimSpace(string(data)))
		// An unparsable lock file can only be leftover garbage; the
		// engine itself writes PIDs atomically. Treat it as stale.
		if perr == nil && processAlive(pid) {
			return fmt.Errorf("%w by pid %d", ErrLockHeld, pid)
		}
	}
	if err := writeFileAtomic(l.path, []byte(strconv.Itoa(os.Getpid())), true); err != nil {
		return err
	}
	l.held = true
	return nil
}

// unlock removes the lock file only when this handle holds it and the
// file still records our PID; it never removes another holder's lock.
// Idempotent when not held.
func (l *fileLock) unlock() error {
	if !l.held {
		return nil
	}
	l.held = false
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	pid, perr := strconv.Atoi(strings.TrimSpace(string(data)))
	if perr != nil || pid != os.Getpid() {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// processAlive reports whether a process with the given PID exists.
// Signal 0 probes existence without delivering anything; EPERM means the
// process exists but belongs to another user.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
