// Package lock keeps a second worthy process from writing to the same
// journal. The lock is a file beside the data file holding "pid|unix-ms".
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/logger"
)

var ErrLocked = errors.New("journal is in use by another process")

var (
	findProcessFunc = ps.FindProcess
	getPIDFunc      = os.Getpid
	nowFunc         = time.Now
	executableFunc  = os.Executable
)

// Lock is a held single-writer lock.
type Lock struct {
	path string
	pid  int
}

// Holder describes the process named in a lock file.
type Holder struct {
	PID      int
	Acquired time.Time
}

// PathFor returns the lock file used for a data file.
func PathFor(dataPath string) string {
	return dataPath + constants.LockfileSuffix
}

// Acquire takes the lock for dataPath. A lock file left by a process that
// is gone, by this process, or in an unreadable format is replaced.
func Acquire(dataPath string) (*Lock, error) {
	path := PathFor(dataPath)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	pid := getPIDFunc()
	for attempt := 0; attempt < 2; attempt++ {
		err := create(path, pid)
		if err == nil {
			logger.Debug("Lock acquired", "path", path, "pid", pid)
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		holder, err := readHolder(path)
		if err == nil && holder.PID != pid && alive(holder.PID) {
			return nil, fmt.Errorf("%w (pid %d since %s)", ErrLocked, holder.PID, holder.Acquired.Format(time.RFC3339))
		}

		logger.Warn("Replacing stale lock", "path", path, "holder", holder.PID, "error", err)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: lock file keeps reappearing", ErrLocked)
}

func create(path string, pid int) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	_, werr := fmt.Fprintf(f, "%d|%d", pid, nowFunc().UnixMilli())
	cerr := f.Close()
	if werr != nil {
		os.Remove(path)
		return werr
	}
	return cerr
}

func readHolder(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	ms, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Holder{}, errors.New("invalid timestamp in lockfile")
	}
	return Holder{PID: pid, Acquired: time.UnixMilli(ms)}, nil
}

// alive reports whether pid belongs to a running copy of this program. A
// reused pid running something else does not hold the lock.
func alive(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	exe, err := executableFunc()
	if err != nil {
		return true
	}
	return process.Executable() == filepath.Base(exe)
}

// Release removes the lock file if it still names this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := readHolder(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	logger.Debug("Lock released", "path", l.path)
	return nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}
