package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// PIDPath returns the lock file guarding socketPath.
func PIDPath(socketPath string) string {
	return socketPath + ".pid"
}

// AcquirePID records the current process as the owner of a server socket.
// It fails if another live process holds the file; a file left by a dead
// process is replaced. The write is atomic via temp-file-then-rename.
func AcquirePID(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("backend: create PID directory: %w", err)
	}

	if pid, err := ReadPID(path); err == nil {
		if pid != os.Getpid() && IsProcessAlive(pid) {
			return fmt.Errorf("backend: socket already served by PID %d", pid)
		}
		os.Remove(path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return fmt.Errorf("backend: write PID file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("backend: rename PID file: %w", err)
	}
	return nil
}

// ReleasePID removes the PID file. A missing file is not an error.
func ReleasePID(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("backend: remove PID file: %w", err)
	}
	return nil
}

// ReadPID parses the PID stored at path.
func ReadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("backend: parse PID file: %w", err)
	}
	return pid, nil
}

// IsProcessAlive reports whether pid exists, probing it with signal 0.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return p.Signal(syscall.Signal(0)) == nil
}
