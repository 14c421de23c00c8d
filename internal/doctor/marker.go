package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	derrors "github.com/Aman-CERP/devdoctor/internal/errors"
)

// MarkerFile records when the last fully passing run finished.
const MarkerFile = "last-pass"

// DefaultStateDir returns ~/.devdoctor, falling back to the temp directory.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".devdoctor")
	}
	return filepath.Join(home, ".devdoctor")
}

// MarkPassed writes the current time to the marker in stateDir.
// Concurrent runs are serialised with a lock file next to the marker.
func MarkPassed(stateDir string) error {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return derrors.IOError("create state directory", err).WithDetail("dir", stateDir)
	}

	lock := flock.New(filepath.Join(stateDir, MarkerFile+".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return derrors.IOError("lock marker file", err).WithDetail("dir", stateDir)
	}
	if !locked {
		return derrors.New(derrors.ErrCodeLockHeld, "another run is updating the marker", nil)
	}
	defer func() { _ = lock.Unlock() }()

	content := []byte(time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(filepath.Join(stateDir, MarkerFile), content, 0644); err != nil {
		return derrors.IOError("write marker file", err).WithDetail("dir", stateDir)
	}
	return nil
}

// ClearMarker removes the marker file.
func ClearMarker(stateDir string) error {
	err := os.Remove(filepath.Join(stateDir, MarkerFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove marker file: %w", err)
	}
	return nil
}

// MarkerAge returns how long ago the last passing run finished.
// Returns zero if there is no readable marker.
func MarkerAge(stateDir string) time.Duration {
	content, err := os.ReadFile(filepath.Join(stateDir, MarkerFile))
	if err != nil {
		return 0
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(content)))
	if err != nil {
		return 0
	}
	return time.Since(t)
}
