package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// withLock serializes store mutations across processes with a sidecar
// lock file, so concurrent `nlcal add` invocations never lose entries.
func withLock(fn func() error) error {
	if err := os.MkdirAll(dataDir(), 0o700); err != nil {
		return err
	}

	fl := flock.New(filepath.Join(dataDir(), "events.lock"))
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer fl.Unlock() //nolint:errcheck // lock release is best-effort

	return fn()
}
