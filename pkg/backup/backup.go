// Package backup persists captured device configurations as timestamped,
// never-overwritten artifacts.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// timestampLayout yields names like R1_running_20260827-153000.txt.
const timestampLayout = "20060102-150405"

// Artifact describes one saved configuration backup.
type Artifact struct {
	Hostname  string
	Timestamp time.Time
	Path      string
}

// Store writes backups under a base directory. The clock is injectable so
// tests can pin the timestamp.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// NewStoreWithClock creates a store with a fixed clock source.
func NewStoreWithClock(dir string, now func() time.Time) *Store {
	return &Store{dir: dir, now: now}
}

// Save writes the raw configuration text verbatim to
// <dir>/<hostname>_running_<YYYYMMDD-HHMMSS>.txt, creating the directory if
// absent. Existing files are never overwritten: a second save within the
// same clock second gets a numeric suffix. Write failures are reported, not
// retried.
func (s *Store) Save(hostname, rawConfig string) (*Artifact, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating backup directory: %w", err)
	}

	ts := s.now()
	base := fmt.Sprintf("%s_running_%s", hostname, ts.Format(timestampLayout))

	for attempt := 0; ; attempt++ {
		name := base
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d", base, attempt)
		}
		path := filepath.Join(s.dir, name+".txt")

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("creating backup file: %w", err)
		}

		if _, err := f.WriteString(rawConfig); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing backup %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("closing backup %s: %w", path, err)
		}
		return &Artifact{Hostname: hostname, Timestamp: ts, Path: path}, nil
	}
}
