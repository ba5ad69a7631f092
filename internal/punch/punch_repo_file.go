package punch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexflint/go-filemutex"
)

// fileRepository keeps the whole event log in one JSON array file, read
// and rewritten wholesale, like the system it replaces. Writes go through
// a temp file + rename so a crash never leaves a half-written log, and a
// lock file serializes read-modify-write across processes. The in-process
// RWMutex covers concurrent requests within one server.
type fileRepository struct {
	path       string
	archiveDir string
	fm         *filemutex.FileMutex
	mu         sync.RWMutex
}

// NewFileRepository opens (and initializes if needed) the JSON event log
// under dataDir.
func NewFileRepository(dataDir string) (Repository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	fm, err := filemutex.New(filepath.Join(dataDir, "punches.lock"))
	if err != nil {
		return nil, fmt.Errorf("create lock file: %w", err)
	}

	return &fileRepository{
		path:       filepath.Join(dataDir, "punches.json"),
		archiveDir: filepath.Join(dataDir, "archives"),
		fm:         fm,
	}, nil
}

func (r *fileRepository) Append(ctx context.Context, e *ClockEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fm.Lock(); err != nil {
		return err
	}
	defer r.fm.Unlock()

	events, err := readEvents(r.path)
	if err != nil {
		return err
	}
	events = append(events, *e)
	return writeEvents(r.path, events)
}

func (r *fileRepository) FindByUserAndDate(ctx context.Context, userID, date string) ([]ClockEvent, error) {
	return r.filter(func(e ClockEvent) bool {
		return e.UserID.String() == userID && e.Date == date
	})
}

func (r *fileRepository) FindByUser(ctx context.Context, userID, from, to string) ([]ClockEvent, error) {
	return r.filter(func(e ClockEvent) bool {
		if e.UserID.String() != userID {
			return false
		}
		// YYYY-MM-DD compares correctly as a string.
		if from != "" && e.Date < from {
			return false
		}
		if to != "" && e.Date > to {
			return false
		}
		return true
	})
}

func (r *fileRepository) FindByDate(ctx context.Context, date string) ([]ClockEvent, error) {
	return r.filter(func(e ClockEvent) bool {
		return e.Date == date
	})
}

func (r *fileRepository) FindByMonth(ctx context.Context, year int, month time.Month) ([]ClockEvent, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	return r.filter(func(e ClockEvent) bool {
		return len(e.Date) >= len(prefix) && e.Date[:len(prefix)] == prefix
	})
}

func (r *fileRepository) ArchiveYear(ctx context.Context, year int) ([]ClockEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fm.Lock(); err != nil {
		return nil, err
	}
	defer r.fm.Unlock()

	events, err := readEvents(r.path)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-", year)
	var archived, remaining []ClockEvent
	for _, e := range events {
		if len(e.Date) >= len(prefix) && e.Date[:len(prefix)] == prefix {
			archived = append(archived, e)
		} else {
			remaining = append(remaining, e)
		}
	}

	if len(archived) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(r.archiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	if err := writeEvents(r.archivePath(year), archived); err != nil {
		return nil, err
	}
	if err := writeEvents(r.path, remaining); err != nil {
		return nil, err
	}
	return archived, nil
}

func (r *fileRepository) FindArchivedYear(ctx context.Context, year int) ([]ClockEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return readEvents(r.archivePath(year))
}

func (r *fileRepository) archivePath(year int) string {
	return filepath.Join(r.archiveDir, fmt.Sprintf("punches_%d.json", year))
}

func (r *fileRepository) filter(keep func(ClockEvent) bool) ([]ClockEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events, err := readEvents(r.path)
	if err != nil {
		return nil, err
	}

	var out []ClockEvent
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// readEvents treats a missing file as an empty log. A corrupt file is
// backed up next to the original and reported instead of being clobbered.
func readEvents(path string) ([]ClockEvent, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var events []ClockEvent
	if err := json.Unmarshal(data, &events); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return events, nil
}

// writeEvents rewrites the log atomically: temp file, then rename.
func writeEvents(path string, events []ClockEvent) error {
	if events == nil {
		events = []ClockEvent{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
