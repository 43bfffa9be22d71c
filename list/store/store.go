// Package store owns the persisted shopping list document. It serializes
// all access behind one lock and writes the whole document atomically
// (temp file + rename) on every mutation.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"log/slog"

	"github.com/m3rciful/shoplistbot/core/logger"
	"github.com/m3rciful/shoplistbot/list"
)

var (
	// ErrCorrupt reports an existing state file that cannot be decoded.
	// Startup must abort instead of silently replacing it with an empty
	// document.
	ErrCorrupt = errors.New("store: corrupt document")
	// ErrPersistence reports a failed write-back. The in-memory mutation
	// is kept; callers surface a degraded-persistence warning.
	ErrPersistence = errors.New("store: write-back failed")
)

// fingerprint identifies the file content produced by our own save, so the
// watcher can tell our renames apart from out-of-band edits.
type fingerprint struct {
	size    int64
	modTime time.Time
}

// Store holds the document behind a read-write lock.
type Store struct {
	path string

	mu     sync.RWMutex
	doc    *list.Document
	lastFP fingerprint

	watchCancel context.CancelFunc
	watchDone   chan struct{}
}

// Open loads the document from path. A missing file starts an empty
// document; a present but malformed file is ErrCorrupt.
func Open(path string) (*Store, error) {
	s := &Store{path: path, doc: list.NewDocument()}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info(context.Background(), "store", "open.empty",
			slog.String("path", path),
		)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	doc := list.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	s.doc = doc
	s.lastFP = statFingerprint(path)
	logger.Info(context.Background(), "store", "open.loaded",
		slog.String("path", path),
		slog.Int("count", doc.Len()),
	)
	return s, nil
}

// Path returns the location of the persisted file.
func (s *Store) Path() string {
	return s.path
}

// View runs fn with read access to the document. The document must not be
// mutated or retained past the call.
func (s *Store) View(fn func(*list.Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.doc)
}

// Update runs fn with exclusive access and persists the document when fn
// succeeds. A failed write returns ErrPersistence but keeps the in-memory
// mutation; a failed fn leaves the document untouched by contract (fn must
// not mutate on its own error path).
func (s *Store) Update(ctx context.Context, fn func(*list.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.doc); err != nil {
		return err
	}

	start := time.Now()
	if err := s.save(); err != nil {
		logger.Error(ctx, "store", "save.fail",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	logger.Debug(ctx, "store", "save.ok",
		slog.String("path", s.path),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

// save writes the whole document to a temp file in the target directory and
// renames it over the destination. Callers hold the write lock.
func (s *Store) save() error {
	// MarshalJSON is called directly: encoding/json re-escapes HTML
	// characters in Marshaler output, which would mangle names like "<...>".
	compact, err := s.doc.MarshalJSON()
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact, "", "  "); err != nil {
		return err
	}
	pretty.WriteByte('\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(pretty.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	s.lastFP = statFingerprint(s.path)
	return nil
}

func statFingerprint(path string) fingerprint {
	info, err := os.Stat(path)
	if err != nil {
		return fingerprint{}
	}
	return fingerprint{size: info.Size(), modTime: info.ModTime()}
}
