package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"log/slog"

	"github.com/fsnotify/fsnotify"

	"github.com/m3rciful/shoplistbot/core/logger"
	"github.com/m3rciful/shoplistbot/list"
)

// Watch reloads the document when the file changes on disk outside the bot
// (a hand edit over ssh, a restore from backup). The parent directory is
// watched because our own atomic saves replace the file by rename; events
// matching the fingerprint of the last save are ignored.
//
// A reload that fails to decode is logged and skipped: a running process
// never trades its good in-memory document for a half-edited file.
func (s *Store) Watch(ctx context.Context) error {
	if s.watchCancel != nil {
		return errors.New("store: already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.watchCancel = cancel
	s.watchDone = make(chan struct{})

	logger.Info(ctx, "store", "watch.start",
		slog.String("path", s.path),
	)

	go func() {
		defer close(s.watchDone)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				s.maybeReload(ctx)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn(ctx, "store", "watch.error",
					slog.String("path", s.path),
					slog.String("err", err.Error()),
				)
			}
		}
	}()
	return nil
}

// Close stops the watcher, if running.
func (s *Store) Close() {
	if s.watchCancel == nil {
		return
	}
	s.watchCancel()
	<-s.watchDone
	s.watchCancel = nil
	s.watchDone = nil
}

func (s *Store) maybeReload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp := statFingerprint(s.path)
	if fp == (fingerprint{}) || fp == s.lastFP {
		// Our own save, or the file briefly missing mid-rename.
		return
	}

	doc, err := readDocument(s.path)
	if err != nil {
		logger.Warn(ctx, "store", "watch.reload.fail",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return
	}
	s.doc = doc
	s.lastFP = fp
	logger.Info(ctx, "store", "watch.reload",
		slog.String("path", s.path),
		slog.Int("count", doc.Len()),
	)
}

func readDocument(path string) (*list.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := list.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
