package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// PromptWatcher reloads a PromptStore when template files in its directory change.
type PromptWatcher struct {
	store   driven.PromptStore
	dir     string
	watcher *fsnotify.Watcher
}

// NewPromptWatcher starts watching dir. The directory is created if missing.
func NewPromptWatcher(store driven.PromptStore, dir string) (*PromptWatcher, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create prompt directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &PromptWatcher{store: store, dir: dir, watcher: w}, nil
}

// Run processes events until ctx is done or the watcher is closed.
func (p *PromptWatcher) Run(ctx context.Context) error {
	defer p.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-p.watcher.Events:
			if !ok {
				return nil
			}
			if p.handleEvent(event) {
				logger.Info("Prompt templates reloaded (%s)", filepath.Base(event.Name))
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Prompt watcher error: %v", err)
		}
	}
}

// Close stops the watcher.
func (p *PromptWatcher) Close() error {
	return p.watcher.Close()
}

// handleEvent reloads the store for content changes to template files.
// It reports whether a reload happened.
func (p *PromptWatcher) handleEvent(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != promptExt {
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	p.store.Reload()
	return true
}
