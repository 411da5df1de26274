// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Watcher reloads the configuration when its file changes on disk, so
// edits to theme or markdown settings apply without a restart.
//
// Editors often write via rename, so the watcher monitors the config
// directory rather than the file itself, and debounces bursts of events.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onReload func(*Config)

	mu      sync.Mutex
	pending bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWatcher creates a watcher for the config file at path. onReload is
// called with the freshly loaded config after each change; it runs on the
// watcher goroutine.
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		path:     path,
		watcher:  fsw,
		debounce: 500 * time.Millisecond,
		onReload: onReload,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for config file changes.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.processEvents()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.scheduleReload()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event still reloads.
		}
	}
}

// scheduleReload coalesces rapid successive events into one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	if w.pending {
		w.mu.Unlock()
		return
	}
	w.pending = true
	w.mu.Unlock()

	go func() {
		select {
		case <-time.After(w.debounce):
		case <-w.ctx.Done():
			return
		}

		w.mu.Lock()
		w.pending = false
		w.mu.Unlock()

		cfg, err := LoadFromPath(w.path)
		if err != nil {
			// Invalid intermediate state (mid-edit); keep the old config.
			return
		}
		SetGlobal(cfg)
		if w.onReload != nil {
			w.onReload(cfg)
		}
	}()
}
