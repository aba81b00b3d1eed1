// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package prefer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch loads the configuration with the given name and keeps it current,
// re-running the full discovery pipeline when the resolved file changes.
// The returned Watcher is already started; release it with [Watcher.Stop].
func Watch(ctx context.Context, name string, opts ...Option) (*Watcher, error) {
	watcher := NewWatcher(name, opts...)
	if err := watcher.Start(ctx); err != nil {
		return nil, err
	}

	return watcher, nil
}

// Watcher keeps the configuration snapshot for one name current.
//
// It holds exactly one [Config] at a time, replaced wholesale on each
// successful reload. A reload that fails leaves the held snapshot in place
// and reports the failure through [Watcher.OnError]; the next file change
// retries.
type Watcher struct {
	loader   *Loader
	name     string
	debounce time.Duration
	logger   *slog.Logger

	current atomic.Pointer[Config]

	mutex       sync.Mutex
	state       watchState
	cancel      context.CancelFunc
	done        chan struct{}
	subscribers []chan *Config
	onErrors    []func(error)
}

type watchState int

const (
	watchIdle watchState = iota
	watchActive
	watchClosed
)

// NewWatcher creates an idle Watcher for the given name with the given
// Option(s). It does not touch the file system until [Watcher.Start].
func NewWatcher(name string, opts ...Option) *Watcher {
	option := apply(opts)

	return &Watcher{
		loader: &Loader{
			registry:    option.registry,
			environment: option.environment,
			searchDirs:  option.searchDirs,
		},
		name:     name,
		debounce: option.debounce,
		logger:   option.logger.WithGroup("prefer.watch"),
	}
}

// Start performs the initial load and begins watching for changes.
// It fails with the [Load] error contract when the initial load fails,
// and with an error when called on a started or stopped Watcher.
func (w *Watcher) Start(ctx context.Context) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	switch w.state {
	case watchActive:
		return errors.New("watcher already started")
	case watchClosed:
		return errors.New("watcher is stopped")
	case watchIdle:
	}

	config, err := w.loader.Load(ctx, w.name)
	if err != nil {
		return err
	}

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}

	// Watch the parent directory rather than the file itself, so that
	// renames, symlink swaps, and a higher-priority candidate appearing
	// next to the current one are all seen.
	dir := filepath.Dir(config.source.Path)
	if err := notifier.Add(dir); err != nil {
		_ = notifier.Close()

		return fmt.Errorf("watch dir %s: %w", dir, err)
	}

	w.current.Store(config)
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.state = watchActive
	go w.run(ctx, notifier, dir)

	return nil
}

//nolint:cyclop,funlen,gocognit
func (w *Watcher) run(ctx context.Context, notifier *fsnotify.Watcher, dir string) {
	defer close(w.done)
	defer func() {
		if err := notifier.Close(); err != nil {
			w.logger.LogAttrs(
				ctx, slog.LevelWarn,
				"Error when closing file watcher.",
				slog.Any("error", err),
			)
		}
	}()

	// The debounce timer stays stopped until a relevant event arms it.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	candidates := make(map[string]bool)
	for _, ext := range w.loader.registry.Extensions() {
		candidates[w.name+"."+ext] = true
	}

	for {
		select {
		case event, ok := <-notifier.Events:
			if !ok {
				// The subscription is permanently unusable: surface
				// it once and end the snapshot stream.
				w.report(ctx, errWatcherTerminated)
				w.closeSubscribers()

				return
			}
			name := filepath.Clean(event.Name)
			if filepath.Dir(name) != dir || !candidates[filepath.Base(name)] {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				// Editors fire bursts of events per save; every event
				// slides the window so one reload covers the burst.
				timer.Reset(w.debounce)
			}

		case err, ok := <-notifier.Errors:
			if !ok {
				// The subscription is permanently unusable: surface
				// it once and end the snapshot stream.
				w.report(ctx, errWatcherTerminated)
				w.closeSubscribers()

				return
			}
			w.report(ctx, fmt.Errorf("watch %s: %w", dir, err))

		case <-timer.C:
			config, err := w.loader.Load(ctx, w.name)
			if ctx.Err() != nil {
				// The result of a reload racing Stop is discarded.
				return
			}
			if err != nil {
				// Keep serving the last good snapshot; the next
				// file change retries.
				w.report(ctx, fmt.Errorf("reload %q: %w", w.name, err))

				continue
			}

			// Re-resolution may pick a winner in another directory;
			// the watch moves along with it.
			if newDir := filepath.Dir(config.source.Path); newDir != dir {
				if err := notifier.Add(newDir); err != nil {
					w.report(ctx, fmt.Errorf("watch dir %s: %w", newDir, err))
				} else {
					_ = notifier.Remove(dir)
					dir = newDir
				}
			}

			w.current.Store(config)
			w.publish(config)
			w.logger.LogAttrs(
				ctx, slog.LevelInfo,
				"Configuration has been reloaded.",
				slog.String("file", config.source.Path),
			)

		case <-ctx.Done():
			return
		}
	}
}

// Config returns the currently held snapshot.
// It is concurrency-safe and never returns a partially updated Config.
func (w *Watcher) Config() *Config { return w.current.Load() }

// Subscribe returns a channel that yields a new Config per successful
// reload. A subscriber that falls behind observes the latest snapshot when
// it next reads, not a backlog of superseded ones. The channel is closed
// by [Watcher.Stop].
func (w *Watcher) Subscribe() <-chan *Config {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	subscriber := make(chan *Config, 1)
	if w.state == watchClosed {
		close(subscriber)

		return subscriber
	}
	w.subscribers = append(w.subscribers, subscriber)

	return subscriber
}

// OnError registers a callback for transient reload and watch failures.
// Such failures never stop the Watcher or invalidate its held snapshot.
//
// The onError function must be non-blocking and must not call
// [Watcher.Stop].
//
// This method is concurrency-safe. It panics if onError is nil.
func (w *Watcher) OnError(onError func(error)) {
	if onError == nil {
		panic("cannot register nil onError")
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.onErrors = append(w.onErrors, onError)
}

// Stop releases the file-system subscription and closes all subscriber
// channels. It is idempotent. No snapshot is published after Stop returns.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.state != watchActive {
		w.state = watchClosed
		w.mutex.Unlock()

		return
	}
	w.state = watchClosed
	cancel, done := w.cancel, w.done
	w.mutex.Unlock()

	cancel()
	<-done
	w.closeSubscribers()
}

func (w *Watcher) closeSubscribers() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for _, subscriber := range w.subscribers {
		close(subscriber)
	}
	w.subscribers = nil
}

func (w *Watcher) publish(config *Config) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for _, subscriber := range w.subscribers {
		select {
		case subscriber <- config:
		default:
			// Drop the stale snapshot so the newest one fits.
			select {
			case <-subscriber:
			default:
			}
			select {
			case subscriber <- config:
			default:
			}
		}
	}
}

func (w *Watcher) report(ctx context.Context, err error) {
	w.logger.LogAttrs(
		ctx, slog.LevelWarn,
		"Error while watching configuration.",
		slog.String("name", w.name),
		slog.Any("error", err),
	)

	w.mutex.Lock()
	onErrors := slices.Clone(w.onErrors)
	w.mutex.Unlock()
	for _, onError := range onErrors {
		onError(err)
	}
}

var errWatcherTerminated = errors.New("file watcher terminated")
