// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package prefer_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LimpidTech/prefer"
	"github.com/LimpidTech/prefer/internal/assert"
)

func TestWatch(t *testing.T) {
	t.Parallel()

	dir, path := watchFixture(t, `{"server":{"port":8080}}`)

	watcher, err := prefer.Watch(
		context.Background(), "settings",
		prefer.WithSearchDirs(dir),
		prefer.WithDebounce(100*time.Millisecond),
	)
	assert.NoError(t, err)
	defer watcher.Stop()

	port, err := prefer.Get[int](watcher.Config(), "server.port")
	assert.NoError(t, err)
	assert.Equal(t, 8080, port)

	snapshots := watcher.Subscribe()
	time.Sleep(time.Second) // wait for the watcher to start

	assert.NoError(t, os.WriteFile(path, []byte(`{"server":{"port":9090}}`), 0o600))

	config := receive(t, snapshots, 5*time.Second)
	port, err = prefer.Get[int](config, "server.port")
	assert.NoError(t, err)
	assert.Equal(t, 9090, port)

	// The held snapshot was replaced, not mutated.
	assert.Equal(t, config, watcher.Config())
}

func TestWatch_debounce(t *testing.T) {
	t.Parallel()

	dir, path := watchFixture(t, `{"n":0}`)

	watcher, err := prefer.Watch(
		context.Background(), "settings",
		prefer.WithSearchDirs(dir),
		prefer.WithDebounce(500*time.Millisecond),
	)
	assert.NoError(t, err)
	defer watcher.Stop()

	snapshots := watcher.Subscribe()
	time.Sleep(time.Second) // wait for the watcher to start

	// A burst of writes within the debounce window coalesces
	// into a single reload.
	for n := 1; n <= 5; n++ {
		assert.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`{"n":%d}`, n)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	config := receive(t, snapshots, 5*time.Second)
	n, err := prefer.Get[int](config, "n")
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	// No second snapshot follows the burst.
	time.Sleep(time.Second)
	select {
	case extra := <-snapshots:
		t.Errorf("unexpected snapshot: %v", extra.Source())
	default:
	}
}

func TestWatch_reloadFailure(t *testing.T) {
	t.Parallel()

	dir, path := watchFixture(t, `{"server":{"port":8080}}`)

	watcher, err := prefer.Watch(
		context.Background(), "settings",
		prefer.WithSearchDirs(dir),
		prefer.WithDebounce(100*time.Millisecond),
	)
	assert.NoError(t, err)
	defer watcher.Stop()

	failures := make(chan error, 1)
	watcher.OnError(func(err error) {
		select {
		case failures <- err:
		default:
		}
	})
	snapshots := watcher.Subscribe()
	time.Sleep(time.Second) // wait for the watcher to start

	// A reload that fails to parse leaves the served snapshot unchanged.
	assert.NoError(t, os.WriteFile(path, []byte(`{"server":`), 0o600))
	select {
	case err := <-failures:
		assert.True(t, err != nil)
	case <-time.After(5 * time.Second):
		t.Fatal("no failure reported")
	}
	port, err := prefer.Get[int](watcher.Config(), "server.port")
	assert.NoError(t, err)
	assert.Equal(t, 8080, port)

	// A subsequent successful write restores normal operation.
	assert.NoError(t, os.WriteFile(path, []byte(`{"server":{"port":9090}}`), 0o600))
	config := receive(t, snapshots, 5*time.Second)
	port, err = prefer.Get[int](config, "server.port")
	assert.NoError(t, err)
	assert.Equal(t, 9090, port)
}

func TestWatch_concurrentReaders(t *testing.T) {
	t.Parallel()

	dir, path := watchFixture(t, `{"server":{"port":8080}}`)

	watcher, err := prefer.Watch(
		context.Background(), "settings",
		prefer.WithSearchDirs(dir),
		prefer.WithDebounce(50*time.Millisecond),
	)
	assert.NoError(t, err)
	defer watcher.Stop()

	time.Sleep(time.Second) // wait for the watcher to start

	var group errgroup.Group
	for i := 0; i < 4; i++ {
		group.Go(func() error {
			// Readers see either the old or the new complete
			// snapshot, never a partial one.
			for i := 0; i < 200; i++ {
				if _, err := prefer.Get[int](watcher.Config(), "server.port"); err != nil {
					return err
				}
			}

			return nil
		})
	}
	group.Go(func() error {
		return os.WriteFile(path, []byte(`{"server":{"port":9090}}`), 0o600)
	})
	assert.NoError(t, group.Wait())
}

func TestWatcher_Stop(t *testing.T) {
	t.Parallel()

	dir, _ := watchFixture(t, `{"a":1}`)

	watcher, err := prefer.Watch(context.Background(), "settings", prefer.WithSearchDirs(dir))
	assert.NoError(t, err)
	snapshots := watcher.Subscribe()

	watcher.Stop()
	watcher.Stop() // idempotent

	// Subscriber channels are closed; no snapshot follows Stop.
	_, open := <-snapshots
	assert.True(t, !open)

	// Subscribing after Stop yields a closed channel.
	_, open = <-watcher.Subscribe()
	assert.True(t, !open)

	// A stopped watcher cannot be restarted.
	assert.True(t, watcher.Start(context.Background()) != nil)
}

func TestWatcher_Start(t *testing.T) {
	t.Parallel()

	t.Run("initial load failure", func(t *testing.T) {
		t.Parallel()

		_, err := prefer.Watch(context.Background(), "settings", prefer.WithSearchDirs(t.TempDir()))
		assert.IsError(t, err, prefer.ErrNotFound)
	})

	t.Run("start twice", func(t *testing.T) {
		t.Parallel()

		dir, _ := watchFixture(t, `{"a":1}`)
		watcher := prefer.NewWatcher("settings", prefer.WithSearchDirs(dir))
		assert.NoError(t, watcher.Start(context.Background()))
		defer watcher.Stop()

		assert.True(t, watcher.Start(context.Background()) != nil)
	})
}

func watchFixture(t *testing.T, content string) (dir, path string) {
	t.Helper()

	dir, err := os.MkdirTemp("", "*") // t.TempDir() causes deadlock on macos.
	assert.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	path = filepath.Join(dir, "settings.json")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return dir, path
}

func receive(t *testing.T, snapshots <-chan *prefer.Config, timeout time.Duration) *prefer.Config {
	t.Helper()

	select {
	case config := <-snapshots:
		return config
	case <-time.After(timeout):
		t.Fatal("no snapshot received")

		return nil
	}
}
