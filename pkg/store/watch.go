package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeKind describes which part of the store changed.
type ChangeKind int

const (
	// ChangeEvents indicates event records were added, edited or removed.
	ChangeEvents ChangeKind = iota
	// ChangeResources indicates the resource index was rewritten.
	ChangeResources
	// ChangeInvalidated means the change could not be classified and
	// callers should reload everything.
	ChangeInvalidated
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeEvents:
		return "events"
	case ChangeResources:
		return "resources"
	default:
		return "invalidated"
	}
}

// Change is emitted by Persistence.Watch when underlying storage changes.
type Change struct {
	Kind ChangeKind
}

// Watch streams changes until ctx is cancelled. Callers should drain the
// returned channel; changes are dropped while the consumer is busy. The
// channel is closed once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Change, error) {
	if err := os.MkdirAll(filepath.Join(p.basePath, eventsDir), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn("watcher close", zap.Error(err))
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	changes := make(chan Change, 16)

	go func() {
		defer close(changes)
		defer closeWatcher()

		send := func(c Change) {
			select {
			case changes <- c:
			default:
				// The consumer reloads on the next change anyway.
			}
		}

		throttle := newChangeThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Debug("watcher error", zap.Error(err))
				throttle.Enqueue(ChangeInvalidated, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						if err := watcher.Add(filepath.Clean(evt.Name)); err != nil {
							p.log.Warn("watch directory", zap.String("dir", evt.Name), zap.Error(err))
						}
						throttle.Enqueue(ChangeInvalidated, send)
						continue
					}
				}
				throttle.Enqueue(p.kindForPath(evt.Name), send)
			}
		}
	}()

	return changes, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// kindForPath classifies a path inside the diskv tree.
func (p *persistence) kindForPath(path string) ChangeKind {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ChangeInvalidated
	}
	first, _, _ := strings.Cut(rel, string(os.PathSeparator))
	switch {
	case first == eventsDir:
		return ChangeEvents
	case strings.HasPrefix(first, resourcesFile):
		return ChangeResources
	default:
		return ChangeInvalidated
	}
}

// changeThrottle coalesces rapid notifications so a watcher redraws once per
// burst of filesystem activity instead of on every single write.
type changeThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[ChangeKind]struct{}
	delay   time.Duration
}

func newChangeThrottle(delay time.Duration) *changeThrottle {
	return &changeThrottle{
		delay:   delay,
		pending: make(map[ChangeKind]struct{}),
	}
}

func (t *changeThrottle) Enqueue(kind ChangeKind, send func(Change)) {
	t.mu.Lock()
	t.pending[kind] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *changeThrottle) flush(send func(Change)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[ChangeKind]struct{})
	t.timer = nil
	t.mu.Unlock()

	for kind := range pending {
		send(Change{Kind: kind})
	}
}

func (t *changeThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
