package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Doc identifies which persisted document changed.
type Doc string

const (
	DocLetters  Doc = "letters"
	DocFortune  Doc = "fortune"
	DocSettings Doc = "settings"
)

// Event is emitted by Persistence.Watch when a document changes on disk.
// An open UI uses these to pick up replies written by the detached
// generation goroutine, or by another process sharing the data directory.
type Event struct {
	Doc Doc
}

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel; slow consumers lose events rather than blocking the
// watcher, and a full re-read recovers anything dropped. The channel closes
// once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
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
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop when the consumer is behind; the next refresh
				// re-reads the whole document anyway.
			}
		}

		// Coalesce write bursts per document so a save (truncate + write)
		// produces a single refresh.
		pending := make(map[Doc]bool)
		var flush <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				pending[DocLetters] = true
				pending[DocFortune] = true
				pending[DocSettings] = true
				flush = time.After(100 * time.Millisecond)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				doc, known := docForPath(evt.Name)
				if !known {
					continue
				}
				pending[doc] = true
				if flush == nil {
					flush = time.After(100 * time.Millisecond)
				}
			case <-flush:
				for doc := range pending {
					send(Event{Doc: doc})
					delete(pending, doc)
				}
				flush = nil
			}
		}
	}()

	return events, nil
}

func docForPath(path string) (Doc, bool) {
	switch filepath.Base(path) {
	case lettersDoc:
		return DocLetters, true
	case fortuneDoc:
		return DocFortune, true
	case settingsDoc:
		return DocSettings, true
	}
	return "", false
}
