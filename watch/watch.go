// Package watch delivers debounced filesystem change notifications
package watch

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rjeczalik/notify"
)

// A Watcher receives batches of change events
type Watcher interface {
	Changed(evs Events)
}

// Watch monitors a directory tree, batching rapid-fire changes into
// single notifications
type Watch struct {
	evs      chan notify.EventInfo
	watchers chan Watcher
}

const debounce = 25 * time.Millisecond

// New watches the tree rooted at dir, recursively
func New(dir string) (*Watch, error) {
	w := &Watch{
		evs:      make(chan notify.EventInfo, 16),
		watchers: make(chan Watcher, 1),
	}

	err := notify.Watch(filepath.Join(dir, "..."), w.evs, notify.All)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to watch %s", dir)
	}

	go w.run()

	return w, nil
}

// Notify delivers future change batches to wr
func (w *Watch) Notify(wr Watcher) {
	if wr != nil {
		w.watchers <- wr
	}
}

// Stop terminates this instance
func (w *Watch) Stop() {
	notify.Stop(w.evs)
	close(w.evs)
}

func (w *Watch) run() {
	delay := time.NewTimer(time.Hour)
	delay.Stop()

	var evs Events
	var watchers []Watcher

	for {
		select {
		case wr := <-w.watchers:
			watchers = append(watchers, wr)

		case ev := <-w.evs:
			if ev == nil {
				return
			}

			evs = append(evs, ev)
			delay.Reset(debounce)

		case <-delay.C:
			for _, wr := range watchers {
				wr.Changed(evs)
			}

			evs = nil
		}
	}
}

// Events is a batch of change events
type Events []notify.EventInfo

// HasExt checks if any event path has the given extension
func (evs Events) HasExt(ext string) bool {
	for _, ev := range evs {
		if filepath.Ext(ev.Path()) == ext {
			return true
		}
	}

	return false
}
