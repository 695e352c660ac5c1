package watch

import (
	"fmt"
	"path/filepath"

	"github.com/jhenstridge/go-inotify"
)

type Kind int

const (
	Shader Kind = iota
	Texture
)

func (k Kind) String() string {
	switch k {
	case Shader:
		return "shader"
	case Texture:
		return "texture"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Change struct {
	Path string
	Kind Kind
}

// Watcher reports asset files that were rewritten on disk. It never blocks:
// the render loop drains it once per frame.
type Watcher struct {
	watcher *inotify.Watcher
	events  <-chan inotify.Event
	kinds   map[string]Kind
}

func New() (*Watcher, error) {
	w, err := inotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not start inotify watcher: %w", err)
	}
	return &Watcher{
		watcher: w,
		events:  w.Event,
		kinds:   make(map[string]Kind),
	}, nil
}

func (w *Watcher) Add(path string, kind Kind) error {
	path = filepath.Clean(path)
	if _, ok := w.kinds[path]; ok {
		return nil
	}
	_, err := w.watcher.AddWatch(path, inotify.IN_CLOSE_WRITE)
	if err != nil {
		return fmt.Errorf("could not watch %s: %w", path, err)
	}
	w.kinds[path] = kind
	return nil
}

// Poll returns every watched file that was closed after writing since the
// last call, each path at most once.
func (w *Watcher) Poll() []Change {
	var changes []Change
	seen := make(map[string]bool)
	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				return changes
			}
			// single-file watches carry no name, the watch holds the path
			if ev.Mask&inotify.IN_CLOSE_WRITE == 0 || ev.Watch == nil {
				continue
			}
			path := ev.Watch.Path
			kind, ok := w.kinds[path]
			if !ok || seen[path] {
				continue
			}
			seen[path] = true
			changes = append(changes, Change{Path: path, Kind: kind})
		default:
			return changes
		}
	}
}

// Close stops the watcher and returns the first read error it hit, if any.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
