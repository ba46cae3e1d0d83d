package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

type ChangeKind int

const (
	SpecChanged ChangeKind = iota
	ScriptChanged
)

// Change names a spec or script file that was written on disk. Name is
// relative to Dir, in the form Load and LoadScript accept.
type Change struct {
	Kind ChangeKind
	Name string
}

// Watcher reports edits to the disk copies of specs and scripts so a running
// host can reload them.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches Dir and Dir/scripts. A missing scripts directory is not
// an error.
func NewWatcher() (*Watcher, error) {
	return newWatcher(Dir)
}

func newWatcher(root string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(root); err != nil {
		_ = w.Close()
		return nil, err
	}
	_ = w.Add(filepath.Join(root, "scripts"))

	watcher := &Watcher{
		watcher: w,
		root:    root,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run reports a change once its file has been quiet for reloadDebounce, so
// an editor's burst of writes becomes a single reload.
func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	pending := make(map[Change]time.Time)
	tick := time.NewTicker(reloadDebounce / 4)
	defer tick.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if change, ok := w.classify(event.Name); ok {
				pending[change] = time.Now()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case now := <-tick.C:
			for change, at := range pending {
				if now.Sub(at) < reloadDebounce {
					continue
				}
				delete(pending, change)
				select {
				case w.Events <- change:
				case <-w.closeCh:
					return
				}
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) classify(path string) (Change, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return Change{}, false
	}
	rel = filepath.ToSlash(rel)
	switch {
	case isSpecFile(rel) && !strings.Contains(rel, "/"):
		return Change{Kind: SpecChanged, Name: rel}, true
	case isScriptFile(rel):
		return Change{Kind: ScriptChanged, Name: rel}, true
	}
	return Change{}, false
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
