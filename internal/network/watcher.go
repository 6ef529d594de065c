package network

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/corridor/internal/logger"
)

// Watcher reports changes to a network file. The parent directory is watched
// so editors that replace the file on save are still seen.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

// Watch starts watching path.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes delivers the file path after every write. Pending notifications
// collapse into one, so a slow reader never blocks the watcher.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Poll returns true if the file changed since the last call. It never blocks.
func (w *Watcher) Poll() bool {
	select {
	case <-w.changes:
		return true
	default:
		return false
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	log := logger.Named("network.watch")

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("network file changed", zap.String("path", w.path), zap.String("op", ev.Op.String()))
			select {
			case w.changes <- w.path:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", zap.Error(err))
		}
	}
}
