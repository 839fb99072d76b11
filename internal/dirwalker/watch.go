package dirwalker

import (
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher wraps fsnotify to re-scan a project's source directories as
// files change: a .elm file appearing or disappearing updates the
// knowledge base's view of the project; an elm.json changing means
// dependencies or source-directories themselves may have moved.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger *zap.Logger
}

// NewWatcher starts watching dirs non-recursively; fsnotify has no
// native recursive mode, so a subdirectory is watched only once it is
// passed to Add.
func NewWatcher(logger *zap.Logger, dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			logger.Warn("watching directory", zap.String("dir", d), zap.Error(err))
		}
	}
	return &Watcher{fsw: fsw, logger: logger}, nil
}

// Add starts watching an additional directory.
func (w *Watcher) Add(dir string) error { return w.fsw.Add(dir) }

// Close stops the watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Events exposes the underlying fsnotify event stream; callers match
// on event.Name and event.Op to decide whether a changed path is a
// .elm file, an elm.json, or irrelevant.
func (w *Watcher) Events() <-chan fsnotify.Event { return w.fsw.Events }

// Errors exposes fsnotify's own error channel, logged by the caller's
// event loop rather than by this package, matching dir_walker.rs's
// policy of logging-and-continuing rather than owning a logging loop
// itself.
func (w *Watcher) Errors() <-chan error { return w.fsw.Errors }
