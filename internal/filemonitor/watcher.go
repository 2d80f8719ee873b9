// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package filemonitor watches circuit library files for changes.
//
package filemonitor

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watcher calls an update function whenever one of the watched files is
// written, created or replaced.
//
// Parent directories are watched rather than the files themselves so that
// editors that save by renaming a temporary file are handled.
//
type Watcher struct {
	notify     *fsnotify.Watcher
	files      map[string]struct{}
	logger     logrus.FieldLogger
	onUpdateFn func(logrus.FieldLogger, fsnotify.Event)
}

// NewWatch sets up monitoring on a slice of files and will execute the update
// function to process each relevant event.
//
func NewWatch(logger logrus.FieldLogger, files []string, onUpdateFn func(logrus.FieldLogger, fsnotify.Event)) (*Watcher, error) {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}

	w := &Watcher{
		notify:     notify,
		files:      make(map[string]struct{}, len(files)),
		logger:     logger,
		onUpdateFn: onUpdateFn,
	}
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			notify.Close()
			return nil, errors.Wrap(err, f)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := notify.Add(dir); err != nil {
			notify.Close()
			return nil, errors.Wrapf(err, "watch %s", dir)
		}
		dirs[dir] = struct{}{}
		logger.Debugf("monitoring path '%v'", dir)
	}
	return w, nil
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

// Run processes events until ctx is done. It always returns nil.
//
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.notify.Close() // always returns nil for the error
			w.logger.Debug("terminating watcher")
			return nil
		case event, ok := <-w.notify.Events:
			if !ok {
				return nil
			}
			w.logger.Debugf("watcher got event: %v", event)
			if w.onUpdateFn != nil && w.relevant(event) {
				w.onUpdateFn(w.logger, event)
			}
		case err, ok := <-w.notify.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnf("watcher got error: %v", err)
		}
	}
}
