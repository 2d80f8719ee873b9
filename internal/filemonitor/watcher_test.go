// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package filemonitor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/db47h/chipsim/internal/filemonitor"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(lib, []byte("chips: []\n"), 0o644))

	logger, _ := logtest.NewNullLogger()
	events := make(chan string, 16)
	w, err := filemonitor.NewWatch(logger, []string{lib}, func(_ logrus.FieldLogger, ev fsnotify.Event) {
		events <- filepath.Base(ev.Name)
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- w.Run(ctx) }()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(lib, []byte("chips: [{name: A}]\n"), 0o644))

	select {
	case name := <-events:
		require.Equal(t, "lib.yaml", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatch_missing_dir(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	_, err := filemonitor.NewWatch(logger, []string{filepath.Join(t.TempDir(), "nope", "lib.yaml")}, nil)
	require.Error(t, err)
}
