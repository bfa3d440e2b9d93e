package export

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits after the last change before it
// exports again. Editors often write a file in several steps.
const DefaultDebounce = 200 * time.Millisecond

// Watch exports input once and again every time it changes, until ctx is
// done. The parent directory is watched so editors that replace the file
// by renaming are picked up too. done is called after every export.
func (x *Exporter) Watch(ctx context.Context, input string, debounce time.Duration, done func(*Result, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	abs, err := filepath.Abs(input)
	if err != nil {
		return errors.Wrap(err, "resolve input")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	x.log.Info("watching", zap.String("input", input))

	done(x.Export(input))

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != abs {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			x.log.Debug("input changed", zap.String("op", e.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			trigger = timer.C

		case <-trigger:
			trigger = nil
			done(x.Export(input))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			x.log.Error("watch error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}
