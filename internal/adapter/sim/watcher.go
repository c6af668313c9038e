package sim

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch drops cached scenarios when their files change on disk, so edits take
// effect for the next run without a restart. It blocks until ctx is done.
func (s *ScenarioStore) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(s.root); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			base := filepath.Base(ev.Name)
			if name, isYAML := strings.CutSuffix(base, ".yaml"); isYAML {
				s.invalidate(name)
			}
		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
		}
	}
}
