package gotemplate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/npillmayer/schuko/tracing"
)

// Watch resets the template cache whenever a template file under dir
// changes. It blocks until ctx is done. onChange, when set, is called after
// each reset with the changed path.
func (e *Engine) Watch(ctx context.Context, dir string, onChange func(name string)) error {
	if e == nil {
		return errors.New("gotemplate: engine is nil")
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = e.baseDir
	}
	if dir == "" {
		return errors.New("gotemplate: watch requires a directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("gotemplate: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, dir); err != nil {
		return fmt.Errorf("gotemplate: watch %s: %w", dir, err)
	}

	trace := tracing.Select("taghelpers")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						trace.Errorf("gotemplate: watch %s: %v", event.Name, err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != e.tplExt {
				continue
			}
			e.Reset()
			trace.Debugf("gotemplate: %s changed, template cache reset", event.Name)
			if onChange != nil {
				onChange(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			trace.Errorf("gotemplate: watcher error: %v", err)
		}
	}
}

func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
