package sceneconfig

import (
	"path"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch starts watching path for writes and re-runs Load on every change,
// pushing the freshly decoded *Scene down ch. It follows the same
// fsnotify.Watcher wiring as bitmarkd's command/recorderd file watcher: one
// goroutine draining watcher.Events, skipping events whose base name is not
// the scene file's and events other than writes and creates.
//
// A scene that fails to reload (malformed HCL, rejected growth_factor) is
// dropped silently rather than sent down ch; the caller keeps running on
// the last good scene. The returned watcher's Close stops the goroutine.
func Watch(scenePath string, ch chan<- *Scene) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(filepath.Clean(scenePath))
	if err != nil {
		watcher.Close()
		return nil, err
	}

	if err := watcher.Add(absPath); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for event := range watcher.Events {
			if path.Base(event.Name) != path.Base(absPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			scene, err := Load(absPath)
			if err != nil {
				continue
			}
			ch <- scene
		}
	}()

	return watcher, nil
}
