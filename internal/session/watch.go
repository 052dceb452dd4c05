package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"jansctl/pkg/logging"
)

// ReadTokenFile reads a token from path, trimming surrounding whitespace.
func ReadTokenFile(path string) (Secret, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Secret{}, fmt.Errorf("failed to read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return Secret{}, fmt.Errorf("token file %s is empty", path)
	}
	return NewSecret(token), nil
}

// WatchIdentityToken calls fn with the token in path every time the file is
// rewritten with a different, non-empty value. The parent directory is
// watched so editors and token helpers that replace the file by rename are
// picked up. It blocks until ctx is done.
func WatchIdentityToken(ctx context.Context, path string, fn func(Secret)) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	var last string
	if tok, err := ReadTokenFile(path); err == nil {
		last = tok.Value()
	}

	logging.Debug("Session", "Watching identity token file %s", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			tok, err := ReadTokenFile(path)
			if err != nil {
				// Truncate-then-write shows up as an empty file first.
				logging.Debug("Session", "Ignoring unreadable token file: %v", err)
				continue
			}
			if tok.Value() == last {
				continue
			}
			last = tok.Value()

			logging.Info("Session", "Identity token file %s changed", path)
			fn(tok)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("Session", err, "token file watcher error")
		}
	}
}
