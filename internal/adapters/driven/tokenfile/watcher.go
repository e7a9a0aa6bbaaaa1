// Package tokenfile keeps the session credential in step with a token file
// written by an external sign-in flow.
package tokenfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// Watcher installs the token from a file into a session and follows the
// file: a write installs the new token, a removal signs out.
//
// The file holds either the bare access token or an OAuth2 token in JSON
// ({"access_token": "..."}).
type Watcher struct {
	path    string
	session driving.SessionService
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, session driving.SessionService) *Watcher {
	return &Watcher{path: filepath.Clean(path), session: session}
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Load reads the file once and installs its token. A missing file leaves
// the session untouched.
func (w *Watcher) Load() error {
	token, err := ReadToken(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	w.session.Set(token)
	return nil
}

// Run follows the file until ctx is done. The parent directory is watched
// so editors and sign-in tools that replace the file atomically are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// The directory may not exist before the first sign-in.
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("watching token file %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("token file watcher: %v", err)
		}
	}
}

// handleEvent applies one filesystem event to the session.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		logger.Info("token file removed, signing out")
		w.session.Clear()
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		token, err := ReadToken(w.path)
		if err != nil {
			// Partial writes surface as empty or invalid content; the
			// next write event carries the complete file.
			logger.Debug("token file not readable yet: %v", err)
			return
		}
		w.session.Set(token)
	}
}

// ReadToken reads the access token from path.
func ReadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return ParseToken(data)
}

// ParseToken extracts the access token from file content.
func ParseToken(data []byte) (string, error) {
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", errors.New("token file is empty")
	}
	if !strings.HasPrefix(content, "{") {
		return content, nil
	}

	var tok oauth2.Token
	if err := json.Unmarshal([]byte(content), &tok); err != nil {
		return "", fmt.Errorf("parse token file: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("token file has no access_token")
	}
	return tok.AccessToken, nil
}
