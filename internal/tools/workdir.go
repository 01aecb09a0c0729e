package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Workdir is the working-directory state shared by the tool layer.
//
// The change-directory tool mutates it and every path-taking tool resolves
// relative paths against it, so tool behavior stays deterministic without
// touching the process-wide working directory.
type Workdir struct {
	mu   sync.Mutex
	path string
}

// NewWorkdir creates a Workdir rooted at the process working directory.
func NewWorkdir() *Workdir {
	path, err := os.Getwd()
	if err != nil {
		path = "."
	}
	return &Workdir{path: path}
}

// NewWorkdirAt creates a Workdir rooted at the given absolute path.
// Used by tests to pin tool execution to a fixture directory.
func NewWorkdirAt(path string) *Workdir {
	return &Workdir{path: path}
}

// Path returns the current working directory.
func (w *Workdir) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Resolve expands a leading ~ and joins relative paths against the
// current working directory.
func (w *Workdir) Resolve(path string) string {
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(w.Path(), path)
}

// Set changes the working directory, returning the previous one.
// The target must exist and be a directory.
func (w *Workdir) Set(path string) (old string, err error) {
	resolved := w.Resolve(path)

	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", resolved)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	old = w.path
	w.path = resolved
	return old, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
