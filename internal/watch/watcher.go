// Package watch provides the local watch loop: on worktree changes it
// re-resolves the changed-file list and reports the recomputed target set.
// It never executes actions; it exists so developers can see which checks a
// change will trigger before they push.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/checkrunner/internal/classify"
	"git.home.luguber.info/inful/checkrunner/internal/logfields"
)

// ResolveFunc returns the current changed-file list for the worktree.
type ResolveFunc func(ctx context.Context) ([]string, error)

// Watcher recomputes targets on worktree changes, debounced.
type Watcher struct {
	root       string
	classifier *classify.Classifier
	resolve    ResolveFunc
	watcher    *fsnotify.Watcher

	recomputeChan chan struct{}
	debounceTime  time.Duration
}

// New creates a watcher rooted at the repository worktree.
func New(root string, classifier *classify.Classifier, resolve ResolveFunc) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve worktree root: %w", err)
	}

	return &Watcher{
		root:          absRoot,
		classifier:    classifier,
		resolve:       resolve,
		watcher:       watcher,
		recomputeChan: make(chan struct{}, 1),
		debounceTime:  2 * time.Second, // Debounce rapid file changes
	}, nil
}

// Run watches until the context is cancelled. Blocks.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.addRecursive(w.root); err != nil {
		return err
	}
	defer w.watcher.Close()

	slog.Info("Watching worktree for changes", logfields.Path(w.root))

	// Report once up front so the first result does not wait for a change.
	w.report(ctx)

	go w.recomputeLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// addRecursive watches root and all non-ignored subdirectories. fsnotify does
// not recurse on its own.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// ignored filters VCS metadata and node_modules churn.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	if base == ".git" || base == "node_modules" {
		return true
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if seg == ".git" || seg == "node_modules" {
			return true
		}
	}
	return false
}

func (w *Watcher) trigger() {
	select {
	case w.recomputeChan <- struct{}{}:
	default:
		// Recompute already pending
	}
}

// recomputeLoop handles debounced target recomputation.
func (w *Watcher) recomputeLoop(ctx context.Context) {
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.recomputeChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceTime, func() {
				w.report(ctx)
			})
		}
	}
}

// report resolves the current diff and logs the resulting target set.
func (w *Watcher) report(ctx context.Context) {
	files, err := w.resolve(ctx)
	if err != nil {
		slog.Warn("Failed to resolve changed files", logfields.Error(err))
		files = nil
	}

	targets := w.classifier.Aggregate(files)
	slog.Info("Targets affected by current change",
		slog.Int("files", len(files)),
		logfields.Target(classify.FormatSet(targets)))
}
