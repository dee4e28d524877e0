// Package watch re-runs a build when its inputs change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// ignored paths never trigger a run: VCS metadata and editor droppings.
var ignored = []string{
	"**/.git/**",
	"**/.hg/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// Config describes what to watch.
type Config struct {
	BaseDir  string        // defaults to the working directory
	Files    []string      // exact paths, such as the build file
	Patterns []string      // doublestar globs relative to BaseDir
	Debounce time.Duration // quiet period before a run
	Logger   *log.Logger

	// OnChange runs the build. Calls never overlap; changes seen while a
	// run is in progress cause one more run once it finishes.
	OnChange func(ctx context.Context, changed []string) error
}

// Watcher watches BaseDir and calls OnChange after debounced changes.
type Watcher struct {
	cfg     Config
	fsw     *fsnotify.Watcher
	baseDir string
	files   []string
}

// New validates cfg and registers the directories to watch. Without
// patterns only the directories holding Files are watched.
func New(cfg Config) (*Watcher, error) {
	for _, pat := range cfg.Patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid pattern %q", pat)
		}
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: working directory: %w", err)
		}
		baseDir = wd
	}
	baseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolving base directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: creating watcher: %w", err)
	}
	w := &Watcher{cfg: cfg, fsw: fsw, baseDir: baseDir}

	for _, f := range cfg.Files {
		abs := f
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(baseDir, f)
		}
		w.files = append(w.files, filepath.Clean(abs))
		if err := w.add(filepath.Dir(abs)); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	if len(cfg.Patterns) > 0 {
		if err := w.addTree(); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch: adding %q: %w", dir, err)
	}
	return nil
}

func (w *Watcher) addTree() error {
	return filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.cfg.Logger.Debug("Not watching unreadable path", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, _ := filepath.Rel(w.baseDir, path); rel != "." && isIgnored(rel+"/") {
			return filepath.SkipDir
		}
		return w.add(path)
	})
}

// Run blocks until ctx is done or the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		pending = map[string]struct{}{}
		timer   *time.Timer
		fire    <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: event channel closed")
			}
			rel, ok := w.relevant(evt)
			if !ok {
				continue
			}
			if evt.Has(fsnotify.Create) && len(w.cfg.Patterns) > 0 {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					_ = w.add(evt.Name)
				}
			}
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)

			w.cfg.Logger.Infof("Change detected in %s, running again.", changed[0])
			if w.cfg.OnChange != nil {
				if err := w.cfg.OnChange(ctx, changed); err != nil {
					w.cfg.Logger.Error(err)
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: error channel closed")
			}
			w.cfg.Logger.Warn("Watcher error", "err", err)
		}
	}
}

// relevant reports whether evt should trigger a run, and the path to
// report for it.
func (w *Watcher) relevant(evt fsnotify.Event) (string, bool) {
	if evt.Op == fsnotify.Chmod {
		return "", false
	}
	abs := filepath.Clean(evt.Name)
	rel, err := filepath.Rel(w.baseDir, abs)
	if err != nil {
		rel = abs
	}
	if slices.Contains(w.files, abs) {
		return rel, true
	}
	if isIgnored(rel) {
		return "", false
	}
	return rel, w.matches(rel)
}

func (w *Watcher) matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range w.cfg.Patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

func isIgnored(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range ignored {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
