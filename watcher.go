package las

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Path segments the watcher never reacts to
var watchIgnoredDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"output":       true,
	".git":         true,
}

// Watcher keeps the tokens seen so far and rewrites the output file
// whenever a changed file brings in a new one. It is not safe for concurrent
// use; Run serializes all changes on one goroutine.
type Watcher struct {
	opts    Options
	log     *zap.Logger
	sources *Sources
	tokens  TokenSet
	last    Stats

	onUpdate func(path string, added int, stats Stats)
}

// NewWatcher loads the source artifacts. A missing artifact fails here,
// before anything is scanned.
func NewWatcher(opts Options) (*Watcher, error) {
	sources, err := LoadSources(opts.Sources)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		opts:    opts,
		log:     opts.logger(),
		sources: sources,
		tokens:  make(TokenSet),
	}, nil
}

// Sources returns the parsed artifacts
func (w *Watcher) Sources() *Sources {
	return w.sources
}

// Tokens returns the number of distinct tokens seen
func (w *Watcher) Tokens() int {
	return len(w.tokens)
}

// LastStats returns the stats of the most recent write
func (w *Watcher) LastStats() Stats {
	return w.last
}

// OnUpdate registers fn to run after each rewrite triggered by Run
func (w *Watcher) OnUpdate(fn func(path string, added int, stats Stats)) {
	w.onUpdate = fn
}

// Prime performs the initial full scan and writes the output once
func (w *Watcher) Prime(ctx context.Context) (Stats, error) {
	tokens, _, _, err := scanRoots(ctx, w.opts, w.log)
	if err != nil {
		return Stats{}, err
	}
	w.tokens.Merge(tokens)
	return w.write()
}

// HandleChange rescans one file and rewrites the output only if the file
// introduced tokens not seen before. It returns the number of new tokens.
func (w *Watcher) HandleChange(path string) (int, error) {
	found, err := ScanFile(path)
	if err != nil {
		return 0, err
	}

	added := w.tokens.Merge(found)
	if added == 0 {
		return 0, nil
	}

	if _, err := w.write(); err != nil {
		return added, err
	}
	return added, nil
}

func (w *Watcher) write() (Stats, error) {
	stats, err := WriteCSS(w.tokens, w.sources.Table, w.sources.Config, w.opts.OutputPath, WatchHeader)
	if err != nil {
		return stats, err
	}
	w.last = stats
	return stats, nil
}

// Run watches the scan directories until ctx is done. Read errors for a
// single file are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	return watchTree(ctx, w.opts, w.log, func(path string) {
		added, err := w.HandleChange(path)
		switch {
		case err != nil:
			w.log.Warn("change not applied", zap.String("file", path), zap.Error(err))
		case added > 0:
			w.log.Info("stylesheet updated",
				zap.String("file", GetRelativePath(path)),
				zap.Int("new", added),
				zap.Int("resolved", w.last.Resolved),
				zap.Int("unresolved", w.last.Unresolved))
			if w.onUpdate != nil {
				w.onUpdate(path, added, w.last)
			}
		default:
			w.log.Debug("no new classes", zap.String("file", GetRelativePath(path)))
		}
	})
}

// watchTree feeds handle with every written or created file below the
// scan dirs, one at a time, until ctx is done
func watchTree(ctx context.Context, opts Options, log *zap.Logger, handle func(path string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	t := &treeWatcher{fw: fw, opts: opts, log: log, roots: make(map[string]string)}
	for _, dir := range opts.ScanDirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := t.addTree(dir, dir); err != nil {
			return err
		}
	}

	log.Info("watching",
		zap.Strings("dirs", opts.ScanDirs),
		zap.Strings("extensions", opts.Extensions),
		zap.String("output", opts.OutputPath))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			t.handleEvent(event, handle)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				log.Warn("watch event overflow, some changes may be missed")
				continue
			}
			log.Error("watch error", zap.Error(err))
		}
	}
}

// treeWatcher maps every watched directory back to its scan dir so ignore
// rules can be evaluated relative to it
type treeWatcher struct {
	fw    *fsnotify.Watcher
	opts  Options
	log   *zap.Logger
	roots map[string]string // watched dir -> scan dir
}

func (t *treeWatcher) handleEvent(event fsnotify.Event, handle func(path string)) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	root, ok := t.roots[filepath.Dir(event.Name)]
	if !ok || watchIgnored(root, event.Name, t.opts.Ignore) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Removed or renamed before we got to it
		return
	}

	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := t.addTree(root, event.Name); err != nil {
				t.log.Warn("cannot watch new directory", zap.String("dir", event.Name), zap.Error(err))
				return
			}
			// Files may land before the watch is registered
			files, err := ListFiles(event.Name, t.opts.Extensions, t.opts.scanOptions()...)
			if err != nil {
				t.log.Warn("cannot list new directory", zap.String("dir", event.Name), zap.Error(err))
				return
			}
			for _, f := range files {
				if !watchIgnored(root, f, t.opts.Ignore) {
					handle(f)
				}
			}
		}
		return
	}

	if !info.Mode().IsRegular() || !hasExtension(event.Name, t.opts.Extensions) {
		return
	}
	handle(event.Name)
}

// addTree registers dir and every non-ignored directory below it
func (t *treeWatcher) addTree(root, dir string) error {
	var mu sync.Mutex
	var dirs []string

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if filepath.Clean(p) != filepath.Clean(root) && watchIgnored(root, p, t.opts.Ignore) {
			return filepath.SkipDir
		}
		mu.Lock()
		dirs = append(dirs, filepath.Clean(p))
		mu.Unlock()
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}

	for _, d := range dirs {
		if err := t.fw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
		t.roots[d] = root
	}
	return nil
}

// watchIgnored reports hidden paths, the fixed ignore directories and
// user ignore globs, all evaluated relative to the scan dir
func watchIgnored(root, path string, globs []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, segment := range strings.Split(rel, "/") {
		if watchIgnoredDirs[segment] {
			return true
		}
		if strings.HasPrefix(segment, ".") && segment != "." && segment != ".." {
			return true
		}
	}

	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return true
		}
	}
	return false
}
