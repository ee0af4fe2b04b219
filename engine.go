package las

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Engine is the in-memory generator behind the dev server: the stylesheet
// is kept as a string instead of being written to disk. One goroutine
// updates it while any number of readers call CSS and Stats.
type Engine struct {
	mu      sync.RWMutex
	opts    Options
	log     *zap.Logger
	sources *Sources
	tokens  TokenSet
	css     string
	stats   Stats
}

// NewEngine creates an engine over already loaded sources
func NewEngine(sources *Sources, opts Options) *Engine {
	e := &Engine{
		opts:    opts,
		log:     opts.logger(),
		sources: sources,
		tokens:  make(TokenSet),
	}
	e.render()
	return e
}

// Init scans dirs (missing ones are skipped) and renders the stylesheet
func (e *Engine) Init(ctx context.Context, dirs []string) error {
	opts := e.opts
	opts.ScanDirs = dirs

	tokens, _, _, err := scanRoots(ctx, opts, e.log)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.tokens = tokens
	e.render()
	return nil
}

// UpdateFile rescans one file and reports whether the stylesheet changed.
// Unreadable files are logged and leave the stylesheet untouched.
func (e *Engine) UpdateFile(path string) bool {
	found, err := ScanFile(path)
	if err != nil {
		e.log.Warn("update skipped", zap.String("file", path), zap.Error(err))
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tokens.Merge(found) == 0 {
		return false
	}
	e.render()
	return true
}

// CSS returns the current stylesheet
func (e *Engine) CSS() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.css
}

// Stats returns the stats of the current stylesheet
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

// Watch updates the engine from file events under the configured scan dirs
// until ctx is done, calling onUpdate after every change to the stylesheet
func (e *Engine) Watch(ctx context.Context, onUpdate func(path string)) error {
	return watchTree(ctx, e.opts, e.log, func(path string) {
		if e.UpdateFile(path) && onUpdate != nil {
			onUpdate(path)
		}
	})
}

// render must be called with mu held for writing
func (e *Engine) render() {
	e.css, e.stats = RenderCSS(e.tokens, e.sources.Table, e.sources.Config, WatchHeader)
}
