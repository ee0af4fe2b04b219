package las

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/las/internal/jit"
)

// Output headers
const (
	BuildHeader = "/* LAS CSS - Production Build */\n"
	WatchHeader = "/* LAS JIT - Auto-generated CSS */\n\n"
)

// Stats summarizes one generation run
type Stats struct {
	Total      int          // Distinct tokens considered
	Resolved   int          // Tokens that produced a rule
	Unresolved int          // Tokens that produced nothing
	Misses     []jit.Result // Unresolved tokens, sorted by token
	Bytes      int          // Size of the rendered stylesheet
}

// UnresolvedTokens returns the tokens of Misses
func (s Stats) UnresolvedTokens() []string {
	tokens := make([]string, len(s.Misses))
	for i, m := range s.Misses {
		tokens[i] = m.Token
	}
	return tokens
}

// RenderCSS generates the stylesheet for tokens: header first, then one rule
// per resolved token in cascade order, separated by blank lines
func RenderCSS(tokens TokenSet, table jit.StyleTable, config jit.Config, header string) (string, Stats) {
	ordered := jit.SortTokens(tokens.Sorted(), config.Breakpoints())

	var b strings.Builder
	b.WriteString(header)

	stats := Stats{Total: len(ordered)}
	for _, token := range ordered {
		result := jit.Generate(token, table, config)
		if !result.OK {
			stats.Unresolved++
			stats.Misses = append(stats.Misses, result)
			continue
		}
		stats.Resolved++
		b.WriteString(result.CSS)
		b.WriteString("\n\n")
	}

	sort.Slice(stats.Misses, func(i, j int) bool {
		return stats.Misses[i].Token < stats.Misses[j].Token
	})

	css := b.String()
	stats.Bytes = len(css)
	return css, stats
}

// WriteCSS renders tokens and overwrites path, creating its parent directory
func WriteCSS(tokens TokenSet, table jit.StyleTable, config jit.Config, path, header string) (Stats, error) {
	css, stats := RenderCSS(tokens, table, config, header)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return stats, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
		return stats, fmt.Errorf("write %s: %w", path, err)
	}

	return stats, nil
}

// Options configures a build or watch session
type Options struct {
	ScanDirs   []string
	Extensions []string
	OutputPath string
	Sources    SourceConfig
	Ignore     []string // Doublestar globs relative to each scan dir
	GitIgnore  bool     // Honour .gitignore at each scan dir
	Logger     *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) scanOptions() []ScanOption {
	opts := []ScanOption{WithIgnore(o.Ignore...)}
	if o.GitIgnore {
		opts = append(opts, WithGitIgnore())
	}
	return opts
}

// BuildResult describes a finished build
type BuildResult struct {
	Sources     *Sources
	Tokens      TokenSet
	ScannedDirs []string
	SkippedDirs []string // Configured dirs that do not exist
	OutputPath  string
	Stats       Stats
}

// Build scans every configured directory once and writes the production
// stylesheet. Missing scan directories are skipped with a warning.
func Build(ctx context.Context, opts Options) (*BuildResult, error) {
	log := opts.logger()

	sources, err := LoadSources(opts.Sources)
	if err != nil {
		return nil, err
	}
	log.Debug("sources loaded",
		zap.String("base", sources.BasePath),
		zap.String("meta", sources.MetaPath),
		zap.Int("classes", len(sources.Table)),
		zap.Int("breakpoints", len(sources.Config.Screens)),
		zap.Int("variants", len(sources.Config.Variants)))

	result := &BuildResult{Sources: sources, OutputPath: opts.OutputPath}

	result.Tokens, result.ScannedDirs, result.SkippedDirs, err = scanRoots(ctx, opts, log)
	if err != nil {
		return nil, err
	}

	header := fmt.Sprintf("%s/* Total Classes: %d */\n\n", BuildHeader, len(result.Tokens))
	result.Stats, err = WriteCSS(result.Tokens, sources.Table, sources.Config, opts.OutputPath, header)
	if err != nil {
		return nil, err
	}

	log.Info("build complete",
		zap.String("output", opts.OutputPath),
		zap.Int("resolved", result.Stats.Resolved),
		zap.Int("unresolved", result.Stats.Unresolved))

	return result, nil
}

// scanRoots unions the tokens of every existing scan dir
func scanRoots(ctx context.Context, opts Options, log *zap.Logger) (TokenSet, []string, []string, error) {
	tokens := make(TokenSet)
	var scanned, skipped []string

	for _, dir := range opts.ScanDirs {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}

		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			log.Warn("scan directory not found, skipping", zap.String("dir", dir))
			skipped = append(skipped, dir)
			continue
		}

		found, err := ScanTree(dir, opts.Extensions, opts.scanOptions()...)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Debug("scanned", zap.String("dir", dir), zap.Int("tokens", len(found)))

		tokens.Merge(found)
		scanned = append(scanned, dir)
	}

	return tokens, scanned, skipped, nil
}
