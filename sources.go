package las

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yacobolo/las/internal/jit"
)

// ErrMissingSource is returned when the base style table or the metadata
// stylesheet cannot be found. It is fatal and reported before any scanning.
var ErrMissingSource = errors.New("source artifact not found")

// Default artifact locations, relative to the assets directory, in search order
var (
	baseCSSCandidates = []string{"utility.min.css", filepath.Join("dist", "utility.min.css")}
	metaCSSCandidates = []string{"meta.css", filepath.Join("dist", "meta.css")}
)

// SourceConfig says where the precompiled artifacts live
type SourceConfig struct {
	AssetsDir string // Searched for the default artifact names
	BaseCSS   string // Explicit base stylesheet path, skips the search
	MetaCSS   string // Explicit metadata stylesheet path, skips the search
	Namespace string // Custom property namespace of the metadata ("las")
}

// Sources holds the parsed artifacts every generation run needs
type Sources struct {
	BasePath string
	MetaPath string
	Table    jit.StyleTable
	Config   jit.Config
}

// LoadSources locates, reads and parses both artifacts
func LoadSources(cfg SourceConfig) (*Sources, error) {
	basePath, err := locateSource("base styles", cfg.BaseCSS, cfg.AssetsDir, baseCSSCandidates)
	if err != nil {
		return nil, err
	}
	metaPath, err := locateSource("metadata", cfg.MetaCSS, cfg.AssetsDir, metaCSSCandidates)
	if err != nil {
		return nil, err
	}

	base, err := os.ReadFile(basePath)
	if err != nil {
		return nil, fmt.Errorf("read base styles: %w", err)
	}
	meta, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	return &Sources{
		BasePath: basePath,
		MetaPath: metaPath,
		Table:    jit.ParseStyleTable(string(base)),
		Config:   jit.ParseConfigNamespace(string(meta), cfg.Namespace),
	}, nil
}

// locateSource returns the explicit path if set, otherwise the first
// candidate that exists under dir
func locateSource(what, explicit, dir string, candidates []string) (string, error) {
	var tried []string
	if explicit != "" {
		tried = []string{explicit}
	} else {
		for _, c := range candidates {
			tried = append(tried, filepath.Join(dir, c))
		}
	}

	for _, path := range tried {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s (tried %s)", ErrMissingSource, what, strings.Join(tried, ", "))
}
