package las

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, project string) (*Watcher, string) {
	t.Helper()
	out := filepath.Join(project, "dist", "jit.css")
	w, err := NewWatcher(Options{
		ScanDirs:   []string{project},
		Extensions: []string{".html"},
		OutputPath: out,
		Sources:    writeAssets(t, t.TempDir()),
	})
	require.NoError(t, err)
	return w, out
}

func TestNewWatcher_MissingSource(t *testing.T) {
	_, err := NewWatcher(Options{Sources: SourceConfig{AssetsDir: t.TempDir()}})
	require.ErrorIs(t, err, ErrMissingSource)
}

func TestWatcher_Prime(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "index.html", `<div class="flex hidden">`)
	w, out := newTestWatcher(t, project)

	stats, err := w.Prime(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Resolved)
	assert.Equal(t, 2, w.Tokens())
	assert.Equal(t, WatchHeader+".flex { display:flex }\n\n.hidden { display:none }\n\n", readFile(t, out))
}

func TestWatcher_HandleChange(t *testing.T) {
	project := t.TempDir()
	page := writeFile(t, project, "index.html", `<div class="flex">`)
	w, out := newTestWatcher(t, project)

	_, err := w.Prime(context.Background())
	require.NoError(t, err)
	require.FileExists(t, out)

	t.Run("no new tokens leaves output untouched", func(t *testing.T) {
		require.NoError(t, os.Remove(out))

		added, err := w.HandleChange(page)
		require.NoError(t, err)
		assert.Equal(t, 0, added)
		assert.NoFileExists(t, out)
	})

	t.Run("new token rewrites output", func(t *testing.T) {
		writeFile(t, project, "index.html", `<div class="flex md:p-4 bogus">`)

		added, err := w.HandleChange(page)
		require.NoError(t, err)
		assert.Equal(t, 2, added)

		css := readFile(t, out)
		assert.Contains(t, css, ".flex { display:flex }")
		assert.Contains(t, css, "@media (min-width: 768px) {\n  .md\\:p-4 { padding:1rem }\n}")
		assert.Equal(t, []string{"bogus"}, w.LastStats().UnresolvedTokens())
	})

	t.Run("tokens are never forgotten", func(t *testing.T) {
		writeFile(t, project, "index.html", `<div class="hidden">`)

		added, err := w.HandleChange(page)
		require.NoError(t, err)
		assert.Equal(t, 1, added)
		assert.Contains(t, readFile(t, out), ".md\\:p-4")
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := w.HandleChange(filepath.Join(project, "gone.html"))
		require.Error(t, err)
	})
}

func TestWatchIgnored(t *testing.T) {
	root := filepath.Join("proj")

	tests := []struct {
		name  string
		path  string
		globs []string
		want  bool
	}{
		{name: "root itself", path: "proj", want: false},
		{name: "plain file", path: "proj/src/App.html", want: false},
		{name: "hidden file", path: "proj/.env.html", want: true},
		{name: "hidden dir", path: "proj/.cache/a.html", want: true},
		{name: "node_modules", path: "proj/node_modules/x/a.html", want: true},
		{name: "dist", path: "proj/dist/a.html", want: true},
		{name: "output", path: "proj/src/output/a.html", want: true},
		{name: "git", path: "proj/.git/a.html", want: true},
		{name: "build is watched", path: "proj/build/a.html", want: false},
		{name: "glob", path: "proj/vendor/a.html", globs: []string{"vendor/**"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, watchIgnored(root, filepath.FromSlash(tt.path), tt.globs))
		})
	}
}

func TestWatcher_Run(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "index.html", `<div class="flex">`)
	w, out := newTestWatcher(t, project)

	_, err := w.Prime(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	// Let the watches register before touching files
	time.Sleep(200 * time.Millisecond)

	writeFile(t, project, "index.html", `<div class="flex hidden">`)
	require.Eventually(t, func() bool {
		return strings.Contains(readFile(t, out), ".hidden { display:none }")
	}, 5*time.Second, 50*time.Millisecond)

	// New directory with a file created after the watch started
	writeFile(t, project, "pages/about.html", `<div class="p-4">`)
	require.Eventually(t, func() bool {
		return strings.Contains(readFile(t, out), ".p-4 { padding:1rem }")
	}, 5*time.Second, 50*time.Millisecond)

	// Ignored locations never reach the generator
	writeFile(t, project, "node_modules/pkg/index.html", `<div class="text-center">`)
	time.Sleep(300 * time.Millisecond)
	assert.NotContains(t, readFile(t, out), "text-center")
}
