package las

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "src/index.html", `<div class="flex">`)
	page := writeFile(t, project, "src/about.html", `<div class="hidden">`)

	engine := NewEngine(testSources(t), Options{Extensions: []string{".html"}})
	assert.Equal(t, WatchHeader, engine.CSS())

	require.NoError(t, engine.Init(context.Background(), []string{filepath.Join(project, "src"), filepath.Join(project, "missing")}))
	assert.Equal(t, WatchHeader+".flex { display:flex }\n\n.hidden { display:none }\n\n", engine.CSS())
	assert.Equal(t, 2, engine.Stats().Resolved)

	assert.False(t, engine.UpdateFile(page), "no new tokens")

	writeFile(t, project, "src/about.html", `<div class="hidden sm:p-4 nope">`)
	assert.True(t, engine.UpdateFile(page))
	assert.Contains(t, engine.CSS(), "@media (min-width: 640px) {\n  .sm\\:p-4 { padding:1rem }\n}")
	assert.Equal(t, []string{"nope"}, engine.Stats().UnresolvedTokens())

	assert.False(t, engine.UpdateFile(filepath.Join(project, "gone.html")))
}

func TestEngine_ConcurrentReaders(t *testing.T) {
	project := t.TempDir()
	page := writeFile(t, project, "index.html", `<div class="flex">`)
	engine := NewEngine(testSources(t), Options{Extensions: []string{".html"}})
	require.NoError(t, engine.Init(context.Background(), []string{project}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = engine.CSS()
				_ = engine.Stats()
			}
		}()
	}

	writeFile(t, project, "index.html", `<div class="flex hidden p-4">`)
	engine.UpdateFile(page)
	wg.Wait()

	assert.Equal(t, 3, engine.Stats().Resolved)
}
