package las

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testBaseCSS = `.flex{display:flex}.hidden{display:none}.text-center{text-align:center}.p-4{padding:1rem}`
	testMetaCSS = `:root{
  --las-breakpoint-sm: 640px;
  --las-breakpoint-md: 768px;
  --las-variant-hover: :hover;
  --las-color-red: #ff0000;
  --las-config-color-bg: true;
}`
)

// writeFile creates path (and its parents) below dir
func writeFile(t *testing.T, dir, path, content string) string {
	t.Helper()
	full := filepath.Join(dir, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	return full
}

// writeAssets creates the default artifacts in dir
func writeAssets(t *testing.T, dir string) SourceConfig {
	t.Helper()
	writeFile(t, dir, "utility.min.css", testBaseCSS)
	writeFile(t, dir, "meta.css", testMetaCSS)
	return SourceConfig{AssetsDir: dir}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}
