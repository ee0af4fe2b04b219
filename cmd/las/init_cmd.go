package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .las.yaml config file",
	Long: `Create a .las.yaml configuration file in the current directory with the
scan settings of the chosen framework.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		framework, _ := cmd.Flags().GetString("framework")

		preset, ok := frameworkPresets[framework]
		if !ok {
			return fmt.Errorf("unknown framework %q (supported: %s)", framework, strings.Join(frameworkNames(), ", "))
		}

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(renderConfig(framework, preset)), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s (framework: %s)\n\n", defaultConfigPath, framework)
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  las watch   Regenerate CSS on every change")
		fmt.Fprintln(out, "  las build   Write the production stylesheet")
		return nil
	},
}

// frameworkPresets are the scan settings written by init per project type
var frameworkPresets = map[string]commandDefaults{
	"react": {
		Extensions: []string{".jsx", ".tsx", ".js", ".ts"},
		ScanDirs:   []string{"./src", "./public"},
		Output:     "./public/las.css",
	},
	"next": {
		Extensions: []string{".jsx", ".tsx", ".js", ".ts"},
		ScanDirs:   []string{"./app", "./pages", "./components", "./src"},
		Output:     "./public/las.css",
	},
	"vite": {
		Extensions: []string{".jsx", ".tsx", ".js", ".ts", ".vue"},
		ScanDirs:   []string{"./src", "./public"},
		Output:     "./public/las.css",
	},
	"vue": {
		Extensions: []string{".vue", ".js", ".ts"},
		ScanDirs:   []string{"./src", "./public"},
		Output:     "./public/las.css",
	},
	"angular": {
		Extensions: []string{".html", ".ts", ".component.html"},
		ScanDirs:   []string{"./src/app", "./src"},
		Output:     "./src/las.css",
	},
	"html": {
		Extensions: []string{".html", ".js"},
		ScanDirs:   []string{"./"},
		Output:     "./dist/las.css",
	},
}

func frameworkNames() []string {
	names := make([]string, 0, len(frameworkPresets))
	for name := range frameworkPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func renderConfig(framework string, preset commandDefaults) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# las configuration (framework: %s)\n\n", framework)

	b.WriteString("# Files to scan\n")
	writeList(&b, "extensions", preset.Extensions)
	writeList(&b, "scan-dirs", preset.ScanDirs)
	fmt.Fprintf(&b, "\n# Generated stylesheet\noutput: %s\n", preset.Output)

	b.WriteString(`
# Precompiled artifacts (utility.min.css, meta.css) are searched here
assets-dir: .
namespace: las

# Skip paths (doublestar globs relative to each scan dir)
ignore: []
gitignore: false

# Dev server (las serve)
serve:
  addr: ":5173"
  root: .

# Unresolved class report (las check)
check:
  strict: false
  max-issues: 0        # 0 = unlimited
  max-same-issues: 0   # 0 = unlimited
  print-lines: true
`)
	return b.String()
}

func writeList(b *strings.Builder, key string, values []string) {
	fmt.Fprintf(b, "%s:\n", key)
	for _, v := range values {
		fmt.Fprintf(b, "  - %q\n", v)
	}
}

func init() {
	initCmd.Flags().StringP("framework", "f", "html", "Project type: angular|html|next|react|vite|vue")
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
