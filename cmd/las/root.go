package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "las",
	Short: "Just-in-time utility CSS generator",
	Long: `Scan markup for utility classes and generate only the CSS they need.
Responsive screens and state variants compose as prefixes: md:hover:text-center`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", defaultConfigPath, "Config file path")
	pf.String("log-level", "info", "Log level: debug|info|warn|error")
	pf.String("output-format", "", "Output format: text|json")
	pf.String("assets-dir", ".", "Directory searched for utility.min.css and meta.css")
	pf.String("base-css", "", "Base utility stylesheet (overrides the assets-dir search)")
	pf.String("meta-css", "", "Metadata stylesheet (overrides the assets-dir search)")
	pf.String("namespace", "las", "Custom property namespace of the metadata stylesheet")
	pf.StringSlice("ignore", nil, "Doublestar globs to skip, relative to each scan dir")
	pf.Bool("gitignore", false, "Skip files matched by .gitignore in each scan dir")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// addScanFlags registers the scan settings; defaults come from config or
// the command's commandDefaults
func addScanFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("scan-dirs", nil, "Directories to scan")
	f.StringSlice("extensions", nil, "File extensions to scan")
}
