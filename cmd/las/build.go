package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/las"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the production stylesheet",
	Long: `Scan every configured directory once and write a stylesheet containing
only the rules for classes in use. Missing scan directories are skipped.`,
	RunE: runBuild,
}

func init() {
	addScanFlags(buildCmd)
	buildCmd.Flags().StringP("output", "o", "", "Output stylesheet path (default ./dist/las-production.css)")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	result, err := las.Build(cmd.Context(), buildOptions(buildDefaults, log))
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", false)
	if quiet {
		return nil
	}

	out := cmd.OutOrStdout()
	if las.DetermineOutputFormat(k.String("output-format"), quiet) == las.OutputJSON {
		return las.WriteBuildJSON(out, result)
	}

	newReporter(out).PrintBuildSummary(result)
	return nil
}

// setup loads configuration and builds the logger every command shares
func setup(cmd *cobra.Command) (*zap.Logger, error) {
	if err := loadConfig(cmd); err != nil {
		return nil, err
	}
	return newLogger()
}
