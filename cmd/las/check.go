package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/las"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report class tokens that generate no CSS",
	Long: `Scan the configured directories and report every occurrence of a class
that resolves to nothing, with file, line and column. Bad shades and unknown
colors on color utilities are errors; other unknown classes are warnings.`,
	RunE: runCheck,
}

func init() {
	addScanFlags(checkCmd)
	f := checkCmd.Flags()
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	result, err := las.Check(cmd.Context(), buildCheckOptions(log))
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", false)
	if !quiet {
		out := cmd.OutOrStdout()
		if las.DetermineOutputFormat(k.String("output-format"), quiet) == las.OutputJSON {
			if err := las.WriteCheckJSON(out, result); err != nil {
				return err
			}
		} else {
			reporter := newReporter(out)
			reporter.PrintIssues(result.Issues)
			reporter.PrintCheckSummary(result)
		}
	}

	if checkFailed(result, getBoolWithFallback("check.strict", false)) {
		os.Exit(1)
	}
	return nil
}

// checkFailed applies the exit policy: strict mode fails on any issue,
// otherwise only errors fail
func checkFailed(result *las.CheckResult, strict bool) bool {
	if strict {
		return result.ErrorCount+result.WarningCount > 0
	}
	return result.ErrorCount > 0
}
