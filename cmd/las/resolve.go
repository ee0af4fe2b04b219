package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/las"
	"github.com/yacobolo/las/internal/jit"
	"github.com/yacobolo/las/internal/report"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <class>...",
	Short: "Print the CSS generated for individual classes",
	Long: `Resolve each class against the loaded base styles and metadata and print
the generated rule, or the reason no rule was produced.`,
	Example: `  las resolve md:hover:text-center bg-red-600`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sources, err := las.LoadSources(buildSourceConfig())
	if err != nil {
		return err
	}

	colors := getBoolWithFallback("color", false)
	out := cmd.OutOrStdout()
	misses := 0
	for _, token := range args {
		res := jit.Generate(token, sources.Table, sources.Config)
		if !res.OK {
			misses++
			fmt.Fprintf(out, "/* %s: %s */\n", token, report.RenderStyle(report.StyleError, string(res.Miss), colors))
			continue
		}
		fmt.Fprintln(out, report.RenderStyle(report.StyleSelector, res.CSS, colors))
	}

	if misses > 0 {
		return fmt.Errorf("%d of %d classes unresolved", misses, len(args))
	}
	return nil
}
