// Package report prints check issues and build summaries for terminals.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yacobolo/las"
)

// MaxListedTokens caps how many unresolved tokens a summary names
const MaxListedTokens = 10

// Config controls reporter output
type Config struct {
	UseColors        bool // Force colors on (default: auto-detect)
	PrintIssuedLines bool // Show source lines with issues
	PrintLinterName  bool // Show (las) suffix
}

// Reporter handles formatting and outputting results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter returns a reporter writing to w
func NewReporter(w io.Writer, config Config) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors: explicit flag, CI environment, then TTY detection
func shouldUseColors(config Config) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// FORCE_COLOR and GitHub Actions opt in without a TTY
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// UseColors reports whether output is styled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintIssues prints issues ordered by file, line and column
func (r *Reporter) PrintIssues(issues []las.Issue) {
	sorted := append([]las.Issue(nil), issues...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pos.Filename != sorted[j].Pos.Filename {
			return sorted[i].Pos.Filename < sorted[j].Pos.Filename
		}
		if sorted[i].Pos.Line != sorted[j].Pos.Line {
			return sorted[i].Pos.Line < sorted[j].Pos.Line
		}
		return sorted[i].Pos.Column < sorted[j].Pos.Column
	})

	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

// printIssue writes file:line:col: message (las), then the source line and a caret
func (r *Reporter) printIssue(issue las.Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleLocation, location, r.useColors),
		issue.Text,
		RenderStyle(StyleMuted, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(severityStyle(issue.Severity), caret, r.useColors))
	}
}

func severityStyle(severity string) lipgloss.Style {
	if severity == las.SeverityError {
		return StyleError
	}
	return StyleWarning
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in any tab width.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintCheckSummary prints totals counted before max-issues limits
func (r *Reporter) PrintCheckSummary(result *las.CheckResult) {
	found := result.ErrorCount + result.WarningCount

	fmt.Fprintln(r.w, "")

	headline := pluralizeCount(found, "issue", "issues")
	var details []string
	if result.ErrorCount > 0 && result.WarningCount > 0 {
		details = append(details,
			pluralizeCount(result.ErrorCount, "error", "errors")+", "+
				pluralizeCount(result.WarningCount, "warning", "warnings"))
	}
	if result.TruncatedCount > 0 {
		details = append(details, fmt.Sprintf("%d shown", len(result.Issues)))
	}
	if len(details) > 0 {
		headline += " (" + strings.Join(details, "; ") + ")"
	}
	fmt.Fprintf(r.w, "%s:\n", headline)

	fmt.Fprintf(r.w, "* files scanned: %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "* unique classes: %d\n", result.UniqueTokens)
	fmt.Fprintf(r.w, "* unresolved classes: %d\n", result.Unresolved)

	for _, dir := range result.SkippedDirs {
		fmt.Fprintln(r.w, RenderStyle(StyleWarning, "Skipped missing directory: "+dir, r.useColors))
	}

	if found == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleSuccess, "All classes resolved", r.useColors))
	}
}

// PrintBuildSummary outputs the result of a build
func (r *Reporter) PrintBuildSummary(result *las.BuildResult) {
	fmt.Fprintln(r.w, RenderStyle(StyleSuccess, "Build complete", r.useColors))

	for _, dir := range result.SkippedDirs {
		fmt.Fprintln(r.w, RenderStyle(StyleWarning, "Skipped missing directory: "+dir, r.useColors))
	}

	fmt.Fprintf(r.w, "  Classes:    %d\n", result.Stats.Total)
	fmt.Fprintf(r.w, "  Resolved:   %d\n", result.Stats.Resolved)
	fmt.Fprintf(r.w, "  Unresolved: %d\n", result.Stats.Unresolved)
	fmt.Fprintf(r.w, "  Output:     %s\n", result.OutputPath)
	fmt.Fprintf(r.w, "  Size:       %.2f KB\n", float64(result.Stats.Bytes)/1024)

	r.PrintUnresolved(result.Stats)
}

// PrintUnresolved lists up to MaxListedTokens unresolved tokens with the
// reason each one failed
func (r *Reporter) PrintUnresolved(stats las.Stats) {
	if len(stats.Misses) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleWarning,
		fmt.Sprintf("Unresolved %s:", pluralizeWord(len(stats.Misses), "class", "classes")), r.useColors))

	for i, miss := range stats.Misses {
		if i >= MaxListedTokens {
			fmt.Fprintf(r.w, "  … and %d more\n", len(stats.Misses)-MaxListedTokens)
			break
		}
		fmt.Fprintf(r.w, "  - %s %s\n", miss.Token,
			RenderStyle(StyleMuted, "("+string(miss.Miss)+")", r.useColors))
	}
}

// PrintWatchUpdate outputs a one-line summary after the watcher rewrote the output
func (r *Reporter) PrintWatchUpdate(path string, added int, stats las.Stats) {
	fmt.Fprintf(r.w, "%s %s (+%s) %d resolved, %d unresolved\n",
		RenderStyle(StyleLocation, "updated", r.useColors),
		path,
		pluralizeCount(added, "class", "classes"),
		stats.Resolved,
		stats.Unresolved)
}

// pluralizeCount formats "1 class" / "3 classes"
func pluralizeCount(count int, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, pluralizeWord(count, singular, plural))
}

func pluralizeWord(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
