package las

import (
	"encoding/json"
	"io"
	"time"
)

// now is replaced in tests
var now = time.Now

// CheckJSON is the structured export of a check run
type CheckJSON struct {
	Version   string           `json:"version"`
	Timestamp string           `json:"timestamp"`
	Summary   CheckJSONSummary `json:"summary"`
	Issues    []JSONIssue      `json:"issues"`
}

// CheckJSONSummary contains high-level counts
type CheckJSONSummary struct {
	TotalIssues  int `json:"total_issues"` // Before limits
	Shown        int `json:"shown"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
	References   int `json:"references"`
	UniqueTokens int `json:"unique_tokens"`
	Unresolved   int `json:"unresolved"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// BuildJSON is the structured export of a build
type BuildJSON struct {
	Version     string     `json:"version"`
	Output      string     `json:"output"`
	Bytes       int        `json:"bytes"`
	Total       int        `json:"total"`
	Resolved    int        `json:"resolved"`
	Unresolved  []JSONMiss `json:"unresolved"`
	ScannedDirs []string   `json:"scanned_dirs"`
	SkippedDirs []string   `json:"skipped_dirs"`
}

// JSONMiss is one token that produced no CSS
type JSONMiss struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// WriteCheckJSON writes the check result as JSON
func WriteCheckJSON(w io.Writer, result *CheckResult) error {
	return writeJSON(w, buildCheckJSON(result))
}

// WriteBuildJSON writes the build result as JSON
func WriteBuildJSON(w io.Writer, result *BuildResult) error {
	return writeJSON(w, buildBuildJSON(result))
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// buildCheckJSON converts CheckResult to CheckJSON
func buildCheckJSON(result *CheckResult) CheckJSON {
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	return CheckJSON{
		Version:   "1.0",
		Timestamp: now().Format(time.RFC3339),
		Summary: CheckJSONSummary{
			TotalIssues:  result.ErrorCount + result.WarningCount,
			Shown:        len(result.Issues),
			Errors:       result.ErrorCount,
			Warnings:     result.WarningCount,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned,
			References:   result.References,
			UniqueTokens: result.UniqueTokens,
			Unresolved:   result.Unresolved,
		},
		Issues: issues,
	}
}

// buildBuildJSON converts BuildResult to BuildJSON
func buildBuildJSON(result *BuildResult) BuildJSON {
	misses := make([]JSONMiss, len(result.Stats.Misses))
	for i, m := range result.Stats.Misses {
		misses[i] = JSONMiss{Token: m.Token, Reason: string(m.Miss)}
	}

	scanned := result.ScannedDirs
	if scanned == nil {
		scanned = []string{}
	}
	skipped := result.SkippedDirs
	if skipped == nil {
		skipped = []string{}
	}

	return BuildJSON{
		Version:     "1.0",
		Output:      result.OutputPath,
		Bytes:       result.Stats.Bytes,
		Total:       result.Stats.Total,
		Resolved:    result.Stats.Resolved,
		Unresolved:  misses,
		ScannedDirs: scanned,
		SkippedDirs: skipped,
	}
}
