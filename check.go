package las

import (
	"context"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/yacobolo/las/internal/jit"
)

// CheckOptions configures Check
type CheckOptions struct {
	Options

	MaxIssues     int // 0 = unlimited (default)
	MaxSameIssues int // 0 = unlimited (default)
}

// CheckResult contains the located unresolved tokens
type CheckResult struct {
	Issues         []Issue
	FilesScanned   int
	References     int // Token occurrences found
	UniqueTokens   int
	Unresolved     int // Distinct tokens that produced nothing
	ErrorCount     int // Error issues before limits
	WarningCount   int // Warning issues before limits
	TruncatedCount int // Issues removed due to limits
	SkippedDirs    []string
}

// Check reports every occurrence of a token that generates no CSS.
//
// Color utilities that fail on their shade or color name are errors since
// the prefix shows the author meant a utility. Unknown classes are warnings:
// they are often application classes styled elsewhere.
func Check(ctx context.Context, opts CheckOptions) (*CheckResult, error) {
	log := opts.logger()

	sources, err := LoadSources(opts.Sources)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{}
	generated := make(map[string]jit.Result)
	unresolved := make(map[string]bool)

	for _, dir := range opts.ScanDirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			log.Warn("scan directory not found, skipping", zap.String("dir", dir))
			result.SkippedDirs = append(result.SkippedDirs, dir)
			continue
		}

		files, err := ListFiles(dir, opts.Extensions, opts.scanOptions()...)
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			refs, err := ScanRefs(file)
			if err != nil {
				return nil, err
			}
			result.FilesScanned++
			result.References += len(refs)

			for _, ref := range refs {
				res, seen := generated[ref.Token]
				if !seen {
					res = jit.Generate(ref.Token, sources.Table, sources.Config)
					generated[ref.Token] = res
				}
				if res.OK {
					continue
				}
				unresolved[ref.Token] = true
				result.Issues = append(result.Issues, newIssue(ref, res.Miss))
			}
		}
	}

	result.UniqueTokens = len(generated)
	result.Unresolved = len(unresolved)

	for _, issue := range result.Issues {
		if issue.Severity == SeverityError {
			result.ErrorCount++
		} else {
			result.WarningCount++
		}
	}

	sortIssues(result.Issues)
	if opts.MaxIssues > 0 || opts.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, opts.MaxIssues, opts.MaxSameIssues)
	}

	return result, nil
}

func newIssue(ref ClassReference, miss jit.MissReason) Issue {
	severity := SeverityError
	if miss == jit.MissUnknownClass {
		severity = SeverityWarning
	}

	return Issue{
		FromLinter:  LinterName,
		Text:        fmt.Sprintf(IssueUnresolvedClass, ref.Token, miss),
		Severity:    severity,
		SourceLines: []string{ref.Location.Text},
		Pos: IssuePos{
			Filename: ref.Location.File,
			Line:     ref.Location.Line,
			Column:   ref.Location.Column,
		},
	}
}

// sortIssues orders by file, then line, then column
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// limitIssues applies max-issues and max-same-issues constraints
func limitIssues(issues []Issue, maxIssues, maxSame int) ([]Issue, int) {
	originalCount := len(issues)

	if maxIssues > 0 && len(issues) > maxIssues {
		issues = issues[:maxIssues]
	}

	// Deduplication by message text
	if maxSame > 0 {
		issues = deduplicateSameIssues(issues, maxSame)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
