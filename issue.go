package las

// Issue represents a single unresolved token in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "las"
	Text        string   `json:"Text"`        // "unresolved class \"bg-red-999\": invalid shade"
	Severity    string   `json:"Severity"`    // "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/App.tsx"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, exact start of the token)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// LinterName is reported as the source of every issue
const LinterName = "las"

// IssueUnresolvedClass is the message of every issue
const IssueUnresolvedClass = "unresolved class %q: %s"
