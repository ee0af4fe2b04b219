package las

// OutputFormat selects how results are printed
type OutputFormat string

const (
	// OutputText is the human-readable report (default)
	OutputText OutputFormat = "text"
	// OutputJSON is machine-readable output
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Quiet output is text with everything suppressed by the caller
	if quiet {
		return OutputText
	}

	switch formatFlag {
	case "json":
		return OutputJSON
	case "text", "":
		return OutputText
	default:
		// Invalid format, fall back to the default
		return OutputText
	}
}
