package jit

import "sort"

// StyleTable maps a base utility class ("text-center") to its raw
// declaration body ("text-align:center"). It is built once per run and
// treated as read-only afterwards.
type StyleTable map[string]string

// Config holds the metadata that drives modifier and color resolution
type Config struct {
	Screens      map[string]string // "md" -> "768px"
	ScreenOrder  []string          // Breakpoint names in declaration order
	Variants     map[string]string // "hover" -> ":hover"
	Colors       map[string]string // "red" -> "#ef4444" (shade 500)
	ColorPrefix  map[string]bool   // "bg" -> true
	SingleColors map[string]string // "white" -> "#ffffff" (no shades)
}

// MissReason explains why a token produced no CSS
type MissReason string

// Miss reasons reported for unresolved tokens
const (
	MissNone         MissReason = ""
	MissUnknownClass MissReason = "unknown class"
	MissInvalidShade MissReason = "invalid shade"
	MissUnknownColor MissReason = "unknown color"
	MissEmptyToken   MissReason = "empty token"
)

// Result is the outcome of generating a single token.
// OK distinguishes a resolved rule from a miss, so an empty CSS string
// never doubles as a sentinel.
type Result struct {
	Token string
	CSS   string
	OK    bool
	Miss  MissReason
}

func resolved(token, css string) Result {
	return Result{Token: token, CSS: css, OK: true}
}

func missed(token string, reason MissReason) Result {
	return Result{Token: token, Miss: reason}
}

// NewConfig returns an empty config with the default single colors registered
func NewConfig() Config {
	return Config{
		Screens:      make(map[string]string),
		Variants:     make(map[string]string),
		Colors:       make(map[string]string),
		ColorPrefix:  make(map[string]bool),
		SingleColors: DefaultSingleColors(),
	}
}

// Breakpoints returns the screen names in cascade order. Configs built by
// hand without ScreenOrder fall back to name order.
func (c Config) Breakpoints() []string {
	if len(c.ScreenOrder) > 0 {
		return c.ScreenOrder
	}
	names := make([]string, 0, len(c.Screens))
	for name := range c.Screens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultSingleColors returns the colors that resolve without a shade
func DefaultSingleColors() map[string]string {
	return map[string]string{
		"white":        "#ffffff",
		"black":        "#000000",
		"transparent":  "transparent",
		"currentColor": "currentColor",
	}
}
