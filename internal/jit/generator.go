package jit

import (
	"fmt"
	"sort"
	"strings"
)

// Generate produces the CSS rule for one token such as "md:hover:text-center".
//
// The last ':'-separated segment is the base class; it is looked up in the
// style table first and resolved as a color utility second. The remaining
// segments are modifiers: screens wrap the rule in @media blocks (the
// leftmost screen ends up outermost) and variants append their
// pseudo-selector to the class selector in source order. Unknown modifiers
// are ignored.
func Generate(token string, table StyleTable, config Config) Result {
	if token == "" {
		return missed(token, MissEmptyToken)
	}

	parts := strings.Split(token, ":")
	base := parts[len(parts)-1]
	modifiers := parts[:len(parts)-1]

	body, ok := table[base]
	if !ok {
		color := ResolveColor(base, config)
		if !color.OK {
			return missed(token, color.Miss)
		}
		body = color.Declaration
	}

	var selector strings.Builder
	selector.WriteString(".")
	selector.WriteString(EscapeClassName(token))
	for _, m := range modifiers {
		if _, isScreen := config.Screens[m]; isScreen {
			continue
		}
		if suffix, isVariant := config.Variants[m]; isVariant {
			selector.WriteString(suffix)
		}
	}

	css := fmt.Sprintf("%s { %s }", selector.String(), body)

	// Innermost to outermost
	for i := len(modifiers) - 1; i >= 0; i-- {
		if width, isScreen := config.Screens[modifiers[i]]; isScreen {
			css = wrapMedia(width, css)
		}
	}

	return resolved(token, css)
}

func wrapMedia(width, css string) string {
	return "@media (min-width: " + width + ") {\n  " + css + "\n}"
}

// SortKey places a token in the output cascade: 0 for tokens without a known
// screen modifier, otherwise 1 + the declaration index of the first screen
// modifier found scanning left to right
func SortKey(token string, screenOrder []string) int {
	parts := strings.Split(token, ":")
	for _, part := range parts[:len(parts)-1] {
		for i, screen := range screenOrder {
			if part == screen {
				return i + 1
			}
		}
	}
	return 0
}

// SortTokens orders tokens so base rules come first and each breakpoint
// group follows in declaration order, letting wider screens win the cascade.
// Ties are broken by the token text to keep output byte-stable.
func SortTokens(tokens []string, screenOrder []string) []string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)

	keys := make(map[string]int, len(sorted))
	for _, t := range sorted {
		keys[t] = SortKey(t, screenOrder)
	}

	sort.Slice(sorted, func(i, j int) bool {
		ki, kj := keys[sorted[i]], keys[sorted[j]]
		if ki != kj {
			return ki < kj
		}
		return sorted[i] < sorted[j]
	})

	return sorted
}
