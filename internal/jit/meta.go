package jit

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultNamespace is the custom-property prefix used by the metadata stylesheet
const DefaultNamespace = "las"

// Metadata categories, in match order
const (
	categoryBreakpoint  = "breakpoint"
	categoryVariant     = "variant"
	categoryColor       = "color"
	categoryConfigColor = "config-color"
	categorySingleColor = "single-color"
)

var defaultMetaPattern = compileMetaPattern(DefaultNamespace)

// compileMetaPattern builds the declaration matcher for a namespace:
// --<ns>-<category>-<name>: <value>;
func compileMetaPattern(namespace string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`--%s-(%s|%s|%s|%s|%s)-([a-z0-9-]+):\s*([^;]+);`,
		regexp.QuoteMeta(namespace),
		categoryBreakpoint, categoryVariant, categoryColor, categoryConfigColor, categorySingleColor,
	))
}

// ParseConfig extracts breakpoints, variants, palette colors and color-prefix
// switches from metadata text using the default "las" namespace
func ParseConfig(meta string) Config {
	return parseConfig(meta, defaultMetaPattern)
}

// ParseConfigNamespace is ParseConfig for a custom property namespace
func ParseConfigNamespace(meta, namespace string) Config {
	if namespace == "" || namespace == DefaultNamespace {
		return ParseConfig(meta)
	}
	return parseConfig(meta, compileMetaPattern(namespace))
}

// parseConfig never fails; declarations that do not match are ignored and
// a later declaration of the same name overwrites the earlier one
func parseConfig(meta string, pattern *regexp.Regexp) Config {
	config := NewConfig()

	for _, match := range pattern.FindAllStringSubmatch(meta, -1) {
		category, name, value := match[1], match[2], strings.TrimSpace(match[3])

		switch category {
		case categoryBreakpoint:
			if _, exists := config.Screens[name]; !exists {
				config.ScreenOrder = append(config.ScreenOrder, name)
			}
			config.Screens[name] = value
		case categoryVariant:
			config.Variants[name] = value
		case categoryColor:
			config.Colors[name] = value
		case categoryConfigColor:
			config.ColorPrefix[name] = value == "true"
		case categorySingleColor:
			config.SingleColors[name] = value
		}
	}

	return config
}
