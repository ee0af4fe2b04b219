package jit

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorProperties maps a color utility prefix to the CSS property it sets
var ColorProperties = map[string]string{
	"bg":          "background-color",
	"text":        "color",
	"border":      "border-color",
	"outline":     "outline-color",
	"decoration":  "text-decoration-color",
	"caret":       "caret-color",
	"fill":        "fill",
	"stroke":      "stroke",
	"shadow":      "--las-shadow-color",
	"text-shadow": "--las-text-shadow-color",
}

// shadowPrefixes emit "rgb(r g b)" so the value can be composed with an alpha variable
var shadowPrefixes = map[string]bool{
	"shadow":      true,
	"text-shadow": true,
}

// AllowedShades lists the only shade suffixes a palette color accepts
var AllowedShades = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}

// MissMissingShade is reported for a palette color used without a shade
const MissMissingShade MissReason = "missing shade"

// colorPrefixes is ColorProperties' keys, longest first, so "text-shadow"
// is tried before "text"
var colorPrefixes = func() []string {
	prefixes := make([]string, 0, len(ColorProperties))
	for p := range ColorProperties {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return prefixes
}()

// ColorResult is the outcome of resolving a color utility
type ColorResult struct {
	Declaration string // "background-color: #ef4444;"
	OK          bool
	Miss        MissReason
}

// RGB is an 8-bit per channel color
type RGB struct {
	R, G, B uint8
}

// ResolveColor turns a "<prefix>-<color>[-<shade>]" base class into a single
// declaration. A miss is not an error: it tells the generator the class is
// not a color utility.
func ResolveColor(baseClass string, config Config) ColorResult {
	prefix, rest, ok := splitColorPrefix(baseClass)
	if !ok || !config.ColorPrefix[prefix] {
		return ColorResult{Miss: MissUnknownClass}
	}

	value, miss := resolveColorValue(rest, config)
	if miss != MissNone {
		return ColorResult{Miss: miss}
	}

	if shadowPrefixes[prefix] {
		value = HexToRGBString(value)
	}

	return ColorResult{
		Declaration: fmt.Sprintf("%s: %s;", ColorProperties[prefix], value),
		OK:          true,
	}
}

// splitColorPrefix returns the longest known prefix of baseClass and the
// color name and shade after it
func splitColorPrefix(baseClass string) (string, string, bool) {
	for _, prefix := range colorPrefixes {
		if strings.HasPrefix(baseClass, prefix+"-") && len(baseClass) > len(prefix)+1 {
			return prefix, baseClass[len(prefix)+1:], true
		}
	}
	return "", "", false
}

// resolveColorValue resolves "red-500", "light-blue-50", "white" or "brand2"
func resolveColorValue(name string, config Config) (string, MissReason) {
	segments := strings.Split(name, "-")

	if len(segments) >= 2 {
		last := segments[len(segments)-1]
		if isDigits(last) {
			shade, err := strconv.Atoi(last)
			if err == nil && isAllowedShade(shade) {
				palette := strings.Join(segments[:len(segments)-1], "-")
				base, ok := config.Colors[palette]
				if !ok {
					return "", MissUnknownColor
				}
				return CalculateColor(base, shade), MissNone
			}

			// Not a shade: only acceptable if the digits are part of a color name
			if !isKnownColor(name, config) {
				return "", MissInvalidShade
			}
		}
	}

	if value, ok := config.SingleColors[name]; ok {
		return value, MissNone
	}
	if _, ok := config.Colors[name]; ok {
		return "", MissMissingShade
	}
	return "", MissUnknownColor
}

func isKnownColor(name string, config Config) bool {
	if _, ok := config.SingleColors[name]; ok {
		return true
	}
	_, ok := config.Colors[name]
	return ok
}

func isAllowedShade(shade int) bool {
	for _, s := range AllowedShades {
		if s == shade {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isKeywordColor reports values that have no RGB representation
func isKeywordColor(value string) bool {
	return value == "transparent" || value == "currentColor"
}

// CalculateColor derives a palette shade from its 500 base. Shades below 500
// mix toward white and shades above toward black, weighted |shade-500|/500.
func CalculateColor(hex string, shade int) string {
	if isKeywordColor(hex) || shade == 500 {
		return hex
	}

	if shade < 500 {
		return mixColors(hex, RGB{255, 255, 255}, float64(500-shade)/500*100)
	}
	return mixColors(hex, RGB{0, 0, 0}, float64(shade-500)/500*100)
}

// mixColors blends base toward target by weight percent, rounding each channel
func mixColors(base string, target RGB, weight float64) string {
	c, ok := HexToRGB(base)
	if !ok {
		return base
	}

	w := weight / 100
	mix := func(a, b uint8) uint8 {
		// Explicit conversions keep the compiler from fusing into an FMA
		v := float64(float64(a)*(1-w)) + float64(float64(b)*w)
		return uint8(math.Round(v))
	}

	return RGBToHex(RGB{
		R: mix(c.R, target.R),
		G: mix(c.G, target.G),
		B: mix(c.B, target.B),
	})
}

// HexToRGB parses "#rrggbb", "#rgb" or the same without the leading '#'
func HexToRGB(hex string) (RGB, bool) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return RGB{}, false
	}
	if !isHexDigits(hex[1:]) {
		return RGB{}, false
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, false
	}

	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, true
}

func isHexDigits(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// RGBToHex encodes a color as lowercase "#rrggbb"
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexToRGBString converts a hex color to the space-separated "rgb(r g b)"
// form. Keywords and unparsable values pass through unchanged.
func HexToRGBString(hex string) string {
	if isKeywordColor(hex) {
		return hex
	}

	c, ok := HexToRGB(hex)
	if !ok {
		return hex
	}

	return fmt.Sprintf("rgb(%d %d %d)", c.R, c.G, c.B)
}
