package jit

import "strings"

// EscapeClassName makes a colon-bearing token usable as a class selector:
// "md:text-center" -> "md\:text-center"
func EscapeClassName(token string) string {
	return strings.ReplaceAll(token, ":", `\:`)
}

// UnescapeClassName drops CSS backslash escapes, keeping the escaped character:
// "md\:text-center" -> "md:text-center", `a\\b` -> `a\b`
func UnescapeClassName(name string) string {
	if !strings.Contains(name, `\`) {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))

	escaped := false
	for _, r := range name {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}

	return b.String()
}
