package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testMeta = `:root {
  --las-breakpoint-sm: 640px;
  --las-breakpoint-md: 768px;
  --las-breakpoint-lg:1024px;
  --las-variant-hover: :hover;
  --las-variant-focus: :focus;
  --las-color-red: #ef4444;
  --las-color-light-blue: #0ea5e9;
  --las-config-color-bg: true;
  --las-config-color-text: false;
  --las-single-color-paper: #fdfdf8;
  --las-unknown-thing: 1;
  --other-breakpoint-xl: 1280px;
}`

func TestParseConfig(t *testing.T) {
	config := ParseConfig(testMeta)

	assert.Equal(t, map[string]string{"sm": "640px", "md": "768px", "lg": "1024px"}, config.Screens)
	assert.Equal(t, []string{"sm", "md", "lg"}, config.ScreenOrder)
	assert.Equal(t, map[string]string{"hover": ":hover", "focus": ":focus"}, config.Variants)
	assert.Equal(t, map[string]string{"red": "#ef4444", "light-blue": "#0ea5e9"}, config.Colors)
	assert.Equal(t, map[string]bool{"bg": true, "text": false}, config.ColorPrefix)
	assert.Equal(t, "#fdfdf8", config.SingleColors["paper"])
	assert.Equal(t, "#ffffff", config.SingleColors["white"], "defaults stay registered")
}

func TestParseConfig_LastWriteWins(t *testing.T) {
	config := ParseConfig(`--las-breakpoint-sm: 600px; --las-breakpoint-md: 768px; --las-breakpoint-sm: 640px;`)

	assert.Equal(t, "640px", config.Screens["sm"])
	assert.Equal(t, []string{"sm", "md"}, config.ScreenOrder, "redeclaring keeps the first position")
}

func TestParseConfig_ConfigColorOnlyLiteralTrue(t *testing.T) {
	config := ParseConfig(`--las-config-color-bg: TRUE; --las-config-color-text: true ; --las-config-color-fill: 1;`)

	assert.False(t, config.ColorPrefix["bg"])
	assert.True(t, config.ColorPrefix["text"])
	assert.False(t, config.ColorPrefix["fill"])
}

func TestParseConfig_Garbage(t *testing.T) {
	config := ParseConfig("not css at all { --las-breakpoint-: x; --las-variant-hover }")

	assert.Empty(t, config.Screens)
	assert.Empty(t, config.Variants)
	assert.Empty(t, config.Colors)
	assert.Empty(t, config.ColorPrefix)
}

func TestParseConfigNamespace(t *testing.T) {
	meta := `--acme-breakpoint-sm: 600px; --las-breakpoint-md: 768px;`

	config := ParseConfigNamespace(meta, "acme")
	assert.Equal(t, map[string]string{"sm": "600px"}, config.Screens)

	config = ParseConfigNamespace(meta, "")
	assert.Equal(t, map[string]string{"md": "768px"}, config.Screens)
}

func TestConfigBreakpoints(t *testing.T) {
	config := NewConfig()
	config.Screens = map[string]string{"md": "768px", "lg": "1024px"}
	assert.Equal(t, []string{"lg", "md"}, config.Breakpoints())

	config.ScreenOrder = []string{"md", "lg"}
	assert.Equal(t, []string{"md", "lg"}, config.Breakpoints())
}
