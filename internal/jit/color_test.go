package jit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColorConfig() Config {
	config := NewConfig()
	config.Colors = map[string]string{
		"red":     "#ff0000",
		"blue":    "#3b82f6",
		"mist-42": "#808080",
	}
	config.ColorPrefix = map[string]bool{
		"bg":          true,
		"text":        true,
		"shadow":      true,
		"text-shadow": true,
		"border":      false,
	}
	config.SingleColors["brand-42"] = "#abcdef"
	return config
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name      string
		baseClass string
		want      string
		miss      MissReason
	}{
		{
			name:      "shade 500 is the base verbatim",
			baseClass: "bg-red-500",
			want:      "background-color: #ff0000;",
		},
		{
			name:      "light shade mixes toward white",
			baseClass: "bg-blue-100",
			want:      "background-color: #d8e6fd;",
		},
		{
			name:      "dark shade mixes toward black",
			baseClass: "text-blue-700",
			want:      "color: #234e94;",
		},
		{
			name:      "single color without shade",
			baseClass: "bg-white",
			want:      "background-color: #ffffff;",
		},
		{
			name:      "transparent keyword",
			baseClass: "text-transparent",
			want:      "color: transparent;",
		},
		{
			name:      "shadow emits rgb triplet",
			baseClass: "shadow-blue-500",
			want:      "--las-shadow-color: rgb(59 130 246);",
		},
		{
			name:      "text-shadow wins over text prefix",
			baseClass: "text-shadow-red-500",
			want:      "--las-text-shadow-color: rgb(255 0 0);",
		},
		{
			name:      "shadow single color",
			baseClass: "shadow-black",
			want:      "--las-shadow-color: rgb(0 0 0);",
		},
		{
			name:      "shadow keeps transparent",
			baseClass: "shadow-transparent",
			want:      "--las-shadow-color: transparent;",
		},
		{
			name:      "shadow keeps currentColor",
			baseClass: "shadow-currentColor",
			want:      "--las-shadow-color: currentColor;",
		},
		{
			name:      "digits fold into a single color name",
			baseClass: "bg-brand-42",
			want:      "background-color: #abcdef;",
		},
		{
			name:      "digit-bearing palette name with a shade",
			baseClass: "bg-mist-42-500",
			want:      "background-color: #808080;",
		},
		{
			name:      "shade outside the allowed set",
			baseClass: "bg-red-999",
			miss:      MissInvalidShade,
		},
		{
			name:      "palette color needs a shade",
			baseClass: "bg-red",
			miss:      MissMissingShade,
		},
		{
			name:      "single color does not take a shade",
			baseClass: "bg-white-500",
			miss:      MissUnknownColor,
		},
		{
			name:      "unknown color",
			baseClass: "bg-chartreuse-500",
			miss:      MissUnknownColor,
		},
		{
			name:      "disabled prefix",
			baseClass: "border-red-500",
			miss:      MissUnknownClass,
		},
		{
			name:      "not a color utility",
			baseClass: "foo-bar-baz",
			miss:      MissUnknownClass,
		},
		{
			name:      "bare prefix",
			baseClass: "bg-",
			miss:      MissUnknownClass,
		},
	}

	config := testColorConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColor(tt.baseClass, config)
			if tt.miss != MissNone {
				assert.False(t, got.OK)
				assert.Equal(t, tt.miss, got.Miss)
				assert.Empty(t, got.Declaration)
				return
			}
			require.True(t, got.OK, "miss: %s", got.Miss)
			assert.Equal(t, tt.want, got.Declaration)
		})
	}
}

func TestCalculateColor_Shade500IsIdentity(t *testing.T) {
	for _, hex := range []string{"#ff0000", "#3b82f6", "#000000", "#FFFFFF", "#abc", "transparent"} {
		assert.Equal(t, hex, CalculateColor(hex, 500), hex)
	}
}

func TestCalculateColor_Monotonic(t *testing.T) {
	for _, hex := range []string{"#3b82f6", "#ef4444", "#10b981", "#808080"} {
		var prev RGB
		for i, shade := range AllowedShades {
			c, ok := HexToRGB(CalculateColor(hex, shade))
			require.True(t, ok)
			if i > 0 {
				// Each step down the list gets darker (or stays equal) on every channel
				assert.LessOrEqual(t, c.R, prev.R, "%s shade %d", hex, shade)
				assert.LessOrEqual(t, c.G, prev.G, "%s shade %d", hex, shade)
				assert.LessOrEqual(t, c.B, prev.B, "%s shade %d", hex, shade)
			}
			prev = c
		}
	}
}

func TestCalculateColor_Extremes(t *testing.T) {
	assert.Equal(t, "#ebf3fe", CalculateColor("#3b82f6", 50))
	assert.Equal(t, "#060d19", CalculateColor("#3b82f6", 950))
	assert.Equal(t, "#0c1a31", CalculateColor("#3b82f6", 900))

	light, ok := HexToRGB(CalculateColor("#ff0000", 50))
	require.True(t, ok)
	assert.Equal(t, uint8(255), light.R)
	assert.Greater(t, light.G, uint8(200))
	assert.Greater(t, light.B, uint8(200))
}

func TestCalculateColor_UnparsableBase(t *testing.T) {
	assert.Equal(t, "rebeccapurple", CalculateColor("rebeccapurple", 100))
	assert.Equal(t, "currentColor", CalculateColor("currentColor", 900))
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{in: "#ff0000", want: RGB{255, 0, 0}, ok: true},
		{in: "3b82f6", want: RGB{59, 130, 246}, ok: true},
		{in: "#FFF", want: RGB{255, 255, 255}, ok: true},
		{in: "#a0b", want: RGB{170, 0, 187}, ok: true},
		{in: "#ff00", ok: false},
		{in: "#ff0000zz", ok: false},
		{in: "#gggggg", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := HexToRGB(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRGBToHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#3b82f6", "#0c1a31"} {
		c, ok := HexToRGB(hex)
		require.True(t, ok)
		assert.Equal(t, hex, RGBToHex(c))
	}
}

func TestHexToRGBString(t *testing.T) {
	assert.Equal(t, "rgb(59 130 246)", HexToRGBString("#3b82f6"))
	assert.Equal(t, "transparent", HexToRGBString("transparent"))
	assert.Equal(t, "currentColor", HexToRGBString("currentColor"))
	assert.Equal(t, "var(--x)", HexToRGBString("var(--x)"))
}
