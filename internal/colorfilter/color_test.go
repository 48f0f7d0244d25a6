package colorfilter

import (
	"errors"
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"#f44336", Color{244, 67, 54}},
		{"F44336", Color{244, 67, 54}},
		{"#abc", Color{170, 187, 204}},
		{" #000000 ", Color{0, 0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.input)
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12345", "#gggggg", "#+12345", "red"} {
		if _, err := ParseHex(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) err = %v, want ErrInvalidColor", bad, err)
		}
	}
}

func TestHex(t *testing.T) {
	c, _ := ParseHex("#1A9EDB")
	if got := c.Hex(); got != "#1a9edb" {
		t.Errorf("Hex() = %q", got)
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		c    Color
		want HSL
	}{
		{Color{255, 0, 0}, HSL{0, 100, 50}},
		{Color{0, 0, 255}, HSL{200.0 / 3, 100, 50}},
		{Color{0, 0, 0}, HSL{0, 0, 0}},
		{Color{255, 255, 255}, HSL{0, 0, 100}},
	}
	for _, tt := range tests {
		got := tt.c.HSL()
		if !near(got.H, tt.want.H) || !near(got.S, tt.want.S) || !near(got.L, tt.want.L) {
			t.Errorf("%+v.HSL() = %+v, want %+v", tt.c, got, tt.want)
		}
	}
}

func TestOperationsClamp(t *testing.T) {
	white := Color{255, 255, 255}
	if got := white.Brightness(2); got != white {
		t.Errorf("Brightness(2) = %+v, want clamped white", got)
	}
	if got := (Color{}).Invert(1); !near(got.R, 255) || !near(got.G, 255) || !near(got.B, 255) {
		t.Errorf("Invert(1) of black = %+v", got)
	}
	if got := white.Invert(0.5); !near(got.R, 127.5) {
		t.Errorf("Invert(0.5) = %+v", got)
	}
	gray := Color{128, 128, 128}
	if got := gray.Contrast(1); got != gray {
		t.Errorf("Contrast(1) = %+v", got)
	}
	if got := (Color{200, 100, 50}).Grayscale(1); !near(got.R, got.G) || !near(got.G, got.B) {
		t.Errorf("Grayscale(1) = %+v, want equal channels", got)
	}
}

func TestIdentityFilters(t *testing.T) {
	c := Color{244, 67, 54}
	got := c.Sepia(0).Saturate(1).HueRotate(0).Brightness(1).Contrast(1)
	if !near(got.R, c.R) || !near(got.G, c.G) || !near(got.B, c.B) {
		t.Errorf("identity chain = %+v, want %+v", got, c)
	}
}
