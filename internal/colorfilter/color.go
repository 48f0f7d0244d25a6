// Package colorfilter finds CSS filter chains that tint a black icon to a
// target color.
package colorfilter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color")

// Color is an RGB color with channels in [0, 255]. Every operation clamps
// its result back into that range, as CSS filter functions do.
type Color struct {
	R, G, B float64
}

// HSL holds hue, saturation and lightness, each scaled to [0, 100].
type HSL struct {
	H, S, L float64
}

// ParseHex parses "#rgb" or "#rrggbb"; the leading # is optional.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("parse color %q: %w: want 3 or 6 hex digits", s, ErrInvalidColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
	}
	return Color{R: float64(v>>16&0xff), G: float64(v>>8&0xff), B: float64(v & 0xff)}, nil
}

// Hex formats c as lower-case "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", int(math.Round(c.R)), int(math.Round(c.G)), int(math.Round(c.B)))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

func (c Color) multiply(m [9]float64) Color {
	return Color{
		R: clamp(c.R*m[0] + c.G*m[1] + c.B*m[2]),
		G: clamp(c.R*m[3] + c.G*m[4] + c.B*m[5]),
		B: clamp(c.R*m[6] + c.G*m[7] + c.B*m[8]),
	}
}

// HueRotate rotates the hue by deg degrees.
func (c Color) HueRotate(deg float64) Color {
	rad := deg / 180 * math.Pi
	sin, cos := math.Sin(rad), math.Cos(rad)
	return c.multiply([9]float64{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072,
	})
}

// Grayscale converts by amount v in [0, 1].
func (c Color) Grayscale(v float64) Color {
	w := 1 - v
	return c.multiply([9]float64{
		0.2126 + 0.7874*w, 0.7152 - 0.7152*w, 0.0722 - 0.0722*w,
		0.2126 - 0.2126*w, 0.7152 + 0.2848*w, 0.0722 - 0.0722*w,
		0.2126 - 0.2126*w, 0.7152 - 0.7152*w, 0.0722 + 0.9278*w,
	})
}

// Sepia converts by amount v in [0, 1].
func (c Color) Sepia(v float64) Color {
	w := 1 - v
	return c.multiply([9]float64{
		0.393 + 0.607*w, 0.769 - 0.769*w, 0.189 - 0.189*w,
		0.349 - 0.349*w, 0.686 + 0.314*w, 0.168 - 0.168*w,
		0.272 - 0.272*w, 0.534 - 0.534*w, 0.131 + 0.869*w,
	})
}

// Saturate scales saturation by v; 1 leaves the color unchanged.
func (c Color) Saturate(v float64) Color {
	return c.multiply([9]float64{
		0.213 + 0.787*v, 0.715 - 0.715*v, 0.072 - 0.072*v,
		0.213 - 0.213*v, 0.715 + 0.285*v, 0.072 - 0.072*v,
		0.213 - 0.213*v, 0.715 - 0.715*v, 0.072 + 0.928*v,
	})
}

func (c Color) linear(slope, intercept float64) Color {
	return Color{
		R: clamp(c.R*slope + intercept*255),
		G: clamp(c.G*slope + intercept*255),
		B: clamp(c.B*slope + intercept*255),
	}
}

func (c Color) Brightness(v float64) Color {
	return c.linear(v, 0)
}

func (c Color) Contrast(v float64) Color {
	return c.linear(v, -(0.5*v) + 0.5)
}

// Invert inverts by amount v in [0, 1].
func (c Color) Invert(v float64) Color {
	return Color{
		R: clamp((v + c.R/255*(1-2*v)) * 255),
		G: clamp((v + c.G/255*(1-2*v)) * 255),
		B: clamp((v + c.B/255*(1-2*v)) * 255),
	}
}

func (c Color) HSL() HSL {
	r, g, b := c.R/255, c.G/255, c.B/255
	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))

	var h, s float64
	l := (hi + lo) / 2
	if hi != lo {
		d := hi - lo
		if l > 0.5 {
			s = d / (2 - hi - lo)
		} else {
			s = d / (hi + lo)
		}
		switch hi {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}
	return HSL{H: h * 100, S: s * 100, L: l * 100}
}
