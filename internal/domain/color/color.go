// Package color holds the dashboard palette and the hex/rgba helpers used to
// derive highlight and historical-year variants of a base color.
package color

import (
	"fmt"
	imgcolor "image/color"
	"math"
	"strconv"
	"strings"
)

// Palette.
const (
	Gold   = "#c9a24d"
	Silver = "#9ba8b5"
	Bronze = "#b07d56"
	Total  = "#1a1a2e"
	Accent = "#0b3d6b"
	Grid   = "rgba(0, 0, 0, 0.05)"
	Text   = "#555770"

	// Background of exported images.
	Paper = "#faf9f7"
	// Muted watermark URL color.
	Muted = "#8b8da3"
)

// Luma weights (ITU-R BT.601).
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Stripe is the five-color band drawn in every watermark, left to right.
var Stripe = [5]string{"#0081c8", "#f4c300", "#1a1a2e", "#009f3d", "#df0024"}

// HexToRgba converts a 6-digit hex color to a CSS rgba() string.
// Malformed input is not validated.
func HexToRgba(hex string, alpha float64) string {
	r, g, b := channels(hex)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}

// SaturateHex moves each channel away from (factor > 1) or toward (factor < 1)
// the color's luminance gray. Channels are clamped to [0,255].
func SaturateHex(hex string, factor float64) string {
	r, g, b := channels(hex)
	gray := Luminance(hex)
	adjust := func(c int) int {
		v := math.Round(gray + (float64(c)-gray)*factor)
		return int(math.Max(0, math.Min(255, v)))
	}
	return fmt.Sprintf("#%02x%02x%02x", adjust(r), adjust(g), adjust(b))
}

// Luminance returns the weighted gray level of a hex color.
func Luminance(hex string) float64 {
	r, g, b := channels(hex)
	return lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
}

// Parse reads either "#rrggbb" or "rgba(r, g, b, a)" into a non-premultiplied color.
func Parse(s string) (imgcolor.NRGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 7:
		r, g, b := channels(s)
		return imgcolor.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgba("), ")"), ",")
		if len(parts) != 4 {
			return imgcolor.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		var c [3]uint8
		for i := range c {
			n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || n < 0 || n > 255 {
				return imgcolor.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			c[i] = uint8(n)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return imgcolor.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return imgcolor.NRGBA{R: c[0], G: c[1], B: c[2], A: uint8(math.Round(a * 255))}, nil
	case s == "transparent":
		return imgcolor.NRGBA{}, nil
	}
	return imgcolor.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParse is Parse for palette constants; it panics on bad input.
func MustParse(s string) imgcolor.NRGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func channels(hex string) (r, g, b int) {
	v := strings.TrimPrefix(hex, "#")
	if len(v) < 6 {
		return 0, 0, 0
	}
	r = parseByte(v[0:2])
	g = parseByte(v[2:4])
	b = parseByte(v[4:6])
	return r, g, b
}

func parseByte(s string) int {
	n, _ := strconv.ParseUint(s, 16, 8)
	return int(n)
}
