package config

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseColor parses #RRGGBB, RRGGBB or a 3-digit shorthand (digits doubled)
// into an opaque color. On error the caller keeps its default.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		var b strings.Builder
		for _, ch := range s {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		s = b.String()
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("color must be RRGGBB or #RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// ParseSize parses a size specification:
//
//	"" or "auto"  -> auto (default ratio)
//	"8%"          -> ratio 0.08
//	"24px"        -> 24 pixels
//	"8"           -> ratio 0.08 (bare numbers <= 100 read as percent)
//	"150"         -> 150 pixels (bare numbers > 100 read as pixels)
//
// On error the caller keeps auto mode.
func ParseSize(s string) (SizeSpec, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return SizeSpec{Mode: SizeAuto}, nil
	}
	if v, ok := strings.CutSuffix(s, "%"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return SizeSpec{}, fmt.Errorf("invalid percentage %q", s)
		}
		return SizeSpec{Mode: SizeRatio, Ratio: clampRatio(n / 100)}, nil
	}
	if v, ok := strings.CutSuffix(s, "px"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return SizeSpec{}, fmt.Errorf("invalid pixel size %q", s)
		}
		return SizeSpec{Mode: SizePixels, Pixels: max(1, n)}, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return SizeSpec{}, fmt.Errorf("unparseable size %q", s)
	}
	if n > 100 {
		return SizeSpec{Mode: SizePixels, Pixels: int(math.Round(n))}, nil
	}
	return SizeSpec{Mode: SizeRatio, Ratio: clampRatio(n / 100)}, nil
}

func clampRatio(r float64) float64 {
	if r < 0.001 {
		return 0.001
	}
	if r > 1.0 {
		return 1.0
	}
	return r
}

// ParsePosition matches a corner name case-insensitively, accepting "-",
// "_" or no separator. On error the caller keeps the default corner.
func ParsePosition(s string) (Position, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "_", "")
	switch key {
	case "topleft":
		return TopLeft, nil
	case "topright":
		return TopRight, nil
	case "center", "centre":
		return Center, nil
	case "bottomleft":
		return BottomLeft, nil
	case "bottomright":
		return BottomRight, nil
	}
	return BottomRight, fmt.Errorf("unknown position %q", s)
}
