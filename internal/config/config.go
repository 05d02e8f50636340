// Package config holds the immutable per-run configuration and the parsers
// that turn free-form user input into typed values.
package config

import (
	"image/color"
)

// Position is a watermark placement anchor.
type Position int

const (
	TopLeft Position = iota
	TopRight
	Center
	BottomLeft
	BottomRight
)

func (p Position) String() string {
	switch p {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case Center:
		return "center"
	case BottomLeft:
		return "bottom-left"
	default:
		return "bottom-right"
	}
}

// SizeMode selects how the watermark size is derived from the image.
type SizeMode int

const (
	// SizeAuto sizes the watermark at the default width ratio.
	SizeAuto SizeMode = iota
	// SizeRatio sizes the watermark as a fraction of the image width.
	SizeRatio
	// SizePixels sizes the watermark at an absolute pixel height.
	SizePixels
)

// SizeSpec is a parsed watermark size specification.
// Ratio is meaningful for SizeRatio, Pixels for SizePixels.
type SizeSpec struct {
	Mode   SizeMode
	Ratio  float64
	Pixels int
}

// Config is the full run configuration, built once in main and threaded
// through every call. Zero values are not useful; use Default.
type Config struct {
	Color    color.NRGBA
	Position Position
	Size     SizeSpec

	Padding     int
	JPEGQuality int

	// FallbackToFiletime uses the file mod time when no EXIF date exists.
	FallbackToFiletime bool

	// FontPath, when set, is tried before the system font candidates.
	FontPath string

	MinFontSize      int
	TargetWidthRatio float64

	OutlineWidth int
	OutlineColor color.NRGBA

	// Bottom-right placement uses proportional rather than fixed padding.
	BottomOffsetRatio float64
	RightOffsetRatio  float64

	// Antialiasing of the resampled bitmap watermark.
	BlurRadius       float64
	UnsharpRadius    float64
	UnsharpPercent   int
	UnsharpThreshold int
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Color:              color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Position:           BottomRight,
		Size:               SizeSpec{Mode: SizeAuto},
		Padding:            12,
		JPEGQuality:        95,
		FallbackToFiletime: false,
		MinFontSize:        12,
		TargetWidthRatio:   0.10,
		OutlineWidth:       2,
		OutlineColor:       color.NRGBA{R: 0, G: 0, B: 0, A: 200},
		BottomOffsetRatio:  0.05,
		RightOffsetRatio:   0.08,
		BlurRadius:         0.6,
		UnsharpRadius:      1,
		UnsharpPercent:     120,
		UnsharpThreshold:   3,
	}
}
