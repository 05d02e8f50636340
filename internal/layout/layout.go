// Package layout computes the pixel size and placement of a watermark on
// an image. It is pure geometry: text measurement is abstracted behind
// TextMeasurer so the engine can be exercised without a font.
package layout

import (
	"math"

	"datemark/internal/config"
)

// TextMeasurer reports the rendered ink box of text at a font size.
type TextMeasurer interface {
	Measure(text string, size int) (w, h int)
}

// Result is the final watermark geometry for one image.
type Result struct {
	W, H int
	X, Y int
}

// TargetWidth is the watermark's target pixel width for ratio or auto
// sizing on an image of width w.
func TargetWidth(w int, spec config.SizeSpec, cfg config.Config) int {
	ratio := cfg.TargetWidthRatio
	if spec.Mode == config.SizeRatio {
		ratio = spec.Ratio
	}
	return max(1, int(math.Round(float64(w)*ratio)))
}

// FitFont solves for the font size whose rendered width hits the target,
// returning the chosen size and the measured dimensions at that size.
//
// For ratio and auto modes this is a single proportional correction: the
// text is measured once at an initial guess, the size is rescaled by
// target/measured, and the result is measured once more. Width growth is
// assumed linear in font size; strongly non-linear font metrics may land
// off target.
func FitFont(m TextMeasurer, text string, imgW int, spec config.SizeSpec, cfg config.Config) (size, tw, th int) {
	if spec.Mode == config.SizePixels {
		size = max(cfg.MinFontSize, spec.Pixels)
		tw, th = m.Measure(text, size)
		return size, tw, th
	}

	target := TargetWidth(imgW, spec, cfg)
	size = max(cfg.MinFontSize, target)
	tw0, th0 := m.Measure(text, size)
	if tw0 == 0 {
		return size, tw0, th0
	}
	scale := float64(target) / float64(tw0)
	size = max(cfg.MinFontSize, int(math.Round(float64(size)*scale)))
	tw, th = m.Measure(text, size)
	return size, tw, th
}

// BitmapTarget is the resampling target for the pre-rendered bitmap path:
// ratio and auto modes target a width, pixel mode targets a height.
func BitmapTarget(imgW int, spec config.SizeSpec, cfg config.Config) (target int, byHeight bool) {
	if spec.Mode == config.SizePixels {
		return max(1, spec.Pixels), true
	}
	return TargetWidth(imgW, spec, cfg), false
}

// Place computes the top-left origin of a tw×th watermark on a w×h image.
// Bottom-right is the only corner using proportional offsets; when those
// push the watermark off-canvas it falls back to fixed padding, clamped
// at zero.
func Place(w, h, tw, th int, pos config.Position, cfg config.Config) (x, y int) {
	pad := cfg.Padding
	switch pos {
	case config.TopLeft:
		return pad, pad
	case config.TopRight:
		return w - tw - pad, pad
	case config.Center:
		return floorDiv(w-tw, 2), floorDiv(h-th, 2)
	case config.BottomLeft:
		return pad, h - th - pad
	default: // bottom-right
		x = w - tw - int(math.Round(float64(w)*cfg.RightOffsetRatio))
		y = h - th - int(math.Round(float64(h)*cfg.BottomOffsetRatio))
		if x < 0 {
			x = max(0, w-tw-pad)
		}
		if y < 0 {
			y = max(0, h-th-pad)
		}
		return x, y
	}
}

// floorDiv divides rounding toward negative infinity. Go's operator
// truncates toward zero, which shifts the centering offset by one pixel
// when the watermark is larger than the canvas.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
