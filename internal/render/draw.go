// Package render rasterizes the watermark and writes the result: font
// discovery, outlined text drawing, antialiased resampling of the bitmap
// fallback, orientation normalization, and format-aware encoding.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FallbackFace is the fixed-size bitmap face used when no scalable font
// is available.
func FallbackFace() font.Face { return basicfont.Face7x13 }

// Measure reports the tight ink box of text rendered with face.
func Measure(face font.Face, text string) (w, h int) {
	b, _ := font.BoundString(face, text)
	return (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil()
}

// DrawOutlinedText draws text so its ink box's top-left corner lands at
// (x, y). The string is first drawn at every offset in
// [-outlineWidth, outlineWidth]² except the center, in the outline color,
// then once in the fill color — a uniform stroke halo for legibility
// against variable backgrounds.
func DrawOutlinedText(dst draw.Image, face font.Face, x, y int, text string, fill, outline color.NRGBA, outlineWidth int) {
	b, _ := font.BoundString(face, text)
	base := fixed.Point26_6{X: fixed.I(x) - b.Min.X, Y: fixed.I(y) - b.Min.Y}

	d := &font.Drawer{Dst: dst, Face: face, Src: image.NewUniform(outline)}
	for dy := -outlineWidth; dy <= outlineWidth; dy++ {
		for dx := -outlineWidth; dx <= outlineWidth; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = fixed.Point26_6{X: base.X + fixed.I(dx), Y: base.Y + fixed.I(dy)}
			d.DrawString(text)
		}
	}
	d.Src = image.NewUniform(fill)
	d.Dot = base
	d.DrawString(text)
}

// TextBitmap renders outlined text onto a tightly-cropped transparent
// raster, padded by outlineWidth+2 on each side so the halo is never
// clipped. This feeds the resample path when no scalable font exists.
func TextBitmap(face font.Face, text string, fill, outline color.NRGBA, outlineWidth int) *image.NRGBA {
	tw, th := Measure(face, text)
	pad := outlineWidth + 2
	img := image.NewNRGBA(image.Rect(0, 0, tw+2*pad, th+2*pad))
	DrawOutlinedText(img, face, pad, pad, text, fill, outline, outlineWidth)
	return img
}

// ToNRGBA returns a 4-channel working copy of img.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
