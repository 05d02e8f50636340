package render

import "image"

// Normalize applies the EXIF orientation transform (values 2-8) so the
// returned image is upright. Measurement and placement must run on the
// normalized image, not the stored one.
func Normalize(src *image.NRGBA, orientation int) *image.NRGBA {
	switch orientation {
	case 2:
		return flipH(src)
	case 3:
		return rotate180(src)
	case 4:
		return flipV(src)
	case 5:
		return transpose(src)
	case 6:
		return rotate90(src)
	case 7:
		return transverse(src)
	case 8:
		return rotate270(src)
	default:
		return src
	}
}

func mapPixels(src *image.NRGBA, dw, dh int, at func(x, y int) (int, int)) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			so := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			dx, dy := at(x, y)
			do := dst.PixOffset(dx, dy)
			copy(dst.Pix[do:do+4], src.Pix[so:so+4])
		}
	}
	return dst
}

func flipH(src *image.NRGBA) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	return mapPixels(src, w, h, func(x, y int) (int, int) { return w - 1 - x, y })
}

func flipV(src *image.NRGBA) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	return mapPixels(src, w, h, func(x, y int) (int, int) { return x, h - 1 - y })
}

func rotate90(src *image.NRGBA) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	return mapPixels(src, h, w, func(x, y int) (int, int) { return h - 1 - y, x })
}

func rotate180(src *image.NRGBA) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	return mapPixels(src, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
}

func rotate270(src *image.NRGBA) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	return mapPixels(src, h, w, func(x, y int) (int, int) { return y, w - 1 - x })
}

func transpose(src *image.NRGBA) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	return mapPixels(src, h, w, func(x, y int) (int, int) { return y, x })
}

func transverse(src *image.NRGBA) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	return mapPixels(src, h, w, func(x, y int) (int, int) { return h - 1 - y, w - 1 - x })
}
