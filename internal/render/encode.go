package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// EncodeResult says which encode path produced the output file.
type EncodeResult int

const (
	// EncodedNative means the output extension's own encoder was used.
	EncodedNative EncodeResult = iota
	// EncodedPNGFallback means the native encode was unavailable or
	// failed, and the bytes are PNG regardless of extension.
	EncodedPNGFallback
)

// Save encodes img per the output path's extension and writes it.
// jpg/jpeg use the given quality; png, bmp and tif/tiff encode natively;
// anything else (webp has no Go encoder) falls back to PNG bytes under
// the original extension.
func Save(path string, img image.Image, quality int) (EncodeResult, error) {
	var buf bytes.Buffer
	result := EncodedNative

	if err := encodeNative(&buf, img, strings.ToLower(filepath.Ext(path)), quality); err != nil {
		buf.Reset()
		if perr := png.Encode(&buf, img); perr != nil {
			return result, fmt.Errorf("encode %s: %w", path, perr)
		}
		result = EncodedPNGFallback
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return result, fmt.Errorf("write %s: %w", path, err)
	}
	return result, nil
}

func encodeNative(buf *bytes.Buffer, img image.Image, ext string, quality int) error {
	switch ext {
	case ".jpg", ".jpeg":
		// jpeg is 3-channel; the alpha of the working raster is uniform
		// opaque so dropping it matches a flatten.
		return jpeg.Encode(buf, img, &jpeg.Options{Quality: quality})
	case ".png":
		return png.Encode(buf, img)
	case ".bmp":
		return bmp.Encode(buf, img)
	case ".tif", ".tiff":
		return tiff.Encode(buf, img, nil)
	default:
		return fmt.Errorf("no native encoder for %q", ext)
	}
}
