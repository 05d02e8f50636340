package render

import (
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"datemark/internal/config"
)

// Font is a parsed scalable font that can be rasterized at any size.
type Font struct {
	sfnt *sfnt.Font
	path string
}

// Path is where the font was loaded from.
func (f *Font) Path() string { return f.path }

// Face rasterizes the font at the given pixel size.
func (f *Font) Face(size int) (font.Face, error) {
	return opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size: float64(size),
		DPI:  72,
	})
}

// Measure reports the ink box of text at the given size. A font that
// cannot produce a face at that size measures as empty.
func (f *Font) Measure(text string, size int) (w, h int) {
	face, err := f.Face(size)
	if err != nil {
		return 0, 0
	}
	defer face.Close()
	return Measure(face, text)
}

// FindFont is the capability query for scalable-font rendering: it tries
// the configured font path first, then the per-OS system candidates, and
// reports whether any of them parsed. A false result selects the bitmap
// rendering path.
func FindFont(cfg config.Config) (*Font, bool) {
	candidates := systemFontCandidates()
	if cfg.FontPath != "" {
		candidates = append([]string{cfg.FontPath}, candidates...)
	}
	for _, p := range candidates {
		f, err := LoadFont(p)
		if err != nil {
			continue
		}
		return f, true
	}
	return nil, false
}

// LoadFont reads and parses a scalable font file.
func LoadFont(path string) (*Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ft, err := opentype.Parse(b)
	if err != nil {
		return nil, err
	}
	// Probe a face once so a structurally broken font fails here rather
	// than mid-batch.
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{Size: 20, DPI: 72})
	if err != nil {
		return nil, err
	}
	face.Close()
	return &Font{sfnt: ft, path: path}, nil
}

func systemFontCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts\arial.ttf`}
	case "darwin":
		return []string{
			"/Library/Fonts/Arial.ttf",
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			filepath.Join(os.Getenv("HOME"), "Library/Fonts/Arial.ttf"),
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/TTF/DejaVuSans.ttf",
		}
	}
}
