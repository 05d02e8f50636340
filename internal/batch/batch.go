// Package batch enumerates target images and runs the watermark pipeline
// over them one at a time, reporting a per-file outcome.
package batch

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"datemark/internal/config"
	"datemark/internal/exifmeta"
	"datemark/internal/layout"
	"datemark/internal/render"
)

// OutDirName is the subdirectory the results are written into.
const OutDirName = "_watermark"

var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// SupportedExt reports whether the file name has a processable extension.
func SupportedExt(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// CollectTargets resolves the input path to the list of files to process.
// A directory contributes its immediate child files with supported
// extensions (no recursion); a file must itself have a supported
// extension or the whole run is rejected.
func CollectTargets(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input path: %w", err)
	}
	if !fi.IsDir() {
		if !SupportedExt(path) {
			return nil, fmt.Errorf("%s is not a supported image file (jpg/jpeg/png/webp/bmp/tif/tiff)", path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	var targets []string
	for _, e := range entries {
		if e.IsDir() || !SupportedExt(e.Name()) {
			continue
		}
		targets = append(targets, filepath.Join(path, e.Name()))
	}
	return targets, nil
}

// OutputDir is `<dir>/_watermark` for a directory input and
// `<parent>/_watermark` for a file input.
func OutputDir(inputPath string) string {
	if fi, err := os.Stat(inputPath); err == nil && fi.IsDir() {
		return filepath.Join(inputPath, OutDirName)
	}
	return filepath.Join(filepath.Dir(inputPath), OutDirName)
}

// Status classifies what happened to one input file.
type Status int

const (
	StatusSaved Status = iota
	StatusSkipped
	StatusFailed
)

// Outcome is the per-file report unit.
type Outcome struct {
	Status   Status
	Path     string
	OutPath  string
	Detail   string
	Geometry layout.Result
}

// Runner drives the per-file pipeline. Font is nil when no scalable font
// is available, which selects the bitmap rendering path.
type Runner struct {
	Config config.Config
	Font   *render.Font
}

// Run creates the output directory once, then processes each target to
// completion in order. A failing file never affects the next one.
func (r *Runner) Run(targets []string, outdir string) ([]Outcome, error) {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	outcomes := make([]Outcome, 0, len(targets))
	for _, t := range targets {
		o := r.processOne(t, outdir)
		report(o)
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func report(o Outcome) {
	switch o.Status {
	case StatusSaved:
		fmt.Printf("[*] saved %s (%s, %dx%d at %d,%d)\n",
			o.OutPath, o.Detail, o.Geometry.W, o.Geometry.H, o.Geometry.X, o.Geometry.Y)
	case StatusSkipped:
		fmt.Printf("[!] skip %s: %s\n", o.Path, o.Detail)
	default:
		fmt.Printf("[-] error %s: %s\n", o.Path, o.Detail)
	}
}

func (r *Runner) processOne(path, outdir string) Outcome {
	cfg := r.Config

	date, ok := exifmeta.CaptureDate(path)
	if !ok && cfg.FallbackToFiletime {
		date, ok = exifmeta.FileTime(path)
	}
	if !ok {
		return Outcome{Status: StatusSkipped, Path: path, Detail: "no time information"}
	}
	text := date.Time.Format("2006-01-02")

	src, err := decode(path)
	if err != nil {
		return Outcome{Status: StatusFailed, Path: path, Detail: err.Error()}
	}
	canvas := render.Normalize(render.ToNRGBA(src), exifmeta.Orientation(path))
	w, h := canvas.Bounds().Dx(), canvas.Bounds().Dy()

	var geom layout.Result
	if r.Font != nil {
		size, tw, th := layout.FitFont(r.Font, text, w, cfg.Size, cfg)
		x, y := layout.Place(w, h, tw, th, cfg.Position, cfg)
		face, err := r.Font.Face(size)
		if err != nil {
			return Outcome{Status: StatusFailed, Path: path, Detail: fmt.Sprintf("font face: %v", err)}
		}
		defer face.Close()
		render.DrawOutlinedText(canvas, face, x, y, text, cfg.Color, cfg.OutlineColor, cfg.OutlineWidth)
		geom = layout.Result{W: tw, H: th, X: x, Y: y}
	} else {
		wm := render.TextBitmap(render.FallbackFace(), text, cfg.Color, cfg.OutlineColor, cfg.OutlineWidth)
		target, byHeight := layout.BitmapTarget(w, cfg.Size, cfg)
		if byHeight {
			wm = render.ScaleToHeight(wm, target, cfg)
		} else {
			wm = render.ScaleToWidth(wm, target, cfg)
		}
		tw, th := wm.Bounds().Dx(), wm.Bounds().Dy()
		x, y := layout.Place(w, h, tw, th, cfg.Position, cfg)
		draw.Draw(canvas, image.Rect(x, y, x+tw, y+th), wm, wm.Bounds().Min, draw.Over)
		geom = layout.Result{W: tw, H: th, X: x, Y: y}
	}

	outPath := filepath.Join(outdir, filepath.Base(path))
	encRes, err := render.Save(outPath, canvas, cfg.JPEGQuality)
	if err != nil {
		return Outcome{Status: StatusFailed, Path: path, Detail: err.Error()}
	}
	detail := text
	if encRes == render.EncodedPNGFallback {
		detail += ", reencoded as png"
	}
	return Outcome{Status: StatusSaved, Path: path, OutPath: outPath, Detail: detail, Geometry: geom}
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}
