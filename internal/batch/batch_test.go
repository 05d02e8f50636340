package batch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"datemark/internal/config"
	"datemark/internal/imagetest"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 40
		img.Pix[i+1] = 90
		img.Pix[i+2] = 140
		img.Pix[i+3] = 255
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestSupportedExt(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp", "e.bmp", "f.tif", "g.TIFF"} {
		require.True(t, SupportedExt(name), name)
	}
	for _, name := range []string{"c.txt", "noext", "d.gif", "e.jpg.bak"} {
		require.False(t, SupportedExt(name), name)
	}
}

func TestCollectTargetsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "b.png"), 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("stub"), 0o644))
	// nested directories are not walked
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeTestPNG(t, filepath.Join(sub, "deep.png"), 8, 8)

	targets, err := CollectTargets(dir)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
	}, targets)
}

func TestCollectTargetsSingleFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "b.png")
	writeTestPNG(t, p, 8, 8)

	targets, err := CollectTargets(p)
	require.NoError(t, err)
	require.Equal(t, []string{p}, targets)

	bad := filepath.Join(dir, "c.txt")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	_, err = CollectTargets(bad)
	require.Error(t, err)

	_, err = CollectTargets(filepath.Join(dir, "missing.jpg"))
	require.Error(t, err)
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "b.png")
	writeTestPNG(t, p, 8, 8)

	require.Equal(t, filepath.Join(dir, OutDirName), OutputDir(dir))
	require.Equal(t, filepath.Join(dir, OutDirName), OutputDir(p))
}

func TestRunSkipsWithoutTimeInformation(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "b.png")
	writeTestPNG(t, p, 64, 48)

	r := &Runner{Config: config.Default()} // FallbackToFiletime is off
	outcomes, err := r.Run([]string{p}, OutputDir(dir))
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.Equal(t, StatusSkipped, outcomes[0].Status)
	require.Equal(t, "no time information", outcomes[0].Detail)
	require.NoFileExists(t, filepath.Join(dir, OutDirName, "b.png"))
}

func TestRunSavesWithEXIFDate(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.jpg")
	data := imagetest.JPEGWithDateTags("2023:05:10 14:22:01", "")
	require.NoError(t, os.WriteFile(p, data, 0o644))

	// No filetime fallback: the EXIF date alone must carry the save.
	r := &Runner{Config: config.Default()}
	outcomes, err := r.Run([]string{p}, OutputDir(dir))
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.Equal(t, StatusSaved, outcomes[0].Status, outcomes[0].Detail)
	require.Equal(t, "2023-05-10", outcomes[0].Detail)
	require.FileExists(t, filepath.Join(dir, OutDirName, "a.jpg"))
}

func TestRunSavesWithFiletimeFallback(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "photo.png")
	writeTestPNG(t, p, 200, 150)

	cfg := config.Default()
	cfg.FallbackToFiletime = true
	r := &Runner{Config: cfg}

	outcomes, err := r.Run([]string{p}, OutputDir(dir))
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	o := outcomes[0]
	require.Equal(t, StatusSaved, o.Status, o.Detail)
	require.Equal(t, filepath.Join(dir, OutDirName, "photo.png"), o.OutPath)
	require.FileExists(t, o.OutPath)

	// geometry within the canvas
	require.Greater(t, o.Geometry.W, 0)
	require.Greater(t, o.Geometry.H, 0)
	require.GreaterOrEqual(t, o.Geometry.X, 0)
	require.GreaterOrEqual(t, o.Geometry.Y, 0)

	// output decodes and the watermark actually changed pixels
	f, err := os.Open(o.OutPath)
	require.NoError(t, err)
	defer f.Close()
	out, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 200, out.Bounds().Dx())
	require.Equal(t, 150, out.Bounds().Dy())

	changed := false
	base := color.NRGBA{R: 40, G: 90, B: 140, A: 255}
	for y := out.Bounds().Min.Y; y < out.Bounds().Max.Y && !changed; y++ {
		for x := out.Bounds().Min.X; x < out.Bounds().Max.X; x++ {
			if color.NRGBAModel.Convert(out.At(x, y)) != base {
				changed = true
				break
			}
		}
	}
	require.True(t, changed, "watermark left no visible trace")
}

func TestRunGeometryIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "photo.png")
	writeTestPNG(t, p, 320, 240)

	cfg := config.Default()
	cfg.FallbackToFiletime = true
	r := &Runner{Config: cfg}

	first, err := r.Run([]string{p}, OutputDir(dir))
	require.NoError(t, err)
	second, err := r.Run([]string{p}, OutputDir(dir))
	require.NoError(t, err)
	require.Equal(t, first[0].Geometry, second[0].Geometry)
}

func TestRunContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(broken, []byte("not a jpeg"), 0o644))
	good := filepath.Join(dir, "good.png")
	writeTestPNG(t, good, 100, 80)

	cfg := config.Default()
	cfg.FallbackToFiletime = true
	r := &Runner{Config: cfg}

	outcomes, err := r.Run([]string{broken, good}, OutputDir(dir))
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	require.Equal(t, StatusFailed, outcomes[0].Status)
	require.Equal(t, StatusSaved, outcomes[1].Status, outcomes[1].Detail)
}
