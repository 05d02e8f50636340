// datemark stamps the capture date of photos onto the photos themselves.
//
// It reads an image file or directory (non-recursive), pulls the capture
// date from EXIF metadata, draws it as an outlined text watermark near a
// chosen corner, and writes the results to a _watermark subdirectory.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"datemark/internal/batch"
	"datemark/internal/config"
	"datemark/internal/render"
)

func main() {
	inFlag := flag.String("in", "", "input image file or directory (skips the prompt)")
	colorFlag := flag.String("color", "", "watermark color as hex, e.g. #FFFFFF (skips the prompt)")
	sizeFlag := flag.String("size", "", "watermark size: auto, 8%, 24px or a bare number (skips the prompt)")
	posFlag := flag.String("pos", "", "corner: top-left, top-right, center, bottom-left, bottom-right (skips the prompt)")
	fontFlag := flag.String("font", "", "path to a .ttf/.otf font to use for the watermark")
	qualityFlag := flag.Int("quality", 95, "JPEG output quality")
	filetimeFlag := flag.Bool("filetime", false, "fall back to the file modification time when no EXIF date exists")
	flag.Parse()

	stdin := bufio.NewReader(os.Stdin)
	ask := func(flagName, prompt, flagVal string) string {
		if flag.CommandLine.Changed(flagName) {
			return strings.TrimSpace(flagVal)
		}
		fmt.Print(prompt)
		line, _ := stdin.ReadString('\n')
		return strings.TrimSpace(line)
	}

	inputPath := ask("in", "Image file or directory path: ", *inFlag)
	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "[-] no input path given")
		os.Exit(1)
	}
	if _, err := os.Stat(inputPath); err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.FontPath = *fontFlag
	cfg.JPEGQuality = *qualityFlag
	cfg.FallbackToFiletime = *filetimeFlag

	if s := ask("color", "Watermark color as hex (empty = #FFFFFF): ", *colorFlag); s != "" {
		if c, err := config.ParseColor(s); err != nil {
			fmt.Printf("[!] %v, using default color\n", err)
		} else {
			cfg.Color = c
		}
	}
	if s := ask("size", "Watermark size (empty = auto): ", *sizeFlag); s != "" {
		if spec, err := config.ParseSize(s); err != nil {
			fmt.Printf("[!] %v, using auto size\n", err)
		} else {
			cfg.Size = spec
		}
	}
	if s := ask("pos", "Watermark corner (empty = bottom-right): ", *posFlag); s != "" {
		if pos, err := config.ParsePosition(s); err != nil {
			fmt.Printf("[!] %v, using bottom-right\n", err)
		} else {
			cfg.Position = pos
		}
	}

	targets, err := batch.CollectTargets(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "[-] no images to process")
		os.Exit(1)
	}

	font, ok := render.FindFont(cfg)
	if !ok {
		fmt.Println("[!] no scalable font found; rendering a resampled bitmap watermark instead")
	}

	runner := &batch.Runner{Config: cfg, Font: font}
	outcomes, err := runner.Run(targets, batch.OutputDir(inputPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}

	var saved, skipped, failed int
	for _, o := range outcomes {
		switch o.Status {
		case batch.StatusSaved:
			saved++
		case batch.StatusSkipped:
			skipped++
		default:
			failed++
		}
	}
	fmt.Printf("[*] done: %d saved, %d skipped, %d failed\n", saved, skipped, failed)
}
