package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	tracer "github.com/lumenray/tracer"
	"github.com/lumenray/tracer/utils"
	"golang.org/x/term"
)

const helpBanner = `
┌─┐┌─┐┌┬┐┬ ┬┌─┐┌┬┐
│  ├─┤ │ ├─┤│ │ │
└─┘┴ ┴ ┴ ┴ ┴└─┘ ┴

Offline path tracer.
    Version: %s

`

// Version indicates the current build version, set at build time via
// -ldflags.
var Version string

var (
	source    = flag.String("in", "", "Scene file path (required)")
	dest      = flag.String("out", "out.ppm", "Output PPM image path")
	threads   = flag.Int("threads", runtime.NumCPU(), "Number of render worker goroutines")
	thumbnail = flag.String("thumbnail", "", "Optional PNG thumbnail output path")
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, fmt.Sprintf(helpBanner, Version))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *source == "" {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide a scene file with -in", utils.ErrorMessage))
	}

	width, height, err := tracer.SceneImageSize(*source)
	if err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("Failed to read scene file: %v", err), utils.ErrorMessage))
	}
	if width <= 0 || height <= 0 {
		log.Fatal(utils.DecorateText("Scene file must specify a positive image width and height", utils.ErrorMessage))
	}

	scene, settings, err := tracer.LoadSceneFile(*source)
	if err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("Failed to load scene: %v", err), utils.ErrorMessage))
	}
	settings.Threads = *threads

	spinnerMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ TRACER", utils.StatusMessage),
		utils.DecorateText("⇢ rendering, this may take a while...", utils.DefaultMessage),
	)
	spinner := utils.NewSpinner(spinnerMsg, time.Millisecond*80, term.IsTerminal(int(os.Stderr.Fd())))
	spinner.Start()

	now := time.Now()
	img := tracer.RenderImage(scene, settings, width, height, func(done, total int) {
		spinner.SetMessage(fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ TRACER", utils.StatusMessage),
			utils.DecorateText(fmt.Sprintf("⇢ rendering bucket %d/%d...", done, total), utils.DefaultMessage),
		))
	})
	elapsed := time.Since(now)

	spinner.StopMsg = fmt.Sprintf("%s\n", utils.DecorateText(
		fmt.Sprintf("Rendered %s in %s", *source, utils.FormatTime(elapsed)), utils.SuccessMessage))
	spinner.Stop()

	out, err := outputWriter(*dest)
	if err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("Failed to open output: %v", err), utils.ErrorMessage))
	}
	defer out.Close()

	if err := tracer.WritePPM(out, img); err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("Failed to write image: %v", err), utils.ErrorMessage))
	}

	if *thumbnail != "" {
		if err := tracer.SaveThumbnail(*thumbnail, img, 512); err != nil {
			log.Fatal(utils.DecorateText(fmt.Sprintf("Failed to write thumbnail: %v", err), utils.ErrorMessage))
		}
	}
}

// outputWriter opens dest for writing, treating "-" as stdout.
func outputWriter(dest string) (*os.File, error) {
	if dest == "-" {
		return os.Stdout, nil
	}
	return os.Create(dest)
}
