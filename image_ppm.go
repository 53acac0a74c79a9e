package tracer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/lumenray/tracer/utils"
)

// PPMMaxValue is the component ceiling written into the PPM header.
const PPMMaxValue = 255

// WritePPM encodes img as plain-text PPM (P3): header
// "P3\n<W> <H>\n<max>\n", then one "<r> <g> <b>" triple per pixel, clamped
// to [0, max] after multiplying the linear float color by max and
// truncating, tab-separated within a row and newline-separated between
// rows.
func WritePPM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", img.Width, img.Height, PPMMaxValue); err != nil {
		return fmt.Errorf("ppm: could not write header: %w", err)
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Pixels[y*img.Width+x]
			r := toComponent(c.X)
			g := toComponent(c.Y)
			b := toComponent(c.Z)

			if x > 0 {
				if _, err := bw.WriteString("\t"); err != nil {
					return fmt.Errorf("ppm: could not write row: %w", err)
				}
			}
			if _, err := fmt.Fprintf(bw, "%d %d %d", r, g, b); err != nil {
				return fmt.Errorf("ppm: could not write pixel: %w", err)
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return fmt.Errorf("ppm: could not write row terminator: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ppm: could not flush output: %w", err)
	}
	return nil
}

// toComponent maps a linear float color channel to a clamped [0, max] byte.
func toComponent(v float64) int {
	c := utils.Clamp(v, 0, 1)
	return int(c * PPMMaxValue)
}
