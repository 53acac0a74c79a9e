package tracer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
)

// MaxBitmapDimension is the largest width or height a bitmap texture asset
// is allowed to keep; oversized assets are Lanczos-downsampled to this
// bound before being attached to a Texture; see SPEC_FULL.md's domain
// stack notes on disintegration/imaging.
const MaxBitmapDimension = 4096

// LoadBitmapImage decodes a bitmap texture asset from path (PNG, JPEG or
// BMP) into a row-major BitmapImage. It is an asset-load boundary: a
// missing or undecodable file is an *AssetError.
func LoadBitmapImage(path string) (*BitmapImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &AssetError{Path: path, Err: fmt.Errorf("could not decode image: %w", err)}
	}

	b := src.Bounds()
	if b.Dx() > MaxBitmapDimension || b.Dy() > MaxBitmapDimension {
		w, h := 0, 0
		if b.Dx() >= b.Dy() {
			w = MaxBitmapDimension
		} else {
			h = MaxBitmapDimension
		}
		src = imaging.Resize(src, w, h, imaging.Lanczos)
		b = src.Bounds()
	}

	nrgba := imaging.Clone(src) // normalizes any source color model to NRGBA

	out := &BitmapImage{Width: b.Dx(), Height: b.Dy(), Pixels: make([]Vec3, b.Dx()*b.Dy())}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			px := nrgba.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			out.Pixels[y*b.Dx()+x] = Vec3{
				X: float64(px.R) / 255,
				Y: float64(px.G) / 255,
				Z: float64(px.B) / 255,
			}
		}
	}
	return out, nil
}

// SaveThumbnail Lanczos-resizes img down to maxDim on its longest side and
// writes it as a PNG to path, for the CLI's optional quick-preview output.
// An image already within maxDim is written at its own size.
func SaveThumbnail(path string, img *Image, maxDim int) error {
	nrgba := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Pixels[y*img.Width+x]
			i := nrgba.PixOffset(x, y)
			nrgba.Pix[i+0] = uint8(toComponent(c.X))
			nrgba.Pix[i+1] = uint8(toComponent(c.Y))
			nrgba.Pix[i+2] = uint8(toComponent(c.Z))
			nrgba.Pix[i+3] = 255
		}
	}

	var thumb image.Image = nrgba
	if img.Width > maxDim || img.Height > maxDim {
		w, h := 0, 0
		if img.Width >= img.Height {
			w = maxDim
		} else {
			h = maxDim
		}
		thumb = imaging.Resize(nrgba, w, h, imaging.Lanczos)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create thumbnail file: %w", err)
	}
	defer out.Close()

	if err := imaging.Encode(out, thumb, imaging.PNG); err != nil {
		return fmt.Errorf("could not encode thumbnail: %w", err)
	}
	return nil
}
