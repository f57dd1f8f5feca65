package ocr

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// cropTopHalf rewrites the PNG at path with only the top 50% of the image.
// Registration certificates carry their fields in the upper half; cropping
// avoids background watermark noise and halves recognition time.
func cropTopHalf(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	src, err := png.Decode(f)
	closeErr := f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	b := src.Bounds()
	half := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+b.Dy()/2)
	dst := image.NewRGBA(image.Rect(0, 0, half.Dx(), half.Dy()))
	draw.Copy(dst, image.Point{}, src, half, draw.Src, nil)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, dst); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
