package reader

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ScannedImage represents a decoded scan of a printed data sheet.
type ScannedImage struct {
	Name   string // source file name
	Format string // decoded format ("png", "jpeg", "gif", "tiff", "bmp")
	Width  int
	Height int
	Image  image.Image
}

// ReadImage loads a scanned data sheet from disk. PNG, JPEG, GIF,
// TIFF, and BMP are recognized by content.
func ReadImage(filename string) (*ScannedImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	return &ScannedImage{
		Name:   filename,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Image:  img,
	}, nil
}

// ToPNG re-encodes the image as PNG, the input format the OCR engine
// accepts for every scan regardless of how it arrived.
func (img *ScannedImage) ToPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Image); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Grayscale converts the image to 8-bit grayscale. OCR accuracy on
// faxed and photocopied sheets improves once color noise is gone.
func (img *ScannedImage) Grayscale() *image.Gray {
	bounds := img.Image.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, img.Image.At(x, y))
		}
	}
	return gray
}
