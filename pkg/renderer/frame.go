package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"gonum.org/v1/gonum/stat"
)

// Frame is a rendered image in linear color, row-major with the top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Color
	Stats  FrameStats
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the linear color of pixel (x, y), with y counted from the top
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// AverageLuminance returns the mean linear luminance over all pixels
func (f *Frame) AverageLuminance() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	luminance := make([]float64, len(f.Pixels))
	for i, p := range f.Pixels {
		luminance[i] = p.Luminance()
	}
	return stat.Mean(luminance, nil)
}

// ToRGBA converts the frame to 8-bit color: values are clamped to [0, 1],
// then gamma corrected. Non-finite values become black.
func (f *Frame) ToRGBA(gamma float64) *image.RGBA {
	if gamma <= 0 {
		gamma = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, toRGBA(f.At(x, y), gamma))
		}
	}
	return img
}

// toRGBA converts a linear color to RGBA with clamping and gamma correction
func toRGBA(c core.Color, gamma float64) color.RGBA {
	if !c.IsFinite() {
		return color.RGBA{A: 255}
	}
	c = c.Clamp(0, 1).GammaCorrect(gamma)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}
