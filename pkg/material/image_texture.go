package material

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// ImageTexture looks colors up in an in-memory pixel grid. Decoding image
// files is left to the caller.
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major, top row first
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Color) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the nearest pixel. u runs left to right and v top to
// bottom; coordinates outside [0, 1] clamp to the border.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Point3) core.Color {
	if t.Width == 0 || t.Height == 0 {
		return core.Color{}
	}
	x := pixelIndex(uv.X, t.Width)
	y := pixelIndex(uv.Y, t.Height)
	return t.Pixels[y*t.Width+x]
}

func pixelIndex(coord float64, size int) int {
	if math.IsNaN(coord) {
		return 0
	}
	i := math.Floor(coord * float64(size))
	return int(max(0, min(float64(size-1), i)))
}

// NewCheckerboardImage renders a checkerboard of checkSize pixel squares,
// useful for debugging uv mappings
func NewCheckerboardImage(width, height, checkSize int, color1, color2 core.Color) *ImageTexture {
	pixels := make([]core.Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}
	return NewImageTexture(width, height, pixels)
}
