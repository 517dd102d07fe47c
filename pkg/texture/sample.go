package texture

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Sample is a decoded texture: row-major, non-premultiplied RGBA bytes.
type Sample struct {
	Width, Height int
	Pixels        []byte
}

// Decode flattens any image into a Sample. NRGBA sources are copied
// without a round trip through premultiplied color.
func Decode(img image.Image) *Sample {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	s := &Sample{Width: w, Height: h, Pixels: make([]byte, 0, w*h*4)}
	if n, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := n.PixOffset(b.Min.X, y)
			s.Pixels = append(s.Pixels, n.Pix[off:off+w*4]...)
		}
		return s
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			s.Pixels = append(s.Pixels, c.R, c.G, c.B, c.A)
		}
	}
	return s
}

// Empty reports whether the sample has no pixels.
func (s *Sample) Empty() bool {
	return s == nil || s.Width <= 0 || s.Height <= 0
}

// At returns the color and alpha of the pixel under (u, v). V runs bottom
// to top while image rows run top to bottom, so the row is flipped.
// Coordinates outside [0,1] clamp to the edge pixels.
func (s *Sample) At(u, v float64) (colorful.Color, float64) {
	if s.Empty() {
		return colorful.Color{}, 1
	}
	x := clampIndex(u*float64(s.Width), s.Width)
	y := clampIndex((1-v)*float64(s.Height), s.Height)
	i := (y*s.Width + x) * 4
	p := s.Pixels[i : i+4 : i+4]
	c := colorful.Color{
		R: float64(p[0]) / 255,
		G: float64(p[1]) / 255,
		B: float64(p[2]) / 255,
	}
	return c, float64(p[3]) / 255
}

func clampIndex(f float64, n int) int {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	i := int(math.Floor(f))
	if i >= n {
		return n - 1
	}
	return i
}
