package texture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// checker returns a 2x2 image: red top-left, green top-right,
// blue bottom-left, half-transparent white bottom-right.
func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, color.NRGBA{255, 255, 255, 51})
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestSampleAtFlipsV(t *testing.T) {
	s := Decode(checker())
	if s.Width != 2 || s.Height != 2 || len(s.Pixels) != 16 {
		t.Fatalf("Decode() = %dx%d with %d bytes, want 2x2 with 16", s.Width, s.Height, len(s.Pixels))
	}

	tests := []struct {
		name    string
		u, v    float64
		r, g, b float64
		alpha   float64
	}{
		{"v=1 is the top row", 0.1, 0.9, 1, 0, 0, 1},
		{"top right", 0.9, 0.9, 0, 1, 0, 1},
		{"v=0 is the bottom row", 0.1, 0.1, 0, 0, 1, 1},
		{"bottom right alpha", 0.9, 0.1, 1, 1, 1, 0.2},
		{"u=1 clamps", 1, 0.9, 0, 1, 0, 1},
		{"v=0 clamps", 0.1, 0, 0, 0, 1, 1},
		{"negative clamps", -3, 7, 1, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, a := s.At(tt.u, tt.v)
			if c.R != tt.r || c.G != tt.g || c.B != tt.b {
				t.Errorf("At(%v, %v) color = %v, want (%v, %v, %v)", tt.u, tt.v, c, tt.r, tt.g, tt.b)
			}
			if math.Abs(a-tt.alpha) > 1e-9 {
				t.Errorf("At(%v, %v) alpha = %v, want %v", tt.u, tt.v, a, tt.alpha)
			}
		})
	}
}

func TestDecodeImageSniffsFormat(t *testing.T) {
	data := encodePNG(t, checker())
	tests := []struct {
		name string
		ext  string
	}{
		{"matching extension", ".png"},
		{"no extension", ""},
		{"wrong extension", ".jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeImage(data, tt.ext)
			if err != nil {
				t.Fatalf("DecodeImage(%q): %v", tt.ext, err)
			}
			if img.Bounds().Dx() != 2 {
				t.Errorf("width = %d, want 2", img.Bounds().Dx())
			}
		})
	}
}

func TestDecodeImageUnknown(t *testing.T) {
	_, err := DecodeImage([]byte("not an image"), "")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("DecodeImage() error = %v, want ErrUnknownFormat", err)
	}
}

func TestFromBytesContentIdentity(t *testing.T) {
	data := encodePNG(t, checker())
	a := FromBytes(data, ".png")
	b := FromBytes(append([]byte(nil), data...), ".PNG")
	if a.ID != b.ID {
		t.Errorf("same bytes gave IDs %q and %q", a.ID, b.ID)
	}
	c := FromBytes(encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 1, 1))), ".png")
	if c.ID == a.ID {
		t.Error("different bytes share an ID")
	}
}

func TestCacheDecodesOnce(t *testing.T) {
	c := NewCache()
	tex := FromBytes(encodePNG(t, checker()), ".png")
	same := FromBytes(encodePNG(t, checker()), ".png")

	first, ok := c.Get(tex)
	if !ok {
		t.Fatal("Get() ok = false")
	}
	second, ok := c.Get(same)
	if !ok {
		t.Fatal("second Get() ok = false")
	}
	if first != second {
		t.Error("second Get() returned a different sample")
	}
	if c.Decodes() != 1 {
		t.Errorf("Decodes() = %d, want 1", c.Decodes())
	}

	c.Reset()
	if c.Len() != 0 || c.Decodes() != 0 {
		t.Fatalf("after Reset: Len() = %d, Decodes() = %d", c.Len(), c.Decodes())
	}
	if _, ok := c.Get(tex); !ok {
		t.Fatal("Get() after Reset ok = false")
	}
	if c.Decodes() != 1 {
		t.Errorf("Decodes() after Reset = %d, want 1", c.Decodes())
	}
}

func TestCacheRemembersFailures(t *testing.T) {
	c := NewCache()
	bad := FromBytes([]byte("garbage"), ".png")
	for i := 0; i < 3; i++ {
		if _, ok := c.Get(bad); ok {
			t.Fatal("Get() ok = true for undecodable texture")
		}
	}
	if c.Decodes() != 1 {
		t.Errorf("Decodes() = %d, want 1", c.Decodes())
	}
	if c.Err(bad.ID) == nil {
		t.Error("Err() = nil, want recorded decode error")
	}
	if _, ok := c.Get(nil); ok {
		t.Error("Get(nil) ok = true")
	}
}

func TestCacheWarm(t *testing.T) {
	c := NewCache()
	a := FromImage("a", checker())
	b := FromImage("b", checker())
	bad := FromBytes([]byte("garbage"), "")

	err := c.Warm(context.Background(), []*Texture{a, b, a, nil, bad, b}, 4)
	if err != nil {
		t.Fatalf("Warm() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if c.Decodes() != 3 {
		t.Errorf("Decodes() = %d, want 3", c.Decodes())
	}
}

func TestCacheWarmCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewCache().Warm(ctx, []*Texture{FromImage("a", checker())}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Warm() error = %v, want context.Canceled", err)
	}
}
