// Package texture loads texture images and serves UV lookups from decoded
// pixel buffers. Textures are identified by content hash so two surfaces
// that reference the same bytes share one decoded sample.
package texture

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnknownFormat is returned when neither the extension nor the leading
// bytes identify a supported image format.
var ErrUnknownFormat = errors.New("texture: unknown image format")

// Texture is an opaque, stable handle to an image. It carries either the
// encoded source bytes or an already decoded image.
type Texture struct {
	ID   string
	Path string // informational; empty for in-memory textures

	data []byte
	ext  string
	img  image.Image
}

// Load reads an image file. Decoding is deferred until the texture is first
// sampled.
func Load(path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: load %s: %w", path, err)
	}
	t := FromBytes(data, filepath.Ext(path))
	t.Path = path
	return t, nil
}

// FromBytes wraps encoded image bytes. ext is a file extension hint such as
// ".png" and may be empty.
func FromBytes(data []byte, ext string) *Texture {
	sum := sha256.Sum256(data)
	return &Texture{
		ID:   hex.EncodeToString(sum[:]),
		data: data,
		ext:  strings.ToLower(strings.TrimSpace(ext)),
	}
}

// FromImage wraps a decoded image under an explicit identity.
func FromImage(id string, img image.Image) *Texture {
	return &Texture{ID: id, img: img}
}

// Image returns the decoded image.
func (t *Texture) Image() (image.Image, error) {
	if t.img != nil {
		return t.img, nil
	}
	return DecodeImage(t.data, t.ext)
}

// DecodeImage decodes encoded bytes, trying the extension hint first and the
// format signature second.
func DecodeImage(data []byte, ext string) (image.Image, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" {
		img, err := decodeByExtension(data, ext)
		if err == nil {
			return img, nil
		}
		detected := detectExtension(data)
		if detected == "" || detected == ext {
			return nil, fmt.Errorf("texture: decode %s: %w", ext, err)
		}
		img, fallbackErr := decodeByExtension(data, detected)
		if fallbackErr != nil {
			return nil, fmt.Errorf("texture: decode %s (data looks like %s): %w", ext, detected, fallbackErr)
		}
		return img, nil
	}

	detected := detectExtension(data)
	if detected == "" {
		return nil, ErrUnknownFormat
	}
	img, err := decodeByExtension(data, detected)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", detected, err)
	}
	return img, nil
}

func decodeByExtension(data []byte, ext string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch ext {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".gif":
		return gif.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	case ".webp":
		return webp.Decode(r)
	case ".tga":
		return tga.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
}

// detectExtension guesses the format from its signature. TGA has none and
// is only reachable through the extension hint.
func detectExtension(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return ".png"
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return ".jpg"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return ".gif"
	case bytes.HasPrefix(data, []byte("BM")):
		return ".bmp"
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return ".webp"
	}
	return ""
}
