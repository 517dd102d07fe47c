// Package palette matches sampled colors to a fixed set of block types.
package palette

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

// TransparencyThreshold is the alpha below which only transparent entries
// are considered.
const TransparencyThreshold = 0.5

var (
	// ErrEmpty is returned when a palette has no entries.
	ErrEmpty = errors.New("palette: no entries")
	// ErrInvalidEntry is returned for entries with a bad hex color or no
	// block id.
	ErrInvalidEntry = errors.New("palette: invalid entry")
)

// Entry is one selectable block type.
type Entry struct {
	Name        string `json:"name"`
	Hex         string `json:"hex"`
	BlockID     string `json:"block_id"`
	Transparent bool   `json:"transparent,omitempty"`

	color colorful.Color
}

// Color returns the parsed entry color. Only valid for entries obtained
// from a Palette.
func (e Entry) Color() colorful.Color {
	return e.color
}

// ParseHex parses "#rrggbb", "rrggbb", "#rgb" or "rgb".
func ParseHex(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("palette: parse %q: %w", s, err)
	}
	return c, nil
}

// Palette is an ordered, read-only list of entries split into transparent
// and opaque subsets.
type Palette struct {
	entries     []Entry
	transparent []Entry
	opaque      []Entry
}

// New validates entries and builds a palette. Entry order is preserved and
// decides ties in BestMatch.
func New(entries []Entry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	parsed := make([]Entry, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.BlockID) == "" {
			return nil, fmt.Errorf("%w: entry %d (%q) has no block id", ErrInvalidEntry, i, e.Name)
		}
		c, err := ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q): %v", ErrInvalidEntry, i, e.Name, err)
		}
		e.color = c
		parsed[i] = e
	}

	p := &Palette{entries: parsed}
	p.transparent = lo.Filter(parsed, func(e Entry, _ int) bool { return e.Transparent })
	p.opaque = lo.Filter(parsed, func(e Entry, _ int) bool { return !e.Transparent })
	return p, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(entries []Entry) *Palette {
	p, err := New(entries)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Entries returns a copy of the entries in palette order.
func (p *Palette) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Lookup finds the first entry with the given block id.
func (p *Palette) Lookup(blockID string) (Entry, bool) {
	return lo.Find(p.entries, func(e Entry) bool { return e.BlockID == blockID })
}

// BestMatch returns the entry closest to c. Hits with alpha below
// TransparencyThreshold search the transparent subset, the rest search the
// opaque subset, and an empty subset falls back to the whole palette. The
// first entry with the strictly smallest distance wins.
func (p *Palette) BestMatch(c colorful.Color, alpha float64) Entry {
	candidates := p.opaque
	if alpha < TransparencyThreshold {
		candidates = p.transparent
	}
	if len(candidates) == 0 {
		candidates = p.entries
	}
	if len(candidates) == 0 {
		return Entry{}
	}

	best := candidates[0]
	bestDist := math.Inf(1)
	for _, e := range candidates {
		if d := Distance(c, e.color); d < bestDist {
			bestDist = d
			best = e
		}
	}
	return best
}

// Distance is the redmean weighted RGB distance with channels in [0,1]:
// sqrt((2+r̄)·dr² + 4·dg² + (3-r̄)·db²) where r̄ is the mean red.
func Distance(a, b colorful.Color) float64 {
	rMean := (a.R + b.R) / 2
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return math.Sqrt((2+rMean)*dr*dr + 4*dg*dg + (3-rMean)*db*db)
}

// LoadJSON reads a palette from a JSON array of entries.
func LoadJSON(r io.Reader) (*Palette, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("palette: decode json: %w", err)
	}
	return New(entries)
}

// LoadFile reads a JSON palette from disk.
func LoadFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("palette: open %s: %w", path, err)
	}
	defer f.Close()
	p, err := LoadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("palette: %s: %w", path, err)
	}
	return p, nil
}
