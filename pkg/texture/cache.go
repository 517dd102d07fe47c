package texture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/samber/lo"
)

var errEmptyImage = errors.New("texture: image has no pixels")

// Cache holds decoded samples for the duration of one voxelization run.
// Each texture ID is decoded at most once; decode failures are remembered
// so a broken texture is not retried on every hit.
type Cache struct {
	mu       sync.Mutex
	samples  map[string]*Sample
	failures map[string]error
	decodes  int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		samples:  make(map[string]*Sample),
		failures: make(map[string]error),
	}
}

// Get returns the sample for t, decoding it on first use. ok is false when
// t is nil or cannot be decoded; callers fall back to the flat material
// color.
func (c *Cache) Get(t *Texture) (*Sample, bool) {
	if t == nil {
		return nil, false
	}

	c.mu.Lock()
	if s, ok := c.samples[t.ID]; ok {
		c.mu.Unlock()
		return s, true
	}
	if _, failed := c.failures[t.ID]; failed {
		c.mu.Unlock()
		return nil, false
	}
	c.mu.Unlock()

	s, err := decodeTexture(t)

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.samples[t.ID]; ok {
		return prev, true
	}
	c.decodes++
	if err != nil {
		c.failures[t.ID] = err
		return nil, false
	}
	c.samples[t.ID] = s
	return s, true
}

func decodeTexture(t *Texture) (*Sample, error) {
	img, err := t.Image()
	if err != nil {
		return nil, err
	}
	s := Decode(img)
	if s.Empty() {
		return nil, errEmptyImage
	}
	return s, nil
}

// Err returns the decode error recorded for id, if any.
func (c *Cache) Err(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures[id]
}

// Reset drops every sample and failure. It is called at the start of each
// run so decoded data never leaks from one model into the next.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.samples)
	clear(c.failures)
	c.decodes = 0
}

// Len returns the number of decoded samples.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

// Decodes returns how many decode attempts were made since the last Reset.
func (c *Cache) Decodes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decodes
}

// Warm decodes the distinct textures concurrently. Individual decode
// failures are recorded in the cache, not returned; the only error is
// cancellation of ctx.
func (c *Cache) Warm(ctx context.Context, textures []*Texture, workers int) error {
	textures = lo.Filter(textures, func(t *Texture, _ int) bool { return t != nil })
	textures = lo.UniqBy(textures, func(t *Texture) string { return t.ID })
	if len(textures) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("texture: warm: %w", err)
	}
	if workers < 1 {
		workers = 1
	}

	pool := pond.NewPool(workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for _, t := range textures {
		group.Submit(func() {
			c.Get(t)
		})
	}
	err := group.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("texture: warm: %w", ctxErr)
	}
	if err != nil {
		return fmt.Errorf("texture: warm: %w", err)
	}
	return nil
}
