package memory

import (
	"context"
	"sync"

	"carrier-records-service/internal/filters/core/ports"

	"github.com/google/uuid"
)

// Clipboard remembers every shared URL under a generated id so it can be
// resolved later.
type Clipboard struct {
	mu    sync.RWMutex
	links map[string]string
	last  string
}

func NewClipboard() *Clipboard {
	return &Clipboard{links: map[string]string{}}
}

var (
	_ ports.ClipboardPort     = (*Clipboard)(nil)
	_ ports.ShareResolverPort = (*Clipboard)(nil)
)

func (c *Clipboard) WriteText(_ context.Context, text string) (string, error) {
	id := uuid.NewString()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.links[id] = text
	c.last = text
	return id, nil
}

// Last is the most recently copied text.
func (c *Clipboard) Last() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

func (c *Clipboard) Resolve(_ context.Context, id string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.links[id]
	if !ok {
		return "", ports.ErrShareNotFound
	}
	return u, nil
}
