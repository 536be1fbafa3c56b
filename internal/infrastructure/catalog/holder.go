package catalog

import (
	"sync/atomic"

	"github.com/example/reset-timer/internal/domain/game"
)

// Holder publishes the current catalog. Readers get a whole snapshot; reloads
// swap the pointer and never touch a catalog already handed out.
type Holder struct {
	p atomic.Pointer[game.Catalog]
}

func NewHolder(c *game.Catalog) *Holder {
	h := &Holder{}
	h.p.Store(c)
	return h
}

func (h *Holder) Catalog() *game.Catalog { return h.p.Load() }

func (h *Holder) Store(c *game.Catalog) {
	if c != nil {
		h.p.Store(c)
	}
}
