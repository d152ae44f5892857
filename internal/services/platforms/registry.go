package platforms

import (
	"context"

	"github.com/unisave/unisave/internal/models"
)

// Parser is one platform's parse capability.
type Parser interface {
	Parse(ctx context.Context, url, cookies string) (*models.ParsedVideo, error)
}

// Registry maps detected platforms to their handlers. Platforms that are
// detected but absent here surface as "not implemented" at the boundary.
type Registry map[models.Platform]Parser

func (r Registry) Lookup(p models.Platform) (Parser, bool) {
	h, ok := r[p]
	return h, ok
}
