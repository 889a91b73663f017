package public

import "github.com/souqline/internal/provider"

// Handler serves the buyer, seller and delivery facing API.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
