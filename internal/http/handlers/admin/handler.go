package admin

import "github.com/souqline/internal/provider"

// Handler serves the administration API.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
