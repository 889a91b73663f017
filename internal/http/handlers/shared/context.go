package shared

import (
	"strconv"

	"github.com/souqline/internal/constants"
	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ContextKeyActorID   = "actor_id"
	ContextKeyActorRole = "actor_role"
)

// CurrentActor reads the authenticated actor from the request context.
// Responds unauthorized and returns false when the context is missing.
func CurrentActor(c *gin.Context) (service.Actor, bool) {
	idValue, exists := c.Get(ContextKeyActorID)
	if !exists {
		response.Unauthorized(c, "authentication required")
		return service.Actor{}, false
	}
	id, ok := idValue.(uint)
	if !ok {
		response.Error(c, response.CodeInternal, "invalid actor context")
		return service.Actor{}, false
	}
	roleValue, exists := c.Get(ContextKeyActorRole)
	if !exists {
		response.Unauthorized(c, "authentication required")
		return service.Actor{}, false
	}
	role, ok := roleValue.(string)
	if !ok {
		response.Error(c, response.CodeInternal, "invalid actor context")
		return service.Actor{}, false
	}
	return service.Actor{ID: id, Role: role}, true
}

// RequireRole reads the actor and checks its role.
func RequireRole(c *gin.Context, role string) (service.Actor, bool) {
	actor, ok := CurrentActor(c)
	if !ok {
		return service.Actor{}, false
	}
	if actor.Role != role {
		response.Forbidden(c, "insufficient permissions")
		return service.Actor{}, false
	}
	return actor, true
}

// RequireAdmin reads the actor and checks it is an admin.
func RequireAdmin(c *gin.Context) (service.Actor, bool) {
	return RequireRole(c, constants.ActorRoleAdmin)
}

// ParseIDParam reads a positive uint path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
