package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/profissa/marketplace-api/internal/core/ports"
)

// actorFrom extracts the identity injected by the auth middleware. The zero
// actor (anonymous) is returned when no token was presented; the ownership
// rules decide what anonymous callers may do.
func actorFrom(c echo.Context) ports.Actor {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	return ports.Actor{ID: id, Role: role}
}
