package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the header carrying the request identifier.
const HeaderName = "X-Ray-ID"

// New returns a middleware that assigns a RayID to every request.
// An incoming X-Ray-ID header is honoured so upstream proxies can
// propagate their own identifiers.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
