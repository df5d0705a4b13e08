package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the request and response header carrying the ray id.
	Header = "X-Ray-ID"
	// LocalsKey is the fiber Locals key the ray id is stored under.
	LocalsKey = "ray_id"
)

// New returns a middleware that tags every request with a ray id. An id sent
// by the client is reused so traces can span services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
