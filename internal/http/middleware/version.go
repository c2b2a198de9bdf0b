package middleware

import "github.com/gofiber/fiber/v2"

// VersionHeader names the response header carrying the API version.
const VersionHeader = "X-API-Version"

// Version stamps every response with the running API version.
func Version(v string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(VersionHeader, v)
		return c.Next()
	}
}
