package auth

import "github.com/gofiber/fiber/v2"

// Header carries the API key on requests.
const Header = "X-API-Key"

// New returns a middleware that validates the API key header.
// With an empty configured key the middleware is a pass-through.
func New(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey != "" && c.Get(Header) != apiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
