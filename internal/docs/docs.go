// Package docs serves the API documentation: the OpenAPI document and
// a small Swagger UI page, both embedded in the binary.
package docs

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed openapi.json
var openAPIDocument []byte

//go:embed index.html
var indexPage []byte

// RegisterRoutes binds the documentation routes.
func RegisterRoutes(router fiber.Router) {
	router.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(indexPage)
	})
	router.Get("/docs/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(openAPIDocument)
	})
}
