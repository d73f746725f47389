package http

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
)

const openAPIPath = "api/openapi.yaml"

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>avaroute API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: '/docs/openapi.yaml', dom_id: '#swagger-ui', deepLinking: true});
  </script>
</body>
</html>`

// SetupDocs mounts Swagger UI at /docs and the OpenAPI document at
// /docs/openapi.yaml. The document is read once, relative to the working
// directory; when it is missing both routes answer 404.
func SetupDocs(app *fiber.App) {
	doc, err := os.ReadFile(openAPIPath)
	if err != nil {
		slog.Warn("api docs disabled", "path", openAPIPath, "error", err)
	}

	notFound := func(c *fiber.Ctx) error {
		return newError(c, fiber.StatusNotFound, "not_found", "api documentation not available")
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		if doc == nil {
			return notFound(c)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(swaggerUIHTML)
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		if doc == nil {
			return notFound(c)
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(doc)
	})
}
