package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"solidgo/internal/auth"
	"solidgo/internal/http/middleware"
	"solidgo/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, userSvc service.UserService, issuer *auth.TokenIssuer) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoints
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Authentication
	app.Post("/auth/login", Login(userSvc))
	app.Post("/auth/refresh", RefreshToken(userSvc))

	// Shape measurements
	app.Post("/geometry/measure", MeasureShapes())

	// User management
	app.Post("/users", RegisterUser(userSvc))
	app.Get("/users", ListUsers(userSvc))
	app.Get("/users/:id", GetUser(userSvc))
	// Destructive operation requires a valid access token
	app.Delete("/users/:id", middleware.RequireAuth(issuer), DeleteUser(userSvc))
}
