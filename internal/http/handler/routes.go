package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docshare/docs"
	"docshare/internal/service"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	// DB is pinged by /health; nil when running on the in-memory store.
	DB        *sql.DB
	Documents service.DocumentService
	Sharing   service.SharingService
	Resolver  service.AccessResolver
	Comments  service.CommentService
	// Authenticate guards every /api route except /api/shared.
	Authenticate fiber.Handler
	// Metrics is served on /metrics when set.
	Metrics prometheus.Gatherer
}

// AppConfig is the fiber configuration the API server runs with. Request
// strings are immutable because path params end up in span attributes
// exported after the handler returns.
func AppConfig(maxUploadBytes int) fiber.Config {
	return fiber.Config{
		ErrorHandler: ErrorHandler(),
		BodyLimit:    maxUploadBytes + 1<<20,
		Immutable:    true,
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	})

	api := app.Group("/api")

	// Possession of the link is the credential here.
	api.Get("/shared/:link", GetShared(d.Resolver, d.Documents))
	api.Get("/shared/:link/content", GetSharedContent(d.Resolver, d.Documents))

	auth := d.Authenticate
	if auth == nil {
		auth = func(c *fiber.Ctx) error { return c.Next() }
	}
	documents := api.Group("/documents", auth)
	documents.Post("/", UploadDocument(d.Documents))
	documents.Get("/", ListDocuments(d.Documents))
	documents.Post("/:id/share", ShareDocument(d.Sharing))
	documents.Post("/:id/comments", AddComment(d.Comments))
	documents.Get("/:id/comments", ListComments(d.Comments))
}
