package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/team-organiser/internal/api/http/handlers"
	"github.com/spec-kit/team-organiser/internal/auth"
	"github.com/spec-kit/team-organiser/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Roster         *handlers.RosterHandler
	Snapshot       *handlers.SnapshotHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Reads are public; mutations go through
// the auth middleware, which passes everything when auth is disabled.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/auth/login", cfg.Auth.Login)

	app.Get("/roster", cfg.Roster.GetRoster)
	app.Get("/teams/:id/members", cfg.Roster.TeamMembers)
	app.Get("/snapshot/export", cfg.Snapshot.Export)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/people/csv", cfg.Roster.IngestCSV)
	protected.Delete("/people/:id/team", cfg.Roster.RemoveFromTeam)
	protected.Post("/teams", cfg.Roster.CreateTeam)
	protected.Post("/drag/begin", cfg.Roster.BeginDrag)
	protected.Post("/drag/drop", cfg.Roster.Drop)
	protected.Post("/drag/reorder", cfg.Roster.Reorder)
	protected.Post("/snapshot/import", cfg.Snapshot.StageImport)
	protected.Post("/snapshot/import/:token/confirm", cfg.Snapshot.ConfirmImport)
	protected.Delete("/snapshot/import/:token", cfg.Snapshot.CancelImport)
}
