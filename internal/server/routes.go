package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Store   Store
	Admin   AdminStore
	Catalog Catalog
	Checks  map[string]Checker
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()
	sessions := NewSessionRegistry()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Globetrotter API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.Checks))

	r.Route("/api", func(r chi.Router) {
		r.Get("/destinations", handleListDestinations(logger, deps.Catalog))

		r.Post("/games", handleStartGame(logger, deps.Catalog, deps.Store, sessions, broker))
		r.Get("/games/{token}", handleGameState(sessions))
		r.Post("/games/{token}/answer", handleAnswer(sessions))
		r.Post("/games/{token}/restart", handleRestart(sessions))

		r.Get("/users", handleCheckUsername(deps.Store))
		r.Post("/users", handleReserveUsername(deps.Store))

		r.Get("/challenges/{id}", handleGetChallenge(deps.Store))
		r.Get("/challenges/{id}/events", handleChallengeEvents(deps.Store, broker))

		r.Post("/admin/login", handleAdminLogin(deps.Admin))
		r.Post("/admin/logout", handleAdminLogout(deps.Admin))
		r.Get("/admin/me", handleAdminMe(deps.Admin))

		r.Route("/admin/destinations", func(r chi.Router) {
			r.Use(adminAuthMiddleware(deps.Admin))
			r.Get("/", handleAdminListDestinations(deps.Store))
			r.Post("/", handleAdminCreateDestination(deps.Store, deps.Catalog))
			r.Delete("/{id}", handleAdminDeleteDestination(deps.Store, deps.Catalog))
		})
	})
}
