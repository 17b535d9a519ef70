package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiranalabs/kirana-voice-backend/api/controllers"
	"github.com/kiranalabs/kirana-voice-backend/api/middleware"
	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	"github.com/kiranalabs/kirana-voice-backend/internal/fraud"
	"github.com/kiranalabs/kirana-voice-backend/internal/orders"
	"github.com/kiranalabs/kirana-voice-backend/internal/session"
	"github.com/kiranalabs/kirana-voice-backend/pkg/config"
	"github.com/kiranalabs/kirana-voice-backend/pkg/logger"
	"github.com/kiranalabs/kirana-voice-backend/pkg/metrics"
	redispkg "github.com/kiranalabs/kirana-voice-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	toolMetrics *metrics.ToolMetrics,
	metricsHandler http.Handler,
	index *catalog.Index,
	recipeBook catalog.Recipes,
	sessions *session.Manager,
	ordersSvc orders.Service,
	fraudSvc fraud.Service,
	redisPinger redispkg.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisPinger))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/items", controllers.CatalogList(index, toolMetrics, logg))
			r.Post("/resolve", controllers.CatalogResolve(index, toolMetrics, logg))
			r.Get("/recipes", controllers.CatalogRecipes(recipeBook, toolMetrics, logg))
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", controllers.SessionStart(sessions, toolMetrics, logg))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Delete("/", controllers.SessionEnd(sessions, toolMetrics, logg))
				r.Route("/cart", func(r chi.Router) {
					r.Get("/", controllers.CartFetch(sessions, toolMetrics, logg))
					r.Post("/items", controllers.CartAddItem(sessions, index, toolMetrics, logg))
					r.Patch("/items/{itemID}", controllers.CartUpdateItem(sessions, toolMetrics, logg))
					r.Delete("/items/{itemID}", controllers.CartRemoveItem(sessions, toolMetrics, logg))
					r.Post("/recipe", controllers.CartAddRecipe(sessions, recipeBook, index, toolMetrics, logg))
				})
				r.Post("/orders", controllers.OrderPlace(sessions, ordersSvc, toolMetrics, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/last", controllers.OrderLast(ordersSvc, toolMetrics, logg))
			r.Get("/{orderID}", controllers.OrderDetail(ordersSvc, toolMetrics, logg))
		})

		r.Route("/fraud/cases", func(r chi.Router) {
			r.Post("/lookup", controllers.FraudLookup(fraudSvc, toolMetrics, logg))
			r.Post("/{caseID}/verify", controllers.FraudVerify(fraudSvc, toolMetrics, logg))
			r.Patch("/{caseID}", controllers.FraudUpdate(fraudSvc, toolMetrics, logg))
		})
	})

	return r
}
