package apiapp

import (
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	currenciessvc "github.com/novatidelabs/synkpay-banking-service/internal/services/currencies"
	"github.com/novatidelabs/synkpay-banking-service/internal/services/internalauth"
	sessionssvc "github.com/novatidelabs/synkpay-banking-service/internal/services/sessions"
	"github.com/novatidelabs/synkpay-banking-service/internal/transport/http/handlers"
)

type Dependencies struct {
	CurrencyService *currenciessvc.Service
	SessionService  *sessionssvc.Service
	Guard           *internalauth.Guard
	Logger          *zap.Logger
	StartedAt       time.Time
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.StartedAt)
	currenciesHandler := handlers.NewCurrenciesHandler(deps.CurrencyService, deps.Logger)
	sessionsHandler := handlers.NewSessionsHandler(deps.SessionService, deps.Logger)
	internalAuthMW := InternalAuthMiddleware(deps.Guard, deps.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", healthHandler.Banner)
		r.Get("/health", healthHandler.Get)

		r.Route("/v1", func(r chi.Router) {
			r.Use(internalAuthMW)
			r.Get("/currencies", currenciesHandler.List)
			r.Post("/currencies", currenciesHandler.Create)
			r.Post("/currencies/view", currenciesHandler.View)
			r.Patch("/currencies/{currencyId}", currenciesHandler.Update)
			r.Patch("/currencies/{currencyId}/set-main", currenciesHandler.SetMain)
			r.Delete("/sessions/{callerId}", sessionsHandler.Clear)
		})
	})
}
