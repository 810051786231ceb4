package wire

import (
	"net/http"

	"wedding-marketplace/internal/adaptor"
	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/notification"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/metrics"
	"wedding-marketplace/pkg/middleware"
	"wedding-marketplace/pkg/token"
	"wedding-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the router and the long-lived pieces main needs for jobs and shutdown.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Limiter *middleware.RateLimiter
}

// Infra is everything built by main before routing.
type Infra struct {
	DB          adaptor.Pinger
	Tokens      *token.Manager
	Revocations token.RevocationStore
	Hub         *notification.Hub
	Config      *utils.Config
	Logger      *zap.Logger
}

// routes bundles what every wireX function needs.
type routes struct {
	handler       *adaptor.Handler
	authenticate  func(http.Handler) http.Handler
	limit         func(http.Handler) http.Handler
	log           *zap.Logger
	customerOnly  func(http.Handler) http.Handler
	providerOnly  func(http.Handler) http.Handler
	adminOnly     func(http.Handler) http.Handler
	bookingActors func(http.Handler) http.Handler
}

// Wiring connects services, handlers and middleware into one router.
func Wiring(service *usecase.Service, infra Infra) *App {
	handler := adaptor.NewHandler(service, infra.Logger)
	cors := middleware.NewCORS(infra.Config.CORS)
	limiter := middleware.NewRateLimiter(infra.Config.RateLimit, infra.Logger)

	rt := &routes{
		handler:       handler,
		authenticate:  middleware.Authenticate(infra.Tokens, infra.Revocations, infra.Logger),
		limit:         limiter.Handler,
		log:           infra.Logger,
		customerOnly:  middleware.RequireRole(infra.Logger, string(entity.RoleCustomer)),
		providerOnly:  middleware.RequireRole(infra.Logger, string(entity.RoleProvider)),
		adminOnly:     middleware.RequireRole(infra.Logger, string(entity.RoleAdmin)),
		bookingActors: middleware.RequireRole(infra.Logger, string(entity.RoleCustomer), string(entity.RoleProvider)),
	}

	r := chi.NewRouter()

	r.Use(middleware.Recover(infra.Logger))
	r.Use(middleware.Logger(infra.Logger))
	r.Use(metrics.InstrumentHandler)
	r.Use(cors.Handler)

	wireAuth(r, rt)
	wireProfile(r, rt)
	wireListing(r, rt)
	wireBooking(r, rt)
	wireReview(r, rt)
	wireAdmin(r, rt)

	ws := adaptor.NewWebsocketHandler(infra.Hub, cors, infra.Logger)
	r.With(rt.authenticate).Get("/ws", ws.Connect)

	health := adaptor.NewHealthHandler(infra.DB, infra.Logger)
	r.Get("/health", health.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return &App{
		Router:  r,
		Service: service,
		Limiter: limiter,
	}
}

// protected returns a sub-router that authenticates before rate limiting so
// the per-client bucket is keyed by account rather than IP.
func (rt *routes) protected(r chi.Router, roles func(http.Handler) http.Handler) chi.Router {
	return r.With(rt.authenticate, rt.limit, roles)
}
