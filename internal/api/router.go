package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/planetgame/internal/api/apierr"
	"github.com/mcoot/planetgame/internal/api/handler"
	"github.com/mcoot/planetgame/internal/api/middleware"
	"github.com/mcoot/planetgame/internal/api/response"
	"github.com/mcoot/planetgame/internal/events"
	sharedmw "github.com/mcoot/planetgame/internal/middleware"
	"github.com/mcoot/planetgame/internal/services/fleet"
	"github.com/mcoot/planetgame/internal/services/game"
	"github.com/mcoot/planetgame/internal/services/identity"
	"github.com/mcoot/planetgame/internal/services/lobby"
)

// Operation names an engine operation reachable over HTTP
type Operation string

const (
	OpJoin            Operation = "join"
	OpMarkReady       Operation = "markReady"
	OpListPlayers     Operation = "listPlayers"
	OpListPlanets     Operation = "listPlanets"
	OpDeploy          Operation = "deploy"
	OpListDeployments Operation = "listDeployments"
	OpGameStatus      Operation = "gameStatus"
	OpIssueSession    Operation = "issueSession"
	OpEvents          Operation = "events"
	OpHealth          Operation = "health"
)

// Operations is every operation the router must expose exactly once
var Operations = []Operation{
	OpJoin,
	OpMarkReady,
	OpListPlayers,
	OpListPlanets,
	OpDeploy,
	OpListDeployments,
	OpGameStatus,
	OpIssueSession,
	OpEvents,
	OpHealth,
}

// Route binds a verb and path to the handler for one operation
type Route struct {
	Op      Operation
	Method  string
	Path    string
	Handler http.HandlerFunc
	// Identify resolves the caller before the handler runs
	Identify bool
}

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	Session         *game.Session
	LobbyController *lobby.Controller
	FleetEngine     *fleet.Engine
	Hub             *events.Hub
	Broadcaster     *events.Broadcaster
	RateLimit       sharedmw.RateLimitConfig
	AllowedOrigins  []string
}

// NewRouter creates a new API router with all routes configured. It panics
// if the route table does not cover every operation exactly once.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.Session, cfg.LobbyController, cfg.FleetEngine, cfg.Broadcaster)
	sessionHandler := handler.NewSessionHandler(cfg.IdentityService)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)
	health := healthHandler(cfg.IdentityService, cfg.Hub)

	routes := []Route{
		{OpJoin, http.MethodPost, "/join", gameHandler.Join, true},
		{OpMarkReady, http.MethodPost, "/ready", gameHandler.Ready, true},
		{OpListPlayers, http.MethodGet, "/players", gameHandler.Players, false},
		{OpListPlanets, http.MethodGet, "/planets", gameHandler.Planets, false},
		{OpDeploy, http.MethodPost, "/deploy", gameHandler.Deploy, true},
		{OpListDeployments, http.MethodGet, "/deployments", gameHandler.Deployments, true},
		{OpGameStatus, http.MethodGet, "/game", gameHandler.Status, false},
		{OpIssueSession, http.MethodPost, "/session", sessionHandler.Create, false},
		{OpEvents, http.MethodGet, "/events", eventsHandler.Stream, true},
		{OpHealth, http.MethodGet, "/health", health, false},
	}
	if err := ValidateRoutes(routes); err != nil {
		panic(err)
	}

	// Create middleware
	identify := middleware.Identify(cfg.IdentityService)
	rateLimiter := sharedmw.NewRateLimiter(cfg.RateLimit, cfg.Logger, middleware.RateLimited)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(sharedmw.Logging(cfg.Logger))
	api.Use(rateLimiter.Middleware)

	for _, route := range routes {
		var h http.Handler = route.Handler
		if route.Identify {
			h = identify(h)
		}
		api.Handle(route.Path, h).Methods(route.Method).Name(string(route.Op))
	}

	// CORS wraps the whole router so preflight requests never reach mux
	return sharedmw.CORS(cfg.AllowedOrigins, cfg.Logger)(r)
}

// ValidateRoutes checks that every operation has exactly one route and that
// no verb and path pair is bound twice
func ValidateRoutes(routes []Route) error {
	byOp := make(map[Operation]int, len(routes))
	byPath := make(map[string]Operation, len(routes))

	for _, route := range routes {
		if route.Handler == nil {
			return fmt.Errorf("route for %s has no handler", route.Op)
		}
		byOp[route.Op]++

		key := route.Method + " " + route.Path
		if other, ok := byPath[key]; ok {
			return fmt.Errorf("%s bound to both %s and %s", key, other, route.Op)
		}
		byPath[key] = route.Op
	}

	for _, op := range Operations {
		switch byOp[op] {
		case 0:
			return fmt.Errorf("no route for operation %s", op)
		case 1:
		default:
			return fmt.Errorf("operation %s routed %d times", op, byOp[op])
		}
		delete(byOp, op)
	}
	for op := range byOp {
		return fmt.Errorf("route for unknown operation %s", op)
	}
	return nil
}

func healthHandler(identityService *identity.Service, hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := identityService.Count(r.Context())
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.Health{
			Status:     "ok",
			Identities: count,
			Clients:    hub.ClientCount(),
		})
	}
}
