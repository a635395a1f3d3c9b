package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mcoot/planetgame/internal/api/apierr"
	"github.com/mcoot/planetgame/internal/api/middleware"
	"github.com/mcoot/planetgame/internal/api/request"
	"github.com/mcoot/planetgame/internal/api/response"
	"github.com/mcoot/planetgame/internal/events"
	"github.com/mcoot/planetgame/internal/services/fleet"
	"github.com/mcoot/planetgame/internal/services/game"
	"github.com/mcoot/planetgame/internal/services/lobby"
)

// GameHandler handles the lobby and deployment endpoints
type GameHandler struct {
	session     *game.Session
	lobby       *lobby.Controller
	fleet       *fleet.Engine
	broadcaster *events.Broadcaster
}

// NewGameHandler creates a new game handler. broadcaster may be nil.
func NewGameHandler(
	session *game.Session,
	lobbyController *lobby.Controller,
	fleetEngine *fleet.Engine,
	broadcaster *events.Broadcaster,
) *GameHandler {
	return &GameHandler{
		session:     session,
		lobby:       lobbyController,
		fleet:       fleetEngine,
		broadcaster: broadcaster,
	}
}

// Join handles POST /api/v1/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	result, err := h.lobby.Join(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	setSessionCookie(w, id.SessionToken)

	status := http.StatusOK
	if !result.AlreadyJoined {
		status = http.StatusCreated
		if h.broadcaster != nil {
			h.broadcaster.PlayerJoined(result.Player)
		}
	}

	response.JSON(w, status, response.JoinFromResult(result, id.SessionToken))
}

// Ready handles POST /api/v1/ready
func (h *GameHandler) Ready(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())

	result, err := h.lobby.MarkReady(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.PlayerReady(id.Name)
		if result.Started {
			h.broadcaster.GameStarted(id.Name, h.lobby.ListPlayers(r.Context()), len(h.lobby.ListPlanets(r.Context())))
		}
	}

	response.JSON(w, http.StatusOK, response.ReadyFromResult(result))
}

// Players handles GET /api/v1/players
func (h *GameHandler) Players(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.PlayersFromModel(h.lobby.ListPlayers(r.Context())))
}

// Planets handles GET /api/v1/planets
func (h *GameHandler) Planets(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.PlanetsFromModel(h.lobby.ListPlanets(r.Context())))
}

// Deploy handles POST /api/v1/deploy
func (h *GameHandler) Deploy(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}

	var req request.DeployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Source == "" || req.Destination == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("source and destination are required"))
		return
	}

	result, err := h.fleet.Deploy(r.Context(), id, fleet.Order{
		Source:      req.Source,
		Destination: req.Destination,
		ArrivalTurn: req.ArrivalTurn,
		Ships:       req.Ships,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if result.Outcome == fleet.OutcomeDeployed && h.broadcaster != nil {
		h.broadcaster.FleetDeployed(result.Deployment)
	}

	response.JSON(w, http.StatusOK, response.DeployFromResult(result))
}

// Deployments handles GET /api/v1/deployments
func (h *GameHandler) Deployments(w http.ResponseWriter, r *http.Request) {
	deployments, err := h.fleet.PlayerDeployments(r.Context(), middleware.GetIdentity(r.Context()))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.DeploymentsFromModel(deployments))
}

// Status handles GET /api/v1/game
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.GameFromStatus(
		h.session.Status(),
		h.lobby.MinPlayersToStart(),
		h.fleet.Policy(),
	))
}

// decodeOptional decodes a JSON body if one was sent
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
