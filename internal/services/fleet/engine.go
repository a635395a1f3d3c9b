package fleet

import (
	"context"
	"log/slog"

	"github.com/mcoot/planetgame/internal/model"
	"github.com/mcoot/planetgame/internal/services/game"
)

// Order is a request to send ships from one planet to another
type Order struct {
	Source      string
	Destination string
	ArrivalTurn *int // optional; the computed floor wins if it is later
	Ships       int
}

// Outcome distinguishes a launched fleet from an order that sent nothing
type Outcome string

const (
	OutcomeDeployed Outcome = "deployed"
	OutcomeNoShips  Outcome = "no_ships"
)

// DeployResult is the result of a deploy order
type DeployResult struct {
	Outcome        Outcome
	Deployment     model.Deployment // set when deployed
	RemainingShips int              // ships left on the source planet
}

// Engine validates fleet orders and schedules their arrival
type Engine struct {
	session  *game.Session
	distance DistanceFunc
	policy   DeployPolicy
	logger   *slog.Logger
}

// NewEngine creates a new deployment Engine. A nil distance uses Euclidean.
func NewEngine(session *game.Session, distance DistanceFunc, policy DeployPolicy, logger *slog.Logger) *Engine {
	if distance == nil {
		distance = Euclidean
	}
	if policy == "" {
		policy = DefaultPolicy
	}
	return &Engine{
		session:  session,
		distance: distance,
		policy:   policy,
		logger:   logger,
	}
}

// Policy returns the configured deploy policy
func (e *Engine) Policy() DeployPolicy {
	return e.policy
}

// Deploy validates an order from identity and, if the policy allows it,
// debits the source planet and appends the fleet to the deployment log
func (e *Engine) Deploy(ctx context.Context, identity *model.Identity, order Order) (DeployResult, error) {
	if identity == nil {
		return DeployResult{}, model.ErrUnauthorized
	}
	var result DeployResult
	err := e.session.Update(func(g *model.Game) error {
		if !g.Started() {
			return model.ErrGameNotStarted
		}

		source := g.GetPlanet(order.Source)
		if source == nil {
			return model.ErrPlanetNotFound
		}
		if !source.OwnedBy(identity.Name) {
			return model.ErrNotOwner
		}
		destination := g.GetPlanet(order.Destination)
		if destination == nil {
			return model.ErrPlanetNotFound
		}
		if order.Ships < 0 {
			return model.ErrInvalidShipCount
		}

		arrival := ArrivalTurn(g.CurrentTurn, e.distance(source, destination), order.ArrivalTurn)
		ships := min(order.Ships, source.Ships)

		if !e.policy.ShouldDeploy(ships) {
			result = DeployResult{Outcome: OutcomeNoShips, RemainingShips: source.Ships}
			return nil
		}

		deployment := model.Deployment{
			Player:      identity.Name,
			Source:      source.Name,
			Destination: destination.Name,
			ArrivalTurn: arrival,
			Ships:       ships,
			KillPct:     source.KillPct,
		}
		source.Ships -= ships
		g.Deployments = append(g.Deployments, deployment)

		result = DeployResult{
			Outcome:        OutcomeDeployed,
			Deployment:     deployment,
			RemainingShips: source.Ships,
		}
		return nil
	})
	if err != nil {
		return DeployResult{}, err
	}

	if result.Outcome == OutcomeDeployed {
		e.logger.Info("fleet deployed",
			slog.String("player", identity.Name),
			slog.String("source", result.Deployment.Source),
			slog.String("destination", result.Deployment.Destination),
			slog.Int("ships", result.Deployment.Ships),
			slog.Int("arrival_turn", result.Deployment.ArrivalTurn),
		)
	} else {
		e.logger.Debug("no ships deployed",
			slog.String("player", identity.Name),
			slog.String("source", order.Source),
			slog.String("policy", string(e.policy)),
		)
	}

	return result, nil
}

// ListDeployments returns the deployment log in launch order
func (e *Engine) ListDeployments(ctx context.Context) []model.Deployment {
	var deployments []model.Deployment
	e.session.View(func(g *model.Game) {
		deployments = make([]model.Deployment, len(g.Deployments))
		copy(deployments, g.Deployments)
	})
	return deployments
}

// PlayerDeployments returns the fleets launched by identity, in launch order
func (e *Engine) PlayerDeployments(ctx context.Context, identity *model.Identity) ([]model.Deployment, error) {
	if identity == nil {
		return nil, model.ErrUnauthorized
	}
	deployments := []model.Deployment{}
	e.session.View(func(g *model.Game) {
		for _, d := range g.Deployments {
			if d.Player == identity.Name {
				deployments = append(deployments, d)
			}
		}
	})
	return deployments, nil
}
