package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/planetgame/internal/model"
	"github.com/mcoot/planetgame/internal/services/fleet"
	"github.com/mcoot/planetgame/internal/services/identity"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	_ = s.app.Close()
}

func (s *IntegrationSuite) login(name, password string) *model.Identity {
	id, err := s.app.IdentityService.Resolve(s.ctx, identity.Credentials{Name: name, Password: password})
	s.Require().NoError(err)
	s.Require().NotNil(id)
	return id
}

// Test: two players join, ready up, and launch fleets
func (s *IntegrationSuite) TestCompleteGameFlow() {
	// alice at (0,0), bob at (6,8)
	s.app.QueueCoordinates([2]int{0, 0}, [2]int{6, 8})

	alice := s.login("alice", "a-hash")
	bob := s.login("bob", "b-hash")

	// Step 1: both join
	joined, err := s.app.LobbyController.Join(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(0, joined.Player.Number)
	s.Equal("green", joined.Player.Color())

	joined, err = s.app.LobbyController.Join(s.ctx, bob)
	s.Require().NoError(err)
	s.Equal(1, joined.Player.Number)
	s.Equal("yellow", joined.Player.Color())

	// Step 2: both ready; bob's mark starts the game
	ready, err := s.app.LobbyController.MarkReady(s.ctx, alice)
	s.Require().NoError(err)
	s.False(ready.Started)

	ready, err = s.app.LobbyController.MarkReady(s.ctx, bob)
	s.Require().NoError(err)
	s.True(ready.Started)

	planets := s.app.LobbyController.ListPlanets(s.ctx)
	s.Require().Len(planets, 26)
	s.Equal("alice", planets[0].Owner)
	s.Equal("bob", planets[1].Owner)
	s.Equal(6, planets[1].X)
	s.Equal(8, planets[1].Y)

	// Step 3: alice cannot launch from bob's home planet
	_, err = s.app.FleetEngine.Deploy(s.ctx, alice, fleet.Order{Source: "B", Destination: "A", Ships: 5})
	s.ErrorIs(err, model.ErrNotOwner)

	// Step 4: alice attacks bob, requesting more ships than she has
	result, err := s.app.FleetEngine.Deploy(s.ctx, alice, fleet.Order{Source: "A", Destination: "B", Ships: 25})
	s.Require().NoError(err)
	s.Equal(fleet.OutcomeDeployed, result.Outcome)
	s.Equal(10, result.Deployment.Ships)
	s.Equal(5, result.Deployment.ArrivalTurn)
	s.Equal(0, result.RemainingShips)

	// Step 5: lobby is closed
	carol := s.login("carol", "c-hash")
	_, err = s.app.LobbyController.Join(s.ctx, carol)
	s.ErrorIs(err, model.ErrGameAlreadyStarted)

	st := s.app.Session.Status()
	s.Equal(model.GameStateStarted, st.State)
	s.Equal(1, st.Deployments)
	s.Equal(s.app.MockClock.Now(), s.app.Session.Snapshot().StartedAt)
}

func (s *IntegrationSuite) TestIdentitySurvivesAcrossCalls() {
	first := s.login("alice", "a-hash")
	second, err := s.app.IdentityService.Resolve(s.ctx, identity.Credentials{Token: first.SessionToken})
	s.Require().NoError(err)
	s.Equal("alice", second.Name)

	_, err = s.app.IdentityService.Resolve(s.ctx, identity.Credentials{Name: "alice", Password: "other"})
	s.ErrorIs(err, model.ErrUnauthorized)
}

func (s *IntegrationSuite) TestLegacyPolicyWiring() {
	app := NewTestAppWithConfig(Config{DeployPolicy: fleet.PolicyLegacy, MinPlayersToStart: 1})
	defer func() { _ = app.Close() }()

	alice := &model.Identity{Name: "alice"}
	_, err := app.LobbyController.Join(s.ctx, alice)
	s.Require().NoError(err)
	ready, err := app.LobbyController.MarkReady(s.ctx, alice)
	s.Require().NoError(err)
	s.True(ready.Started)

	result, err := app.FleetEngine.Deploy(s.ctx, alice, fleet.Order{Source: "A", Destination: "C", Ships: 5})
	s.Require().NoError(err)
	s.Equal(fleet.OutcomeNoShips, result.Outcome)

	result, err = app.FleetEngine.Deploy(s.ctx, alice, fleet.Order{Source: "A", Destination: "C", Ships: 0})
	s.Require().NoError(err)
	s.Equal(fleet.OutcomeDeployed, result.Outcome)
}

func (s *IntegrationSuite) TestCustomMapSize() {
	app := NewTestAppWithConfig(Config{MapWidth: 30, MapHeight: 20})
	defer func() { _ = app.Close() }()

	s.Equal(30, app.Generator.Width())
	s.Equal(20, app.Generator.Height())
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorage() {
	_, err := New(Config{StorageType: "postgres"})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewMemory() {
	app, err := New(Config{})
	s.Require().NoError(err)
	defer func() { _ = app.Close() }()

	s.Equal(fleet.PolicyPositive, app.FleetEngine.Policy())
	s.Equal(2, app.LobbyController.MinPlayersToStart())
}
