package model

// Deployment is a fleet in transit. Deployments are never mutated after
// they are appended to the game log.
type Deployment struct {
	Player      string
	Source      string
	Destination string
	ArrivalTurn int
	Ships       int
	KillPct     int // copied from the source planet at launch
}
