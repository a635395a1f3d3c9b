package request

// DeployRequest is the request body for launching a fleet
type DeployRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	ArrivalTurn *int   `json:"arrival_turn,omitempty"`
	Ships       int    `json:"ships"`
}

// SessionRequest is the optional request body for issuing a session token.
// Basic auth or query credentials are used when it is absent.
type SessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
