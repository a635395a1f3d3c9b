package fleet

import "fmt"

// DeployPolicy decides, from the clamped ship count, whether an order
// launches a fleet or reports that there were no ships to send
type DeployPolicy string

const (
	// PolicyPositive launches only when at least one ship is sent
	PolicyPositive DeployPolicy = "positive"
	// PolicyLegacy launches only when zero ships are sent, matching the
	// behaviour of the first server release
	PolicyLegacy DeployPolicy = "legacy"
)

// DefaultPolicy is the policy used when none is configured
const DefaultPolicy = PolicyPositive

// ParseDeployPolicy parses a policy name. The empty string yields the default.
func ParseDeployPolicy(s string) (DeployPolicy, error) {
	switch DeployPolicy(s) {
	case "":
		return DefaultPolicy, nil
	case PolicyPositive, PolicyLegacy:
		return DeployPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown deploy policy %q", s)
	}
}

// ShouldDeploy reports whether an order sending ships launches a fleet
func (p DeployPolicy) ShouldDeploy(ships int) bool {
	if p == PolicyLegacy {
		return ships == 0
	}
	return ships > 0
}
