package fleet

import (
	"math"

	"github.com/mcoot/planetgame/internal/model"
)

// DistanceFunc measures the distance between two planets in turns of travel
type DistanceFunc func(a, b *model.Planet) float64

// Euclidean is the straight-line distance between planet coordinates
func Euclidean(a, b *model.Planet) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// ArrivalTurn returns the earliest turn a fleet launched on currentTurn can
// arrive, or the requested turn if that is later. Half the distance is
// rounded up to a whole turn.
func ArrivalTurn(currentTurn int, distance float64, requested *int) int {
	floor := int(math.Ceil(float64(currentTurn) + distance/2))
	if requested != nil && *requested > floor {
		return *requested
	}
	return floor
}
