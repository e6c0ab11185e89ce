package geo

import (
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

var (
	// DefaultCenter is the center of India, used whenever the user cannot be
	// located.
	DefaultCenter = orb.Point{78.9629, 20.5937}
)

// Distance in meters along the earth's surface.
func Distance(a, b orb.Point) float64 {
	return geo.Distance(a, b)
}

// BoundOf is the smallest box containing every cafe. ok is false for an empty
// list.
func BoundOf(cafes []*v1.Cafe) (b orb.Bound, ok bool) {
	if len(cafes) == 0 {
		return orb.Bound{}, false
	}
	mp := make(orb.MultiPoint, 0, len(cafes))
	for _, c := range cafes {
		mp = append(mp, c.Point())
	}
	return mp.Bound(), true
}

// Nearest returns the cafe closest to from, or nil for an empty list. Ties
// keep the earlier cafe.
func Nearest(from orb.Point, cafes []*v1.Cafe) *v1.Cafe {
	var (
		best     *v1.Cafe
		bestDist float64
	)
	for _, c := range cafes {
		d := Distance(from, c.Point())
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
