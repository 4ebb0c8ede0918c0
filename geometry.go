package voronoi

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a position or direction vector in the plane.
type Point = r2.Point

// NoPoint represents lack of point (or bad point).
var NoPoint = Point{X: math.Inf(1), Y: math.Inf(1)}

func equalWithEpsilon(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// isRight reports whether p lies strictly to the right of the directed
// line p1 -> p2.
func isRight(p, p1, p2 Point) bool {
	return p2.Sub(p1).Cross(p.Sub(p1)) < 0
}

// distanceToLine is the perpendicular distance from p to the infinite line
// through p1 and p2.
func distanceToLine(p, p1, p2 Point) float64 {
	d := p2.Sub(p1)
	n := d.Norm()
	if n == 0 {
		return p.Sub(p1).Norm()
	}
	return math.Abs(d.Cross(p.Sub(p1))) / n
}

// signedDistanceToLine is like distanceToLine but negative on the right
// side of p1 -> p2.
func signedDistanceToLine(p, p1, p2 Point) float64 {
	d := p2.Sub(p1)
	n := d.Norm()
	if n == 0 {
		return p.Sub(p1).Norm()
	}
	return d.Cross(p.Sub(p1)) / n
}

// diangle maps the direction (x,y) to a "diamond angle" in [0,8).
// It is strictly monotone in the true angle atan2(y,x) and much cheaper,
// which is all that is needed to order vertices around a null-face.
func diangle(x, y float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	var a float64
	if y >= 0 {
		if x >= 0 {
			a = y / (x + y)
		} else {
			a = 1 - x/(-x+y)
		}
	} else {
		if x < 0 {
			a = 2 - y/(-x-y)
		} else {
			a = 3 + x/(x-y)
		}
	}
	return 2 * a
}

// diangleMid returns the diamond angle midway between a and b, walking
// counterclockwise from a to b (modulo 8).
func diangleMid(a, b float64) float64 {
	if b >= a {
		return 0.5 * (a + b)
	}
	return math.Mod(0.5*(a+b+8), 8)
}

// diangleBracket reports whether x lies strictly inside the
// counterclockwise interval (lo, hi) modulo 8.
func diangleBracket(lo, x, hi float64) bool {
	if lo == hi {
		return false
	}
	if lo < hi {
		return lo < x && x < hi
	}
	return x > lo || x < hi
}
