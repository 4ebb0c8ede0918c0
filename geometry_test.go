package voronoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiangleMonotone(t *testing.T) {
	// the diamond angle must order directions exactly like atan2
	prev := -1.0
	for i := 0; i < 360; i++ {
		theta := 2 * math.Pi * float64(i) / 360
		a := diangle(math.Cos(theta), math.Sin(theta))
		require.GreaterOrEqual(t, a, 0.0)
		require.Less(t, a, 8.0)
		require.Greater(t, a, prev, "diangle not increasing at %v degrees", i)
		prev = a
	}
}

func TestDiangleAxes(t *testing.T) {
	tests := []struct {
		x, y float64
		want float64
	}{
		{1, 0, 0},
		{0, 1, 2},
		{-1, 0, 4},
		{0, -1, 6},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, diangle(tt.x, tt.y), "diangle(%v,%v)", tt.x, tt.y)
	}
}

func TestDiangleScaleInvariant(t *testing.T) {
	require.Equal(t, diangle(3, 4), diangle(30, 40))
	require.Equal(t, diangle(-2, 7), diangle(-1, 3.5))
}

func TestDiangleMid(t *testing.T) {
	require.Equal(t, 1.0, diangleMid(0, 2))
	require.Equal(t, 3.0, diangleMid(2, 4))
	// wrap-around: midway from 7 counterclockwise to 1 is 0
	require.Equal(t, 0.0, diangleMid(7, 1))
}

func TestDiangleBracket(t *testing.T) {
	tests := []struct {
		lo, x, hi float64
		want      bool
	}{
		{0, 1, 2, true},
		{0, 3, 2, false},
		{6, 7, 2, true},  // wraps through 0
		{6, 1, 2, true},  // wraps through 0
		{6, 3, 2, false}, // outside the wrapped interval
		{1, 1, 2, false}, // strict
		{3, 3, 3, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, diangleBracket(tt.lo, tt.x, tt.hi),
			"diangleBracket(%v,%v,%v)", tt.lo, tt.x, tt.hi)
	}
}

func TestIsRight(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 1, Y: 0}
	require.True(t, isRight(Point{X: 0.5, Y: -1}, a, b))
	require.False(t, isRight(Point{X: 0.5, Y: +1}, a, b))
	require.False(t, isRight(Point{X: 0.5, Y: 0}, a, b)) // on the line is not right
}

func TestSignedDistanceToLine(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 2, Y: 0}
	require.InDelta(t, 1.5, signedDistanceToLine(Point{X: 7, Y: 1.5}, a, b), 1e-12)
	require.InDelta(t, -2.0, signedDistanceToLine(Point{X: -3, Y: -2}, a, b), 1e-12)
	require.InDelta(t, 2.0, distanceToLine(Point{X: -3, Y: -2}, a, b), 1e-12)
}
