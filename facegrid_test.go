package voronoi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFaceGridClosest(t *testing.T) {
	fg := newFaceGrid(100, 10)
	fg.addFace(FaceID(1), Point{X: -50, Y: -50})
	fg.addFace(FaceID(2), Point{X: 0, Y: 0})
	fg.addFace(FaceID(3), Point{X: 60, Y: 70})

	tests := []struct {
		p    Point
		want FaceID
	}{
		{Point{X: -40, Y: -55}, FaceID(1)},
		{Point{X: 5, Y: -5}, FaceID(2)},
		{Point{X: 80, Y: 80}, FaceID(3)},
		{Point{X: 31, Y: 36}, FaceID(3)},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, fg.closestFace(tt.p), "closestFace(%v)", tt.p)
	}
}

func TestFaceGridNeighborRing(t *testing.T) {
	// the nearest face may sit one ring beyond the first ring with any
	// candidate at all
	fg := newFaceGrid(100, 10)
	fg.addFace(FaceID(1), Point{X: 19, Y: 19}) // same bin corner, far away
	fg.addFace(FaceID(2), Point{X: -1, Y: 1})  // adjacent bin, nearby
	require.Equal(t, FaceID(2), fg.closestFace(Point{X: 1, Y: 1}))
}

func TestFaceGridRemove(t *testing.T) {
	fg := newFaceGrid(100, 4)
	fg.addFace(FaceID(1), Point{X: 10, Y: 10})
	fg.addFace(FaceID(2), Point{X: 12, Y: 12})
	fg.removeFace(FaceID(1))
	require.Equal(t, FaceID(2), fg.closestFace(Point{X: 10, Y: 10}))
}

func TestFaceGridOutsideClamped(t *testing.T) {
	// the initial generators sit outside the far disk; lookups clamp to
	// the boundary bins
	fg := newFaceGrid(100, 10)
	fg.addFace(FaceID(7), Point{X: 0, Y: 300})
	require.Equal(t, FaceID(7), fg.closestFace(Point{X: 0, Y: 1}))
}
