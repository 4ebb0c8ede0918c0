package voronoi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointPointBisector(t *testing.T) {
	s1 := newPointSite(Point{X: -1, Y: 0})
	s2 := newPointSite(Point{X: +1, Y: 0})
	var e edgeRecord
	e.setParameters(s1, s2, true)

	require.InDelta(t, 1.0, e.curve.minimumT(), 1e-12)
	for _, tt := range []float64{1, 1.5, 2, 10} {
		p := e.curve.point(tt)
		require.InDelta(t, tt, p.Sub(s1.Position()).Norm(), 1e-9, "clearance to s1 at t=%v", tt)
		require.InDelta(t, tt, p.Sub(s2.Position()).Norm(), 1e-9, "clearance to s2 at t=%v", tt)
	}
	// the apex is the midpoint
	require.InDelta(t, 0.0, e.curve.point(1).Sub(Point{}).Norm(), 1e-9)

	// the two branch signs give the two halves of the bisector
	var eNeg edgeRecord
	eNeg.setParameters(s1, s2, false)
	pPos := e.curve.point(2)
	pNeg := eNeg.curve.point(2)
	require.InDelta(t, pPos.Y, -pNeg.Y, 1e-9)
}

func TestPointPointBisectorTwinSymmetry(t *testing.T) {
	s1 := newPointSite(Point{X: 0, Y: -2})
	s2 := newPointSite(Point{X: 3, Y: 1})
	var e, twin edgeRecord
	e.setParameters(s1, s2, true)
	twin.setParameters(s2, s1, false)
	// a half-edge and its twin parametrize the same branch
	for _, tt := range []float64{2.2, 3, 5} {
		pe := e.curve.point(tt)
		pt := twin.curve.point(tt)
		require.InDelta(t, 0.0, pe.Sub(pt).Norm(), 1e-9, "t=%v", tt)
	}
}

func TestPointLineBisector(t *testing.T) {
	focus := newPointSite(Point{X: 0, Y: 1})
	directrix := newLineSite(Point{X: -5, Y: 0}, Point{X: 5, Y: 0}, +1)
	var e edgeRecord
	e.setParameters(focus, directrix, true)

	require.InDelta(t, 0.5, e.curve.minimumT(), 1e-12)
	for _, tt := range []float64{0.5, 1, 2, 4} {
		p := e.curve.point(tt)
		require.InDelta(t, tt, p.Sub(focus.Position()).Norm(), 1e-9, "clearance to focus at t=%v", tt)
		require.InDelta(t, tt, p.Sub(directrix.ApexPoint(p)).Norm(), 1e-9, "clearance to line at t=%v", tt)
	}
	// apex of the parabola sits halfway between focus and directrix
	apex := e.curve.point(0.5)
	require.InDelta(t, 0.0, apex.Sub(Point{X: 0, Y: 0.5}).Norm(), 1e-9)
}

func TestLineLineBisector(t *testing.T) {
	up := newLineSite(Point{X: 0, Y: -5}, Point{X: 0, Y: 5}, +1)
	right := newLineSite(Point{X: -5, Y: 0}, Point{X: 5, Y: 0}, +1)
	var e edgeRecord
	e.setParameters(up, right, true)

	for _, tt := range []float64{0, 1, 2.5} {
		p := e.curve.point(tt)
		require.InDelta(t, tt, up.A()*p.X+up.B()*p.Y+up.C(), 1e-9, "t=%v", tt)
		require.InDelta(t, tt, right.A()*p.X+right.B()*p.Y+right.C(), 1e-9, "t=%v", tt)
	}
}

func TestSeparatorParameters(t *testing.T) {
	var e edgeRecord
	endp := Point{X: 1, Y: 1}
	target := Point{X: 1, Y: 4}
	e.setSepParameters(endp, target)
	require.InDelta(t, 0.0, e.curve.point(0).Sub(endp).Norm(), 1e-12)
	require.InDelta(t, 0.0, e.curve.point(3).Sub(target).Norm(), 1e-12)
}

func TestLineSiteGeometry(t *testing.T) {
	s := newLineSite(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, +1)
	// unit-normalized line equation, positive on the left of start->end
	require.InDelta(t, 1.0, s.A()*s.A()+s.B()*s.B(), 1e-12)
	require.Greater(t, s.A()*1+s.B()*2+s.C(), 0.0)

	require.True(t, s.InRegion(Point{X: 2, Y: 3}))
	require.False(t, s.InRegion(Point{X: -1, Y: 3}))

	// apex: projection inside the region, closest endpoint outside
	require.InDelta(t, 0.0, s.ApexPoint(Point{X: 2, Y: 3}).Sub(Point{X: 2, Y: 0}).Norm(), 1e-12)
	require.InDelta(t, 0.0, s.ApexPoint(Point{X: -2, Y: 1}).Sub(Point{X: 0, Y: 0}).Norm(), 1e-12)
}
