package voronoi

import "math"

// solution is the result of positioning a new vertex on an edge: the
// position, the clearance t at that position, and the offset-direction
// sign k3 routing the vertex to the +1 or -1 face of a line site.
type solution struct {
	p  Point
	t  float64
	k3 int
}

// vertexPositioner computes the position of new Voronoi vertices on
// IN-OUT edges. The edge is parametrized by clearance t between the
// clearances of its endpoints; the new vertex sits where the clearance
// along the edge equals the distance to the new site. The root is
// bracketed by the endpoint clearances and found by bisection.
type vertexPositioner struct {
	dia *Diagram
}

const positionerTolerance = 1e-9

func (vp *vertexPositioner) position(e EdgeID, s Site) solution {
	g := &vp.dia.g
	src, trg := g.source(e), g.target(e)
	tSrc := g.v(src).dist
	tTrg := g.v(trg).dist
	tmin, tmax := math.Min(tSrc, tTrg), math.Max(tSrc, tTrg)

	f := func(t float64) float64 {
		p := g.e(e).curve.point(t)
		return p.Sub(s.ApexPoint(p)).Norm() - t
	}

	t := bisectRoot(f, tmin, tmax)
	p := g.e(e).curve.point(t)

	k3 := 1
	if s.IsLine() && isRight(p, s.Start(), s.End()) {
		k3 = -1
	}
	return solution{p: p, t: t, k3: k3}
}

// distError is the clearance residual of a solution: how far the distance
// from the computed position to the site deviates from the clearance t.
func (vp *vertexPositioner) distError(e EdgeID, sol solution, s Site) float64 {
	return math.Abs(sol.p.Sub(s.ApexPoint(sol.p)).Norm() - sol.t)
}

// bisectRoot finds a root of f in [a,b]. Without a sign change over the
// bracket it returns the endpoint with the smaller residual.
func bisectRoot(f func(float64) float64, a, b float64) float64 {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a
	}
	if fb == 0 {
		return b
	}
	if fa*fb > 0 {
		if math.Abs(fa) < math.Abs(fb) {
			return a
		}
		return b
	}
	for i := 0; i < 128; i++ {
		m := 0.5 * (a + b)
		fm := f(m)
		if fm == 0 || 0.5*(b-a) < 1e-14 {
			return m
		}
		if fa*fm < 0 {
			b = m
		} else {
			a, fa = m, fm
		}
	}
	return 0.5 * (a + b)
}
