package voronoi

import (
	"fmt"
	"math"
)

// edgeType classifies the half-edges of the diagram.
type edgeType int8

const (
	edgeLine      edgeType = iota // bisector edge (line, parabola or line-line)
	edgeOutEdge                   // outermost boundary edge, has no twin
	edgeLineSite                  // the line segment itself
	edgeSeparator                 // zero-length transition out of a null-face
	edgeNullEdge                  // edge of a degenerate null-face
)

func (t edgeType) String() string {
	switch t {
	case edgeOutEdge:
		return "OUTEDGE"
	case edgeLineSite:
		return "LINESITE"
	case edgeSeparator:
		return "SEPARATOR"
	case edgeNullEdge:
		return "NULLEDGE"
	}
	return "LINE"
}

// curveKind identifies the bisector geometry carried by an edge.
type curveKind int8

const (
	curveNone       curveKind = iota
	curvePointPoint           // straight bisector of two points
	curvePointLine            // parabola: point focus, line directrix
	curveLineLine             // straight bisector of two lines
	curveSeparator            // ray out of a segment endpoint
)

// bisector parametrizes an edge by clearance t: point(t) is the unique
// point of the edge at distance t from both defining sites (on the branch
// selected by sign).
type bisector struct {
	kind curveKind
	o    Point   // base point (midpoint, parabola focus foot, intersection, endpoint)
	d    Point   // branch/offset direction
	n    Point   // parabola only: unit normal from directrix toward focus
	m    float64 // offset constant: half site distance (PP), focus-directrix distance (PL)
	sign bool    // true selects the +d branch
}

// edgeRecord holds the attributes of one directed half-edge.
type edgeRecord struct {
	src, trg VertexID
	twin     EdgeID // noEdge on the three outermost boundary edges
	next     EdgeID // next edge counterclockwise on face
	face     FaceID
	etype    edgeType
	k        int // offset side of face, +1 for point-site-only bisectors
	curve    bisector
	alive    bool
}

// setParameters derives the bisector of the two sites bounding this edge.
// sign selects the branch: true means the edge runs on the left of the
// axis from s1 toward s2 (for a point/line pair: from the point toward its
// projection on the line).
func (e *edgeRecord) setParameters(s1, s2 Site, sign bool) {
	switch {
	case s1.IsPoint() && s2.IsPoint():
		p1, p2 := s1.Position(), s2.Position()
		e.curve = bisector{
			kind: curvePointPoint,
			o:    p1.Add(p2).Mul(0.5),
			d:    p2.Sub(p1).Ortho().Normalize(),
			m:    0.5 * p2.Sub(p1).Norm(),
			sign: sign,
		}
	case s1.IsPoint() && s2.IsLine():
		e.curve = pointLineBisector(s1.Position(), s2, sign, false)
	case s1.IsLine() && s2.IsPoint():
		e.curve = pointLineBisector(s2.Position(), s1, sign, true)
	default:
		e.curve = lineLineBisector(s1, s2)
		e.curve.sign = sign
	}
}

func pointLineBisector(p Point, l Site, sign, flip bool) bisector {
	alfa3 := l.A()*p.X + l.B()*p.Y + l.C()
	foot := p.Sub(Point{X: l.A(), Y: l.B()}.Mul(alfa3))
	m := math.Abs(alfa3)
	axis := foot.Sub(p) // from focus toward directrix
	d := axis.Ortho().Normalize()
	if flip {
		d = d.Mul(-1)
	}
	return bisector{
		kind: curvePointLine,
		o:    foot,
		d:    d,
		n:    p.Sub(foot).Normalize(),
		m:    m,
		sign: sign,
	}
}

func lineLineBisector(s1, s2 Site) bisector {
	delta := s1.A()*s2.B() - s1.B()*s2.A()
	if math.Abs(delta) < 1e-12 {
		panic("voronoi: parallel line-line bisector is not representable")
	}
	o := Point{
		X: (s1.B()*s2.C() - s2.B()*s1.C()) / delta,
		Y: (s2.A()*s1.C() - s1.A()*s2.C()) / delta,
	}
	v := Point{
		X: (s2.B() - s1.B()) / delta,
		Y: (s1.A() - s2.A()) / delta,
	}
	return bisector{kind: curveLineLine, o: o, d: v}
}

// setSepParameters parametrizes a separator edge: a straight ray from the
// null-face endpoint through the target vertex, with t equal to the
// distance from the endpoint.
func (e *edgeRecord) setSepParameters(endp, target Point) {
	dir := target.Sub(endp)
	if dir.Norm() > 0 {
		dir = dir.Normalize()
	}
	e.curve = bisector{kind: curveSeparator, o: endp, d: dir}
}

// point evaluates the bisector at clearance t.
func (b bisector) point(t float64) Point {
	switch b.kind {
	case curvePointPoint:
		u := math.Sqrt(math.Max(t*t-b.m*b.m, 0))
		if !b.sign {
			u = -u
		}
		return b.o.Add(b.d.Mul(u))
	case curvePointLine:
		u := math.Sqrt(math.Max(2*b.m*t-b.m*b.m, 0))
		if !b.sign {
			u = -u
		}
		return b.o.Add(b.n.Mul(t)).Add(b.d.Mul(u))
	case curveLineLine, curveSeparator:
		return b.o.Add(b.d.Mul(t))
	}
	return b.o
}

// minimumT is the smallest admissible clearance of the bisector; the
// curve point there is the apex.
func (b bisector) minimumT() float64 {
	switch b.kind {
	case curvePointPoint:
		return b.m
	case curvePointLine:
		return 0.5 * b.m
	}
	return 0
}

func (e *edgeRecord) String() string {
	return fmt.Sprintf("%d-%d[%v]", e.src, e.trg, e.etype)
}
