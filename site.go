package voronoi

import "math"

// Site is a generator of the diagram: every face is dual to exactly one
// site. Point sites have one face; line-segment sites have two, one for
// each offset direction (k = +1 / -1).
type Site interface {
	IsPoint() bool
	IsLine() bool
	// Position is the generator point (point sites only).
	Position() Point
	// Start and End are the segment endpoints (line sites only).
	Start() Point
	End() Point
	// A, B, C are the coefficients of the unit-normalized line equation
	// a*x + b*y + c = 0 (line sites only).
	A() float64
	B() float64
	C() float64
	// K is the offset direction of this site's face, +1 or -1.
	K() float64
	// ApexPoint returns the point on the site closest to q.
	ApexPoint(q Point) Point
	// InRegion reports whether q projects onto the site itself (for a
	// segment: between the endpoints).
	InRegion(q Point) bool
	Face() FaceID
	setFace(f FaceID)
}

// PointSite is a single generator point.
type PointSite struct {
	pos  Point
	face FaceID
}

func newPointSite(p Point) *PointSite {
	return &PointSite{pos: p, face: noFace}
}

func (s *PointSite) IsPoint() bool          { return true }
func (s *PointSite) IsLine() bool           { return false }
func (s *PointSite) Position() Point        { return s.pos }
func (s *PointSite) Start() Point           { return s.pos }
func (s *PointSite) End() Point             { return s.pos }
func (s *PointSite) A() float64             { return 0 }
func (s *PointSite) B() float64             { return 0 }
func (s *PointSite) C() float64             { return 0 }
func (s *PointSite) K() float64             { return 1 }
func (s *PointSite) ApexPoint(q Point) Point { return s.pos }
func (s *PointSite) InRegion(q Point) bool  { return true }
func (s *PointSite) Face() FaceID           { return s.face }
func (s *PointSite) setFace(f FaceID)       { s.face = f }

// LineSite is one offset side of a line segment. The segment start -> end
// together with k determines which half-plane the site's face covers:
// the line equation is positive on the left of start -> end.
type LineSite struct {
	start, end Point
	a, b, c    float64
	k          float64
	face       FaceID
}

func newLineSite(start, end Point, k float64) *LineSite {
	s := &LineSite{start: start, end: end, k: k, face: noFace}
	s.a = start.Y - end.Y
	s.b = end.X - start.X
	s.c = start.X*end.Y - end.X*start.Y
	d := math.Hypot(s.a, s.b)
	s.a /= d
	s.b /= d
	s.c /= d
	return s
}

func (s *LineSite) IsPoint() bool   { return false }
func (s *LineSite) IsLine() bool    { return true }
func (s *LineSite) Position() Point { return s.start.Add(s.end).Mul(0.5) }
func (s *LineSite) Start() Point    { return s.start }
func (s *LineSite) End() Point      { return s.end }
func (s *LineSite) A() float64      { return s.a }
func (s *LineSite) B() float64      { return s.b }
func (s *LineSite) C() float64      { return s.c }
func (s *LineSite) K() float64      { return s.k }

// ApexPoint projects q onto the segment; outside the region the closest
// endpoint is the apex.
func (s *LineSite) ApexPoint(q Point) Point {
	if s.InRegion(q) {
		t := s.a*q.X + s.b*q.Y + s.c
		return q.Sub(Point{X: s.a, Y: s.b}.Mul(t))
	}
	if q.Sub(s.start).Norm() < q.Sub(s.end).Norm() {
		return s.start
	}
	return s.end
}

func (s *LineSite) InRegion(q Point) bool {
	d := s.end.Sub(s.start)
	t := q.Sub(s.start).Dot(d) / d.Dot(d)
	return t >= 0 && t <= 1
}

func (s *LineSite) Face() FaceID     { return s.face }
func (s *LineSite) setFace(f FaceID) { s.face = f }
