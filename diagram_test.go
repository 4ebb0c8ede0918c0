package voronoi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDiagram(t *testing.T) {
	d := NewDiagram(100, 10)
	require.True(t, d.Check())
	require.Equal(t, 3, d.NumPointSites())
	require.Equal(t, 0, d.NumLineSites())
	require.Equal(t, 10, d.NumVertices())
	require.Equal(t, 15, d.NumEdges())
	require.Equal(t, 0, d.NumSplitVertices())
}

func TestCheckIdempotent(t *testing.T) {
	d := NewDiagram(100, 10)
	require.True(t, d.Check())
	require.True(t, d.Check())
}

func TestInsertPointSite(t *testing.T) {
	d := NewDiagram(100, 10)
	h, err := d.InsertPointSite(Point{X: 1, Y: 2})
	require.NoError(t, err)
	require.GreaterOrEqual(t, h, 0)
	require.Equal(t, 4, d.NumPointSites())
	require.True(t, d.Check())
}

func TestThreePointSites(t *testing.T) {
	d := NewDiagram(100, 10)
	for _, p := range []Point{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}} {
		_, err := d.InsertPointSite(p)
		require.NoError(t, err)
		require.True(t, d.Check())
	}
	require.Equal(t, 6, d.NumPointSites())
	require.Equal(t, 0, d.NumSplitVertices())
}

func TestCloseCollinearPoints(t *testing.T) {
	d := NewDiagram(100, 10)
	h1, err := d.InsertPointSite(Point{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = d.InsertPointSite(Point{X: 1, Y: 0})
	require.NoError(t, err)
	h3, err := d.InsertPointSite(Point{X: 0.5, Y: 0.01})
	require.NoError(t, err)
	require.True(t, d.Check())
	require.Equal(t, 6, d.NumPointSites())
	require.NotEqual(t, h1, h3)

	// every vertex on the new face respects the new site's clearance disk
	f := d.g.v(d.vertexMap[h3]).face
	require.True(t, d.chk.faceOK(f))
	site := d.g.f(f).site
	for _, v := range d.g.faceVertices(f) {
		h := d.g.v(v).inCircle(site.ApexPoint(d.g.v(v).position))
		require.GreaterOrEqual(t, h, -1e-6)
	}
}

func TestInsertionOrderIndependence(t *testing.T) {
	pts := []Point{{X: 3, Y: 1}, {X: -2, Y: 4}, {X: 1, Y: -3}}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	type shape struct{ v, e, f int }
	var first shape
	for i, perm := range perms {
		d := NewDiagram(100, 10)
		for _, idx := range perm {
			_, err := d.InsertPointSite(pts[idx])
			require.NoError(t, err)
		}
		require.True(t, d.Check())
		got := shape{d.NumVertices(), d.NumEdges(), d.g.numFaces()}
		if i == 0 {
			first = got
			continue
		}
		require.Equal(t, first, got, "permutation %v", perm)
	}
}

func TestInsertPointSiteOutOfRange(t *testing.T) {
	d := NewDiagram(100, 10)
	// exactly on the far circle is already out of range
	_, err := d.InsertPointSite(Point{X: 100, Y: 0})
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = d.InsertPointSite(Point{X: 90, Y: 90})
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Equal(t, 3, d.NumPointSites())
	require.True(t, d.Check())
}

func TestInsertLineSiteBadHandles(t *testing.T) {
	d := NewDiagram(100, 10)
	h, err := d.InsertPointSite(Point{X: 1, Y: 1})
	require.NoError(t, err)

	require.ErrorIs(t, d.InsertLineSite(h, h+100), ErrUnknownHandle)
	// coincident endpoints
	require.ErrorIs(t, d.InsertLineSite(h, h), ErrOutOfRange)
}

func TestStepGatingReturnsSentinel(t *testing.T) {
	d := NewDiagram(100, 10)
	_, err := d.InsertPointSiteStep(Point{X: 2, Y: 3}, 1)
	require.ErrorIs(t, err, ErrStep)
	// the diagram is mid-surgery now; no further use
}

func TestInsertLineSite(t *testing.T) {
	d := NewDiagram(100, 10)
	h1, err := d.InsertPointSite(Point{X: -10, Y: 0})
	require.NoError(t, err)
	h2, err := d.InsertPointSite(Point{X: 10, Y: 0})
	require.NoError(t, err)
	_, err = d.InsertPointSite(Point{X: 0, Y: 15})
	require.NoError(t, err)
	_, err = d.InsertPointSite(Point{X: 0, Y: -15})
	require.NoError(t, err)

	require.NoError(t, d.InsertLineSite(h1, h2))
	require.True(t, d.Check())
	require.Equal(t, 1, d.NumLineSites())
	require.Equal(t, 0, d.NumSplitVertices())

	// a fresh segment creates one null-face per endpoint, three
	// null-edges each, and both separator points at each end
	nullFaces := 0
	for i := range d.g.faces {
		if d.g.faces[i].alive && d.g.faces[i].site == nil {
			nullFaces++
			require.Len(t, d.g.faceEdges(FaceID(i)), 3)
		}
	}
	require.Equal(t, 2, nullFaces)

	endpoints, seppoints := 0, 0
	for i := range d.g.verts {
		if !d.g.verts[i].alive {
			continue
		}
		switch d.g.verts[i].vtype {
		case typeEndpoint:
			endpoints++
		case typeSepPoint:
			seppoints++
		}
	}
	require.Equal(t, 2, endpoints)
	require.Equal(t, 4, seppoints)

	// the segment owns exactly one +1 and one -1 offset face
	pos, neg := 0, 0
	for i := range d.g.faces {
		f := &d.g.faces[i]
		if !f.alive || f.site == nil || !f.site.IsLine() {
			continue
		}
		if f.site.K() > 0 {
			pos++
		} else {
			neg++
		}
	}
	require.Equal(t, 1, pos)
	require.Equal(t, 1, neg)
}

func TestLineSiteApexSplit(t *testing.T) {
	d := NewDiagram(100, 10)
	h1, err := d.InsertPointSite(Point{X: -10, Y: 0})
	require.NoError(t, err)
	h2, err := d.InsertPointSite(Point{X: 10, Y: 0})
	require.NoError(t, err)
	_, err = d.InsertPointSite(Point{X: 0, Y: 15})
	require.NoError(t, err)

	require.NoError(t, d.InsertLineSite(h1, h2))
	require.True(t, d.Check())

	// the point/line bisector inside the face of (0,15) must have been
	// split at the parabola apex, halfway between the point and the line
	apexAt := Point{X: 0, Y: 7.5}
	found := false
	for i := range d.g.verts {
		v := &d.g.verts[i]
		if v.alive && v.vtype == typeApex && v.position.Sub(apexAt).Norm() < 1e-6 {
			found = true
			break
		}
	}
	require.True(t, found, "no apex vertex at %v", apexAt)
}

func TestCollinearSegmentsShareEndpoint(t *testing.T) {
	d := NewDiagram(100, 10)
	h1, err := d.InsertPointSite(Point{X: -20, Y: 0})
	require.NoError(t, err)
	h2, err := d.InsertPointSite(Point{X: 0, Y: 0})
	require.NoError(t, err)
	h3, err := d.InsertPointSite(Point{X: 20, Y: 0})
	require.NoError(t, err)
	_, err = d.InsertPointSite(Point{X: 0, Y: 25})
	require.NoError(t, err)
	_, err = d.InsertPointSite(Point{X: 0, Y: -25})
	require.NoError(t, err)

	require.NoError(t, d.InsertLineSite(h1, h2))
	require.True(t, d.Check())
	require.NoError(t, d.InsertLineSite(h2, h3))
	require.True(t, d.Check())
	require.Equal(t, 2, d.NumLineSites())

	// the second insertion augments the existing null-face at the shared
	// endpoint: two segment endpoints plus the surviving separator points
	nf := d.g.v(d.vertexMap[h2]).nullFace
	require.NotEqual(t, noFace, nf)
	verts := d.g.faceVertices(nf)
	require.Len(t, verts, 4)
	endpoints, seppoints := 0, 0
	for _, v := range verts {
		switch d.g.v(v).vtype {
		case typeEndpoint:
			endpoints++
		case typeSepPoint:
			seppoints++
		}
	}
	require.Equal(t, 2, endpoints)
	require.Equal(t, 2, seppoints)
}

// after any sequence of insertions, no surviving vertex may violate the
// clearance disk of any site
func TestClearanceInvariant(t *testing.T) {
	d := NewDiagram(100, 10)
	var handles []int
	for _, p := range []Point{{X: -10, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 15}, {X: -5, Y: -12}, {X: 7, Y: 9}} {
		h, err := d.InsertPointSite(p)
		require.NoError(t, err)
		handles = append(handles, h)
	}
	require.NoError(t, d.InsertLineSite(handles[0], handles[1]))
	require.True(t, d.Check())

	var sites []Site
	for i := range d.g.faces {
		if d.g.faces[i].alive && d.g.faces[i].site != nil {
			sites = append(sites, d.g.faces[i].site)
		}
	}
	for i := range d.g.verts {
		v := &d.g.verts[i]
		if !v.alive || v.vtype != typeNormal {
			continue
		}
		for _, s := range sites {
			h := v.inCircle(s.ApexPoint(v.position))
			require.GreaterOrEqual(t, h, -1e-6,
				"vertex %d at %v violates clearance of site at %v", i, v.position, s.Position())
		}
	}
}

func TestEdgePolylinesAndSites(t *testing.T) {
	d := NewDiagram(100, 10)
	for _, p := range []Point{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}} {
		_, err := d.InsertPointSite(p)
		require.NoError(t, err)
	}
	polys := d.EdgePolylines()
	require.NotEmpty(t, polys)
	for _, poly := range polys {
		require.GreaterOrEqual(t, len(poly), 2)
	}
	require.Len(t, d.Sites(), 6)
}
