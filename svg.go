package voronoi

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

// EdgePolylines returns a sampled polyline per geometric edge of the
// diagram, suitable for rendering. Parabolic edges are sampled along
// their clearance parameter; all other edges are straight. Null-edges
// have zero length and are skipped.
func (d *Diagram) EdgePolylines() [][]Point {
	var out [][]Point
	for id := range d.g.edges {
		e := &d.g.edges[id]
		if !e.alive || e.etype == edgeNullEdge {
			continue
		}
		// emit each twin pair once
		if e.twin != noEdge && d.g.edges[e.twin].alive && e.twin < EdgeID(id) {
			continue
		}
		src := d.g.v(e.src)
		trg := d.g.v(e.trg)
		if e.curve.kind == curvePointLine {
			const samples = 20
			t0, t1 := src.dist, trg.dist
			pts := make([]Point, 0, samples+1)
			for i := 0; i <= samples; i++ {
				t := t0 + (t1-t0)*float64(i)/samples
				pts = append(pts, e.curve.point(t))
			}
			out = append(out, pts)
			continue
		}
		out = append(out, []Point{src.position, trg.position})
	}
	return out
}

// Sites returns the sites of all live faces, point sites first.
func (d *Diagram) Sites() []Site {
	var points, lines []Site
	for i := range d.g.faces {
		f := &d.g.faces[i]
		if !f.alive || f.site == nil {
			continue
		}
		if f.site.IsPoint() {
			points = append(points, f.site)
		} else if f.site.K() > 0 { // one entry per segment
			lines = append(lines, f.site)
		}
	}
	return append(points, lines...)
}

// WriteSVG renders the diagram into an SVG canvas of the given pixel
// size, mapping the far square onto it.
func (d *Diagram) WriteSVG(w io.Writer, size int) {
	canvas := svg.New(w)
	canvas.Start(size, size)
	defer canvas.End()
	canvas.Rect(0, 0, size, size, "fill:white")

	scale := float64(size) / (2 * d.farRadius)
	px := func(p Point) (int, int) {
		return int((p.X + d.farRadius) * scale), int((d.farRadius - p.Y) * scale)
	}

	for _, poly := range d.EdgePolylines() {
		xs := make([]int, len(poly))
		ys := make([]int, len(poly))
		skip := false
		for i, p := range poly {
			if p.Norm() > 3*d.farRadius {
				skip = true // clip the initial far geometry
				break
			}
			xs[i], ys[i] = px(p)
		}
		if skip {
			continue
		}
		canvas.Polyline(xs, ys, "fill:none;stroke:steelblue;stroke-width:1")
	}
	for _, s := range d.Sites() {
		if s.IsPoint() {
			x, y := px(s.Position())
			canvas.Circle(x, y, 2, "fill:crimson")
		} else {
			x1, y1 := px(s.Start())
			x2, y2 := px(s.End())
			canvas.Line(x1, y1, x2, y2, "stroke:crimson;stroke-width:2")
		}
	}
}
