package voronoi

// checker validates the topological invariants of the diagram. It borrows
// the graph read-only; every public insertion must leave the diagram in a
// state where isValid holds.
type checker struct {
	dia *Diagram
}

// checkEdge verifies the twin law for one edge: twin(twin(e)) = e and the
// twin bounds a different face.
func (c *checker) checkEdge(e EdgeID) bool {
	g := &c.dia.g
	if !g.e(e).alive {
		return false
	}
	t := g.e(e).twin
	if t == noEdge {
		return g.e(e).etype == edgeOutEdge
	}
	if !g.e(t).alive || g.e(t).twin != e {
		return false
	}
	if g.source(e) != g.target(t) || g.target(e) != g.source(t) {
		return false
	}
	if g.e(t).face == g.e(e).face {
		return false
	}
	return true
}

func (c *checker) currentFaceEqualsNextFace(e EdgeID) bool {
	g := &c.dia.g
	return g.e(e).face == g.e(g.e(e).next).face
}

// faceOK walks the face cycle and verifies closure, face/next agreement,
// constant k, edge health, and (for null-faces) strictly increasing alfa
// modulo 8.
func (c *checker) faceOK(f FaceID) bool {
	g := &c.dia.g
	if !g.f(f).alive {
		return false
	}
	start := g.f(f).edge
	if start == noEdge || !g.e(start).alive {
		return false
	}
	k := g.e(start).k
	cur := start
	count := 0
	for {
		if !g.e(cur).alive || g.e(cur).face != f || g.e(cur).k != k {
			return false
		}
		if !c.checkEdge(cur) {
			return false
		}
		cur = g.e(cur).next
		count++
		if cur == start {
			break
		}
		if count > g.numEdges() {
			return false // cycle not closed
		}
	}
	if g.f(f).site == nil {
		return c.nullFaceAlfaOK(f)
	}
	return true
}

// nullFaceAlfaOK checks that vertices appear in strictly increasing alfa
// order (modulo 8) around the null-face.
func (c *checker) nullFaceAlfaOK(f FaceID) bool {
	g := &c.dia.g
	verts := g.faceVertices(f)
	if len(verts) < 3 {
		return false
	}
	// rotate to the minimum alfa, then require strict increase
	minIdx := 0
	for i, v := range verts {
		if g.v(v).alfa < g.v(verts[minIdx]).alfa {
			minIdx = i
		}
	}
	prev := -1.0
	for i := 0; i < len(verts); i++ {
		a := g.v(verts[(minIdx+i)%len(verts)]).alfa
		if a <= prev {
			return false
		}
		prev = a
	}
	return true
}

// isValid checks the whole diagram: every face cycle, the twin law on
// every live edge, and status cleanliness (no IN or NEW vertex remains,
// no face is left INCIDENT).
func (c *checker) isValid() bool {
	g := &c.dia.g
	for f := range g.faces {
		if !g.faces[f].alive {
			continue
		}
		if !c.faceOK(FaceID(f)) {
			return false
		}
		if g.faces[f].status != faceNonIncident {
			return false
		}
	}
	for e := range g.edges {
		if !g.edges[e].alive {
			continue
		}
		if !c.checkEdge(EdgeID(e)) {
			return false
		}
	}
	for v := range g.verts {
		if !g.verts[v].alive {
			continue
		}
		if g.verts[v].status == statusIn || g.verts[v].status == statusNew {
			return false
		}
	}
	return true
}
