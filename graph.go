package voronoi

import "fmt"

// VertexID, EdgeID and FaceID index the arenas of the half-edge graph.
// Deleted records leave tombstones; identifiers are never reused within
// the lifetime of a diagram.
type VertexID int

type EdgeID int

type FaceID int

const (
	noVertex VertexID = -1
	noEdge   EdgeID   = -1
	noFace   FaceID   = -1
)

// faceStatus marks faces touched by the current insertion.
type faceStatus int8

const (
	faceNonIncident faceStatus = iota
	faceIncident
)

// faceRecord holds the attributes of one face.
type faceRecord struct {
	site   Site   // nil for null-faces
	status faceStatus
	edge   EdgeID // representative outgoing edge
	alive  bool
}

// graph is a planar half-edge graph held in three parallel arenas.
// Every non-boundary edge has a twin on the neighboring face; following
// next-pointers from any edge walks its face counterclockwise. All
// mutators are local: none walks more than the faces adjacent to the
// operation.
type graph struct {
	verts []vertexRecord
	edges []edgeRecord
	faces []faceRecord
}

func (g *graph) v(id VertexID) *vertexRecord { return &g.verts[id] }
func (g *graph) e(id EdgeID) *edgeRecord     { return &g.edges[id] }
func (g *graph) f(id FaceID) *faceRecord     { return &g.faces[id] }

func (g *graph) source(e EdgeID) VertexID { return g.edges[e].src }
func (g *graph) target(e EdgeID) VertexID { return g.edges[e].trg }

func (g *graph) addVertexRecord(rec vertexRecord) VertexID {
	rec.alive = true
	rec.nullFace = noFace
	rec.face = noFace
	g.verts = append(g.verts, rec)
	return VertexID(len(g.verts) - 1)
}

// addEdge creates a directed edge u -> v with twin, next and face unset.
func (g *graph) addEdge(u, v VertexID) EdgeID {
	g.edges = append(g.edges, edgeRecord{
		src: u, trg: v,
		twin: noEdge, next: noEdge, face: noFace,
		alive: true,
	})
	id := EdgeID(len(g.edges) - 1)
	g.verts[u].out = append(g.verts[u].out, id)
	return id
}

func (g *graph) twinEdges(e1, e2 EdgeID) {
	g.edges[e1].twin = e2
	g.edges[e2].twin = e1
}

// addTwinEdges creates the half-edge pair u -> v and v -> u.
func (g *graph) addTwinEdges(u, v VertexID) (EdgeID, EdgeID) {
	e := g.addEdge(u, v)
	et := g.addEdge(v, u)
	g.twinEdges(e, et)
	return e, et
}

func (g *graph) addFace() FaceID {
	g.faces = append(g.faces, faceRecord{edge: noEdge, alive: true})
	return FaceID(len(g.faces) - 1)
}

// outEdges returns the live outgoing half-edges of v. The slice is a
// copy, safe to iterate while mutating the graph.
func (g *graph) outEdges(v VertexID) []EdgeID {
	out := make([]EdgeID, 0, len(g.verts[v].out))
	for _, e := range g.verts[v].out {
		if g.edges[e].alive {
			out = append(out, e)
		}
	}
	return out
}

func (g *graph) degree(v VertexID) int {
	n := 0
	for _, e := range g.verts[v].out {
		if g.edges[e].alive {
			n++
		}
	}
	return n
}

// adjacentFaces returns the distinct faces of the edges around v.
func (g *graph) adjacentFaces(v VertexID) []FaceID {
	var out []FaceID
	for _, e := range g.outEdges(v) {
		f := g.edges[e].face
		seen := false
		for _, o := range out {
			if o == f {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, f)
		}
	}
	return out
}

// faceEdges returns the edges of f in next-order.
func (g *graph) faceEdges(f FaceID) []EdgeID {
	var out []EdgeID
	start := g.faces[f].edge
	cur := start
	for {
		out = append(out, cur)
		cur = g.edges[cur].next
		if cur == start || len(out) > len(g.edges) {
			break
		}
	}
	return out
}

// faceVertices returns the vertices of f in next-order.
func (g *graph) faceVertices(f FaceID) []VertexID {
	var out []VertexID
	for _, e := range g.faceEdges(f) {
		out = append(out, g.edges[e].trg)
	}
	return out
}

func (g *graph) hasEdge(u, v VertexID) bool {
	for _, e := range g.outEdges(u) {
		if g.edges[e].trg == v {
			return true
		}
	}
	return false
}

// previousEdge walks the face cycle of e back to its predecessor.
func (g *graph) previousEdge(e EdgeID) EdgeID {
	cur := e
	for g.edges[cur].next != e {
		cur = g.edges[cur].next
	}
	return cur
}

// setNextCycle links the edges into a closed counterclockwise cycle,
// assigns them all to face f with offset side k, and anchors f at the
// first edge.
func (g *graph) setNextCycle(edges []EdgeID, f FaceID, k int) {
	for i, e := range edges {
		g.edges[e].face = f
		g.edges[e].k = k
		g.edges[e].next = edges[(i+1)%len(edges)]
	}
	g.faces[f].edge = edges[0]
}

// setNextChain links consecutive next-pointers along the given edges
// without closing a cycle and without touching face or k.
func (g *graph) setNextChain(edges []EdgeID) {
	for i := 0; i+1 < len(edges); i++ {
		g.edges[edges[i]].next = edges[i+1]
	}
}

// setNextChainFace is setNextChain plus face/k assignment on the interior
// edges (the first and last edge already belong to the face).
func (g *graph) setNextChainFace(edges []EdgeID, f FaceID, k int) {
	g.setNextChain(edges)
	for i := 1; i+1 < len(edges); i++ {
		g.edges[edges[i]].face = f
		g.edges[edges[i]].k = k
	}
}

// addVertexInEdge splits e (u -> w) and its twin (w -> u) at v, so that
// u -> v -> w and w -> v -> u replace them. Each half inherits face, k,
// type and bisector parameters from the edge it subdivides; v ends up
// with degree 2 per side.
func (g *graph) addVertexInEdge(v VertexID, e EdgeID) {
	twin := g.edges[e].twin
	if twin == noEdge {
		panic("voronoi: addVertexInEdge on boundary edge")
	}
	u, w := g.edges[e].src, g.edges[e].trg

	ePrev := g.previousEdge(e)
	tPrev := g.previousEdge(twin)

	e1 := g.addEdge(u, v)
	e2 := g.addEdge(v, w)
	t1 := g.addEdge(w, v)
	t2 := g.addEdge(v, u)

	for _, half := range []EdgeID{e1, e2} {
		g.edges[half].face = g.edges[e].face
		g.edges[half].k = g.edges[e].k
		g.edges[half].etype = g.edges[e].etype
		g.edges[half].curve = g.edges[e].curve
	}
	for _, half := range []EdgeID{t1, t2} {
		g.edges[half].face = g.edges[twin].face
		g.edges[half].k = g.edges[twin].k
		g.edges[half].etype = g.edges[twin].etype
		g.edges[half].curve = g.edges[twin].curve
	}
	g.twinEdges(e1, t2)
	g.twinEdges(e2, t1)

	g.edges[e1].next = e2
	g.edges[e2].next = g.edges[e].next
	g.edges[t1].next = t2
	g.edges[t2].next = g.edges[twin].next
	// the split edges may be their own predecessors on a two-edge face
	if ePrev == e {
		g.edges[e2].next = e1
	} else {
		g.edges[ePrev].next = e1
	}
	if tPrev == twin {
		g.edges[t2].next = t1
	} else {
		g.edges[tPrev].next = t1
	}

	if g.faces[g.edges[e].face].edge == e {
		g.faces[g.edges[e].face].edge = e1
	}
	if g.faces[g.edges[twin].face].edge == twin {
		g.faces[g.edges[twin].face].edge = t1
	}
	g.removeEdge(e)
	g.removeEdge(twin)
}

// removeDeg2Vertex is the inverse of addVertexInEdge: the two edge pairs
// through w merge into one pair and w is deleted. Panics if w is not of
// degree 2.
func (g *graph) removeDeg2Vertex(w VertexID) {
	out := g.outEdges(w)
	if len(out) != 2 {
		panic(fmt.Sprintf("voronoi: removeDeg2Vertex on vertex %d of degree %d", w, len(out)))
	}
	// one face: ea (a -> w) then eb (w -> b); the other: ec (b -> w) then ed (w -> a)
	eb := out[0]
	ea := g.findInEdgeOnFace(w, g.edges[eb].face)
	ec := g.edges[eb].twin
	ed := g.edges[ea].twin

	a := g.edges[ea].src
	b := g.edges[eb].trg

	m1 := g.addEdge(a, b)
	m2 := g.addEdge(b, a)
	g.edges[m1].face = g.edges[ea].face
	g.edges[m1].k = g.edges[ea].k
	g.edges[m1].etype = g.edges[ea].etype
	g.edges[m1].curve = g.edges[ea].curve
	g.edges[m1].next = g.edges[eb].next
	g.edges[m2].face = g.edges[ec].face
	g.edges[m2].k = g.edges[ec].k
	g.edges[m2].etype = g.edges[ec].etype
	g.edges[m2].curve = g.edges[ec].curve
	g.edges[m2].next = g.edges[ed].next
	g.twinEdges(m1, m2)

	if p := g.previousEdge(ea); p != eb {
		g.edges[p].next = m1
	}
	if p := g.previousEdge(ec); p != ed {
		g.edges[p].next = m2
	}
	g.replaceFaceEdge(g.edges[ea].face, ea, eb, m1)
	g.replaceFaceEdge(g.edges[ec].face, ec, ed, m2)

	g.removeEdge(ea)
	g.removeEdge(eb)
	g.removeEdge(ec)
	g.removeEdge(ed)
	g.verts[w].alive = false
}

// findInEdgeOnFace returns the edge of face f arriving at w.
func (g *graph) findInEdgeOnFace(w VertexID, f FaceID) EdgeID {
	for _, e := range g.outEdges(w) {
		t := g.edges[e].twin
		if t != noEdge && g.edges[t].face == f {
			return t
		}
	}
	panic(fmt.Sprintf("voronoi: no in-edge of face %d at vertex %d", f, w))
}

func (g *graph) replaceFaceEdge(f FaceID, old1, old2, repl EdgeID) {
	if g.faces[f].edge == old1 || g.faces[f].edge == old2 {
		g.faces[f].edge = repl
	}
}

// removeEdge tombstones e and unlinks it from its source vertex.
func (g *graph) removeEdge(e EdgeID) {
	g.edges[e].alive = false
	src := g.edges[e].src
	out := g.verts[src].out
	for i, o := range out {
		if o == e {
			g.verts[src].out = append(out[:i], out[i+1:]...)
			break
		}
	}
}

// deleteVertex removes v together with every half-edge incident to it,
// on both sides.
func (g *graph) deleteVertex(v VertexID) {
	for _, e := range g.outEdges(v) {
		if t := g.edges[e].twin; t != noEdge && g.edges[t].alive {
			g.removeEdge(t)
		}
		g.removeEdge(e)
	}
	g.verts[v].alive = false
}

func (g *graph) numVertices() int {
	n := 0
	for i := range g.verts {
		if g.verts[i].alive {
			n++
		}
	}
	return n
}

func (g *graph) numEdges() int {
	n := 0
	for i := range g.edges {
		if g.edges[i].alive {
			n++
		}
	}
	return n
}

func (g *graph) numFaces() int {
	n := 0
	for i := range g.faces {
		if g.faces[i].alive {
			n++
		}
	}
	return n
}
