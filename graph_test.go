package voronoi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// the initial bounding diagram exercises every primitive: three 5-edge
// faces, twinned except on the three outermost edges
func TestInitialGraph(t *testing.T) {
	d := NewDiagram(100, 10)
	g := &d.g

	require.Equal(t, 10, g.numVertices())
	require.Equal(t, 15, g.numEdges())
	require.Equal(t, 3, g.numFaces())

	outer := 0
	for id := range g.edges {
		e := &g.edges[id]
		if !e.alive {
			continue
		}
		if e.twin == noEdge {
			require.Equal(t, edgeOutEdge, e.etype)
			outer++
			continue
		}
		// twin law
		require.Equal(t, EdgeID(id), g.edges[e.twin].twin)
		require.NotEqual(t, e.face, g.edges[e.twin].face)
	}
	require.Equal(t, 3, outer)

	for f := range g.faces {
		edges := g.faceEdges(FaceID(f))
		require.Len(t, edges, 5)
		for _, e := range edges {
			require.Equal(t, FaceID(f), g.edges[e].face)
			require.Equal(t, g.edges[e].face, g.edges[g.edges[e].next].face)
			require.Equal(t, g.edges[e].k, g.edges[g.edges[e].next].k)
		}
	}
}

func TestAddVertexInEdgeAndRemoveDeg2(t *testing.T) {
	d := NewDiagram(100, 10)
	g := &d.g

	// pick a twinned inner edge
	var e EdgeID = noEdge
	for id := range g.edges {
		if g.edges[id].alive && g.edges[id].twin != noEdge {
			e = EdgeID(id)
			break
		}
	}
	require.NotEqual(t, noEdge, e)
	u, v := g.source(e), g.target(e)
	f := g.edges[e].face
	edgesBefore := g.numEdges()

	mid := g.v(u).position.Add(g.v(v).position).Mul(0.5)
	w := d.addVertex(mid, statusUndecided, typeNormal)
	g.addVertexInEdge(w, e)

	require.Equal(t, edgesBefore+2, g.numEdges())
	require.Equal(t, 2, g.degree(w))
	require.True(t, g.hasEdge(u, w))
	require.True(t, g.hasEdge(w, v))
	require.True(t, g.hasEdge(w, u))
	require.False(t, g.hasEdge(u, v))
	require.Len(t, g.faceEdges(f), 6)
	require.True(t, d.chk.faceOK(f))

	g.removeDeg2Vertex(w)
	require.Equal(t, edgesBefore, g.numEdges())
	require.False(t, g.v(w).alive)
	require.True(t, g.hasEdge(u, v))
	require.Len(t, g.faceEdges(f), 5)
	require.True(t, d.chk.isValid())
}

func TestSetNextCycle(t *testing.T) {
	var g graph
	a := g.addVertexRecord(vertexRecord{})
	b := g.addVertexRecord(vertexRecord{})
	c := g.addVertexRecord(vertexRecord{})
	e1 := g.addEdge(a, b)
	e2 := g.addEdge(b, c)
	e3 := g.addEdge(c, a)
	f := g.addFace()
	g.setNextCycle([]EdgeID{e1, e2, e3}, f, -1)

	require.Equal(t, e1, g.faces[f].edge)
	require.Equal(t, []EdgeID{e1, e2, e3}, g.faceEdges(f))
	for _, e := range []EdgeID{e1, e2, e3} {
		require.Equal(t, f, g.edges[e].face)
		require.Equal(t, -1, g.edges[e].k)
	}
	require.Equal(t, e1, g.edges[e3].next)
}

func TestDeleteVertexRemovesIncidentEdges(t *testing.T) {
	var g graph
	a := g.addVertexRecord(vertexRecord{})
	b := g.addVertexRecord(vertexRecord{})
	c := g.addVertexRecord(vertexRecord{})
	g.addTwinEdges(a, b)
	g.addTwinEdges(b, c)
	g.addTwinEdges(c, a)

	require.Equal(t, 6, g.numEdges())
	g.deleteVertex(b)
	require.Equal(t, 2, g.numEdges())
	require.False(t, g.verts[b].alive)
	require.Equal(t, 0, g.degree(b))
	require.True(t, g.hasEdge(c, a))
	require.True(t, g.hasEdge(a, c))
}

func TestAdjacentFaces(t *testing.T) {
	d := NewDiagram(100, 10)
	// the center vertex of the initial diagram touches all three faces
	require.Len(t, d.g.adjacentFaces(VertexID(0)), 3)
}
