package voronoi

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Recoverable insertion errors. Topology violations and failed seed
// searches are not recoverable and panic; after such a failure the
// diagram must not be relied upon until Check() returns true.
var (
	// ErrOutOfRange rejects a point outside the far radius, or a segment
	// whose endpoints coincide.
	ErrOutOfRange = errors.New("input out of range")
	// ErrUnknownHandle rejects a segment endpoint handle that was not
	// returned by InsertPointSite.
	ErrUnknownHandle = errors.New("unknown point-site handle")
	// ErrStep is returned when an insertion is interrupted at the
	// requested debug step; the diagram is left mid-surgery.
	ErrStep = errors.New("insertion interrupted at requested step")
)

// Diagram is an incrementally constructed Voronoi diagram of point and
// line-segment sites. All operations are single-threaded; each insertion
// is a critical section over the graph and the per-insertion scratch
// state.
type Diagram struct {
	g     graph
	fgrid *faceGrid
	vpos  *vertexPositioner
	chk   *checker
	log   *zap.Logger

	farRadius   float64
	numPsites   int
	numLsites   int
	vertexCount int

	// vertexMap resolves point-site handles to vertices, so segment
	// endpoints can be looked up later.
	vertexMap map[int]VertexID

	// per-insertion scratch, reset (not reallocated) between insertions
	v0            []VertexID // the IN-tree: vertices to delete
	incidentFaces []FaceID
	modified      map[VertexID]struct{}
	queue         vertexQueue

	// transient line-site context, consumed by repairFace
	segmentStart, segmentEnd VertexID
	nullFace1, nullFace2     FaceID
	zeroPointFace            FaceID
}

// NewDiagram creates a diagram that can accept sites strictly inside the
// circle of radius far. nBins sizes the face-lookup grid.
func NewDiagram(far float64, nBins int) *Diagram {
	d := &Diagram{
		fgrid:         newFaceGrid(far, nBins),
		log:           zap.NewNop(),
		farRadius:     far,
		vertexMap:     make(map[int]VertexID),
		modified:      make(map[VertexID]struct{}),
		segmentStart:  noVertex,
		segmentEnd:    noVertex,
		nullFace1:     noFace,
		nullFace2:     noFace,
		zeroPointFace: noFace,
	}
	d.vpos = &vertexPositioner{dia: d}
	d.chk = &checker{dia: d}
	d.initialize()
	d.numPsites = 3
	return d
}

// SetLogger installs a logger for pipeline tracing. The default is a nop.
func (d *Diagram) SetLogger(l *zap.Logger) { d.log = l }

// Check validates all topological invariants of the diagram.
func (d *Diagram) Check() bool { return d.chk.isValid() }

func (d *Diagram) NumVertices() int   { return d.g.numVertices() }
func (d *Diagram) NumEdges() int      { return d.g.numEdges() }
func (d *Diagram) NumPointSites() int { return d.numPsites }
func (d *Diagram) NumLineSites() int  { return d.numLsites }

// NumSplitVertices counts SPLIT vertices; outside a running insertion it
// is zero.
func (d *Diagram) NumSplitVertices() int {
	n := 0
	for i := range d.g.verts {
		if d.g.verts[i].alive && d.g.verts[i].vtype == typeSplit {
			n++
		}
	}
	return n
}

func (d *Diagram) String() string {
	return fmt.Sprintf("voronoi.Diagram{vertices: %d, edges: %d, point sites: %d, line sites: %d}",
		d.NumVertices(), d.NumEdges(), d.numPsites, d.numLsites)
}

func (d *Diagram) assertTopology(cond bool, msg string) {
	if !cond {
		panic("voronoi: topology violation: " + msg)
	}
}

func (d *Diagram) addVertex(pos Point, st vertexStatus, vt vertexType) VertexID {
	v := d.g.addVertexRecord(vertexRecord{position: pos, status: st, vtype: vt, index: d.vertexCount})
	d.vertexCount++
	return v
}

func (d *Diagram) addVertexWithDist(pos Point, st vertexStatus, vt vertexType, ref Point) VertexID {
	v := d.addVertex(pos, st, vt)
	d.g.v(v).initDist(ref)
	return v
}

// initialize bootstraps the diagram with three far-away point sites whose
// faces enclose the admissible region, so that later insertions never
// reach infinity and in-circle growth always terminates at the OUT outer
// vertices.
func (d *Diagram) initialize() {
	far := d.farRadius
	const farMultiplier = 6
	gen1 := Point{X: 0, Y: 3 * far}
	gen2 := Point{X: -3 * math.Sqrt(3) * far / 2, Y: -3 * far / 2}
	gen3 := Point{X: +3 * math.Sqrt(3) * far / 2, Y: -3 * far / 2}
	vd1 := Point{X: 0, Y: -3 * far * farMultiplier}
	vd2 := Point{X: +3 * math.Sqrt(3) * far * farMultiplier / 2, Y: +3 * far * farMultiplier / 2}
	vd3 := Point{X: -3 * math.Sqrt(3) * far * farMultiplier / 2, Y: +3 * far * farMultiplier / 2}

	v00 := d.addVertexWithDist(Point{}, statusUndecided, typeNormal, gen1)
	v01 := d.addVertexWithDist(vd1, statusOut, typeOuter, gen3)
	v02 := d.addVertexWithDist(vd2, statusOut, typeOuter, gen1)
	v03 := d.addVertexWithDist(vd3, statusOut, typeOuter, gen2)

	// the generator points themselves, kept for inspection
	d.addVertex(gen1, statusOut, typePointSite)
	d.addVertex(gen2, statusOut, typePointSite)
	d.addVertex(gen3, statusOut, typePointSite)

	// apex-points at the midpoint of each outer bisector
	a1 := d.addVertexWithDist(gen2.Add(gen3).Mul(0.5), statusUndecided, typeApex, gen2)
	a2 := d.addVertexWithDist(gen1.Add(gen3).Mul(0.5), statusUndecided, typeApex, gen3)
	a3 := d.addVertexWithDist(gen1.Add(gen2).Mul(0.5), statusUndecided, typeApex, gen1)

	site1 := newPointSite(gen1)
	site2 := newPointSite(gen2)
	site3 := newPointSite(gen3)

	// face 1: v00-a1-v01-v02-a2 encloses gen3
	e11 := d.g.addEdge(v00, a1)
	e12 := d.g.addEdge(a1, v01)
	e2 := d.g.addEdge(v01, v02)
	e31 := d.g.addEdge(v02, a2)
	e32 := d.g.addEdge(a2, v00)
	f1 := d.g.addFace()
	d.g.f(f1).site = site3
	site3.setFace(f1)
	d.fgrid.addFace(f1, gen3)
	d.g.setNextCycle([]EdgeID{e11, e12, e2, e31, e32}, f1, 1)

	// face 2: v00-a2-v02-v03-a3 encloses gen1
	e41 := d.g.addEdge(v00, a2)
	e42 := d.g.addEdge(a2, v02)
	e5 := d.g.addEdge(v02, v03)
	e61 := d.g.addEdge(v03, a3)
	e62 := d.g.addEdge(a3, v00)
	f2 := d.g.addFace()
	d.g.f(f2).site = site1
	site1.setFace(f2)
	d.fgrid.addFace(f2, gen1)
	d.g.setNextCycle([]EdgeID{e41, e42, e5, e61, e62}, f2, 1)

	// face 3: v00-a3-v03-v01-a1 encloses gen2
	e71 := d.g.addEdge(v00, a3)
	e72 := d.g.addEdge(a3, v03)
	e8 := d.g.addEdge(v03, v01)
	e91 := d.g.addEdge(v01, a1)
	e92 := d.g.addEdge(a1, v00)
	f3 := d.g.addFace()
	d.g.f(f3).site = site2
	site2.setFace(f3)
	d.fgrid.addFace(f3, gen2)
	d.g.setNextCycle([]EdgeID{e71, e72, e8, e91, e92}, f3, 1)

	set := func(e EdgeID, s1, s2 Site, sign bool) {
		d.g.e(e).etype = edgeLine
		d.g.e(e).setParameters(s1, s2, sign)
	}
	set(e11, site3, site2, false)
	set(e12, site3, site2, true)
	d.g.e(e2).etype = edgeOutEdge
	set(e31, site1, site3, true)
	set(e32, site1, site3, false)
	set(e41, site1, site3, false)
	set(e42, site1, site3, true)
	d.g.e(e5).etype = edgeOutEdge
	set(e61, site1, site2, false)
	set(e62, site1, site2, true)
	set(e71, site1, site2, true)
	set(e72, site1, site2, false)
	d.g.e(e8).etype = edgeOutEdge
	set(e91, site3, site2, true)
	set(e92, site3, site2, false)

	d.g.twinEdges(e11, e92)
	d.g.twinEdges(e12, e91)
	// the three outermost edges keep invalid twins
	d.g.twinEdges(e31, e42)
	d.g.twinEdges(e32, e41)
	d.g.twinEdges(e61, e72)
	d.g.twinEdges(e62, e71)

	d.assertTopology(d.chk.isValid(), "initial diagram invalid")
}

// InsertPointSite inserts a point site, |p| < far, and returns a stable
// integer handle for use in InsertLineSite.
//
// The insertion follows Sugihara-Iri "algorithm A":
//  1. find the face closest to the new site and a seed vertex on it,
//  2. grow the tree of IN vertices,
//  3. add NEW vertices on all IN-OUT edges,
//  4. split each INCIDENT face with a NEW-NEW edge, forming the new face,
//  5. remove the IN set and reset status for the next insertion.
func (d *Diagram) InsertPointSite(p Point) (int, error) {
	return d.InsertPointSiteStep(p, 0)
}

// InsertPointSiteStep is InsertPointSite gated for debugging: a positive
// step interrupts the pipeline after that many phases and returns
// ErrStep, leaving the diagram mid-surgery.
func (d *Diagram) InsertPointSiteStep(p Point, step int) (int, error) {
	// segment context is only meaningful while inserting line sites
	d.segmentStart, d.segmentEnd = noVertex, noVertex
	d.nullFace1, d.nullFace2 = noFace, noFace
	d.zeroPointFace = noFace

	if p.Norm() >= d.farRadius {
		return -1, errors.Wrapf(ErrOutOfRange, "point (%v,%v) not inside far radius %v", p.X, p.Y, d.farRadius)
	}
	d.numPsites++
	currentStep := 1

	newVert := d.addVertex(p, statusOut, typePointSite)
	newSite := newPointSite(p)
	d.vertexMap[d.g.v(newVert).index] = newVert

	vSeed := d.findSeedVertex(d.fgrid.closestFace(p), newSite)
	d.markVertex(vSeed, newSite)
	if step == currentStep {
		return -1, ErrStep
	}
	currentStep++

	d.augmentVertexSet(newSite)
	if step == currentStep {
		return -1, ErrStep
	}
	currentStep++

	d.addNewVertices(newSite)
	if step == currentStep {
		return -1, ErrStep
	}
	currentStep++

	newface := d.addFace(newSite)
	d.g.v(newVert).face = newface
	for _, f := range d.incidentFaces {
		d.addEdges(newface, f, noFace)
	}
	if step == currentStep {
		return -1, ErrStep
	}
	currentStep++

	d.repairFace(newface)
	d.removeVertexSet()
	if step == currentStep {
		return -1, ErrStep
	}

	d.resetStatus()
	d.assertTopology(d.chk.faceOK(newface), "new face broken after point-site insertion")
	d.assertTopology(d.chk.isValid(), "diagram broken after point-site insertion")
	d.log.Debug("inserted point site",
		zap.Int("handle", d.g.v(newVert).index),
		zap.Int("vertices", d.NumVertices()))
	return d.g.v(newVert).index, nil
}

// InsertLineSite inserts the line segment between two previously inserted
// point sites identified by their handles.
func (d *Diagram) InsertLineSite(idx1, idx2 int) error {
	return d.InsertLineSiteStep(idx1, idx2, 0)
}

// InsertLineSiteStep is InsertLineSite gated for debugging, as
// InsertPointSiteStep.
func (d *Diagram) InsertLineSiteStep(idx1, idx2, step int) error {
	d.zeroPointFace = noFace

	start, ok1 := d.vertexMap[idx1]
	end, ok2 := d.vertexMap[idx2]
	if !ok1 || !ok2 {
		return errors.Wrapf(ErrUnknownHandle, "segment endpoints %d, %d", idx1, idx2)
	}
	srcSE := d.g.v(start).position
	trgSE := d.g.v(end).position
	if srcSE == trgSE {
		return errors.Wrap(ErrOutOfRange, "segment endpoints coincide")
	}
	d.numLsites++
	currentStep := 1

	// a point left of src->trg decides which of the two new faces gets
	// the k=+1 offset side
	left := srcSE.Add(trgSE).Mul(0.5).Add(trgSE.Sub(srcSE).Ortho())
	linesiteKSign := isRight(left, srcSE, trgSE)

	d.g.v(start).status = statusOut
	d.g.v(end).status = statusOut
	d.g.v(start).zeroDist()
	d.g.v(end).zeroDist()

	segStart, startNullFace, posSepStart, negSepStart := d.findNullFace(start, end, left)
	segEnd, endNullFace, posSepEnd, negSepEnd := d.findNullFace(end, start, left)

	// consumed by repairFace, to avoid taking null-face edges
	d.nullFace1 = startNullFace
	d.nullFace2 = endNullFace
	d.segmentStart = segStart
	d.segmentEnd = segEnd

	startNullEdge := d.g.f(startNullFace).edge
	endNullEdge := d.g.f(endNullFace).edge
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	posFace, negFace := d.addLinesiteEdges(segStart, segEnd, linesiteKSign)
	posSite := d.g.f(posFace).site
	negSite := d.g.f(negFace).site

	// the faces of the endpoint point-sites, where separators land
	startFace := d.findPointsiteFace(startNullEdge)
	endFace := d.findPointsiteFace(endNullEdge)
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	vSeed := d.findSeedVertex(startFace, posSite)
	d.markVertex(vSeed, posSite)

	// now safe to re-anchor the contracted face; doing it earlier would
	// interfere with the seed search
	if d.zeroPointFace != noFace {
		d.g.f(d.zeroPointFace).edge = startNullEdge
	}
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	d.augmentVertexSet(posSite) // pos or neg side makes no difference here
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	d.addNewVertices(posSite)
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	posStartTarget := d.findSeparatorTarget(startFace, posSepStart)
	negStartTarget := d.findSeparatorTarget(startFace, negSepStart)
	d.addSeparator(startFace, startNullFace, posStartTarget, posSepStart, posSite, negSite)
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	d.addSeparator(startFace, startNullFace, negStartTarget, negSepStart, posSite, negSite)
	d.g.f(startFace).status = faceNonIncident // face is now done
	d.assertTopology(d.chk.faceOK(startFace), "start face broken after separators")
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	posEndTarget := d.findSeparatorTarget(endFace, posSepEnd)
	negEndTarget := d.findSeparatorTarget(endFace, negSepEnd)
	d.addSeparator(endFace, endNullFace, posEndTarget, posSepEnd, posSite, negSite)
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	d.addSeparator(endFace, endNullFace, negEndTarget, negSepEnd, posSite, negSite)
	d.g.f(endFace).status = faceNonIncident
	d.assertTopology(d.chk.faceOK(endFace), "end face broken after separators")
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	// endpoint faces are already dealt with; every other INCIDENT face
	// is split in two by a NEW-NEW edge
	for _, f := range d.incidentFaces {
		if d.g.f(f).status == faceIncident {
			d.addEdges(posFace, f, negFace)
		}
	}
	if step == currentStep {
		return ErrStep
	}
	currentStep++

	d.removeVertexSet()
	d.repairFace(posFace)
	d.assertTopology(d.chk.faceOK(posFace), "positive face broken after repair")
	d.repairFace(negFace)
	d.assertTopology(d.chk.faceOK(negFace), "negative face broken after repair")
	if step == currentStep {
		return ErrStep
	}

	// a contracted face has had all its edges re-attributed; retire it
	if d.zeroPointFace != noFace {
		d.g.f(d.zeroPointFace).alive = false
		d.fgrid.removeFace(d.zeroPointFace)
	}

	for _, f := range d.incidentFaces {
		d.removeSplitVertex(f)
	}
	d.resetStatus()

	if startFace != d.zeroPointFace {
		d.assertTopology(d.chk.faceOK(startFace), "start face broken")
	}
	d.assertTopology(d.chk.faceOK(startNullFace), "start null-face broken")
	if endFace != d.zeroPointFace {
		d.assertTopology(d.chk.faceOK(endFace), "end face broken")
	}
	d.assertTopology(d.chk.faceOK(endNullFace), "end null-face broken")
	d.assertTopology(d.chk.isValid(), "diagram broken after line-site insertion")
	d.log.Debug("inserted line site",
		zap.Int("start", idx1), zap.Int("end", idx2),
		zap.Int("vertices", d.NumVertices()))
	return nil
}

// findPointsiteFace walks a null-face and returns an adjacent face that
// belongs to a point site.
func (d *Diagram) findPointsiteFace(startEdge EdgeID) FaceID {
	g := &d.g
	face := g.e(g.e(startEdge).twin).face
	cur := startEdge
	for {
		twin := g.e(cur).twin
		twinFace := g.e(twin).face
		if site := g.f(twinFace).site; site != nil && site.IsPoint() {
			face = twinFace
		}
		cur = g.e(cur).next
		if cur == startEdge {
			break
		}
	}
	return face
}

// addLinesiteEdges creates the positive and negative line sites, the
// LINESITE twin pair between the segment endpoints, and the two offset
// faces anchored at those edges.
func (d *Diagram) addLinesiteEdges(segStart, segEnd VertexID, linesiteKSign bool) (FaceID, FaceID) {
	g := &d.g
	var posSite, negSite *LineSite
	var posEdge, negEdge EdgeID
	if linesiteKSign {
		posSite = newLineSite(g.v(segStart).position, g.v(segEnd).position, +1)
		negSite = newLineSite(g.v(segEnd).position, g.v(segStart).position, -1)
		posEdge, negEdge = g.addTwinEdges(segStart, segEnd)
	} else {
		posSite = newLineSite(g.v(segEnd).position, g.v(segStart).position, +1)
		negSite = newLineSite(g.v(segStart).position, g.v(segEnd).position, -1)
		posEdge, negEdge = g.addTwinEdges(segEnd, segStart)
	}
	g.e(posEdge).etype = edgeLineSite
	g.e(negEdge).etype = edgeLineSite
	g.e(posEdge).k = +1
	g.e(negEdge).k = -1
	posFace := d.addFace(posSite)
	negFace := d.addFace(negSite)
	g.f(posFace).edge = posEdge
	g.f(negFace).edge = negEdge
	g.e(posEdge).face = posFace
	g.e(negEdge).face = negFace
	return posFace, negFace
}

// findNextPrev returns the null-face edges leaving and arriving at endp.
func (d *Diagram) findNextPrev(nullFace FaceID, endp VertexID) (next, prev EdgeID) {
	next, prev = noEdge, noEdge
	start := d.g.f(nullFace).edge
	cur := start
	for {
		if d.g.source(cur) == endp {
			next = cur
		}
		if d.g.target(cur) == endp {
			prev = cur
		}
		cur = d.g.e(cur).next
		if cur == start {
			break
		}
	}
	d.assertTopology(next != noEdge && prev != noEdge, "endpoint not on null-face")
	return next, prev
}

// findNullFace resolves a segment endpoint: either create a fresh
// triangular null-face around it, or augment the existing one with a new
// segment ENDPOINT and, where there is room, separator points. Returns
// the new segment endpoint vertex, the null-face, and the optional
// separator endpoints.
func (d *Diagram) findNullFace(start, other VertexID, left Point) (VertexID, FaceID, VertexID, VertexID) {
	g := &d.g
	dir := g.v(other).position.Sub(g.v(start).position)
	alfa := diangle(dir.X, dir.Y)
	k3Sign := isRight(left, g.v(start).position, g.v(other).position)

	if g.v(start).nullFace != noFace {
		// augment the existing null-face
		nullFace := g.v(start).nullFace
		segStart := d.addVertex(g.v(start).position, statusOut, typeEndpoint)
		g.v(segStart).zeroDist()
		g.v(segStart).setAlfa(dir)

		// the null-edge whose alfa-bracket contains the segment direction
		insertEdge := noEdge
		startEdge := g.f(nullFace).edge
		cur := startEdge
		for {
			src, trg := g.source(cur), g.target(cur)
			if diangleBracket(g.v(src).alfa, alfa, g.v(trg).alfa) {
				insertEdge = cur
				break
			}
			cur = g.e(cur).next
			if cur == startEdge {
				break
			}
		}
		d.assertTopology(insertEdge != noEdge, "no null-edge bracket for new endpoint")
		g.addVertexInEdge(segStart, insertEdge)

		nextEdge, prevEdge := d.findNextPrev(nullFace, segStart)
		d.assertTopology(g.e(prevEdge).next == nextEdge, "null-face edges out of order")
		negSep := d.processNextNull(dir, nextEdge, k3Sign)
		posSep := d.processPrevNull(dir, prevEdge, k3Sign)
		return segStart, nullFace, posSep, negSep
	}

	// create a new null-face: neg_sep -> endpoint -> pos_sep
	nullFace := g.addFace()
	segStart := d.addVertex(g.v(start).position, statusOut, typeEndpoint)
	g.v(segStart).zeroDist()
	g.v(segStart).setAlfa(dir)
	g.v(segStart).k3 = 0
	posSep := d.addVertex(g.v(start).position, statusOut, typeSepPoint)
	negSep := d.addVertex(g.v(start).position, statusOut, typeSepPoint)
	g.v(posSep).zeroDist()
	g.v(negSep).zeroDist()

	if k3Sign {
		g.v(posSep).k3 = +1
		g.v(negSep).k3 = -1
	} else {
		g.v(posSep).k3 = -1
		g.v(negSep).k3 = +1
	}
	g.v(posSep).setAlfa(dir.Ortho())
	g.v(negSep).setAlfa(dir.Ortho().Mul(-1))

	e1, e1t := g.addTwinEdges(segStart, posSep)
	e2, e2t := g.addTwinEdges(posSep, negSep)
	e3, e3t := g.addTwinEdges(negSep, segStart)

	// e1 -> e2 -> e3 on the null-face; the twins form a 3-cycle island
	// inside the surrounding point-site face until separators stitch it in
	g.setNextCycle([]EdgeID{e1, e2, e3}, nullFace, 1)
	startFace := g.v(start).face
	startFaceEdge := g.f(startFace).edge // keep the face anchored outside the island
	g.setNextCycle([]EdgeID{e3t, e2t, e1t}, startFace, 1)
	g.f(nullFace).edge = e1
	g.f(startFace).edge = startFaceEdge

	for _, e := range []EdgeID{e1, e2, e3, e1t, e2t, e3t} {
		g.e(e).etype = edgeNullEdge
	}
	g.v(start).nullFace = nullFace
	return segStart, nullFace, posSep, negSep
}

// processNextNull handles the null-edge leaving a freshly inserted
// segment endpoint. Depending on what the edge runs into it inserts a
// separator point, converts or pushes the existing neighbor vertex, or
// reuses an identical existing separator.
func (d *Diagram) processNextNull(dir Point, nextEdge EdgeID, k3Sign bool) VertexID {
	g := &d.g
	trg := g.target(nextEdge)
	src := g.source(nextEdge)
	d.assertTopology(g.v(src).vtype == typeEndpoint, "null-edge source is not an endpoint")
	sepPoint := noVertex
	sepDir := dir.Ortho()
	sepAlfa := diangle(sepDir.X, sepDir.Y)

	if g.v(trg).vtype == typeEndpoint {
		// with an ENDPOINT next door there is never room for a separator
		d.assertTopology(!diangleBracket(g.v(src).alfa, sepAlfa, g.v(trg).alfa),
			"separator would fit between two endpoints")
		newV := d.addVertex(g.v(src).position, statusNew, typeNormal)
		g.v(newV).alfa = diangleMid(g.v(src).alfa, g.v(trg).alfa)
		d.modified[newV] = struct{}{}
		g.addVertexInEdge(newV, nextEdge)
		if k3Sign {
			g.v(newV).k3 = +1
		} else {
			g.v(newV).k3 = -1
		}
		return sepPoint
	}

	if sepAlfa == g.v(trg).alfa && g.v(trg).vtype == typeSepPoint {
		// identical separator already present: reuse it
		d.reuseSeparator(trg)
		return noVertex
	}

	nextFace := g.e(g.e(nextEdge).twin).face
	nextSite := g.f(nextFace).site
	if diangleBracket(g.v(src).alfa, sepAlfa, g.v(trg).alfa) && nextSite != nil && nextSite.IsPoint() {
		sepPoint = d.addSepPoint(nextEdge, sepDir)
		if k3Sign {
			g.v(sepPoint).k3 = +1
		} else {
			g.v(sepPoint).k3 = -1
		}
	} else {
		// no room for a separator: push the neighbor aside and convert it
		nextNext := g.e(nextEdge).next
		nextTrg := g.target(nextNext)
		mid := diangleMid(g.v(src).alfa, g.v(nextTrg).alfa)
		if diangleBracket(sepAlfa, mid, g.v(nextTrg).alfa) {
			// pushed past the separator position: it becomes the separator
			g.v(trg).alfa = sepAlfa
			g.v(trg).vtype = typeSepPoint
			g.v(trg).status = statusNew
			sepPoint = trg
		} else {
			g.v(trg).alfa = mid
			g.v(trg).vtype = typeNormal
			g.v(trg).status = statusNew
		}
		if k3Sign {
			g.v(trg).k3 = +1
		} else {
			g.v(trg).k3 = -1
		}
		d.modified[trg] = struct{}{}
	}
	return sepPoint
}

// processPrevNull is the mirror image of processNextNull for the
// null-edge arriving at the new endpoint.
func (d *Diagram) processPrevNull(dir Point, prevEdge EdgeID, k3Sign bool) VertexID {
	g := &d.g
	trg := g.target(prevEdge)
	src := g.source(prevEdge)
	d.assertTopology(g.v(trg).vtype == typeEndpoint, "null-edge target is not an endpoint")
	sepPoint := noVertex
	sepDir := dir.Ortho().Mul(-1)
	sepAlfa := diangle(sepDir.X, sepDir.Y)

	if g.v(src).vtype == typeEndpoint {
		d.assertTopology(!diangleBracket(g.v(src).alfa, sepAlfa, g.v(trg).alfa),
			"separator would fit between two endpoints")
		newV := d.addVertex(g.v(src).position, statusNew, typeNormal)
		g.v(newV).alfa = diangleMid(g.v(src).alfa, g.v(trg).alfa)
		d.modified[newV] = struct{}{}
		g.addVertexInEdge(newV, prevEdge)
		if k3Sign {
			g.v(newV).k3 = -1
		} else {
			g.v(newV).k3 = +1
		}
		return sepPoint
	}

	if sepAlfa == g.v(src).alfa && g.v(src).vtype == typeSepPoint {
		d.reuseSeparator(src)
		return sepPoint
	}

	if diangleBracket(g.v(src).alfa, sepAlfa, g.v(trg).alfa) {
		sepPoint = d.addSepPoint(prevEdge, sepDir)
		if k3Sign {
			g.v(sepPoint).k3 = -1
		} else {
			g.v(sepPoint).k3 = +1
		}
	} else {
		prevPrev := g.previousEdge(prevEdge)
		prevSrc := g.source(prevPrev)
		mid := diangleMid(g.v(prevSrc).alfa, g.v(trg).alfa)
		if diangleBracket(mid, sepAlfa, g.v(trg).alfa) {
			g.v(src).alfa = sepAlfa
			g.v(src).vtype = typeSepPoint
			g.v(src).status = statusNew
			sepPoint = src
		} else {
			g.v(src).alfa = mid
			g.v(src).vtype = typeNormal
			g.v(src).status = statusNew
		}
		if k3Sign {
			g.v(src).k3 = -1
		} else {
			g.v(src).k3 = +1
		}
		d.modified[src] = struct{}{}
	}
	return sepPoint
}

// reuseSeparator handles a new segment whose separator direction
// coincides with an existing SEPPOINT: the existing separator is kept,
// its far endpoint re-enters the surgery as a NEW vertex, and the
// point-site face on the separator's side collapses to zero area.
func (d *Diagram) reuseSeparator(sep VertexID) {
	g := &d.g
	sepEdge := noEdge
	for _, e := range g.outEdges(sep) {
		if g.e(e).etype == edgeSeparator {
			sepEdge = e
		}
	}
	d.assertTopology(sepEdge != noEdge, "no separator at reused SEPPOINT")

	sepTwin := g.e(sepEdge).twin
	pointsiteEdge := noEdge
	if s := g.f(g.e(sepEdge).face).site; s != nil && s.IsPoint() {
		pointsiteEdge = sepEdge
	}
	if s := g.f(g.e(sepTwin).face).site; s != nil && s.IsPoint() {
		pointsiteEdge = sepTwin
	}
	d.assertTopology(pointsiteEdge != noEdge, "reused separator borders no point-site face")
	d.zeroPointFace = g.e(pointsiteEdge).face // this face will be contracted

	sepTargetV := g.target(sepEdge)
	g.v(sepTargetV).status = statusNew
	d.modified[sepTargetV] = struct{}{}
	d.log.Debug("reusing identical separator", zap.Int("seppoint", int(sep)))
}

// addSepPoint inserts a SEPPOINT into a null-edge, oriented along sepDir.
func (d *Diagram) addSepPoint(edge EdgeID, sepDir Point) VertexID {
	g := &d.g
	endp := g.source(edge)
	sep := d.addVertex(g.v(endp).position, statusOut, typeSepPoint)
	g.v(sep).setAlfa(sepDir)
	g.addVertexInEdge(sep, edge)
	return sep
}

// sepTarget is the landing place for a separator: a NEW vertex on the
// endpoint's point-site face, together with its surrounding edges.
// outNewIn tells which of the two walk patterns found it.
type sepTarget struct {
	previous EdgeID
	target   VertexID
	next     EdgeID
	outNewIn bool
	valid    bool
}

// findSeparatorTarget walks face f for the NEW vertex with the same k3
// sign as the separator endpoint, sitting in an OUT-NEW-IN or IN-NEW-OUT
// triplet.
func (d *Diagram) findSeparatorTarget(f FaceID, endp VertexID) sepTarget {
	if endp == noVertex {
		return sepTarget{}
	}
	g := &d.g
	start := g.f(f).edge
	cur := start
	for {
		nextEdge := g.e(cur).next
		prevV := g.source(cur)
		curV := g.target(cur)
		nextV := g.target(nextEdge)
		outNewIn := g.v(prevV).status == statusOut && g.v(curV).status == statusNew && g.v(nextV).status == statusIn
		inNewOut := g.v(prevV).status == statusIn && g.v(curV).status == statusNew && g.v(nextV).status == statusOut
		if (outNewIn || inNewOut) && g.v(endp).k3 == g.v(curV).k3 && endp != curV {
			return sepTarget{previous: cur, target: curV, next: nextEdge, outNewIn: outNewIn, valid: true}
		}
		cur = nextEdge
		if cur == start {
			break
		}
	}
	panic("voronoi: topology violation: no separator target found")
}

// addSeparator installs the SEPARATOR twin pair from a null-face SEPPOINT
// to its target NEW vertex on face f. One half lies on the point-site
// face, the other on the +1 or -1 line-site face according to the
// target's k3 sign; the intervening null-edges are re-attributed to
// match.
func (d *Diagram) addSeparator(f, nullFace FaceID, target sepTarget, sepEndp VertexID, s1, s2 Site) {
	if sepEndp == noVertex {
		return
	}
	g := &d.g
	d.assertTopology(g.v(sepEndp).k3 == 1 || g.v(sepEndp).k3 == -1, "separator endpoint without offset sign")

	endpNextTw, endpPrevTw := d.findNextPrev(nullFace, sepEndp)
	endpPrev := g.e(endpNextTw).twin
	endpNext := g.e(endpPrevTw).twin
	d.assertTopology(endpNext != noEdge && endpPrev != noEdge, "null-face edges missing twins")

	d.assertTopology(target.valid, "separator without target")
	d.assertTopology(g.v(sepEndp).k3 == g.v(target.target).k3, "separator target on wrong offset side")
	d.assertTopology(s1.InRegion(g.v(target.target).position), "separator target outside region of +1 site")
	d.assertTopology(s2.InRegion(g.v(target.target).position), "separator target outside region of -1 site")

	e2, e2t := g.addTwinEdges(sepEndp, target.target)
	g.e(e2).etype = edgeSeparator
	g.e(e2t).etype = edgeSeparator

	if target.outNewIn {
		g.e(e2).k = g.v(target.target).k3 // segment side
		g.e(e2t).k = +1                   // point-site side
		g.e(e2t).face = f
		g.f(f).edge = e2t
		g.e(endpPrev).k = g.e(e2).k // endp_prev joins the line-site side
		site := s1
		if g.e(e2).k == -1 {
			site = s2
		}
		g.e(e2).face = site.Face()
		g.f(site.Face()).edge = e2
		g.e(endpPrev).face = site.Face()

		g.e(target.previous).next = e2t
		g.e(e2t).next = endpNext
		g.e(endpNext).face = f
		g.e(endpNext).k = 1
		g.e(e2).next = target.next
	} else {
		g.e(e2).k = +1                     // point-site side
		g.e(e2t).k = g.v(target.target).k3 // segment side
		g.e(e2).face = f
		g.f(f).edge = e2
		g.e(endpNext).k = g.e(e2t).k
		site := s1
		if g.e(e2t).k == -1 {
			site = s2
		}
		g.e(e2t).face = site.Face()
		g.f(site.Face()).edge = e2t
		g.e(endpNext).face = site.Face()

		g.e(target.previous).next = e2t
		g.e(endpPrev).face = f
		g.e(endpPrev).k = 1
		g.e(endpPrev).next = e2
		g.e(e2).next = target.next
	}
	g.e(e2).setSepParameters(g.v(sepEndp).position, g.v(target.target).position)
	g.e(e2t).setSepParameters(g.v(sepEndp).position, g.v(target.target).position)

	d.assertTopology(d.chk.checkEdge(e2) && d.chk.checkEdge(e2t), "separator edges broken")
}

// findSeedVertex scans the targets along face f for the NORMAL, non-OUT
// vertex with the largest clearance-disk violation that lies in the
// region of the new site. The winner's violation must be negative.
func (d *Diagram) findSeedVertex(f FaceID, site Site) VertexID {
	g := &d.g
	minPred := 0.0
	minimalVertex := noVertex
	first := true
	start := g.f(f).edge
	cur := start
	for {
		q := g.target(cur)
		if g.v(q).status != statusOut && g.v(q).vtype == typeNormal && site.InRegion(g.v(q).position) {
			h := g.v(q).inCircle(site.ApexPoint(g.v(q).position))
			if first || h < minPred {
				minPred = h
				minimalVertex = q
				first = false
			}
		}
		cur = g.e(cur).next
		if cur == start {
			break
		}
	}
	if minimalVertex == noVertex || minPred >= 0 {
		panic(fmt.Sprintf("voronoi: no seed vertex found on face %d", f))
	}
	return minimalVertex
}

// augmentVertexSet grows the IN-tree by weighted breadth-first search.
// UNDECIDED vertices adjacent to known IN vertices are processed in
// order of decreasing |in-circle| residual; a vertex with negative
// residual is marked IN provided it passes the C4 and C5 topology tests
// of Sugihara & Iri and lies in the region of the new site, otherwise it
// is marked OUT.
func (d *Diagram) augmentVertexSet(site Site) {
	for !d.queue.empty() {
		v, h := d.queue.pop()
		d.assertTopology(d.g.v(v).status == statusUndecided, "queued vertex already decided")
		if h < 0 {
			if d.predicateC4(v) || !d.predicateC5(v) || !site.InRegion(d.g.v(v).position) {
				d.g.v(v).status = statusOut // C4 or C5 violated
			} else {
				d.markVertex(v, site)
			}
		} else {
			d.g.v(v).status = statusOut
		}
		d.modified[v] = struct{}{}
	}
}

// markVertex marks v IN, marks its adjacent faces INCIDENT, and queues
// its UNDECIDED neighbors weighted by the in-circle predicate.
func (d *Diagram) markVertex(v VertexID, site Site) {
	d.g.v(v).status = statusIn
	d.v0 = append(d.v0, v)
	d.modified[v] = struct{}{}

	if site.IsPoint() {
		d.markAdjacentFacesPoint(v)
	} else {
		d.markAdjacentFaces(v, site)
	}

	for _, e := range d.g.outEdges(v) {
		w := d.g.target(e)
		wr := d.g.v(w)
		if wr.status == statusUndecided && !wr.inQueue {
			d.queue.push(w, wr.inCircle(site.ApexPoint(wr.position)))
			wr.inQueue = true
		}
	}
}

// markAdjacentFacesPoint is the point-site flavor: every face around an
// IN vertex becomes INCIDENT.
func (d *Diagram) markAdjacentFacesPoint(v VertexID) {
	for _, e := range d.g.outEdges(v) {
		f := d.g.e(e).face
		if d.g.f(f).status != faceIncident {
			d.g.f(f).status = faceIncident
			d.incidentFaces = append(d.incidentFaces, f)
		}
	}
}

// markAdjacentFaces is the line-site flavor: before a face becomes
// INCIDENT it receives SPLIT vertices, so that the IN-tree cannot close a
// deletion loop through an elongated face.
func (d *Diagram) markAdjacentFaces(v VertexID, site Site) {
	for _, f := range d.g.adjacentFaces(v) {
		if d.g.f(f).status != faceIncident {
			if site.IsLine() {
				d.addSplitVertex(f, site)
			}
			d.g.f(f).status = faceIncident
			d.incidentFaces = append(d.incidentFaces, f)
		}
	}
}

// findSplitEdges returns the edges of f whose endpoints lie on opposite
// sides of the line pt1-pt2. Only edges whose source is a NORMAL, APEX or
// SPLIT vertex are considered.
func (d *Diagram) findSplitEdges(f FaceID, pt1, pt2 Point) []EdgeID {
	g := &d.g
	var out []EdgeID
	start := g.f(f).edge
	cur := start
	for {
		src, trg := g.source(cur), g.target(cur)
		srcRight := isRight(g.v(src).position, pt1, pt2)
		trgRight := isRight(g.v(trg).position, pt1, pt2)
		switch g.v(src).vtype {
		case typeNormal, typeApex, typeSplit:
			if srcRight != trgRight {
				out = append(out, cur)
			}
		}
		cur = g.e(cur).next
		if cur == start {
			break
		}
	}
	return out
}

// addSplitVertex subdivides the edges of a point-site face that cross
// the perpendicular through the face's generator onto the new line site.
// The split point is where the edge comes closest to that perpendicular,
// found by a bracketed root search on the signed distance; the endpoint
// clearances bracket the root.
func (d *Diagram) addSplitVertex(f FaceID, s Site) {
	if s.IsPoint() {
		return
	}
	g := &d.g
	fs := g.f(f).site
	if fs == nil {
		return
	}
	// never on the faces of the segment's own endpoints
	if fs.IsPoint() && s.IsLine() {
		if fs.Position() == s.Start() || fs.Position() == s.End() {
			return
		}
	}
	if !(fs.IsPoint() && s.IsLine() && s.InRegion(fs.Position())) {
		return
	}
	pt1 := fs.Position()
	pt2 := pt1.Sub(Point{X: s.A(), Y: s.B()})
	d.assertTopology(pt2.Sub(pt1).Norm() > 0, "degenerate split direction")

	for _, splitEdge := range d.findSplitEdges(f, pt1, pt2) {
		if g.e(splitEdge).etype == edgeSeparator || g.e(splitEdge).etype == edgeLineSite {
			return // no split points on line-sites or separators
		}
		src, trg := g.source(splitEdge), g.target(splitEdge)
		errFn := func(t float64) float64 {
			return signedDistanceToLine(g.e(splitEdge).curve.point(t), pt1, pt2)
		}
		minT := math.Min(g.v(src).dist, g.v(trg).dist)
		maxT := math.Max(g.v(src).dist, g.v(trg).dist)
		if errFn(minT)*errFn(maxT) >= 0 {
			return // the bracket must contain a sign change
		}
		t := bisectRoot(errFn, minT, maxT)
		pos := g.e(splitEdge).curve.point(t)
		v := d.addVertexWithDist(pos, statusUndecided, typeSplit, fs.Position())
		g.addVertexInEdge(v, splitEdge)
	}
}

func (d *Diagram) findSplitVertex(f FaceID) (VertexID, bool) {
	for _, q := range d.g.faceVertices(f) {
		if d.g.v(q).vtype == typeSplit {
			return q, true
		}
	}
	return noVertex, false
}

// removeSplitVertex removes the transient SPLIT vertices of f once the
// face has been repaired.
func (d *Diagram) removeSplitVertex(f FaceID) {
	for {
		v, found := d.findSplitVertex(f)
		if !found {
			return
		}
		d.g.removeDeg2Vertex(v)
		delete(d.modified, v)
	}
}

// addNewVertices generates NEW vertices on all IN-OUT edges, positioned
// by the vertex positioner so every IN-OUT edge becomes IN-NEW-OUT.
func (d *Diagram) addNewVertices(newSite Site) {
	d.assertTopology(len(d.v0) > 0, "empty IN set")
	for _, e := range d.findInOutEdges() {
		sl := d.vpos.position(e, newSite)
		if derr := d.vpos.distError(e, sl, newSite); derr > positionerTolerance {
			d.log.Warn("positioner residual above tolerance",
				zap.Float64("residual", derr),
				zap.Int("src", int(d.g.source(e))),
				zap.Int("trg", int(d.g.target(e))))
		}
		q := d.addVertexWithDist(sl.p, statusNew, typeNormal, newSite.ApexPoint(sl.p))
		d.g.v(q).k3 = sl.k3
		d.modified[q] = struct{}{}
		d.g.addVertexInEdge(q, e)
	}
}

// addFace allocates the face of a new site; point-site faces also enter
// the face grid.
func (d *Diagram) addFace(s Site) FaceID {
	f := d.g.addFace()
	d.g.f(f).site = s
	s.setFace(f)
	d.g.f(f).status = faceNonIncident
	if s.IsPoint() {
		d.fgrid.addFace(f, s.Position())
	}
	return f
}

// edgeData is one NEW-NEW pair on a face:
// OUT-..-OUT-NEW(v1)-IN-..-IN-NEW(v2)-OUT-..
type edgeData struct {
	f            FaceID
	v1           VertexID
	v1Prv, v1Nxt EdgeID
	v2           VertexID
	v2Prv, v2Nxt EdgeID
}

// addEdges installs one NEW-NEW edge for each pair of NEW vertices found
// on the INCIDENT face f, splitting f into itself and the new face(s).
func (d *Diagram) addEdges(newface, f, newface2 FaceID) {
	newCount := d.numNewVertices(f)
	d.assertTopology(newCount > 0 && newCount%2 == 0, "odd number of NEW vertices on face")
	var startverts []VertexID
	for m := 0; m < newCount/2; m++ {
		ed := d.findEdgeData(f, startverts)
		d.addEdge(ed, newface, newface2)
		startverts = append(startverts, ed.v1)
	}
}

// addEdge emits the NEW-NEW edge of one pair, with an apex split when the
// two NEW endpoints lie on opposite sides of the bisector between the
// face's site and the new site.
func (d *Diagram) addEdge(ed edgeData, newface, newface2 FaceID) {
	g := &d.g
	newPrevious := ed.v1Prv
	newSource := ed.v1
	twinNext := ed.v1Nxt
	twinPrevious := ed.v2Prv
	newTarget := ed.v2
	newNext := ed.v2Nxt

	f := ed.f
	fSite := g.f(f).site
	newFace := newface
	if g.v(newSource).k3 == -1 && newface2 != noFace {
		newFace = newface2
	}
	newSite := g.f(newFace).site
	d.assertTopology(g.v(newTarget).k3 == g.v(newSource).k3, "NEW pair on different offset sides")

	// check for a potential apex-split
	srcSign, trgSign := true, true
	switch {
	case fSite.IsPoint() && newSite.IsLine():
		pt1 := fSite.Position()
		pt2 := newSite.ApexPoint(pt1)
		srcSign = isRight(g.v(newSource).position, pt1, pt2)
		trgSign = isRight(g.v(newTarget).position, pt1, pt2)
	case fSite.IsLine() && newSite.IsPoint():
		pt1 := newSite.Position()
		pt2 := fSite.ApexPoint(pt1)
		srcSign = isRight(g.v(newSource).position, pt1, pt2)
		trgSign = isRight(g.v(newTarget).position, pt1, pt2)
	case fSite.IsPoint() && newSite.IsPoint():
		srcSign = isRight(g.v(newSource).position, fSite.Position(), newSite.Position())
		trgSign = isRight(g.v(newTarget).position, fSite.Position(), newSite.Position())
	default:
		// line-line bisectors carry no square root, so no split is needed;
		// verify sides only away from the endpoints, where is_right is accurate
		srcP, trgP := g.v(newSource).position, g.v(newTarget).position
		if srcP != trgP &&
			srcP != fSite.Start() && srcP != fSite.End() &&
			trgP != fSite.Start() && trgP != fSite.End() &&
			srcP.Sub(fSite.ApexPoint(srcP)).Norm() > 1e-3 &&
			trgP.Sub(fSite.ApexPoint(trgP)).Norm() > 1e-3 {
			d.assertTopology(!isRight(srcP, fSite.Start(), fSite.End()), "LL source on wrong side of face site")
			d.assertTopology(!isRight(trgP, fSite.Start(), fSite.End()), "LL target on wrong side of face site")
			d.assertTopology(!isRight(srcP, newSite.Start(), newSite.End()), "LL source on wrong side of new site")
			d.assertTopology(!isRight(trgP, newSite.Start(), newSite.End()), "LL target on wrong side of new site")
		}
	}

	if srcSign == trgSign {
		// both NEW vertices on the same side: a single edge suffices
		eNew, eTwin := g.addTwinEdges(newSource, newTarget)
		g.e(eNew).next = newNext
		d.assertTopology(g.e(newNext).k == g.e(newPrevious).k, "face k mismatch around NEW pair")
		g.e(eNew).k = g.e(newNext).k
		g.e(eNew).face = f
		g.e(newPrevious).next = eNew
		g.f(f).edge = eNew
		g.e(eNew).setParameters(fSite, newSite, !srcSign)

		g.e(twinPrevious).next = eTwin
		g.e(eTwin).next = twinNext
		g.e(eTwin).k = g.v(newSource).k3
		g.e(eTwin).setParameters(newSite, fSite, srcSign)
		g.e(eTwin).face = newFace
		g.f(newFace).edge = eTwin
		d.assertTopology(d.chk.checkEdge(eNew) && d.chk.checkEdge(eTwin), "NEW-NEW edges broken")
		return
	}

	// opposite sides: split at the apex of the bisector
	//
	//   new_prv -> NEW -- e1 ---> APEX --e2 ---> NEW -> new_nxt      (f)
	//   twn_nxt <- NEW <- e1t --- APEX <-e2t --- NEW <- twn_prv      (new face)
	apex := d.addVertex(Point{}, statusNew, typeApex)
	e1, e1t := g.addTwinEdges(newSource, apex)
	e2, e2t := g.addTwinEdges(apex, newTarget)
	g.e(e1).setParameters(fSite, newSite, !srcSign)
	g.e(e2).setParameters(fSite, newSite, !trgSign)

	d.assertTopology(g.e(newPrevious).face == f && g.e(newNext).face == f, "NEW pair edges left face f")
	d.assertTopology(g.e(newNext).k == g.e(newPrevious).k, "face k mismatch around NEW pair")
	g.setNextChainFace([]EdgeID{newPrevious, e1, e2, newNext}, f, g.e(newNext).k)
	g.f(f).edge = e1

	g.e(e1t).setParameters(newSite, fSite, srcSign)
	g.e(e2t).setParameters(newSite, fSite, trgSign)
	d.assertTopology(g.e(twinPrevious).k == g.e(twinNext).k, "twin k mismatch around NEW pair")
	g.setNextChain([]EdgeID{twinPrevious, e2t, e1t, twinNext})
	g.e(e1t).k = g.v(newSource).k3
	g.e(e2t).k = g.v(newSource).k3
	g.f(newFace).edge = e1t
	g.e(e1t).face = newFace
	g.e(e2t).face = newFace

	d.assertTopology(d.chk.checkEdge(e1) && d.chk.checkEdge(e1t), "apex edges broken")
	d.assertTopology(d.chk.checkEdge(e2) && d.chk.checkEdge(e2t), "apex edges broken")

	// place the apex at the minimum-clearance point of the bisector
	minT := g.e(e1).curve.minimumT()
	g.v(apex).position = g.e(e1).curve.point(minT)
	g.v(apex).initDist(fSite.ApexPoint(g.v(apex).position))
	d.modified[apex] = struct{}{}
}

// findEdgeData locates the next OUT-NEW(v1)-IN ... IN-NEW(v2)-OUT pair
// around face f, skipping v1 vertices already used.
func (d *Diagram) findEdgeData(f FaceID, startverts []VertexID) edgeData {
	g := &d.g
	ed := edgeData{f: f}
	start := g.f(f).edge
	cur := start
	found := false
	for {
		nextEdge := g.e(cur).next
		prevV := g.source(cur)
		curV := g.target(cur)
		nextV := g.target(nextEdge)
		if g.v(curV).status == statusNew && g.v(curV).vtype != typeSepPoint {
			prevOK := (g.v(prevV).status == statusOut || g.v(prevV).status == statusUndecided) &&
				prevV != d.segmentStart && prevV != d.segmentEnd
			nextEndp := g.v(nextV).vtype == typeEndpoint && (nextV == d.segmentStart || nextV == d.segmentEnd)
			if prevOK || nextEndp {
				used := false
				for _, s := range startverts {
					if curV == s {
						used = true
						break
					}
				}
				if !used {
					ed.v1 = curV
					ed.v1Prv = cur
					ed.v1Nxt = nextEdge
					found = true
				}
			}
		}
		cur = nextEdge
		if found || cur == start {
			break
		}
	}
	d.assertTopology(found, "no OUT-NEW-IN vertex on face")

	// continue from v1 to the matching IN-NEW-OUT vertex
	start = cur
	found = false
	for {
		curV := g.target(cur)
		if g.v(curV).status == statusNew && g.v(curV).vtype != typeSepPoint && curV != ed.v1 {
			ed.v2 = curV
			ed.v2Prv = cur
			ed.v2Nxt = g.e(cur).next
			found = true
		}
		cur = g.e(cur).next
		if found || cur == start {
			break
		}
	}
	d.assertTopology(found, "no IN-NEW-OUT vertex on face")
	return ed
}

// repairFace walks f and re-links the next-pointers: at every target the
// unique outgoing NEW/ENDPOINT/SEPPOINT edge with matching face is the
// continuation. Null-edges between endpoint vertices that do not run
// along the segment's own null-faces, and any edge on the contracted
// zero-point face, are forcibly re-attributed to f first.
func (d *Diagram) repairFace(f FaceID) {
	g := &d.g
	start := g.f(f).edge
	cur := start
	for {
		d.assertTopology(d.chk.checkEdge(cur), "broken edge during face repair")
		curTrg := g.target(cur)
		curSrc := g.source(cur)
		found := false
		for _, e := range g.outEdges(curTrg) {
			outTrg := g.target(e)
			if outTrg == curSrc {
				continue // not back where we came from
			}
			if g.v(outTrg).status != statusNew &&
				g.v(outTrg).vtype != typeEndpoint &&
				g.v(outTrg).vtype != typeSepPoint {
				continue
			}
			nullOverride := g.e(e).etype == edgeNullEdge &&
				g.e(cur).etype != edgeNullEdge && // only one null-edge in succession
				(
				// from separator to endpoint
				(g.v(curTrg).vtype == typeSepPoint && g.v(outTrg).vtype == typeEndpoint) ||
					// or endpoint -> endpoint, or onto the segment itself
					(g.v(curSrc).vtype == typeEndpoint && g.v(curTrg).vtype == typeEndpoint) ||
					outTrg == d.segmentStart ||
					outTrg == d.segmentEnd) &&
				g.e(e).face != d.nullFace1 && // never along the segment's null-faces
				g.e(e).face != d.nullFace2
			zeroOverride := d.zeroPointFace != noFace && g.e(e).face == d.zeroPointFace
			if nullOverride || zeroOverride {
				g.e(e).face = f
				g.e(e).k = g.e(cur).k
			}
			if g.e(e).face == f {
				g.e(cur).next = e
				found = true
				d.assertTopology(g.e(cur).k == g.e(e).k, "k mismatch during face repair")
			}
		}
		d.assertTopology(found, "no next edge during face repair")
		cur = g.e(cur).next
		if cur == start {
			break
		}
	}
}

// removeVertexSet deletes the IN-tree together with all incident edges.
func (d *Diagram) removeVertexSet() {
	for _, v := range d.v0 {
		d.assertTopology(d.g.v(v).status == statusIn, "deleting non-IN vertex")
		d.g.deleteVertex(v)
		delete(d.modified, v)
	}
}

// resetStatus readies all modified vertices and incident faces for the
// next insertion.
func (d *Diagram) resetStatus() {
	for v := range d.modified {
		d.g.v(v).reset()
	}
	clear(d.modified)
	for _, f := range d.incidentFaces {
		d.g.f(f).status = faceNonIncident
	}
	d.incidentFaces = d.incidentFaces[:0]
	d.v0 = d.v0[:0]
	d.queue.clear()
}

// findInOutEdges returns the edges from the IN-tree to OUT vertices; NEW
// vertices are inserted into exactly these edges.
func (d *Diagram) findInOutEdges() []EdgeID {
	d.assertTopology(len(d.v0) > 0, "empty IN set")
	var out []EdgeID
	for _, v := range d.v0 {
		for _, e := range d.g.outEdges(v) {
			if d.g.v(d.g.target(e)).status == statusOut {
				out = append(out, e)
			}
		}
	}
	d.assertTopology(len(out) > 0, "no IN-OUT edges")
	return out
}

// predicateC4 ("adjacent in-count", Sugihara & Iri): a candidate already
// adjacent to two or more IN vertices would close a deletion cycle.
func (d *Diagram) predicateC4(v VertexID) bool {
	inCount := 0
	for _, e := range d.g.outEdges(v) {
		if d.g.v(d.g.target(e)).status == statusIn {
			inCount++
			if inCount >= 2 {
				return true
			}
		}
	}
	return false
}

// predicateC5 ("connectedness", Sugihara & Iri): on every incident face
// around the candidate there must be an adjacent IN vertex, or some other
// ENDPOINT/APEX/SPLIT vertex anywhere on that face.
func (d *Diagram) predicateC5(v VertexID) bool {
	if d.g.v(v).vtype == typeApex || d.g.v(v).vtype == typeSplit {
		return true
	}
	var adjacentIncident []FaceID
	for _, e := range d.g.outEdges(v) {
		f := d.g.e(e).face
		if d.g.f(f).status == faceIncident {
			adjacentIncident = append(adjacentIncident, f)
		}
	}
	d.assertTopology(len(adjacentIncident) > 0, "C5 candidate without incident faces")

	for _, f := range adjacentIncident {
		faceOK := false
		start := d.g.f(f).edge
		cur := start
		for {
			w := d.g.target(cur)
			if w != v && d.g.v(w).status == statusIn && d.g.hasEdge(w, v) {
				faceOK = true
			} else if w != v && (d.g.v(w).vtype == typeEndpoint || d.g.v(w).vtype == typeApex || d.g.v(w).vtype == typeSplit) {
				faceOK = true
			}
			cur = d.g.e(cur).next
			if cur == start {
				break
			}
		}
		if !faceOK {
			return false
		}
	}
	return true
}

// numNewVertices counts the NEW (non-SEPPOINT) vertices on a face.
func (d *Diagram) numNewVertices(f FaceID) int {
	count := 0
	start := d.g.f(f).edge
	cur := start
	for {
		v := d.g.target(cur)
		if d.g.v(v).status == statusNew && d.g.v(v).vtype != typeSepPoint {
			count++
		}
		cur = d.g.e(cur).next
		if cur == start {
			break
		}
	}
	return count
}
