package voronoi

// vertexStatus is the role a vertex plays during one insertion cycle.
type vertexStatus int8

const (
	statusUndecided vertexStatus = iota
	statusIn                     // inside the clearance disk of the new site; will be deleted
	statusOut                    // survives the insertion
	statusNew                    // created during this insertion on an IN-OUT edge
)

func (s vertexStatus) String() string {
	switch s {
	case statusIn:
		return "IN"
	case statusOut:
		return "OUT"
	case statusNew:
		return "NEW"
	}
	return "UNDECIDED"
}

// vertexType is the structural role of a vertex.
type vertexType int8

const (
	typeNormal    vertexType = iota
	typeApex                 // placed at the closest point of a bisector to its sites
	typeSplit                // transient subdivision preventing deletion loops
	typePointSite            // the generator point itself
	typeEndpoint             // segment endpoint on a null-face
	typeSepPoint             // separator endpoint on a null-face
	typeOuter                // far-away vertex of the initial bounding diagram
)

func (t vertexType) String() string {
	switch t {
	case typeApex:
		return "APEX"
	case typeSplit:
		return "SPLIT"
	case typePointSite:
		return "POINTSITE"
	case typeEndpoint:
		return "ENDPOINT"
	case typeSepPoint:
		return "SEPPOINT"
	case typeOuter:
		return "OUTER"
	}
	return "NORMAL"
}

// vertexRecord holds the attributes of one diagram vertex.
type vertexRecord struct {
	position Point
	status   vertexStatus
	vtype    vertexType

	index int // stable external index, used for point-site handles

	// dist is the clearance radius: distance to the nearest site(s).
	// Zero on sites, endpoints and separator points.
	dist float64

	// alfa orders vertices counterclockwise around a null-face, see diangle.
	alfa float64

	// k3 routes a NEW vertex to the +1 or -1 offset face of a line site.
	// Zero when undetermined.
	k3 int

	inQueue  bool
	nullFace FaceID // null-face owned by this endpoint, if any
	face     FaceID // for POINTSITE vertices: the face of the site

	out   []EdgeID // outgoing half-edges
	alive bool
}

// inCircle is the signed clearance violation of this vertex with respect
// to p: negative when p lies strictly inside the clearance disk, in which
// case the vertex must be deleted.
func (v *vertexRecord) inCircle(p Point) float64 {
	return p.Sub(v.position).Norm() - v.dist
}

func (v *vertexRecord) initDist(p Point) {
	v.dist = p.Sub(v.position).Norm()
}

func (v *vertexRecord) zeroDist() { v.dist = 0 }

func (v *vertexRecord) setAlfa(dir Point) {
	v.alfa = diangle(dir.X, dir.Y)
}

// reset readies the vertex for the next insertion cycle.
func (v *vertexRecord) reset() {
	v.status = statusUndecided
	v.inQueue = false
}
