package voronoi

import "math"

// faceGrid is a spatial index over point-site faces: a uniform n x n bin
// grid covering the far square, used for nearest-face lookup when seeding
// an insertion.
type faceGrid struct {
	far     float64
	nBins   int
	binSize float64
	bins    [][]gridEntry
}

type gridEntry struct {
	face FaceID
	pos  Point
}

func newFaceGrid(far float64, nBins int) *faceGrid {
	if nBins < 1 {
		nBins = 1
	}
	return &faceGrid{
		far:     far,
		nBins:   nBins,
		binSize: 2 * far / float64(nBins),
		bins:    make([][]gridEntry, nBins*nBins),
	}
}

func (fg *faceGrid) binIndex(x float64) int {
	i := int((x + fg.far) / fg.binSize)
	if i < 0 {
		i = 0
	}
	if i >= fg.nBins {
		i = fg.nBins - 1
	}
	return i
}

// addFace indexes a point-site face by its generator position.
func (fg *faceGrid) addFace(f FaceID, p Point) {
	i, j := fg.binIndex(p.X), fg.binIndex(p.Y)
	fg.bins[i*fg.nBins+j] = append(fg.bins[i*fg.nBins+j], gridEntry{face: f, pos: p})
}

// removeFace drops a face from the index (used when a point-site face is
// contracted away by a collinear segment chain).
func (fg *faceGrid) removeFace(f FaceID) {
	for b := range fg.bins {
		for i, ge := range fg.bins[b] {
			if ge.face == f {
				fg.bins[b] = append(fg.bins[b][:i], fg.bins[b][i+1:]...)
				return
			}
		}
	}
}

// closestFace searches outward ring by ring from the bin of p; once a
// candidate ring is found one extra ring is scanned, since a face in the
// next ring can still be closer than one in the corner of the current.
func (fg *faceGrid) closestFace(p Point) FaceID {
	ci, cj := fg.binIndex(p.X), fg.binIndex(p.Y)
	best := noFace
	bestDist := math.Inf(1)
	foundAt := -1
	for r := 0; r < fg.nBins; r++ {
		if foundAt >= 0 && r > foundAt+1 {
			break
		}
		for i := ci - r; i <= ci+r; i++ {
			for j := cj - r; j <= cj+r; j++ {
				if i < 0 || j < 0 || i >= fg.nBins || j >= fg.nBins {
					continue
				}
				if maxInt(absInt(i-ci), absInt(j-cj)) != r {
					continue // interior bins already scanned
				}
				for _, ge := range fg.bins[i*fg.nBins+j] {
					d := ge.pos.Sub(p).Norm()
					if d < bestDist {
						bestDist = d
						best = ge.face
					}
				}
			}
		}
		if best != noFace && foundAt < 0 {
			foundAt = r
		}
	}
	return best
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
