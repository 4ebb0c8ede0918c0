// Package voronoi computes 2D Voronoi diagrams (https://en.wikipedia.org/wiki/Voronoi_diagram)
// of point sites and line-segment sites by incremental insertion, following the
// topology-oriented method of Sugihara and Iri ("algorithm A"), extended to
// line segments with null-faces and separator edges. Each insertion grafts the
// new site into an existing half-edge diagram by local surgery only; the
// diagram is never recomputed globally.
package voronoi
