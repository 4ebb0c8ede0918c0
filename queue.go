package voronoi

import "container/heap"

// vertexQueue orders UNDECIDED vertices by the magnitude of their
// in-circle residual, largest first: the in-circle predicate is assumed
// more reliable the larger |h| is, so the most confident topological
// decisions are taken first. Equal residuals pop in insertion order.
type vertexQueueItem struct {
	v   VertexID
	h   float64
	seq int
}

type vertexQueue struct {
	items []vertexQueueItem
	seq   int
}

func (q *vertexQueue) Len() int { return len(q.items) }

func (q *vertexQueue) Less(i, j int) bool {
	hi, hj := q.items[i].h, q.items[j].h
	if hi < 0 {
		hi = -hi
	}
	if hj < 0 {
		hj = -hj
	}
	if hi != hj {
		return hi > hj
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *vertexQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *vertexQueue) Push(x any) { q.items = append(q.items, x.(vertexQueueItem)) }

func (q *vertexQueue) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	q.items = old[:n-1]
	return it
}

func (q *vertexQueue) push(v VertexID, h float64) {
	q.seq++
	heap.Push(q, vertexQueueItem{v: v, h: h, seq: q.seq})
}

func (q *vertexQueue) pop() (VertexID, float64) {
	it := heap.Pop(q).(vertexQueueItem)
	return it.v, it.h
}

func (q *vertexQueue) empty() bool { return len(q.items) == 0 }

func (q *vertexQueue) clear() { q.items = q.items[:0] }
