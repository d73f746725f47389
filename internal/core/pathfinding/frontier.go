package pathfinding

import "container/heap"

// frontierItem is one queued visit. Stale items are not removed when a
// node's cost improves; the node is simply queued again.
type frontierItem struct {
	node     int
	priority float64
	seq      uint64
}

// frontierPQ implements heap.Interface as a min-heap on priority with
// insertion order breaking ties.
type frontierPQ []frontierItem

func (pq frontierPQ) Len() int { return len(pq) }
func (pq frontierPQ) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}
func (pq frontierPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *frontierPQ) Push(x any)   { *pq = append(*pq, x.(frontierItem)) }
func (pq *frontierPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// frontier wraps frontierPQ with a monotonic sequence counter.
type frontier struct {
	pq  frontierPQ
	seq uint64
}

func newFrontier(capacity int) *frontier {
	return &frontier{pq: make(frontierPQ, 0, capacity)}
}

func (f *frontier) push(node int, priority float64) {
	heap.Push(&f.pq, frontierItem{node: node, priority: priority, seq: f.seq})
	f.seq++
}

func (f *frontier) pop() frontierItem { return heap.Pop(&f.pq).(frontierItem) }

func (f *frontier) empty() bool { return len(f.pq) == 0 }
