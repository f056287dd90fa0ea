package index

import (
	"sync"
	"sync/atomic"

	"github.com/marekgalovic/annindex/math"
)

// hnswNode owns one adjacency list per layer 0..level. Edges hold internal
// ids into the index arena.
type hnswNode struct {
	label       uint64
	level       int
	deleted     uint32
	vector      atomic.Pointer[math.Vector]
	edges       [][]uint32
	edgeMutexes []sync.RWMutex
}

func newHnswNode(label uint64, vector math.Vector, level int) *hnswNode {
	node := &hnswNode{
		label:       label,
		level:       level,
		edges:       make([][]uint32, level+1),
		edgeMutexes: make([]sync.RWMutex, level+1),
	}
	node.vector.Store(&vector)

	return node
}

func (this *hnswNode) Label() uint64 {
	return atomic.LoadUint64(&this.label)
}

func (this *hnswNode) setLabel(label uint64) {
	atomic.StoreUint64(&this.label, label)
}

func (this *hnswNode) Vector() math.Vector {
	return *this.vector.Load()
}

func (this *hnswNode) setVector(vector math.Vector) {
	this.vector.Store(&vector)
}

func (this *hnswNode) isDeleted() bool {
	return atomic.LoadUint32(&this.deleted) == 1
}

func (this *hnswNode) setDeleted() {
	atomic.StoreUint32(&this.deleted, 1)
}

func (this *hnswNode) unsetDeleted() {
	atomic.StoreUint32(&this.deleted, 0)
}

func (this *hnswNode) edgesCount(level int) int {
	defer this.edgeMutexes[level].RUnlock()
	this.edgeMutexes[level].RLock()

	return len(this.edges[level])
}

// getEdges returns a copy of the adjacency list at level.
func (this *hnswNode) getEdges(level int) []uint32 {
	defer this.edgeMutexes[level].RUnlock()
	this.edgeMutexes[level].RLock()

	edges := make([]uint32, len(this.edges[level]))
	copy(edges, this.edges[level])
	return edges
}

func (this *hnswNode) setEdges(level int, edges []uint32) {
	defer this.edgeMutexes[level].Unlock()
	this.edgeMutexes[level].Lock()

	this.edges[level] = edges
}

func (this *hnswNode) hasEdge(level int, id uint32) bool {
	for _, edge := range this.edges[level] {
		if edge == id {
			return true
		}
	}
	return false
}
