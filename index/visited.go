package index

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// visitedSet marks internal ids seen by a single traversal. Marks equal to
// the current generation are visited, so reset is O(1) except on wrap around.
type visitedSet struct {
	marks      []uint16
	generation uint16
}

func newVisitedSet(size uint) *visitedSet {
	return &visitedSet{
		marks:      make([]uint16, size),
		generation: 1,
	}
}

func (this *visitedSet) reset() {
	this.generation++
	if this.generation == 0 {
		for i := range this.marks {
			this.marks[i] = 0
		}
		this.generation = 1
	}
}

func (this *visitedSet) visit(id uint32) {
	this.marks[id] = this.generation
}

func (this *visitedSet) visited(id uint32) bool {
	return this.marks[id] == this.generation
}

// visitedPool hands out at most maxSets visited sets at a time. Acquire
// blocks while all of them are in use.
type visitedPool struct {
	size    uint
	maxSets int64
	sem     *semaphore.Weighted

	mu   sync.Mutex
	free []*visitedSet
}

func newVisitedPool(size uint, maxSets int) *visitedPool {
	if maxSets < 1 {
		maxSets = 1
	}
	return &visitedPool{
		size:    size,
		maxSets: int64(maxSets),
		sem:     semaphore.NewWeighted(int64(maxSets)),
		free:    make([]*visitedSet, 0, maxSets),
	}
}

func (this *visitedPool) acquire(ctx context.Context) (*visitedSet, error) {
	if err := this.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	this.mu.Lock()
	var set *visitedSet
	if n := len(this.free); n > 0 {
		set = this.free[n-1]
		this.free = this.free[:n-1]
	}
	this.mu.Unlock()

	if set == nil {
		set = newVisitedSet(this.size)
	} else {
		set.reset()
	}
	return set, nil
}

func (this *visitedPool) release(set *visitedSet) {
	this.mu.Lock()
	if uint(len(set.marks)) == this.size {
		this.free = append(this.free, set)
	}
	this.mu.Unlock()

	this.sem.Release(1)
}
