package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinPriorityQueue(t *testing.T) {
	q := NewMinPriorityQueue()

	q.Push(NewPriorityQueueItem(3, 30))
	q.Push(NewPriorityQueueItem(1, 10))
	q.Push(NewPriorityQueueItem(2, 20))

	assert.Equal(t, uint32(10), q.Peek().Id())
	assert.Equal(t, uint32(10), q.Peek().Id())

	assert.Equal(t, uint32(10), q.Pop().Id())
	assert.Equal(t, uint32(20), q.Pop().Id())
	assert.Equal(t, uint32(30), q.Pop().Id())
	assert.Equal(t, 0, q.Len())
}

func TestMaxPriorityQueue(t *testing.T) {
	q := NewMaxPriorityQueue()

	q.Push(NewPriorityQueueItem(1, 10))
	q.Push(NewPriorityQueueItem(3, 30))
	q.Push(NewPriorityQueueItem(2, 20))

	assert.Equal(t, uint32(30), q.Peek().Id())
	assert.Equal(t, float32(3), q.Peek().Priority())

	assert.Equal(t, uint32(30), q.Pop().Id())
	assert.Equal(t, uint32(20), q.Pop().Id())
	assert.Equal(t, uint32(10), q.Pop().Id())
	assert.Equal(t, 0, q.Len())
}

func TestPriorityQueueNegativePriorities(t *testing.T) {
	q := NewMinPriorityQueue(
		NewPriorityQueueItem(-7, 1),
		NewPriorityQueueItem(0.5, 2),
		NewPriorityQueueItem(-8, 3),
	)

	assert.Equal(t, uint32(3), q.Pop().Id())
	assert.Equal(t, uint32(1), q.Pop().Id())
	assert.Equal(t, uint32(2), q.Pop().Id())
}

func TestPriorityQueueReverse(t *testing.T) {
	q := NewMaxPriorityQueue()

	q.Push(NewPriorityQueueItem(3, 30))
	q.Push(NewPriorityQueueItem(1, 10))
	q.Push(NewPriorityQueueItem(2, 20))

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, uint32(30), q.Peek().Id())

	rq := q.Reverse()

	assert.Equal(t, 3, rq.Len())
	assert.Equal(t, uint32(10), rq.Peek().Id())

	assert.Equal(t, uint32(10), rq.Pop().Id())
	assert.Equal(t, uint32(20), rq.Pop().Id())
	assert.Equal(t, uint32(30), rq.Pop().Id())
	assert.Equal(t, 0, rq.Len())

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, uint32(30), q.Peek().Id())
}

func TestPriorityQueueIds(t *testing.T) {
	q := NewMaxPriorityQueue()

	q.Push(NewPriorityQueueItem(3, 30))
	q.Push(NewPriorityQueueItem(1, 10))
	q.Push(NewPriorityQueueItem(2, 20))

	assert.Equal(t, 3, len(q.ToSlice()))
	assert.ElementsMatch(t, []uint32{10, 20, 30}, q.Ids())
	assert.Equal(t, 3, q.Len())
}

func TestPriorityQueueEmptyPopPanics(t *testing.T) {
	q := NewMinPriorityQueue()
	assert.Panics(t, func() { q.Pop() })
	assert.Panics(t, func() { q.Peek() })
}
