package index

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitedSetReset(t *testing.T) {
	set := newVisitedSet(10)

	set.visit(3)
	assert.True(t, set.visited(3))
	assert.False(t, set.visited(4))

	set.reset()
	assert.False(t, set.visited(3))
}

func TestVisitedSetGenerationWrapAround(t *testing.T) {
	set := newVisitedSet(4)
	set.visit(1)
	set.generation = ^uint16(0)
	set.visit(2)

	set.reset()
	assert.Equal(t, uint16(1), set.generation)
	for id := uint32(0); id < 4; id++ {
		assert.False(t, set.visited(id))
	}
}

func TestVisitedPoolReuse(t *testing.T) {
	pool := newVisitedPool(16, 2)

	a, err := pool.acquire(context.Background())
	require.Nil(t, err)
	a.visit(5)
	pool.release(a)

	b, err := pool.acquire(context.Background())
	require.Nil(t, err)
	assert.Same(t, a, b)
	assert.False(t, b.visited(5))
	pool.release(b)
}

func TestVisitedPoolBackpressure(t *testing.T) {
	pool := newVisitedPool(16, 1)

	a, err := pool.acquire(context.Background())
	require.Nil(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = pool.acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	acquired := make(chan *visitedSet)
	go func() {
		set, _ := pool.acquire(context.Background())
		acquired <- set
	}()

	select {
	case <-acquired:
		t.Fatal("acquire should block while the pool is exhausted")
	case <-time.After(20 * time.Millisecond):
	}

	pool.release(a)
	select {
	case set := <-acquired:
		assert.NotNil(t, set)
		pool.release(set)
	case <-time.After(time.Second):
		t.Fatal("acquire did not unblock after release")
	}
}
