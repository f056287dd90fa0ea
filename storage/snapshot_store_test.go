package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/marekgalovic/annindex/index"
	"github.com/marekgalovic/annindex/index/space"
	"github.com/marekgalovic/annindex/math"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SnapshotStore {
	store, err := OpenSnapshotStore("", true)
	require.Nil(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestHnsw(t *testing.T, n int) (*index.Hnsw, []math.Vector) {
	idx, err := index.NewHnsw(space.NewL2(8), uint(n), index.HnswEf(50))
	require.Nil(t, err)
	vectors := math.RandomVectors(3, n, 8)
	for i, v := range vectors {
		require.Nil(t, idx.AddPoint(v, uint64(i)))
	}
	return idx, vectors
}

func TestSnapshotStorePutLoadHnsw(t *testing.T) {
	store := newTestStore(t)
	idx, vectors := newTestHnsw(t, 100)
	require.Nil(t, idx.MarkDeleted(3))

	snapshot, err := store.Put("items", idx)
	require.Nil(t, err)
	assert.Equal(t, "items", snapshot.Name)
	assert.Equal(t, "hnsw", snapshot.Kind)
	assert.Equal(t, space.L2, snapshot.Metric)
	assert.Equal(t, uint(8), snapshot.Dim)
	assert.Equal(t, 99, snapshot.Len)

	loaded, stored, err := store.LoadHnsw("items")
	require.Nil(t, err)
	assert.Equal(t, snapshot.Id, stored.Id)
	assert.True(t, snapshot.CreatedAt.Equal(stored.CreatedAt))
	assert.Equal(t, idx.Labels(), loaded.Labels())
	assert.True(t, loaded.IsDeleted(3))

	result, err := loaded.SearchKnn(context.Background(), vectors[10], 1, nil)
	require.Nil(t, err)
	assert.Equal(t, []uint64{10}, result.Labels())
}

func TestSnapshotStorePutLoadBruteforce(t *testing.T) {
	store := newTestStore(t)
	idx, err := index.NewBruteforce(space.NewInnerProduct(4), 10)
	require.Nil(t, err)
	require.Nil(t, idx.AddPoint(math.Vector{1, 2, 3, 4}, 7))

	_, err = store.Put("exact", idx)
	require.Nil(t, err)

	loaded, snapshot, err := store.LoadBruteforce("exact")
	require.Nil(t, err)
	assert.Equal(t, "bruteforce", snapshot.Kind)
	assert.Equal(t, space.InnerProduct, snapshot.Metric)
	vector, err := loaded.GetVector(7)
	require.Nil(t, err)
	assert.Equal(t, math.Vector{1, 2, 3, 4}, vector)

	_, _, err = store.LoadHnsw("exact")
	assert.ErrorIs(t, err, index.ErrCorruptIndexFile)
}

func TestSnapshotStoreReplaceListDelete(t *testing.T) {
	store := newTestStore(t)
	small, _ := newTestHnsw(t, 10)
	large, _ := newTestHnsw(t, 50)

	first, err := store.Put("b", small)
	require.Nil(t, err)
	_, err = store.Put("a", small)
	require.Nil(t, err)
	second, err := store.Put("b", large)
	require.Nil(t, err)
	assert.NotEqual(t, first.Id, second.Id)

	snapshot, err := store.Get("b")
	require.Nil(t, err)
	assert.Equal(t, second.Id, snapshot.Id)
	assert.Equal(t, 50, snapshot.Len)

	snapshots, err := store.List()
	require.Nil(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "a", snapshots[0].Name)
	assert.Equal(t, "b", snapshots[1].Name)

	require.Nil(t, store.Delete("a"))
	_, err = store.Get("a")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.ErrorIs(t, store.Delete("a"), ErrSnapshotNotFound)

	snapshots, err = store.List()
	require.Nil(t, err)
	assert.Len(t, snapshots, 1)
}

func TestSnapshotStoreInvalidName(t *testing.T) {
	store := newTestStore(t)
	idx, _ := newTestHnsw(t, 1)

	_, err := store.Put("", idx)
	assert.ErrorIs(t, err, ErrInvalidSnapshotName)

	_, _, err = store.Read("missing")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotStoreOnDisk(t *testing.T) {
	dir := t.TempDir()
	idx, _ := newTestHnsw(t, 20)

	store, err := OpenSnapshotStore(dir, false)
	require.Nil(t, err)
	_, err = store.Put("persisted", idx)
	require.Nil(t, err)
	require.Nil(t, store.Close())

	store, err = OpenSnapshotStore(dir, false)
	require.Nil(t, err)
	defer store.Close()

	loaded, _, err := store.LoadHnsw("persisted")
	require.Nil(t, err)
	assert.Equal(t, 20, loaded.Len())
}

func TestSnapshotMetadataRoundTrip(t *testing.T) {
	store := newTestStore(t)
	idx, _ := newTestHnsw(t, 5)
	snapshot, err := store.Put("meta", idx)
	require.Nil(t, err)

	decoded := &Snapshot{}
	require.Nil(t, decoded.unmarshal(snapshot.marshal()))
	assert.Equal(t, snapshot.Name, decoded.Name)
	assert.Equal(t, snapshot.Size, decoded.Size)

	assert.NotNil(t, decoded.unmarshal(snapshot.marshal()[:20]))
	assert.NotNil(t, decoded.unmarshal(nil))
}

func TestSnapshotMetadataStringBounds(t *testing.T) {
	data := (&Snapshot{Name: "meta", Kind: "hnsw"}).marshal()

	// Name length prefix follows the 16 byte id.
	oversized := append([]byte{}, data...)
	oversized[16], oversized[17] = 0xff, 0xff
	assert.NotNil(t, (&Snapshot{}).unmarshal(oversized))

	name, err := readString(bytes.NewReader([]byte{0, 4, 'm', 'e', 't', 'a'}))
	require.Nil(t, err)
	assert.Equal(t, "meta", name)

	_, err = readString(bytes.NewReader([]byte{0, 5, 'm', 'e', 't', 'a'}))
	assert.NotNil(t, err)
}
