package index

import (
	"context"
	"io"
	"os"

	"github.com/marekgalovic/annindex/index/space"
	"github.com/marekgalovic/annindex/math"

	"github.com/pkg/errors"
)

// Index is the surface shared by Hnsw and Bruteforce.
type Index interface {
	Space() space.Space
	Len() int
	MaxElements() uint
	CurrentCount() uint
	Labels() []uint64
	AddPoint(math.Vector, uint64) error
	GetVector(uint64) (math.Vector, error)
	SearchKnn(context.Context, math.Vector, uint, Filter) (SearchResult, error)
	Resize(uint) error
	Save(io.Writer) error
}

var (
	_ Index = (*Hnsw)(nil)
	_ Index = (*Bruteforce)(nil)
)

// KindOf names the structure behind idx: "hnsw" or "bruteforce".
func KindOf(idx Index) string {
	switch i := idx.(type) {
	case *Hnsw:
		return hnswKind
	case *Bruteforce:
		return bruteforceKind
	case *Normalized:
		return KindOf(i.Index)
	}
	return ""
}

// SearchByLabel queries idx with the vector stored under label.
func SearchByLabel(ctx context.Context, idx Index, label uint64, k uint, filter Filter) (SearchResult, error) {
	vector, err := idx.GetVector(label)
	if err != nil {
		return nil, err
	}
	return idx.SearchKnn(ctx, vector, k, filter)
}

// LabelDistance returns the distance between the vectors stored under a and b.
func LabelDistance(idx Index, a, b uint64) (float32, error) {
	vectorA, err := idx.GetVector(a)
	if err != nil {
		return 0, err
	}
	vectorB, err := idx.GetVector(b)
	if err != nil {
		return 0, err
	}
	return idx.Space().Distance(vectorA, vectorB)
}

// Remove deletes label from idx: tombstones it in an Hnsw, removes it from a
// Bruteforce.
func Remove(idx Index, label uint64) error {
	switch i := idx.(type) {
	case *Hnsw:
		return i.MarkDeleted(label)
	case *Bruteforce:
		return i.RemovePoint(label)
	case *Normalized:
		return Remove(i.Index, label)
	}
	return errors.Wrapf(ErrInvalidArgument, "Unsupported index %T", idx)
}

// LoadFile loads an index of whichever kind is stored at path. options
// apply only to Hnsw files.
func LoadFile(path string, options ...HnswOption) (Index, *Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Failed to open index file")
	}
	defer f.Close()

	header, err := ReadHeader(f)
	if err != nil {
		return nil, nil, err
	}
	s, err := header.Space()
	if err != nil {
		return nil, nil, corrupt("Invalid space: %v", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, errors.Wrap(err, "Failed to read index file")
	}

	var idx Index
	switch header.Kind {
	case hnswKind:
		idx, err = LoadHnsw(f, s, options...)
	default:
		idx, err = LoadBruteforce(f, s)
	}
	if err != nil {
		return nil, nil, err
	}
	return idx, header, nil
}
