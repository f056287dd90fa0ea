package index

import (
	"io"
	goMath "math"
	"os"

	"github.com/marekgalovic/annindex/index/space"
	"github.com/marekgalovic/annindex/math"

	"github.com/pkg/errors"
)

const (
	loadPreallocLimit = 1 << 20
	noEntrypoint      = int64(-1)
)

// Save writes the whole index: header, config, node levels and edges, the
// vector block, tombstones and a checksum. Writers are blocked meanwhile.
func (this *Hnsw) Save(w io.Writer) error {
	this.resizeMu.Lock()
	defer this.resizeMu.Unlock()

	this.labelsMu.Lock()
	defer this.labelsMu.Unlock()

	cw := newChecksumWriter(w)
	if err := writeHeader(cw, hnswMagic, this.space); err != nil {
		return err
	}

	config := *this.config
	config.ef = this.Ef()
	if err := config.save(cw); err != nil {
		return err
	}

	entrypointId, entrypointLevel := noEntrypoint, int32(-1)
	if entrypoint := this.entrypoint.Load(); entrypoint != nil {
		entrypointId, entrypointLevel = int64(entrypoint.id), int32(entrypoint.level)
	}
	if err := cw.write(uint64(this.maxElements), uint64(this.curCount), entrypointId, entrypointLevel); err != nil {
		return err
	}

	nodes := this.nodes[:this.curCount]
	for _, node := range nodes {
		if err := cw.write(node.Label(), int32(node.level)); err != nil {
			return err
		}
		for l := 0; l <= node.level; l++ {
			edges := node.getEdges(l)
			if err := cw.write(uint32(len(edges)), edges); err != nil {
				return err
			}
		}
	}

	for _, node := range nodes {
		if err := node.Vector().Save(cw); err != nil {
			return err
		}
	}

	if _, err := this.tombstones.WriteTo(cw); err != nil {
		return err
	}

	if err := cw.close(); err != nil {
		return err
	}

	this.log.Infof("Saved %d elements (%d deleted)", this.curCount, this.tombstones.Count())
	return nil
}

func (this *Hnsw) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "Failed to create index file")
	}
	if err := this.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadHnsw restores an index written by Save. The space is not persisted
// and must match the stored dimension and kind. Only HnswAllowReplaceDeleted
// and HnswVisitedPoolSize options take effect, the rest is read from r.
func LoadHnsw(r io.Reader, s space.Space, options ...HnswOption) (*Hnsw, error) {
	if s == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "Space is required")
	}

	cr := newChecksumReader(r)
	if err := readHeader(cr, hnswMagic, s); err != nil {
		return nil, err
	}

	config := newHnswConfig(options)
	if err := config.load(cr); err != nil {
		return nil, readError(err)
	}
	if err := config.validate(); err != nil {
		return nil, corrupt("Invalid config: %v", err)
	}

	var maxElements, curCount uint64
	var entrypointId int64
	var entrypointLevel int32
	if err := cr.read(&maxElements, &curCount, &entrypointId, &entrypointLevel); err != nil {
		return nil, err
	}
	if maxElements > goMath.MaxUint32 || curCount > maxElements {
		return nil, corrupt("Invalid element counts: %d of %d", curCount, maxElements)
	}
	if entrypointId < noEntrypoint || entrypointId >= int64(curCount) {
		return nil, corrupt("Invalid entrypoint %d", entrypointId)
	}

	index := newHnsw(s, config)

	nodes := make([]*hnswNode, 0, math.MinInt(int(curCount), loadPreallocLimit))
	for id := uint64(0); id < curCount; id++ {
		node, err := index.loadNode(cr, uint32(id), curCount)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	for _, node := range nodes {
		vector := make(math.Vector, s.Dim())
		if err := vector.Load(cr); err != nil {
			return nil, readError(err)
		}
		node.setVector(vector)
	}

	if _, err := index.tombstones.ReadFrom(cr); err != nil {
		return nil, readError(err)
	}
	if err := cr.verify(); err != nil {
		return nil, err
	}

	if err := index.restore(nodes, uint(maxElements), entrypointId, int(entrypointLevel)); err != nil {
		return nil, err
	}

	index.log.Infof("Loaded %d elements (%d deleted)", index.curCount, index.tombstones.Count())
	return index, nil
}

func LoadHnswFile(path string, s space.Space, options ...HnswOption) (*Hnsw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open index file")
	}
	defer f.Close()

	return LoadHnsw(f, s, options...)
}

func (this *Hnsw) loadNode(r *checksumReader, id uint32, curCount uint64) (*hnswNode, error) {
	var label uint64
	var level int32
	if err := r.read(&label, &level); err != nil {
		return nil, err
	}
	if level < 0 || level > maxLevel {
		return nil, corrupt("Invalid level %d of element %d", level, id)
	}

	node := newHnswNode(label, nil, int(level))
	var count uint32
	for l := 0; l <= int(level); l++ {
		if err := r.read(&count); err != nil {
			return nil, err
		}
		if int(count) > this.maxNeighbors(l) {
			return nil, corrupt("Element %d has %d edges on level %d", id, count, l)
		}

		edges := make([]uint32, count)
		if err := r.read(edges); err != nil {
			return nil, err
		}
		for _, edge := range edges {
			if uint64(edge) >= curCount || edge == id {
				return nil, corrupt("Element %d has invalid edge %d on level %d", id, edge, l)
			}
		}
		node.edges[l] = edges
	}

	return node, nil
}

// restore validates the decoded graph and installs it into the index.
func (this *Hnsw) restore(nodes []*hnswNode, maxElements uint, entrypointId int64, entrypointLevel int) error {
	for id, node := range nodes {
		for l := 0; l <= node.level; l++ {
			for _, edge := range node.edges[l] {
				if nodes[edge].level < l {
					return corrupt("Element %d links to element %d above its level", id, edge)
				}
			}
		}
	}

	if slot, found := this.tombstones.NextSet(uint(len(nodes))); found {
		return corrupt("Tombstone %d outside of occupied elements", slot)
	}

	for id, node := range nodes {
		if this.tombstones.Test(uint(id)) {
			node.setDeleted()
			continue
		}
		if _, exists := this.labels.get(node.Label()); exists {
			return corrupt("Duplicate label %d", node.Label())
		}
		this.labels.set(node.Label(), uint32(id))
	}
	for id, node := range nodes {
		if !node.isDeleted() {
			continue
		}
		if _, live := this.labels.get(node.Label()); !live {
			this.deletedLabels.set(node.Label(), uint32(id))
		}
	}

	if entrypointId == noEntrypoint {
		if this.labels.len() > 0 {
			return corrupt("Missing entrypoint")
		}
	} else {
		node := nodes[entrypointId]
		if node.isDeleted() || node.level != entrypointLevel {
			return corrupt("Invalid entrypoint %d", entrypointId)
		}
		this.entrypoint.Store(&hnswEntrypoint{id: uint32(entrypointId), level: entrypointLevel})
	}

	if err := this.allocate(maxElements); err != nil {
		return err
	}
	copy(this.nodes, nodes)
	this.curCount = uint(len(nodes))

	return nil
}
