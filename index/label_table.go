package index

import (
	"github.com/tidwall/btree"
)

const labelTableDegree = 32

// labelTable maps labels to internal ids in label order. It is not safe for
// concurrent use.
type labelTable struct {
	m *btree.Map[uint64, uint32]
}

func newLabelTable() *labelTable {
	return &labelTable{m: btree.NewMap[uint64, uint32](labelTableDegree)}
}

func (this *labelTable) get(label uint64) (uint32, bool) {
	return this.m.Get(label)
}

func (this *labelTable) set(label uint64, id uint32) {
	this.m.Set(label, id)
}

func (this *labelTable) delete(label uint64) (uint32, bool) {
	return this.m.Delete(label)
}

func (this *labelTable) len() int {
	return this.m.Len()
}

func (this *labelTable) labels() []uint64 {
	return this.m.Keys()
}
