package index

import (
	"io"
	goMath "math"
	"os"

	"github.com/marekgalovic/annindex/index/space"

	"github.com/pkg/errors"
)

// Save writes the header, element counts, every occupied slot as
// (label, vector) and a checksum.
func (this *Bruteforce) Save(w io.Writer) error {
	this.mu.RLock()
	defer this.mu.RUnlock()

	cw := newChecksumWriter(w)
	if err := writeHeader(cw, bruteforceMagic, this.space); err != nil {
		return err
	}
	if err := cw.write(uint64(this.maxElements), uint64(this.curCount)); err != nil {
		return err
	}
	for slot := uint(0); slot < this.curCount; slot++ {
		if err := cw.write(this.slotLabels[slot]); err != nil {
			return err
		}
		if err := this.vector(slot).Save(cw); err != nil {
			return err
		}
	}
	if err := cw.close(); err != nil {
		return err
	}

	this.log.Infof("Saved %d elements", this.curCount)
	return nil
}

func (this *Bruteforce) SaveFile(path string) error {
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

func LoadBruteforce(r io.Reader, s space.Space) (*Bruteforce, error) {
	if s == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "Space is required")
	}

	cr := newChecksumReader(r)
	if err := readHeader(cr, bruteforceMagic, s); err != nil {
		return nil, err
	}

	var maxElements, curCount uint64
	if err := cr.read(&maxElements, &curCount); err != nil {
		return nil, err
	}
	if maxElements > goMath.MaxUint32 || curCount > maxElements {
		return nil, corrupt("Invalid element counts: %d of %d", curCount, maxElements)
	}

	index, err := NewBruteforce(s, 0)
	if err != nil {
		return nil, err
	}

	labels := make([]uint64, 0)
	data := make([]float32, 0)
	label := uint64(0)
	vector := make([]float32, s.Dim())
	for slot := uint64(0); slot < curCount; slot++ {
		if err := cr.read(&label, vector); err != nil {
			return nil, err
		}
		labels = append(labels, label)
		data = append(data, vector...)
	}
	if err := cr.verify(); err != nil {
		return nil, err
	}

	if err := index.allocate(uint(maxElements)); err != nil {
		return nil, err
	}
	for slot, label := range labels {
		if _, exists := index.labels.get(label); exists {
			return nil, corrupt("Duplicate label %d", label)
		}
		index.labels.set(label, uint32(slot))
		index.slotLabels[slot] = label
	}
	copy(index.data, data)
	index.curCount = uint(curCount)

	index.log.Infof("Loaded %d elements", index.curCount)
	return index, nil
}

func LoadBruteforceFile(path string, s space.Space) (*Bruteforce, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open index file")
	}
	defer f.Close()

	return LoadBruteforce(f, s)
}
