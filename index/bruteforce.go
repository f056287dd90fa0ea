package index

import (
	"context"
	"fmt"
	goMath "math"
	"sync"
	"time"

	"github.com/marekgalovic/annindex/index/space"
	"github.com/marekgalovic/annindex/math"
	"github.com/marekgalovic/annindex/metrics"
	"github.com/marekgalovic/annindex/utils"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const bruteforceKind = "bruteforce"

// Bruteforce is an exact index scanning every stored vector. Vectors live in
// one contiguous buffer; removal moves the last slot into the freed one.
type Bruteforce struct {
	space space.Space
	dim   int

	mu          sync.RWMutex
	maxElements uint
	curCount    uint
	data        []float32
	slotLabels  []uint64
	labels      *labelTable

	log *log.Entry
}

func NewBruteforce(s space.Space, maxElements uint) (*Bruteforce, error) {
	if s == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "Space is required")
	}

	index := &Bruteforce{
		space:  s,
		dim:    int(s.Dim()),
		labels: newLabelTable(),
		log: log.WithFields(log.Fields{
			"index": bruteforceKind,
			"space": s,
		}),
	}
	if err := index.allocate(maxElements); err != nil {
		return nil, err
	}

	return index, nil
}

func (this *Bruteforce) allocate(maxElements uint) (err error) {
	if uint64(maxElements) > goMath.MaxUint32 || (this.dim > 0 && maxElements > uint(goMath.MaxInt)/uint(this.dim)) {
		return errors.Wrapf(ErrAllocationFailure, "Capacity %d exceeds the addressable number of elements", maxElements)
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrAllocationFailure, "%v", r)
		}
	}()

	data := make([]float32, maxElements*uint(this.dim))
	copy(data, this.data[:this.curCount*uint(this.dim)])
	slotLabels := make([]uint64, maxElements)
	copy(slotLabels, this.slotLabels[:this.curCount])

	this.data = data
	this.slotLabels = slotLabels
	this.maxElements = maxElements
	return nil
}

func (this *Bruteforce) String() string {
	return fmt.Sprintf("Bruteforce(space: %s, maxElements: %d)", this.space, this.MaxElements())
}

func (this *Bruteforce) Space() space.Space {
	return this.space
}

func (this *Bruteforce) Len() int {
	this.mu.RLock()
	defer this.mu.RUnlock()

	return int(this.curCount)
}

func (this *Bruteforce) MaxElements() uint {
	this.mu.RLock()
	defer this.mu.RUnlock()

	return this.maxElements
}

func (this *Bruteforce) CurrentCount() uint {
	this.mu.RLock()
	defer this.mu.RUnlock()

	return this.curCount
}

func (this *Bruteforce) Labels() []uint64 {
	this.mu.RLock()
	defer this.mu.RUnlock()

	return this.labels.labels()
}

func (this *Bruteforce) vector(slot uint) math.Vector {
	offset := slot * uint(this.dim)
	return this.data[offset : offset+uint(this.dim)]
}

func (this *Bruteforce) GetVector(label uint64) (math.Vector, error) {
	this.mu.RLock()
	defer this.mu.RUnlock()

	slot, exists := this.labels.get(label)
	if !exists {
		return nil, errors.Wrapf(ErrLabelNotFound, "label: %d", label)
	}
	return this.vector(uint(slot)).Copy(), nil
}

// AddPoint stores vector under label, overwriting an existing label in place.
func (this *Bruteforce) AddPoint(vector math.Vector, label uint64) error {
	if uint(len(vector)) != this.space.Dim() {
		return errors.Wrapf(ErrDimensionMismatch, "expected %d, got %d", this.space.Dim(), len(vector))
	}

	this.mu.Lock()
	defer this.mu.Unlock()

	slot, exists := this.labels.get(label)
	if !exists {
		if this.curCount >= this.maxElements {
			return errors.Wrapf(ErrCapacityExceeded, "max elements: %d", this.maxElements)
		}
		slot = uint32(this.curCount)
		this.curCount++
		this.labels.set(label, slot)
		this.slotLabels[slot] = label
	}
	copy(this.vector(uint(slot)), vector)

	metrics.Inserts.WithLabelValues(bruteforceKind).Inc()
	return nil
}

// RemovePoint deletes label by moving the last occupied slot into its place.
// Unknown labels are ignored.
func (this *Bruteforce) RemovePoint(label uint64) error {
	this.mu.Lock()
	defer this.mu.Unlock()

	slot, exists := this.labels.delete(label)
	if !exists {
		return nil
	}

	last := uint32(this.curCount - 1)
	if slot != last {
		lastLabel := this.slotLabels[last]
		copy(this.vector(uint(slot)), this.vector(uint(last)))
		this.slotLabels[slot] = lastLabel
		this.labels.set(lastLabel, slot)
	}
	this.curCount--

	metrics.Deletes.WithLabelValues(bruteforceKind).Inc()
	return nil
}

// SearchKnn returns the exact k nearest labels passing filter, ascending.
func (this *Bruteforce) SearchKnn(ctx context.Context, query math.Vector, k uint, filter Filter) (SearchResult, error) {
	if uint(len(query)) != this.space.Dim() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "expected %d, got %d", this.space.Dim(), len(query))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startAt := time.Now()
	defer func() {
		metrics.SearchDuration.WithLabelValues(bruteforceKind).Observe(time.Since(startAt).Seconds())
	}()
	metrics.Searches.WithLabelValues(bruteforceKind).Inc()

	if k == 0 {
		return SearchResult{}, nil
	}

	this.mu.RLock()
	top := utils.NewMaxPriorityQueue()
	for slot := uint(0); slot < this.curCount; slot++ {
		if !admits(filter, this.slotLabels[slot]) {
			continue
		}
		distance := this.space.UncheckedDistance(query, this.vector(slot))
		if uint(top.Len()) < k {
			top.Push(utils.NewPriorityQueueItem(distance, uint32(slot)))
		} else if distance < top.Peek().Priority() {
			top.Pop()
			top.Push(utils.NewPriorityQueueItem(distance, uint32(slot)))
		}
	}

	result := make(SearchResult, top.Len())
	for i := len(result) - 1; i >= 0; i-- {
		item := top.Pop()
		result[i].Label = this.slotLabels[item.Id()]
		result[i].Distance = item.Priority()
	}
	this.mu.RUnlock()

	if result.Insufficient(k) {
		metrics.InsufficientResults.WithLabelValues(bruteforceKind).Inc()
		this.log.WithFields(log.Fields{"k": k, "found": len(result)}).Debug("Insufficient search results")
	}
	return result, nil
}

// Resize changes capacity while keeping all stored points.
func (this *Bruteforce) Resize(maxElements uint) error {
	this.mu.Lock()
	defer this.mu.Unlock()

	if maxElements < this.curCount {
		return errors.Wrapf(ErrInvalidArgument, "Cannot resize, max element is less than the current number of elements: %d < %d", maxElements, this.curCount)
	}

	previous := this.maxElements
	if err := this.allocate(maxElements); err != nil {
		return err
	}

	this.log.Infof("Resized from %d to %d elements", previous, maxElements)
	metrics.Resizes.WithLabelValues(bruteforceKind).Inc()
	return nil
}

// Reset drops every point and reallocates storage for maxElements.
func (this *Bruteforce) Reset(maxElements uint) error {
	this.mu.Lock()
	defer this.mu.Unlock()

	this.curCount = 0
	this.labels = newLabelTable()
	this.data = nil
	this.slotLabels = nil
	return this.allocate(maxElements)
}
