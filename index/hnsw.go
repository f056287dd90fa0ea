package index

import (
	"context"
	"fmt"
	goMath "math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marekgalovic/annindex/index/space"
	"github.com/marekgalovic/annindex/math"
	"github.com/marekgalovic/annindex/metrics"
	"github.com/marekgalovic/annindex/utils"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const LABEL_LOCK_SHARD_COUNT int = 64

const hnswKind = "hnsw"

// Drawn levels are capped so that every node stays loadable.
const maxLevel = 255

type hnswEntrypoint struct {
	id    uint32
	level int
}

// Hnsw is a hierarchical navigable small world graph over a fixed capacity
// arena of nodes. Deleted points are tombstoned and stay in the graph.
//
// Lock order: resizeMu, label op lock, globalMu, labelsMu, node edge locks.
type Hnsw struct {
	space  space.Space
	config *hnswConfig
	ef     int64
	levels *math.LevelGenerator

	resizeMu  sync.RWMutex
	labelOpMu [LABEL_LOCK_SHARD_COUNT]sync.Mutex

	labelsMu      sync.Mutex
	maxElements   uint
	curCount      uint
	nodes         []*hnswNode
	labels        *labelTable
	deletedLabels *labelTable
	tombstones    *bitset.BitSet

	globalMu   sync.Mutex
	entrypoint atomic.Pointer[hnswEntrypoint]

	visitedPool *visitedPool

	log *log.Entry
}

func NewHnsw(s space.Space, maxElements uint, options ...HnswOption) (*Hnsw, error) {
	if s == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "Space is required")
	}
	config := newHnswConfig(options)
	if err := config.validate(); err != nil {
		return nil, err
	}

	index := newHnsw(s, config)
	if err := index.allocate(maxElements); err != nil {
		return nil, err
	}
	index.log.Debugf("Created %s", index)

	return index, nil
}

func newHnsw(s space.Space, config *hnswConfig) *Hnsw {
	return &Hnsw{
		space:         s,
		config:        config,
		ef:            int64(config.ef),
		levels:        math.NewLevelGenerator(config.seed, config.levelMultiplier, maxLevel),
		labels:        newLabelTable(),
		deletedLabels: newLabelTable(),
		tombstones:    bitset.New(0),
		log: log.WithFields(log.Fields{
			"index": hnswKind,
			"space": s,
		}),
	}
}

// allocate grows the node arena to maxElements. Callers hold resizeMu
// exclusively or own the index.
func (this *Hnsw) allocate(maxElements uint) (err error) {
	if uint64(maxElements) > goMath.MaxUint32 {
		return errors.Wrapf(ErrAllocationFailure, "Capacity %d exceeds the addressable number of elements", maxElements)
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrAllocationFailure, "%v", r)
		}
	}()

	nodes := make([]*hnswNode, maxElements)
	copy(nodes, this.nodes)

	this.nodes = nodes
	this.maxElements = maxElements
	this.visitedPool = newVisitedPool(maxElements, this.config.visitedPoolSize)
	return nil
}

func (this *Hnsw) String() string {
	return fmt.Sprintf("HNSW(space: %s, maxElements: %d, config={%s})", this.space, this.MaxElements(), this.config)
}

func (this *Hnsw) Space() space.Space {
	return this.space
}

// Len returns the number of live points.
func (this *Hnsw) Len() int {
	this.labelsMu.Lock()
	defer this.labelsMu.Unlock()

	return this.labels.len()
}

func (this *Hnsw) MaxElements() uint {
	this.labelsMu.Lock()
	defer this.labelsMu.Unlock()

	return this.maxElements
}

// CurrentCount returns the number of occupied slots, tombstones included.
func (this *Hnsw) CurrentCount() uint {
	this.labelsMu.Lock()
	defer this.labelsMu.Unlock()

	return this.curCount
}

func (this *Hnsw) DeletedCount() int {
	this.labelsMu.Lock()
	defer this.labelsMu.Unlock()

	return int(this.tombstones.Count())
}

func (this *Hnsw) Ef() int {
	return int(atomic.LoadInt64(&this.ef))
}

func (this *Hnsw) SetEf(ef int) {
	if ef < 1 {
		ef = 1
	}
	atomic.StoreInt64(&this.ef, int64(ef))
}

func (this *Hnsw) M() int {
	return this.config.m
}

func (this *Hnsw) EfConstruction() int {
	return this.config.efConstruction
}

func (this *Hnsw) AllowReplaceDeleted() bool {
	return this.config.allowReplaceDeleted
}

// Labels returns live labels in ascending order.
func (this *Hnsw) Labels() []uint64 {
	this.labelsMu.Lock()
	defer this.labelsMu.Unlock()

	return this.labels.labels()
}

func (this *Hnsw) IsDeleted(label uint64) bool {
	this.labelsMu.Lock()
	defer this.labelsMu.Unlock()

	_, deleted := this.deletedLabels.get(label)
	return deleted
}

func (this *Hnsw) GetVector(label uint64) (math.Vector, error) {
	this.labelsMu.Lock()
	id, exists := this.labels.get(label)
	var node *hnswNode
	if exists {
		node = this.nodes[id]
	}
	this.labelsMu.Unlock()

	if !exists {
		return nil, errors.Wrapf(ErrLabelNotFound, "label: %d", label)
	}
	return node.Vector().Copy(), nil
}

// AddPoint inserts vector under label. An existing live label has its vector
// overwritten in place without changing the graph.
func (this *Hnsw) AddPoint(vector math.Vector, label uint64) error {
	return this.addPoint(vector, label, false)
}

// AddPointReplaceDeleted behaves like AddPoint but reuses a tombstoned slot
// once the index is full.
func (this *Hnsw) AddPointReplaceDeleted(vector math.Vector, label uint64) error {
	if !this.config.allowReplaceDeleted {
		return ErrReplaceDeletedDisabled
	}
	return this.addPoint(vector, label, true)
}

func (this *Hnsw) addPoint(vector math.Vector, label uint64, replaceDeleted bool) error {
	if err := this.checkDim(vector); err != nil {
		return err
	}
	vector = vector.Copy()

	this.resizeMu.RLock()
	defer this.resizeMu.RUnlock()

	labelMu := this.labelOpLock(label)
	labelMu.Lock()
	defer labelMu.Unlock()

	this.labelsMu.Lock()
	if id, exists := this.labels.get(label); exists {
		node := this.nodes[id]
		this.labelsMu.Unlock()

		node.setVector(vector)
		metrics.Inserts.WithLabelValues(hnswKind).Inc()
		return nil
	}

	if this.curCount >= this.maxElements {
		if !replaceDeleted {
			this.labelsMu.Unlock()
			return errors.Wrapf(ErrCapacityExceeded, "max elements: %d", this.maxElements)
		}

		id, node, found := this.recycleTombstone(label)
		this.labelsMu.Unlock()
		if !found {
			return errors.Wrapf(ErrCapacityExceeded, "max elements: %d, no deleted elements to replace", this.maxElements)
		}

		this.relink(id, node, vector)

		this.labelsMu.Lock()
		node.setLabel(label)
		node.unsetDeleted()
		this.labels.set(label, id)
		this.labelsMu.Unlock()

		this.promoteEntrypoint(id, node)
		metrics.Inserts.WithLabelValues(hnswKind).Inc()
		return nil
	}

	id := uint32(this.curCount)
	node := newHnswNode(label, vector, this.levels.Next())
	this.curCount++
	this.nodes[id] = node
	this.deletedLabels.delete(label)
	this.labels.set(label, id)
	this.labelsMu.Unlock()

	this.insert(id, node)
	metrics.Inserts.WithLabelValues(hnswKind).Inc()
	return nil
}

// recycleTombstone claims the first tombstoned slot for label. The slot
// keeps its level and stays unsearchable until relinked. Requires labelsMu.
func (this *Hnsw) recycleTombstone(label uint64) (uint32, *hnswNode, bool) {
	slot, found := this.tombstones.NextSet(0)
	if !found {
		return 0, nil, false
	}

	id := uint32(slot)
	node := this.nodes[id]
	if deletedId, exists := this.deletedLabels.get(node.Label()); exists && deletedId == id {
		this.deletedLabels.delete(node.Label())
	}
	this.deletedLabels.delete(label)
	this.tombstones.Clear(slot)

	return id, node, true
}

// relink moves a recycled node to vector. Neighbors for the new position are
// searched while the node still sits at the old one. Old neighbors pointing
// at the node are repaired from its former adjacency before the node is
// connected at every level up to its own.
func (this *Hnsw) relink(id uint32, node *hnswNode, vector math.Vector) {
	start := this.entrypoint.Load()
	if start == nil || start.id == id {
		this.globalMu.Lock()
		start = this.fallbackEntrypoint(id)
		this.globalMu.Unlock()
	}

	candidates := make([]utils.PriorityQueue, node.level+1)
	if start != nil {
		pool := this.visitedPool
		visited, _ := pool.acquire(context.Background())

		current := start.id
		currentDistance := this.distance(vector, current)
		for l := start.level; l > node.level; l-- {
			current, currentDistance = this.greedyClosestNeighbor(vector, current, currentDistance, l)
		}

		for l := math.MinInt(start.level, node.level); l >= 0; l-- {
			candidates[l] = this.searchLayer(vector, current, this.config.efConstruction, l, visited, false, nil)
			current = closestOther(candidates[l], id, current)
		}
		pool.release(visited)
	}

	node.setVector(vector)

	current := id
	for l := node.level; l >= 0; l-- {
		previous := node.getEdges(l)
		node.setEdges(l, nil)
		this.repairNeighbors(id, previous, l)

		if candidates[l] != nil {
			current = this.connectNeighbors(id, node, candidates[l], current, l)
		}
	}
}

// repairNeighbors drops edges to id on level from its former neighbors and
// refills them from the former neighborhood of id.
func (this *Hnsw) repairNeighbors(id uint32, previous []uint32, level int) {
	mMax := this.maxNeighbors(level)
	for _, neighborId := range previous {
		neighbor := this.nodes[neighborId]
		if neighborId == id || level > neighbor.level {
			continue
		}

		neighbor.edgeMutexes[level].Lock()
		if neighbor.hasEdge(level, id) {
			query := neighbor.Vector()
			seen := map[uint32]struct{}{id: {}, neighborId: {}}
			candidates := utils.NewMaxPriorityQueue()
			for _, edges := range [][]uint32{neighbor.edges[level], previous} {
				for _, edge := range edges {
					if _, exists := seen[edge]; exists {
						continue
					}
					seen[edge] = struct{}{}
					candidates.Push(utils.NewPriorityQueueItem(this.distance(query, edge), edge))
				}
			}

			selected := this.selectNeighborsHeuristic(candidates, mMax)
			edges := make([]uint32, len(selected))
			for i, item := range selected {
				edges[i] = item.Id()
			}
			neighbor.edges[level] = edges
		}
		neighbor.edgeMutexes[level].Unlock()
	}
}

func closestOther(candidates utils.PriorityQueue, id, fallback uint32) uint32 {
	best, found := fallback, false
	var bestDistance float32
	for _, item := range candidates.ToSlice() {
		if item.Id() == id {
			continue
		}
		if !found || item.Priority() < bestDistance {
			best, bestDistance, found = item.Id(), item.Priority(), true
		}
	}
	return best
}

func (this *Hnsw) insert(id uint32, node *hnswNode) {
	this.globalMu.Lock()
	entrypoint := this.entrypoint.Load()
	if entrypoint != nil && node.level <= entrypoint.level {
		this.globalMu.Unlock()
	} else {
		defer this.globalMu.Unlock()
	}

	start := entrypoint
	if start == nil {
		// No live entrypoint. Link through the tombstoned graph if there is one.
		start = this.fallbackEntrypoint(id)
	}
	if start != nil {
		pool := this.visitedPool
		visited, _ := pool.acquire(context.Background())
		defer pool.release(visited)

		query := node.Vector()
		current := start.id
		currentDistance := this.distance(query, current)
		for l := start.level; l > node.level; l-- {
			current, currentDistance = this.greedyClosestNeighbor(query, current, currentDistance, l)
		}

		for l := math.MinInt(start.level, node.level); l >= 0; l-- {
			candidates := this.searchLayer(query, current, this.config.efConstruction, l, visited, false, nil)
			current = this.connectNeighbors(id, node, candidates, current, l)
		}
	}

	if entrypoint == nil || node.level > entrypoint.level {
		this.entrypoint.Store(&hnswEntrypoint{id: id, level: node.level})
	}
}

// MarkDeleted tombstones label. The node keeps its edges and is still used
// for traversal. Unknown labels are ignored.
func (this *Hnsw) MarkDeleted(label uint64) error {
	this.resizeMu.RLock()
	defer this.resizeMu.RUnlock()

	labelMu := this.labelOpLock(label)
	labelMu.Lock()
	defer labelMu.Unlock()

	this.labelsMu.Lock()
	id, exists := this.labels.delete(label)
	if !exists {
		this.labelsMu.Unlock()
		return nil
	}
	this.deletedLabels.set(label, id)
	this.tombstones.Set(uint(id))
	this.nodes[id].setDeleted()
	this.labelsMu.Unlock()

	this.globalMu.Lock()
	if entrypoint := this.entrypoint.Load(); entrypoint != nil && entrypoint.id == id {
		this.entrypoint.Store(this.electEntrypoint())
	}
	this.globalMu.Unlock()

	metrics.Deletes.WithLabelValues(hnswKind).Inc()
	return nil
}

func (this *Hnsw) UnmarkDeleted(label uint64) error {
	this.resizeMu.RLock()
	defer this.resizeMu.RUnlock()

	labelMu := this.labelOpLock(label)
	labelMu.Lock()
	defer labelMu.Unlock()

	this.labelsMu.Lock()
	id, exists := this.deletedLabels.delete(label)
	if !exists {
		this.labelsMu.Unlock()
		return errors.Wrapf(ErrLabelNotFound, "label %d is not deleted", label)
	}
	node := this.nodes[id]
	this.labels.set(label, id)
	this.tombstones.Clear(uint(id))
	node.unsetDeleted()
	this.labelsMu.Unlock()

	this.promoteEntrypoint(id, node)
	return nil
}

// Resize changes capacity. Existing nodes are preserved. Blocks until all
// in flight operations finish.
func (this *Hnsw) Resize(maxElements uint) error {
	this.resizeMu.Lock()
	defer this.resizeMu.Unlock()

	this.labelsMu.Lock()
	defer this.labelsMu.Unlock()

	if maxElements < this.curCount {
		return errors.Wrapf(ErrInvalidArgument, "Cannot resize, max element is less than the current number of elements: %d < %d", maxElements, this.curCount)
	}

	previous := this.maxElements
	if err := this.allocate(maxElements); err != nil {
		return err
	}

	this.log.Infof("Resized from %d to %d elements", previous, maxElements)
	metrics.Resizes.WithLabelValues(hnswKind).Inc()
	return nil
}

// SearchKnn returns up to k live points closest to query that pass filter,
// ascending by distance. A result shorter than k is not an error. ctx only
// bounds waiting for traversal scratch space.
func (this *Hnsw) SearchKnn(ctx context.Context, query math.Vector, k uint, filter Filter) (SearchResult, error) {
	if err := this.checkDim(query); err != nil {
		return nil, err
	}

	startAt := time.Now()
	defer func() {
		metrics.SearchDuration.WithLabelValues(hnswKind).Observe(time.Since(startAt).Seconds())
	}()
	metrics.Searches.WithLabelValues(hnswKind).Inc()

	if k == 0 {
		return SearchResult{}, nil
	}

	this.resizeMu.RLock()
	defer this.resizeMu.RUnlock()

	entrypoint := this.entrypoint.Load()
	if entrypoint == nil {
		return this.checkSufficient(SearchResult{}, k), nil
	}

	pool := this.visitedPool
	visited, err := pool.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.release(visited)

	current := entrypoint.id
	currentDistance := this.distance(query, current)
	for l := entrypoint.level; l > 0; l-- {
		current, currentDistance = this.greedyClosestNeighbor(query, current, currentDistance, l)
	}

	ef := math.MaxInt(this.Ef(), int(k))
	neighbors := this.searchLayer(query, current, ef, 0, visited, true, filter)
	for neighbors.Len() > int(k) {
		neighbors.Pop()
	}

	result := make(SearchResult, neighbors.Len())
	for i := len(result) - 1; i >= 0; i-- {
		item := neighbors.Pop()
		result[i].Label = this.nodes[item.Id()].Label()
		result[i].Distance = item.Priority()
	}

	return this.checkSufficient(result, k), nil
}

func (this *Hnsw) checkSufficient(result SearchResult, k uint) SearchResult {
	if result.Insufficient(k) {
		metrics.InsufficientResults.WithLabelValues(hnswKind).Inc()
		this.log.WithFields(log.Fields{"k": k, "found": len(result), "ef": this.Ef()}).Debug("Insufficient search results")
	}
	return result
}

func (this *Hnsw) checkDim(vector math.Vector) error {
	if uint(len(vector)) != this.space.Dim() {
		return errors.Wrapf(ErrDimensionMismatch, "expected %d, got %d", this.space.Dim(), len(vector))
	}
	return nil
}

func (this *Hnsw) labelOpLock(label uint64) *sync.Mutex {
	return &this.labelOpMu[label%uint64(LABEL_LOCK_SHARD_COUNT)]
}

func (this *Hnsw) distance(query math.Vector, id uint32) float32 {
	return this.space.UncheckedDistance(query, this.nodes[id].Vector())
}

func (this *Hnsw) maxNeighbors(level int) int {
	if level == 0 {
		return this.config.mMax0
	}
	return this.config.mMax
}

func (this *Hnsw) promoteEntrypoint(id uint32, node *hnswNode) {
	this.globalMu.Lock()
	defer this.globalMu.Unlock()

	if entrypoint := this.entrypoint.Load(); entrypoint == nil || node.level > entrypoint.level {
		this.entrypoint.Store(&hnswEntrypoint{id: id, level: node.level})
	}
}

// electEntrypoint picks the live node with the highest level. Requires globalMu.
func (this *Hnsw) electEntrypoint() *hnswEntrypoint {
	this.labelsMu.Lock()
	nodes := this.nodes[:this.curCount]
	this.labelsMu.Unlock()

	var best *hnswEntrypoint
	for id, node := range nodes {
		if node == nil || node.isDeleted() {
			continue
		}
		if best == nil || node.level > best.level {
			best = &hnswEntrypoint{id: uint32(id), level: node.level}
		}
	}

	if best == nil {
		this.log.Debug("No live entrypoint left")
	} else {
		this.log.Debugf("Elected entrypoint %d at level %d", best.id, best.level)
	}
	return best
}

// fallbackEntrypoint picks the highest level occupied slot other than
// exclude, tombstoned or not. Requires globalMu.
func (this *Hnsw) fallbackEntrypoint(exclude uint32) *hnswEntrypoint {
	this.labelsMu.Lock()
	nodes := this.nodes[:this.curCount]
	this.labelsMu.Unlock()

	var best *hnswEntrypoint
	for id, node := range nodes {
		if node == nil || uint32(id) == exclude {
			continue
		}
		if best == nil || node.level > best.level {
			best = &hnswEntrypoint{id: uint32(id), level: node.level}
		}
	}
	return best
}

func (this *Hnsw) eligible(id uint32, onlyEligible bool, filter Filter) bool {
	if !onlyEligible {
		return true
	}
	node := this.nodes[id]
	return !node.isDeleted() && admits(filter, node.Label())
}

// greedyClosestNeighbor walks level moving to the closest neighbor until no
// neighbor improves on the current distance. Tombstoned nodes are waypoints.
func (this *Hnsw) greedyClosestNeighbor(query math.Vector, current uint32, currentDistance float32, level int) (uint32, float32) {
	for {
		changed := false

		node := this.nodes[current]
		node.edgeMutexes[level].RLock()
		for _, neighbor := range node.edges[level] {
			if distance := this.distance(query, neighbor); distance < currentDistance {
				currentDistance = distance
				current = neighbor
				changed = true
			}
		}
		node.edgeMutexes[level].RUnlock()

		if !changed {
			break
		}
	}

	return current, currentDistance
}

// searchLayer runs a beam search of width ef on level starting at entry and
// returns a max queue of at most ef results. With onlyEligible set,
// tombstoned and filtered nodes are traversed but never returned.
func (this *Hnsw) searchLayer(query math.Vector, entry uint32, ef, level int, visited *visitedSet, onlyEligible bool, filter Filter) utils.PriorityQueue {
	visited.reset()

	entryItem := utils.NewPriorityQueueItem(this.distance(query, entry), entry)
	candidates := utils.NewMinPriorityQueue(entryItem)
	results := utils.NewMaxPriorityQueue()

	lowerBound := math.MaxFloat
	if this.eligible(entry, onlyEligible, filter) {
		results.Push(entryItem)
		lowerBound = entryItem.Priority()
	}
	visited.visit(entry)

	for candidates.Len() > 0 {
		candidate := candidates.Peek()
		if candidate.Priority() > lowerBound && results.Len() >= ef {
			break
		}
		candidates.Pop()

		node := this.nodes[candidate.Id()]
		node.edgeMutexes[level].RLock()
		for _, neighbor := range node.edges[level] {
			if visited.visited(neighbor) {
				continue
			}
			visited.visit(neighbor)

			distance := this.distance(query, neighbor)
			if results.Len() < ef || distance < lowerBound {
				item := utils.NewPriorityQueueItem(distance, neighbor)
				candidates.Push(item)

				if this.eligible(neighbor, onlyEligible, filter) {
					results.Push(item)
					if results.Len() > ef {
						results.Pop()
					}
				}
				if results.Len() > 0 {
					lowerBound = results.Peek().Priority()
				}
			}
		}
		node.edgeMutexes[level].RUnlock()
	}

	// MaxPriorityQueue
	return results
}

// selectNeighborsHeuristic takes a max queue of candidates and keeps up to
// m of them, closest first. A candidate is dropped when it is closer to an
// already selected neighbor than to the query.
func (this *Hnsw) selectNeighborsHeuristic(candidates utils.PriorityQueue, m int) []utils.PriorityQueueItem {
	closest := candidates.Reverse() // MinPriorityQueue
	selected := make([]utils.PriorityQueueItem, 0, m)

	if closest.Len() < m {
		for closest.Len() > 0 {
			selected = append(selected, closest.Pop())
		}
		return selected
	}

	for closest.Len() > 0 && len(selected) < m {
		candidate := closest.Pop()
		candidateVector := this.nodes[candidate.Id()].Vector()

		good := true
		for _, neighbor := range selected {
			if this.distance(candidateVector, neighbor.Id()) < candidate.Priority() {
				good = false
				break
			}
		}
		if good {
			selected = append(selected, candidate)
		}
	}

	return selected
}

// connectNeighbors links id to the selected candidates on level in both
// directions and returns the closest selected neighbor.
func (this *Hnsw) connectNeighbors(id uint32, node *hnswNode, candidates utils.PriorityQueue, current uint32, level int) uint32 {
	mMax := this.maxNeighbors(level)

	others := utils.NewMaxPriorityQueue()
	for _, item := range candidates.ToSlice() {
		if item.Id() != id {
			others.Push(item)
		}
	}
	selected := this.selectNeighborsHeuristic(others, mMax)
	if len(selected) == 0 {
		return current
	}

	edges := make([]uint32, len(selected))
	for i, item := range selected {
		edges[i] = item.Id()
	}
	node.setEdges(level, edges)

	for _, item := range selected {
		neighbor := this.nodes[item.Id()]
		if level > neighbor.level {
			continue
		}

		neighbor.edgeMutexes[level].Lock()
		if !neighbor.hasEdge(level, id) {
			if len(neighbor.edges[level]) < mMax {
				neighbor.edges[level] = append(neighbor.edges[level], id)
			} else {
				neighbor.edges[level] = this.pruneNeighbors(neighbor, id, item.Priority(), mMax, level)
			}
		}
		neighbor.edgeMutexes[level].Unlock()
	}

	return selected[0].Id()
}

// pruneNeighbors re-selects the edges of node on level after adding id.
// Requires the node's edge lock on level.
func (this *Hnsw) pruneNeighbors(node *hnswNode, id uint32, distance float32, k, level int) []uint32 {
	query := node.Vector()
	candidates := utils.NewMaxPriorityQueue(utils.NewPriorityQueueItem(distance, id))
	for _, neighbor := range node.edges[level] {
		candidates.Push(utils.NewPriorityQueueItem(this.distance(query, neighbor), neighbor))
	}

	selected := this.selectNeighborsHeuristic(candidates, k)
	edges := make([]uint32, len(selected))
	for i, item := range selected {
		edges[i] = item.Id()
	}
	return edges
}
