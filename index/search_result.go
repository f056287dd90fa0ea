package index

type SearchResult []SearchResultItem

type SearchResultItem struct {
	Label    uint64
	Distance float32
}

func (this SearchResult) Len() int {
	return len(this)
}

func (this SearchResult) Swap(i, j int) {
	this[i], this[j] = this[j], this[i]
}

func (this SearchResult) Less(i, j int) bool {
	return this[i].Distance < this[j].Distance
}

func (this SearchResult) Labels() []uint64 {
	labels := make([]uint64, len(this))
	for i, item := range this {
		labels[i] = item.Label
	}
	return labels
}

func (this SearchResult) Distances() []float32 {
	distances := make([]float32, len(this))
	for i, item := range this {
		distances[i] = item.Distance
	}
	return distances
}

// Insufficient reports whether fewer than k eligible points were found.
func (this SearchResult) Insufficient(k uint) bool {
	return uint(len(this)) < k
}

// RequireK turns a short result into ErrInsufficientResults.
func RequireK(result SearchResult, k uint) (SearchResult, error) {
	if result.Insufficient(k) {
		return result, ErrInsufficientResults
	}
	return result, nil
}
