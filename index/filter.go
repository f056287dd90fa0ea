package index

// Filter decides whether a label may appear in search results. It is
// borrowed for the duration of a single search call. Filtered points still
// take part in graph traversal.
type Filter interface {
	Admit(label uint64) bool
}

type FilterFunc func(label uint64) bool

func (f FilterFunc) Admit(label uint64) bool {
	return f(label)
}

type labelSet map[uint64]struct{}

func (s labelSet) Admit(label uint64) bool {
	_, ok := s[label]
	return ok
}

// AllowLabels admits only the given labels.
func AllowLabels(labels ...uint64) Filter {
	s := make(labelSet, len(labels))
	for _, label := range labels {
		s[label] = struct{}{}
	}
	return s
}

func admits(filter Filter, label uint64) bool {
	return filter == nil || filter.Admit(label)
}
