package catalog

import "github.com/RoaringBitmap/roaring/v2"

type selectionSet struct {
	rb *roaring.Bitmap
}

func newSelectionSet() *selectionSet {
	return &selectionSet{rb: roaring.New()}
}

func (s *selectionSet) set(id int, selected bool) int {
	if selected {
		s.rb.Add(uint32(id))
	} else {
		s.rb.Remove(uint32(id))
	}
	return s.count()
}

func (s *selectionSet) has(id int) bool {
	return s.rb.Contains(uint32(id))
}

func (s *selectionSet) count() int {
	return int(s.rb.GetCardinality())
}

// ids returns the members in ascending order.
func (s *selectionSet) ids() []int {
	out := make([]int, 0, s.count())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}
