package catalog

import "github.com/RoaringBitmap/roaring/v2"

// ResolveOrder puts the ids of custom that occur in candidates first, in
// custom's order, followed by the remaining candidates in their original
// relative order. A nil custom order returns candidates unchanged. The result
// is always a permutation of candidates.
func ResolveOrder(candidates, custom []int) []int {
	if custom == nil {
		return candidates
	}

	counts := make(map[int]int, len(candidates))
	for _, id := range candidates {
		counts[id]++
	}

	out := make([]int, 0, len(candidates))
	placed := make(map[int]struct{}, min(len(custom), len(candidates)))
	for _, id := range custom {
		n, ok := counts[id]
		if !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		for ; n > 0; n-- {
			out = append(out, id)
		}
	}

	for _, id := range candidates {
		if _, ok := placed[id]; ok {
			continue
		}
		out = append(out, id)
	}
	return out
}

type customOrder struct {
	ids    []int
	member *roaring.Bitmap
}

// validateOrder accepts order only if every id is in [1,n] and none repeats.
// The first offending id is named in the error.
func validateOrder(order []int, n int) (*customOrder, error) {
	member := roaring.New()
	for _, id := range order {
		if id < 1 || id > n {
			return nil, outOfRange(id, n)
		}
		if !member.CheckedAdd(uint32(id)) {
			return nil, invalid(id, "duplicate id in order")
		}
	}
	member.RunOptimize()

	ids := make([]int, len(order))
	copy(ids, order)
	return &customOrder{ids: ids, member: member}, nil
}

// orderedView is ResolveOrder([1..n], custom) evaluated lazily: positions
// below len(custom) come from custom, the rest walk the ids custom leaves out.
type orderedView struct {
	n      int
	custom []int
	member *roaring.Bitmap
}

func naturalView(n int) orderedView {
	return orderedView{n: n, member: roaring.New()}
}

func newOrderedView(n int, o *customOrder) orderedView {
	if o == nil || len(o.ids) == 0 {
		return naturalView(n)
	}
	return orderedView{n: n, custom: o.ids, member: o.member}
}

// slice returns positions [start, end) of the view, clipped to its length.
func (v orderedView) slice(start, end int) []int {
	if end > v.n {
		end = v.n
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return []int{}
	}

	out := make([]int, 0, end-start)
	i := start
	for ; i < end && i < len(v.custom); i++ {
		out = append(out, v.custom[i])
	}
	if i == end {
		return out
	}

	for x := v.nthFree(i - len(v.custom)); i < end; x++ {
		if v.member.Contains(uint32(x)) {
			continue
		}
		out = append(out, x)
		i++
	}
	return out
}

// nthFree returns the k-th (0-based) id in [1,n] that is not in the custom
// order: the smallest x with x - rank(x) == k+1.
func (v orderedView) nthFree(k int) int {
	lo, hi := 1, v.n
	for lo < hi {
		mid := lo + (hi-lo)/2
		if mid-int(v.member.Rank(uint32(mid))) >= k+1 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
