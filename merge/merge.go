// Package merge implements the deep merge used to layer blueprint documents.
//
// [Deep] combines two mapping trees with right-biased conflict resolution:
//
//   - a key holding a mapping on both sides is merged recursively
//   - any other key takes the right-hand value when present, else the left
//   - sequences are never merged element-wise; a right-hand list replaces a
//     left-hand list wholesale
//
// Deep is pure. Neither input is modified and the result shares no maps or
// slices with either input, so callers may freely mutate the result.
package merge

import "github.com/erraggy/blueprints/tree"

// Deep merges b over a and returns a new tree.
//
// Keys keep the order of a, followed by keys only present in b in b's order.
// A nil input behaves like an empty map.
func Deep(a, b *tree.Map) *tree.Map {
	out := a.Clone()
	b.Range(func(key string, bv any) bool {
		if av, ok := out.Get(key); ok {
			am, aIsMap := av.(*tree.Map)
			bm, bIsMap := bv.(*tree.Map)
			if aIsMap && bIsMap {
				out.Set(key, Deep(am, bm))
				return true
			}
		}
		out.Set(key, tree.CloneValue(bv))
		return true
	})
	return out
}

// All folds maps left to right with [Deep], so later maps win.
// The first map seeds the accumulator; no maps yields an empty map.
func All(maps ...*tree.Map) *tree.Map {
	if len(maps) == 0 {
		return tree.New(0)
	}
	out := maps[0].Clone()
	for _, m := range maps[1:] {
		out = Deep(out, m)
	}
	return out
}
