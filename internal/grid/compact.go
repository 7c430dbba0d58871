package grid

// Compact removes vertical gaps. Widgets are visited in (y, x) order and each
// is lifted to the smallest y that does not overlap any widget placed before
// it. It is a single greedy pass: no widget moves down, and compacting the
// result again changes nothing. The result is returned in visiting order.
func Compact[P any](set []Widget[P]) []Widget[P] {
	out := SortByPosition(set)
	for i := range out {
		r := out[i].Layout
		placed := out[:i]
		// On an overlap-free input the original row is always free, so
		// this stops at or above it.
		for r.Y = 1; !fits(placed, r); r.Y++ {
		}
		out[i].Layout = r
	}
	return out
}
