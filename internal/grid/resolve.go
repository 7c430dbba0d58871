package grid

// Resolve places active (already clamped) into set and pushes every widget it
// now overlaps straight down, cascading until nothing overlaps. Widgets only
// ever move down; the active widget keeps exactly the layout it was given.
//
// The scan over other widgets follows the order of set, so exact positions
// after a multi-widget cascade depend on insertion order. The result is
// always overlap-free when set was overlap-free apart from active.
func Resolve[P any](set []Widget[P], active Widget[P]) []Widget[P] {
	layouts := make(map[string]Rect, len(set)+1)
	for _, w := range set {
		layouts[w.ID] = w.Layout
	}
	layouts[active.ID] = active.Layout

	queue := []string{active.ID}
	for len(queue) > 0 {
		pusherID := queue[0]
		queue = queue[1:]
		pusher := layouts[pusherID]

		for _, other := range set {
			if other.ID == pusherID || other.ID == active.ID {
				continue
			}
			cur := layouts[other.ID]
			if !Overlaps(pusher, cur) {
				continue
			}
			// Overlap implies cur.Y < pusher.Bottom(), so this always moves it.
			cur.Y = pusher.Bottom()
			layouts[other.ID] = cur
			queue = append(queue, other.ID)
		}
	}

	out := Clone(set)
	for i := range out {
		out[i].Layout = layouts[out[i].ID]
	}
	return out
}
