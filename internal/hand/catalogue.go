package hand

import "slices"

// Catalogue is an ascending list of hands from one or more owners. The
// strongest hand sits at the end.
type Catalogue []Hand

// Merge combines per-owner hand lists into one sorted catalogue. Equal hands
// from different owners are kept side by side.
func Merge(lists ...[]Hand) Catalogue {
	var merged Catalogue
	for _, l := range lists {
		merged = append(merged, l...)
	}
	slices.SortStableFunc(merged, Compare)
	return merged
}

// Pop removes and returns the strongest remaining hand
func (c *Catalogue) Pop() (Hand, bool) {
	n := len(*c)
	if n == 0 {
		return Hand{}, false
	}
	h := (*c)[n-1]
	*c = (*c)[:n-1]
	return h, true
}

// Keep returns the hands whose owner is in owners, preserving order
func (c Catalogue) Keep(owners map[int]bool) Catalogue {
	kept := make(Catalogue, 0, len(c))
	for _, h := range c {
		if owners[h.Owner] {
			kept = append(kept, h)
		}
	}
	return kept
}

// Winners walks the catalogue from the strongest end and returns the owners
// left standing. A popped hand joins the current best set while it ties it;
// the first strictly weaker hand confirms the best set's owners as the new
// candidates and the rest of the catalogue is narrowed to them. The walk
// stops once a single candidate remains or the catalogue runs out.
func (c Catalogue) Winners(candidates []int) []int {
	remaining := slices.Clone(c)
	winners := slices.Clone(candidates)
	var best []Hand

	for len(winners) > 1 {
		h, ok := remaining.Pop()
		if !ok {
			break
		}
		if len(best) == 0 || h.Equal(best[0]) {
			best = append(best, h)
			continue
		}

		winners = owners(best, winners)
		keep := make(map[int]bool, len(winners))
		for _, w := range winners {
			keep[w] = true
		}
		remaining = remaining.Keep(keep)

		best = best[:0]
		if keep[h.Owner] {
			best = append(best, h)
		}
	}
	return winners
}

// owners returns the distinct owners of hands in the order they appear in
// order, which keeps seat order stable for payouts.
func owners(hands []Hand, order []int) []int {
	present := make(map[int]bool, len(hands))
	for _, h := range hands {
		present[h.Owner] = true
	}
	var out []int
	for _, o := range order {
		if present[o] {
			out = append(out, o)
		}
	}
	return out
}
