package fonts

// MatchFont picks the member of a family closest to the requested weight.
//
// Metas with the same italic flag are preferred; when none exists all metas
// are searched. An exact weight wins immediately. On equal distance a target
// at or below 400 keeps the lighter weight and a heavier target keeps the
// heavier one, so [300, 500] -> 400 gives 300 and [400, 600] -> 500 gives 600.
//
// ok is false only when metas is empty.
func MatchFont(metas []Meta, weight int, italic bool) (Meta, bool) {
	if len(metas) == 0 {
		return Meta{}, false
	}

	search := make([]Meta, 0, len(metas))
	for _, m := range metas {
		if m.Italic == italic {
			search = append(search, m)
		}
	}
	if len(search) == 0 {
		search = metas
	}

	matched := search[0]
	best := abs(matched.Weight - weight)
	for _, m := range search[1:] {
		diff := abs(m.Weight - weight)
		switch {
		case diff < best:
			matched, best = m, diff
		case diff == best:
			if weight <= DefaultWeight && m.Weight < matched.Weight {
				matched = m
			} else if weight > DefaultWeight && m.Weight > matched.Weight {
				matched = m
			}
		}
		if best == 0 {
			break
		}
	}
	return matched, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
