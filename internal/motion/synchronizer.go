package motion

import "sort"

// Synchronize picks the smallest duration at or above floor that is
// simultaneously feasible for every axis: not strictly inside any axis's
// forbidden interval, and not below that axis's own TMin. blocks must have
// one entry per DOF; disabled axes should be represented by a nil block and
// are ignored.
func Synchronize(blocks []*Block, floor float64) (float64, error) {
	active := make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		if b != nil {
			active = append(active, b)
		}
	}
	if len(active) == 0 {
		return floor, nil
	}
	if len(active) == 1 {
		t, _ := active[0].minDurationAbove(floor)
		return t, nil
	}

	candidates := make([]float64, 0, 3*len(active)+1)
	candidates = append(candidates, floor)
	for _, b := range active {
		candidates = append(candidates, b.TMin)
		for _, iv := range []*Interval{b.A, b.B} {
			if iv != nil {
				candidates = append(candidates, iv.Right)
			}
		}
	}
	sort.Float64s(candidates)

	for _, t := range candidates {
		if t < floor-epsGeneric {
			continue
		}
		if feasibleForAll(active, t) {
			return t, nil
		}
	}
	return 0, ErrSynchronizationFailed
}

func feasibleForAll(blocks []*Block, t float64) bool {
	for _, b := range blocks {
		if t < b.TMin-epsGeneric {
			return false
		}
		for _, iv := range []*Interval{b.A, b.B} {
			if iv != nil && t > iv.Left+epsGeneric && t < iv.Right-epsGeneric {
				return false
			}
		}
	}
	return true
}
