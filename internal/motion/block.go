package motion

// Interval is a duration range in which no feasible fixed-duration profile
// exists for an axis.
type Interval struct {
	Left, Right float64
}

// Block is the outcome of Step1 for one axis: the time-optimal profile plus
// any durations known to be infeasible for a fixed-duration replan. A and B
// come from the same set of Step1 branch candidates as PMin: when a
// non-cruising branch's governing quadratic has a second, longer-duration
// root that still finishes before any vMax-cruising branch becomes
// available, that duration sits in a gap no candidate can reach — a
// vMax-cruising branch can always be stretched to any longer duration by
// lengthening its cruise segment, but an acceleration-only branch cannot be
// stretched at all short of switching to a different root. See DESIGN.md for
// the derivation. Most boundary conditions produce zero or one such gap;
// A and B are nil when there is nothing to report.
type Block struct {
	TMin float64
	PMin *Profile
	A, B *Interval
}

// minDurationAbove returns the smallest feasible duration for this block
// that is >= floor, moving past any forbidden interval it lands strictly
// inside. The bool result is always true.
func (b *Block) minDurationAbove(floor float64) (float64, bool) {
	t := b.TMin
	if t < floor {
		t = floor
	}
	for _, iv := range []*Interval{b.A, b.B} {
		if iv == nil {
			continue
		}
		if t > iv.Left+epsGeneric && t < iv.Right-epsGeneric {
			t = iv.Right
		}
	}
	return t, true
}
