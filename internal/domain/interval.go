package domain

// Interval is a half-open [StartMin, EndMin) time range in minutes of day.
type Interval struct {
	StartMin int
	EndMin   int
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) overlap. Touching intervals (aEnd == bStart) do not overlap;
// zero-length intervals never overlap anything.
//
// This predicate is the single source of truth for "is this time taken":
// both the free-slot generator and the booking conflict guard use it, so the
// two can never disagree about what counts as a clash.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Overlaps reports whether i overlaps other.
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.StartMin, i.EndMin, other.StartMin, other.EndMin)
}

// IsValid reports whether the interval has positive length.
func (i Interval) IsValid() bool {
	return i.StartMin < i.EndMin
}

// Duration returns the interval length in minutes.
func (i Interval) Duration() int {
	return i.EndMin - i.StartMin
}
