package model

// Interval is a half-open character range [Start, End) within a line.
type Interval struct {
	Start int
	End   int
}

// NewInterval creates an interval from a start position and length.
func NewInterval(start, length int) Interval {
	return Interval{Start: start, End: start + length}
}

// Len returns the number of characters the interval spans.
func (iv Interval) Len() int {
	if iv.End <= iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// Overlaps reports whether two intervals share at least one character
// position.
func (iv Interval) Overlaps(other Interval) bool {
	return max(iv.Start, other.Start) < min(iv.End, other.End)
}

// Overlap returns the number of character positions shared by two
// intervals, 0 when they are disjoint.
func (iv Interval) Overlap(other Interval) int {
	n := min(iv.End, other.End) - max(iv.Start, other.Start)
	if n < 0 {
		return 0
	}
	return n
}

// Distance returns the horizontal gap between two intervals. Overlapping or
// touching intervals have distance 0. Symmetric in argument order.
func (iv Interval) Distance(other Interval) int {
	if iv.Start < other.Start {
		d := other.Start - iv.End
		if d < 0 {
			return 0
		}
		return d
	}
	d := iv.Start - other.End
	if d < 0 {
		return 0
	}
	return d
}

// Union returns the smallest interval covering both intervals.
func (iv Interval) Union(other Interval) Interval {
	return Interval{
		Start: min(iv.Start, other.Start),
		End:   max(iv.End, other.End),
	}
}

// Header pairs a column name with the character interval it occupied in its
// source line(s). A multi-line header's name is the space-joined
// concatenation of its fragments in line order, and its interval is the
// union of the fragment intervals.
type Header struct {
	Name     string
	Interval Interval
}
