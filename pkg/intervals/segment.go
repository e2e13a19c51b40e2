package intervals

import "fmt"

// Segment is a single half-open range [Start, End) of included
// elements.
type Segment[T Elem[T]] struct {
	Start T
	End   T
}

func SegmentFrom[T Elem[T]](start, end T) Segment[T] {
	return Segment[T]{Start: start, End: end}
}

func (s Segment[T]) String() string {
	return fmt.Sprintf("[%s,%s)", s.Start.String(), s.End.String())
}

func (s Segment[T]) IsValid() bool {
	return s.Start.Compare(s.End) <= 0
}

// IsEmpty reports a zero-width segment, which covers nothing.
func (s Segment[T]) IsEmpty() bool {
	return s.Start.Compare(s.End) >= 0
}

func (s Segment[T]) Contains(v T) bool {
	return s.Start.Compare(v) <= 0 && v.Compare(s.End) < 0
}

// contains reports whether other lies entirely within s.
func (s Segment[T]) contains(other Segment[T]) bool {
	return s.Start.Compare(other.Start) <= 0 && other.End.Compare(s.End) <= 0
}

func (s Segment[T]) less(other Segment[T]) bool {
	if cmp := s.Start.Compare(other.Start); cmp != 0 {
		return cmp < 0
	}
	return other.End.Compare(s.End) < 0
}

// entirelyBefore returns whether s lies entirely before other, with a
// gap between them. Touching segments (s.End == other.Start) are not
// entirely before: they coalesce.
func (s Segment[T]) entirelyBefore(other Segment[T]) bool {
	return s.End.Compare(other.Start) < 0
}

// overlaps returns whether s and other share at least one point.
func (s Segment[T]) overlaps(other Segment[T]) bool {
	return s.Start.Compare(other.End) < 0 && other.Start.Compare(s.End) < 0
}

// clip returns s restricted to bounds, which may be empty.
func (s Segment[T]) clip(bounds Segment[T]) Segment[T] {
	out := s
	if out.Start.Compare(bounds.Start) < 0 {
		out.Start = bounds.Start
	}
	if bounds.End.Compare(out.End) < 0 {
		out.End = bounds.End
	}
	if out.End.Compare(out.Start) < 0 {
		out.End = out.Start
	}
	return out
}

func minOf[T Elem[T]](a, b T) T {
	if b.Compare(a) < 0 {
		return b
	}
	return a
}

func maxOf[T Elem[T]](a, b T) T {
	if a.Compare(b) < 0 {
		return b
	}
	return a
}
