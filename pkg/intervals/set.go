package intervals

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Set is a canonical set of half-open segments over a bounded domain.
// The segments are kept sorted, non-overlapping and non-touching, and
// always lie within the domain; every exported operation returns with
// that form restored. A Set is not safe for concurrent mutation.
type Set[T Elem[T]] struct {
	domain   Segment[T]
	segments []Segment[T]
}

// New returns an empty set over the domain [start, end).
func New[T Elem[T]](start, end T) (*Set[T], error) {
	if start.Compare(end) > 0 {
		return nil, fmt.Errorf("%w: domain %s-%s", ErrInvalidInterval, start.String(), end.String())
	}
	return &Set[T]{domain: SegmentFrom(start, end)}, nil
}

// FromSegment returns a set whose domain is [start, end), fully
// covered by a single segment.
func FromSegment[T Elem[T]](start, end T) (*Set[T], error) {
	s, err := New(start, end)
	if err != nil {
		return nil, err
	}
	if !s.domain.IsEmpty() {
		s.segments = append(s.segments, s.domain)
	}
	return s, nil
}

// FromSegments builds a set over domain from a finite sequence of
// segments, typically handed over by an external extraction layer.
// Invalid or out-of-domain segments are reported per segment via a
// joined error and no set is returned.
func FromSegments[T Elem[T]](domain Segment[T], segs []Segment[T]) (*Set[T], error) {
	s, err := New(domain.Start, domain.End)
	if err != nil {
		return nil, err
	}
	var errm error
	for _, seg := range segs {
		if _, err := s.AddInterval(seg.Start, seg.End); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	if errm != nil {
		return nil, errm
	}
	return s, nil
}

// Domain returns the set's domain.
func (s *Set[T]) Domain() Segment[T] { return s.domain }

// Segments returns a copy of the canonical segment sequence.
func (s *Set[T]) Segments() []Segment[T] {
	return append([]Segment[T]{}, s.segments...)
}

func (s *Set[T]) Count() int { return len(s.segments) }

func (s *Set[T]) IsEmpty() bool { return len(s.segments) == 0 }

// Contains reports whether v is covered by one of the set's segments.
func (s *Set[T]) Contains(v T) bool {
	i := sort.Search(len(s.segments), func(i int) bool {
		return v.Compare(s.segments[i].End) < 0
	})
	return i < len(s.segments) && s.segments[i].Contains(v)
}

func (s *Set[T]) Clone() *Set[T] {
	return &Set[T]{
		domain:   s.domain,
		segments: append([]Segment[T]{}, s.segments...),
	}
}

// Equal reports whether both sets have the same domain and the same
// canonical segments.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if s.domain != other.domain || len(s.segments) != len(other.segments) {
		return false
	}
	for i, seg := range s.segments {
		if seg != other.segments[i] {
			return false
		}
	}
	return true
}

// AddInterval inserts [start, end) and restores canonical form. The
// interval must be valid and lie within the domain; a zero-width
// interval covers nothing and is dropped. The set is left untouched
// on error. Returns the receiver for chaining.
func (s *Set[T]) AddInterval(start, end T) (*Set[T], error) {
	seg := SegmentFrom(start, end)
	if !seg.IsValid() {
		return s, fmt.Errorf("%w: %s", ErrInvalidInterval, seg)
	}
	if !s.domain.contains(seg) {
		return s, fmt.Errorf("%w: %s not within %s", ErrDomainViolation, seg, s.domain)
	}
	if seg.IsEmpty() {
		return s, nil
	}
	s.segments = append(s.segments, seg)
	return s.Cleanup(), nil
}

// Cleanup restores canonical form: zero-width segments are dropped,
// the rest are sorted ascending and any overlapping or touching pair
// is coalesced into one spanning segment. Idempotent.
func (s *Set[T]) Cleanup() *Set[T] {
	in := make([]Segment[T], 0, len(s.segments))
	for _, seg := range s.segments {
		if !seg.IsEmpty() {
			in = append(in, seg)
		}
	}
	if len(in) <= 1 {
		s.segments = in
		return s
	}
	sort.Slice(in, func(i, j int) bool { return in[i].less(in[j]) })

	out := make([]Segment[T], 1, len(in))
	out[0] = in[0]
	for _, seg := range in[1:] {
		prev := &out[len(out)-1]
		switch {
		case prev.entirelyBefore(seg):
			// No overlap and no contact.
			//
			//   prev       seg
			// s------e  s------e
			out = append(out, seg)
		case prev.End.Compare(seg.End) < 0:
			// Overlap or contact, seg extends prev.
			//
			//   prev
			// s------e
			//     s------e
			//       seg
			prev.End = seg.End
		default:
			// seg entirely contained in prev, nothing to do.
			//
			//    prev
			// s--------e
			//   s----e
			//     seg
		}
	}
	s.segments = out
	return s
}

// Merge adds every point covered by src to the receiver. The domain
// becomes the hull of both domains; a gap between disjoint domains is
// simply left uncovered. Returns the receiver for chaining.
func (s *Set[T]) Merge(src *Set[T]) *Set[T] {
	s.domain = SegmentFrom(
		minOf(s.domain.Start, src.domain.Start),
		maxOf(s.domain.End, src.domain.End),
	)
	s.segments = append(s.segments, src.segments...)
	return s.Cleanup()
}

// Union returns a new set covering every point covered by either
// operand, leaving both operands untouched.
func (s *Set[T]) Union(src *Set[T]) *Set[T] {
	return s.Clone().Merge(src)
}

// Intersect reduces the receiver to the points covered by both
// operands. The domain becomes the overlap of both domains; domains
// that share no points fail with ErrDomainMismatch and leave the
// receiver untouched.
func (s *Set[T]) Intersect(src *Set[T]) (*Set[T], error) {
	if !s.domain.overlaps(src.domain) {
		return s, fmt.Errorf("%w: %s and %s", ErrDomainMismatch, s.domain, src.domain)
	}
	a, b := s.segments, src.segments
	out := make([]Segment[T], 0, len(a)+len(b))
	var i, j int
	for i < len(a) && j < len(b) {
		if a[i].overlaps(b[j]) {
			out = append(out, SegmentFrom(
				maxOf(a[i].Start, b[j].Start),
				minOf(a[i].End, b[j].End),
			))
		}
		// Advance whichever segment ends first; the other may still
		// overlap the next one.
		if a[i].End.Compare(b[j].End) < 0 {
			i++
		} else {
			j++
		}
	}
	s.domain = SegmentFrom(
		maxOf(s.domain.Start, src.domain.Start),
		minOf(s.domain.End, src.domain.End),
	)
	s.segments = out
	return s, nil
}

// Intersection returns a new set covering the points covered by both
// operands, leaving both operands untouched.
func (s *Set[T]) Intersection(src *Set[T]) (*Set[T], error) {
	return s.Clone().Intersect(src)
}

// Complement returns a new set over the same domain covering exactly
// the points the receiver does not: the gaps between segments plus
// the leading and trailing gap, if any.
func (s *Set[T]) Complement() *Set[T] {
	out := make([]Segment[T], 0, len(s.segments)+1)
	cursor := s.domain.Start
	for _, seg := range s.segments {
		if cursor.Compare(seg.Start) < 0 {
			out = append(out, SegmentFrom(cursor, seg.Start))
		}
		cursor = seg.End
	}
	if cursor.Compare(s.domain.End) < 0 {
		out = append(out, SegmentFrom(cursor, s.domain.End))
	}
	return &Set[T]{domain: s.domain, segments: out}
}

// Subtract removes every point covered by src from the receiver,
// keeping the receiver's domain. Points of the receiver outside src's
// domain survive. Returns the receiver for chaining.
func (s *Set[T]) Subtract(src *Set[T]) *Set[T] {
	comp := src.Clone()
	// Widen the subtrahend to the hull of both domains so its
	// complement covers all of the receiver's domain that src does
	// not claim.
	comp.trim(SegmentFrom(
		minOf(s.domain.Start, src.domain.Start),
		maxOf(s.domain.End, src.domain.End),
	))
	// The hull always overlaps the receiver's domain.
	res, _ := s.Intersect(comp.Complement())
	return res
}

// Difference returns a new set with every point covered by src
// removed, leaving both operands untouched.
func (s *Set[T]) Difference(src *Set[T]) *Set[T] {
	return s.Clone().Subtract(src)
}

// TrimTo replaces the domain with [start, end) and clips the segments
// to it: segments fully outside are dropped, partially overlapping
// ones are cut at the boundary. The domain may be narrowed or
// widened; widening leaves the new region uncovered.
func (s *Set[T]) TrimTo(start, end T) error {
	bounds := SegmentFrom(start, end)
	if !bounds.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, bounds)
	}
	s.trim(bounds)
	return nil
}

func (s *Set[T]) trim(bounds Segment[T]) {
	out := s.segments[:0]
	for _, seg := range s.segments {
		seg = seg.clip(bounds)
		if !seg.IsEmpty() {
			out = append(out, seg)
		}
	}
	s.domain = bounds
	s.segments = out
}

// Description returns a short deterministic summary for diagnostics.
func (s *Set[T]) Description() string {
	return fmt.Sprintf("%s intervals over %s, %d segments", s.domain.Start.Kind(), s.domain, len(s.segments))
}

func (s *Set[T]) String() string {
	var b strings.Builder
	b.WriteString(s.domain.String())
	b.WriteString(":")
	if len(s.segments) == 0 {
		b.WriteString(" empty")
	}
	for _, seg := range s.segments {
		b.WriteString(" ")
		b.WriteString(seg.String())
	}
	return b.String()
}
