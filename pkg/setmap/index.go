package setmap

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"

	"github.com/henderiw/intervalset/pkg/intervals"
)

type indexEntry struct {
	start, end int
	uid        uintptr
	name       string
}

func (e indexEntry) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return e.end > b.Start && e.start < b.End
}

func (e indexEntry) ID() uintptr { return e.uid }

func (e indexEntry) Range() interval.IntRange {
	return interval.IntRange{Start: e.start, End: e.end}
}

func (e indexEntry) String() string {
	return fmt.Sprintf("[%d,%d)#%d-%s", e.start, e.end, e.uid, e.name)
}

// Index answers overlap queries across many named integer sets: every
// segment of every set is inserted into one interval tree keyed back
// to the set name.
type Index struct {
	tree *interval.IntTree
}

func NewIndex(sets map[string]*intervals.Set[intervals.Int]) (*Index, error) {
	tree := &interval.IntTree{}
	var uid uintptr
	for name, s := range sets {
		for _, seg := range s.Segments() {
			e := indexEntry{start: int(seg.Start), end: int(seg.End), uid: uid, name: name}
			if err := tree.Insert(e, false); err != nil {
				return nil, err
			}
			uid++
		}
	}
	tree.AdjustRanges()
	return &Index{tree: tree}, nil
}

// Overlapping returns the sorted names of every set with at least one
// segment overlapping [start, end).
func (x *Index) Overlapping(start, end int64) []string {
	query := indexEntry{start: int(start), end: int(end)}

	seen := map[string]struct{}{}
	for _, iv := range x.tree.Get(query) {
		seen[iv.(indexEntry).name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Covering returns the sorted names of every set covering the point v.
func (x *Index) Covering(v int64) []string {
	return x.Overlapping(v, v+1)
}
