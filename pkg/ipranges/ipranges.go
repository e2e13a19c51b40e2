package ipranges

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/hansthienpondt/nipam/pkg/table"
	"go4.org/netipx"

	"github.com/henderiw/intervalset/pkg/intervals"
)

// The IPv4 address space mapped onto integer indices, so the interval
// algebra applies to address ranges. Segments are half-open, so a
// range from-to (inclusive on both ends) becomes [from, to+1).
const (
	domainStart intervals.Int = 0
	domainEnd   intervals.Int = 1 << 32
)

// New returns an empty set over the full IPv4 index space.
func New() (*intervals.Set[intervals.Int], error) {
	return intervals.New(domainStart, domainEnd)
}

// FromIPRanges builds a set covering every address of the given
// ranges. Only IPv4 input is supported.
func FromIPRanges(ranges ...netipx.IPRange) (*intervals.Set[intervals.Int], error) {
	s, err := New()
	if err != nil {
		return nil, err
	}
	for _, r := range ranges {
		if !r.IsValid() {
			return nil, fmt.Errorf("invalid range %s", r.String())
		}
		from, err := indexOf(r.From())
		if err != nil {
			return nil, err
		}
		to, err := indexOf(r.To())
		if err != nil {
			return nil, err
		}
		if _, err := s.AddInterval(from, to+1); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FromRoutes builds a set covering every address of the given routes'
// prefixes.
func FromRoutes(routes table.Routes) (*intervals.Set[intervals.Int], error) {
	ranges := make([]netipx.IPRange, 0, len(routes))
	for _, route := range routes {
		ranges = append(ranges, netipx.RangeOfPrefix(route.Prefix()))
	}
	return FromIPRanges(ranges...)
}

// IPRanges converts a set over the IPv4 index space back to the
// minimal sorted list of inclusive address ranges.
func IPRanges(s *intervals.Set[intervals.Int]) ([]netipx.IPRange, error) {
	segs := s.Segments()
	out := make([]netipx.IPRange, 0, len(segs))
	for _, seg := range segs {
		from, err := addrOf(seg.Start)
		if err != nil {
			return nil, err
		}
		to, err := addrOf(seg.End - 1)
		if err != nil {
			return nil, err
		}
		out = append(out, netipx.IPRangeFrom(from, to))
	}
	return out, nil
}

func indexOf(a netip.Addr) (intervals.Int, error) {
	a = a.Unmap()
	if !a.Is4() {
		return 0, fmt.Errorf("ip address %s is not IPv4", a.String())
	}
	b := a.As4()
	return intervals.Int(binary.BigEndian.Uint32(b[:])), nil
}

func addrOf(i intervals.Int) (netip.Addr, error) {
	if i < domainStart || i >= domainEnd {
		return netip.Addr{}, fmt.Errorf("index %d outside the IPv4 space", i)
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(i))
	return netip.AddrFrom4(b), nil
}
