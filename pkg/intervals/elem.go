package intervals

import (
	"math"
	"strconv"
	"time"
)

// Kind identifies the concrete element type of a set on the wire.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	}
	return "unknown"
}

// Elem is the constraint for set element types: a total order plus a
// stable 64-bit wire representation.
type Elem[T any] interface {
	comparable
	Compare(T) int
	Bits() uint64
	FromBits(uint64) T
	Kind() Kind
	String() string
}

// Int is a 64-bit integer element, used for sample counters and
// indices.
type Int int64

func (v Int) Compare(o Int) int {
	switch {
	case v < o:
		return -1
	case v > o:
		return 1
	}
	return 0
}

func (v Int) Bits() uint64          { return uint64(v) }
func (v Int) FromBits(b uint64) Int { return Int(b) }
func (v Int) Kind() Kind            { return KindInt }

func (v Int) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// Float is a double-precision element, used for fractional sample
// positions.
type Float float64

func (v Float) Compare(o Float) int {
	switch {
	case v < o:
		return -1
	case v > o:
		return 1
	}
	return 0
}

func (v Float) Bits() uint64            { return math.Float64bits(float64(v)) }
func (v Float) FromBits(b uint64) Float { return Float(math.Float64frombits(b)) }
func (v Float) Kind() Kind              { return KindFloat }

func (v Float) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// Time is an absolute timestamp element with nanosecond resolution,
// counted from the Unix epoch.
type Time int64

func TimeOf(t time.Time) Time { return Time(t.UnixNano()) }

func (v Time) AsTime() time.Time { return time.Unix(0, int64(v)).UTC() }

func (v Time) Compare(o Time) int {
	switch {
	case v < o:
		return -1
	case v > o:
		return 1
	}
	return 0
}

func (v Time) Bits() uint64           { return uint64(v) }
func (v Time) FromBits(b uint64) Time { return Time(b) }
func (v Time) Kind() Kind             { return KindTime }

func (v Time) String() string {
	return v.AsTime().Format(time.RFC3339Nano)
}
