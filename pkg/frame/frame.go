package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/adler32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"

	"github.com/henderiw/intervalset/pkg/intervals"
)

// Version is the current frame layout version, written as the first
// byte of every frame.
const Version uint8 = 0

type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionZstd
)

var (
	ErrVersion     = errors.New("unsupported frame version")
	ErrKind        = errors.New("element kind mismatch")
	ErrChecksum    = errors.New("frame checksum mismatch")
	ErrCompression = errors.New("unknown compression")
)

type genericWriter interface {
	Write(buf []byte) (n int, err error)
	Close() error
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Encode writes s as a versioned binary frame: a raw 3-byte header
// (version, element kind, compression), followed by the payload
// (domain, segment count, segment pairs, all little-endian 64-bit
// wire values) and its adler32 checksum, both run through the chosen
// compressor.
func Encode[T intervals.Elem[T]](w io.Writer, s *intervals.Set[T], comp Compression) error {
	var zero T
	if _, err := w.Write([]byte{Version, byte(zero.Kind()), byte(comp)}); err != nil {
		return err
	}

	payload := new(bytes.Buffer)
	dom := s.Domain()
	binary.Write(payload, binary.LittleEndian, dom.Start.Bits())
	binary.Write(payload, binary.LittleEndian, dom.End.Bits())
	segs := s.Segments()
	binary.Write(payload, binary.LittleEndian, uint32(len(segs)))
	for _, seg := range segs {
		binary.Write(payload, binary.LittleEndian, seg.Start.Bits())
		binary.Write(payload, binary.LittleEndian, seg.End.Bits())
	}
	checksum := adler32.Checksum(payload.Bytes())

	var writer genericWriter
	switch comp {
	case CompressionNone:
		writer = nopCloser{w}
	case CompressionLZ4:
		writer = lz4.NewWriter(w)
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		writer = zw
	default:
		return fmt.Errorf("%w: %d", ErrCompression, comp)
	}

	if _, err := writer.Write(payload.Bytes()); err != nil {
		return err
	}
	if err := binary.Write(writer, binary.LittleEndian, checksum); err != nil {
		return err
	}
	return writer.Close()
}

// Decode reads a frame written by Encode and rebuilds the set. The
// frame must carry a known version and the element kind of the
// requested instantiation.
func Decode[T intervals.Elem[T]](r io.Reader) (*intervals.Set[T], error) {
	var header [3]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	if header[0] != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, header[0])
	}
	var zero T
	if intervals.Kind(header[1]) != zero.Kind() {
		return nil, fmt.Errorf("%w: frame holds %s, want %s",
			ErrKind, intervals.Kind(header[1]), zero.Kind())
	}

	var reader io.Reader
	switch Compression(header[2]) {
	case CompressionNone:
		reader = r
	case CompressionLZ4:
		reader = lz4.NewReader(r)
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		reader = zr
	default:
		return nil, fmt.Errorf("%w: %d", ErrCompression, header[2])
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: truncated frame", ErrChecksum)
	}
	payload, trailer := data[:len(data)-4], data[len(data)-4:]
	if adler32.Checksum(payload) != binary.LittleEndian.Uint32(trailer) {
		return nil, ErrChecksum
	}

	buf := bytes.NewReader(payload)
	domStart, err := readElem[T](buf)
	if err != nil {
		return nil, err
	}
	domEnd, err := readElem[T](buf)
	if err != nil {
		return nil, err
	}
	var count uint32
	if err := binary.Read(buf, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	segs := make([]intervals.Segment[T], 0, count)
	for i := uint32(0); i < count; i++ {
		start, err := readElem[T](buf)
		if err != nil {
			return nil, err
		}
		end, err := readElem[T](buf)
		if err != nil {
			return nil, err
		}
		segs = append(segs, intervals.SegmentFrom(start, end))
	}
	return intervals.FromSegments(intervals.SegmentFrom(domStart, domEnd), segs)
}

func readElem[T intervals.Elem[T]](r io.Reader) (T, error) {
	var zero T
	var bits uint64
	if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
		return zero, err
	}
	return zero.FromBits(bits), nil
}
