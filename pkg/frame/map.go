package frame

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/henderiw/intervalset/pkg/intervals"
)

// EncodeMap writes a named collection of sets as a frame sequence:
// an entry count, then per entry a length-prefixed name and a
// length-prefixed Encode frame. Entries are written in name order so
// the output is deterministic; the per-set frames are encoded
// concurrently.
func EncodeMap[T intervals.Elem[T]](w io.Writer, sets map[string]*intervals.Set[T], comp Compression) error {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)

	bufs := make([]*bytes.Buffer, len(names))
	var g errgroup.Group
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			buf := new(bytes.Buffer)
			if err := Encode(buf, sets[name], comp); err != nil {
				return fmt.Errorf("encode %q: %w", name, err)
			}
			bufs[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(names))); err != nil {
		return err
	}
	for i, name := range names {
		if err := binary.Write(w, binary.LittleEndian, uint16(len(name))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, name); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(bufs[i].Len())); err != nil {
			return err
		}
		if _, err := w.Write(bufs[i].Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMap reads a frame sequence written by EncodeMap.
func DecodeMap[T intervals.Elem[T]](r io.Reader) (map[string]*intervals.Set[T], error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	sets := make(map[string]*intervals.Set[T], count)
	for i := uint32(0); i < count; i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, err
		}
		var frameLen uint32
		if err := binary.Read(r, binary.LittleEndian, &frameLen); err != nil {
			return nil, err
		}
		s, err := Decode[T](io.LimitReader(r, int64(frameLen)))
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", string(name), err)
		}
		sets[string(name)] = s
	}
	return sets, nil
}
