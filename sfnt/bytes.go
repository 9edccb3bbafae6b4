package sfnt

import "fmt"

// Reading bytes from a font's binary representation.
//
// All multi-byte values in SFNT files are big-endian. Every read in this
// file is bounds-checked against the enclosing segment; a failed check
// yields an error value (or an absence flag), never a panic and never a
// slice reaching into adjacent memory.

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// --- Segments, i.e. byte slices borrowed from the font ---------------------

// binarySegm is a segment of byte data. It is a view into the font binary
// handed to Parse; we use it throughout this package to navigate the
// font's bytes without copying them.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset+n > len(b) || offset+n < 0 {
		return nil, fmt.Errorf("segment view [%d:+%d] of %d bytes: %w", offset, n, len(b), ErrBounds)
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// --- Stream: sequential cursor over a segment -------------------------------

// Stream is a sequential, bounds-checked reader over a byte segment.
// It is a transient object: table parsers create one per call, walk the
// table header with it, and drop it. Streams are not safe for concurrent
// use, but they are cheap to create.
//
// No Stream operation ever returns bytes outside the underlying segment,
// and none panics; every failure path returns an error wrapping ErrBounds.
type Stream struct {
	data binarySegm
	pos  int
}

// NewStream creates a Stream positioned at the start of b.
func NewStream(b []byte) *Stream {
	return &Stream{data: b}
}

// ReadU16 reads a big-endian uint16 and advances the cursor by 2.
func (s *Stream) ReadU16() (uint16, error) {
	n, err := s.data.u16(s.pos)
	if err != nil {
		return 0, err
	}
	s.pos += 2
	return n, nil
}

// ReadU32 reads a big-endian uint32 and advances the cursor by 4.
func (s *Stream) ReadU32() (uint32, error) {
	n, err := s.data.u32(s.pos)
	if err != nil {
		return 0, err
	}
	s.pos += 4
	return n, nil
}

// ReadI16 reads a big-endian int16 and advances the cursor by 2.
func (s *Stream) ReadI16() (int16, error) {
	n, err := s.ReadU16()
	return int16(n), err
}

// ReadU8 reads a single byte and advances the cursor by 1.
func (s *Stream) ReadU8() (byte, error) {
	buf, err := s.data.view(s.pos, 1)
	if err != nil {
		return 0, err
	}
	s.pos++
	return buf[0], nil
}

// ReadBytes returns n bytes at the current position as a sub-slice of the
// underlying segment and advances the cursor by n.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	buf, err := s.data.view(s.pos, n)
	if err != nil {
		return nil, err
	}
	s.pos += n
	return buf, nil
}

// Skip16 moves the cursor past one uint16 without inspecting it.
func (s *Stream) Skip16() error {
	return s.Advance(2)
}

// Advance moves the cursor n bytes forward without inspecting bytes.
// Advancing past the end of the segment is an error and leaves the
// cursor where it was.
func (s *Stream) Advance(n int) error {
	if n < 0 || s.pos+n > len(s.data) || s.pos+n < 0 {
		return fmt.Errorf("stream advance by %d at %d of %d bytes: %w", n, s.pos, len(s.data), ErrBounds)
	}
	s.pos += n
	return nil
}

// Pos returns the current cursor position relative to the segment start.
func (s *Stream) Pos() int {
	return s.pos
}

// Tail returns the remaining unread bytes as a sub-slice of the underlying
// segment. It is used to hand a trailing region off to a nested parser.
func (s *Stream) Tail() ([]byte, error) {
	if s.pos > len(s.data) {
		return nil, fmt.Errorf("stream tail at %d of %d bytes: %w", s.pos, len(s.data), ErrBounds)
	}
	return s.data[s.pos:], nil
}

// --- Fixed-stride record views ----------------------------------------------

// array is a lazy view of a byte region as a linear sequence of
// equal-sized records. Records are not materialized: Nth slices the
// region on demand, so fonts with thousands of records cost nothing
// until a record is actually inspected. An array is stateless with
// respect to its region and may be re-iterated freely.
type array struct {
	recordSize int
	length     int
	loc        binarySegm
}

// viewArray interprets b as a sequence of records of the given size.
// A trailing partial record is inert: the view's length is the number
// of whole records in b.
func viewArray(b binarySegm, recordSize int) array {
	if recordSize <= 0 {
		return array{}
	}
	return array{
		recordSize: recordSize,
		length:     len(b) / recordSize,
		loc:        b,
	}
}

// Len returns the number of whole records in the view.
func (a array) Len() int {
	return a.length
}

// Nth returns the record at index i, or false if i is outside the view.
func (a array) Nth(i int) (binarySegm, bool) {
	if i < 0 || i >= a.length {
		return nil, false
	}
	b, err := a.loc.view(i*a.recordSize, a.recordSize)
	if err != nil {
		return nil, false
	}
	return b, true
}
