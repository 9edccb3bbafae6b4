package sfnt

import "fmt"

// Glyph outlines are stored in table 'glyf' as quadratic contours: runs of
// on-curve and off-curve points with delta-encoded coordinates. The walker
// in this file streams a glyph's outline into a caller-supplied sink as
// canonical path commands, decoding points on the fly across three
// cursors (flags, x deltas, y deltas) so that no intermediate point array
// is allocated.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/glyf

// OutlineSink receives the path commands of a glyph outline, in strict
// path order. Every contour begins with exactly one MoveTo before any
// LineTo/QuadTo. Implementations typically accumulate geometry or
// statistics; they are not expected to return errors.
//
// Coordinates are in font units. Implied on-curve points interpolated
// between two off-curve points sit on half-unit positions, hence float32.
type OutlineSink interface {
	MoveTo(x, y float32)         // start a new contour
	LineTo(x, y float32)         // straight segment
	QuadTo(cx, cy, x, y float32) // quadratic Bézier segment with control point
}

// GlyfTable is the parsed 'glyf' table. Glyph data blocks are located
// through the loca table and walked on demand.
type GlyfTable struct {
	tableBase
}

func parseGlyf(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	t := &GlyfTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.self = t
	return t, nil
}

// Outline walks the outline of glyph gid and streams its path commands
// into sink.
//
// Glyphs without an outline (empty loca range or zero contours) succeed
// with no commands emitted. Truncated or otherwise malformed glyph data
// stops the walk at the point of corruption and returns an error; commands
// emitted before that point are valid path geometry. Composite glyphs are
// reported as unsupported without emitting anything.
func (otf *Font) Outline(gid GlyphIndex, sink OutlineSink) error {
	if otf == nil || sink == nil {
		return errFontFormat("outline requires a font and a sink")
	}
	if otf.Glyf == nil || otf.Loca == nil {
		return fmt.Errorf("glyf/loca: %w", ErrMissingTable)
	}
	start, end, ok := otf.Loca.glyphRange(gid)
	if !ok {
		return fmt.Errorf("glyph %d has no location entry: %w", gid, ErrBounds)
	}
	if end <= start {
		return nil // glyph without outline, e.g. space
	}
	b, err := otf.Glyf.data.view(int(start), int(end-start))
	if err != nil {
		return fmt.Errorf("glyph %d data: %w", gid, err)
	}
	return outlineGlyph(b, sink)
}

// Point flags of a simple glyph description.
const (
	flagOnCurvePoint      = 0x01
	flagXShortVector      = 0x02
	flagYShortVector      = 0x04
	flagRepeat            = 0x08
	flagXIsSameOrPositive = 0x10
	flagYIsSameOrPositive = 0x20
)

func outlineGlyph(b binarySegm, sink OutlineSink) error {
	s := NewStream(b)
	numberOfContours, err := s.ReadI16()
	if err != nil {
		return err
	}
	if numberOfContours < 0 {
		// composite glyph; component resolution is out of scope
		return errFontFormat("composite glyph not supported")
	}
	if numberOfContours == 0 {
		return nil
	}
	if err = s.Advance(8); err != nil { // xMin, yMin, xMax, yMax
		return err
	}
	endPtsBytes, err := s.ReadBytes(int(numberOfContours) * 2)
	if err != nil {
		return err
	}
	endPts := viewArray(endPtsBytes, 2)
	last, _ := endPts.Nth(endPts.Len() - 1)
	numPoints := int(u16(last)) + 1

	instructionLength, err := s.ReadU16()
	if err != nil {
		return err
	}
	if err = s.Advance(int(instructionLength)); err != nil {
		return err
	}
	tail, err := s.Tail()
	if err != nil {
		return err
	}
	points, err := makePointIter(tail, numPoints)
	if err != nil {
		return err
	}

	prevEnd := -1
	for j := 0; j < endPts.Len(); j++ {
		seg, _ := endPts.Nth(j)
		end := int(u16(seg))
		if end <= prevEnd {
			return fmt.Errorf("contour end points not increasing: %w", ErrMalformed)
		}
		if err := emitContour(points, end-prevEnd, sink); err != nil {
			return err
		}
		prevEnd = end
	}
	return nil
}

// glyfPoint is one decoded point of a simple glyph.
type glyfPoint struct {
	x, y    float32
	onCurve bool
}

func midpoint(a, b glyfPoint) (float32, float32) {
	return (a.x + b.x) / 2, (a.y + b.y) / 2
}

// pointIter decodes the points of a simple glyph from three parallel
// regions: flags, x deltas and y deltas. The region boundaries are found
// by a dry pass over the flags, so each cursor is bounds-checked against
// its own region and a corrupt flag run cannot make coordinate reads
// bleed into one another.
type pointIter struct {
	flags  *Stream
	xs, ys *Stream
	flag   byte
	repeat int
	x, y   int
}

func makePointIter(b binarySegm, numPoints int) (*pointIter, error) {
	fs := NewStream(b)
	xLen, yLen := 0, 0
	for i := 0; i < numPoints; {
		flag, err := fs.ReadU8()
		if err != nil {
			return nil, err
		}
		repeat := 1
		if flag&flagRepeat != 0 {
			r, err := fs.ReadU8()
			if err != nil {
				return nil, err
			}
			repeat += int(r)
		}
		if repeat > numPoints-i {
			repeat = numPoints - i
		}
		switch {
		case flag&flagXShortVector != 0:
			xLen += repeat
		case flag&flagXIsSameOrPositive == 0:
			xLen += 2 * repeat
		}
		switch {
		case flag&flagYShortVector != 0:
			yLen += repeat
		case flag&flagYIsSameOrPositive == 0:
			yLen += 2 * repeat
		}
		i += repeat
	}
	flagsLen := fs.Pos()
	xRegion, err := b.view(flagsLen, xLen)
	if err != nil {
		return nil, err
	}
	yRegion, err := b.view(flagsLen+xLen, yLen)
	if err != nil {
		return nil, err
	}
	return &pointIter{
		flags: NewStream(b[:flagsLen]),
		xs:    NewStream(xRegion),
		ys:    NewStream(yRegion),
	}, nil
}

func (it *pointIter) next() (glyfPoint, error) {
	if it.repeat > 0 {
		it.repeat--
	} else {
		flag, err := it.flags.ReadU8()
		if err != nil {
			return glyfPoint{}, err
		}
		it.flag = flag
		if flag&flagRepeat != 0 {
			r, err := it.flags.ReadU8()
			if err != nil {
				return glyfPoint{}, err
			}
			it.repeat = int(r)
		}
	}
	if it.flag&flagXShortVector != 0 {
		d, err := it.xs.ReadU8()
		if err != nil {
			return glyfPoint{}, err
		}
		if it.flag&flagXIsSameOrPositive != 0 {
			it.x += int(d)
		} else {
			it.x -= int(d)
		}
	} else if it.flag&flagXIsSameOrPositive == 0 {
		d, err := it.xs.ReadI16()
		if err != nil {
			return glyfPoint{}, err
		}
		it.x += int(d)
	}
	if it.flag&flagYShortVector != 0 {
		d, err := it.ys.ReadU8()
		if err != nil {
			return glyfPoint{}, err
		}
		if it.flag&flagYIsSameOrPositive != 0 {
			it.y += int(d)
		} else {
			it.y -= int(d)
		}
	} else if it.flag&flagYIsSameOrPositive == 0 {
		d, err := it.ys.ReadI16()
		if err != nil {
			return glyfPoint{}, err
		}
		it.y += int(d)
	}
	return glyfPoint{
		x:       float32(it.x),
		y:       float32(it.y),
		onCurve: it.flag&flagOnCurvePoint != 0,
	}, nil
}

// emitContour converts one contour of n points into path commands.
//
// TrueType contours are closed implicitly: a trailing straight segment
// back to the start point is not emitted, but a trailing off-curve point
// still produces its closing quadratic. A contour starting with an
// off-curve point starts at the following on-curve point, or at the
// midpoint of the two leading off-curve points.
func emitContour(points *pointIter, n int, sink OutlineSink) error {
	first, err := points.next()
	if err != nil {
		return err
	}
	var start, ctrl glyfPoint
	startOff := !first.onCurve
	wasOff := false
	consumed := 1
	if startOff {
		if n == 1 {
			return nil // lone off-curve point, nothing to draw
		}
		second, err := points.next()
		if err != nil {
			return err
		}
		consumed = 2
		if second.onCurve {
			start = second
		} else {
			start.x, start.y = midpoint(first, second)
			ctrl = second
			wasOff = true
		}
	} else {
		start = first
	}
	sink.MoveTo(start.x, start.y)
	for ; consumed < n; consumed++ {
		p, err := points.next()
		if err != nil {
			return err
		}
		if !p.onCurve {
			if wasOff {
				// two off-curve points in a row imply an on-curve midpoint
				mx, my := midpoint(ctrl, p)
				sink.QuadTo(ctrl.x, ctrl.y, mx, my)
			}
			ctrl = p
			wasOff = true
		} else if wasOff {
			sink.QuadTo(ctrl.x, ctrl.y, p.x, p.y)
			wasOff = false
		} else {
			sink.LineTo(p.x, p.y)
		}
	}
	if startOff {
		if wasOff {
			mx, my := midpoint(ctrl, first)
			sink.QuadTo(ctrl.x, ctrl.y, mx, my)
		}
		sink.QuadTo(first.x, first.y, start.x, start.y)
	} else if wasOff {
		sink.QuadTo(ctrl.x, ctrl.y, start.x, start.y)
	}
	return nil
}
