package sfnt

import (
	"fmt"
	"math"
)

// Code comments will occasionally cite passages from the OpenType
// specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow.
// A crafted font can claim counts near the 16/32-bit maxima; unchecked
// multiplication would wrap to a small bound and defeat the later
// bounds checks. Overflow converts to a parse error instead.

// checkedMulInt checks for overflow in multiplication of two integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("%d * %d: %w", a, b, ErrOverflow)
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, fmt.Errorf("%d * %d: %w", a, b, ErrOverflow)
	}
	if (a < 0 && b > 0 && a < math.MinInt/b) || (a > 0 && b < 0 && b < math.MinInt/a) {
		return 0, fmt.Errorf("%d * %d: %w", a, b, ErrOverflow)
	}
	return a * b, nil
}

// checkedAddInt checks for overflow in addition of two integers
func checkedAddInt(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	if b < 0 && a < math.MinInt-b {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	return a + b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("SFNT font format: %s", message)
}

// ---------------------------------------------------------------------------

// Parse parses an SFNT font container from a byte slice.
// A Font needs ongoing access to the font's byte-data after the Parse
// function returns. The bytes are assumed immutable while the Font
// remains in use; Parse never writes to them.
//
// Parse fails on a corrupt table directory (bad magic, unsorted or
// misaligned table records, table extents outside the buffer). Defects
// inside individual tables do not fail the parse: the affected table
// degrades to an empty result and a FontError is recorded, retrievable
// through Font.Errors.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	src := binarySegm(font)
	if len(font) < 12 {
		return nil, errFontFormat("no offset table")
	}
	h := FontHeader{
		FontType:   u32(src),
		TableCount: u16(src[4:6]),
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())

	ec := &errorCollector{}

	if !(h.FontType == 0x4f54544f || // OTTO
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table)}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.

	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		return nil, errFontFormat(fmt.Sprintf("table count too large: %v", err))
	}
	buf, err := src.view(12, tableRecordsSize)
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			return nil, errFontFormat("table order")
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			return nil, errFontFormat("invalid table offset")
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, errFontFormat(fmt.Sprintf("table %s: size calculation overflow: %v", tag, err))
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, errFontFormat(fmt.Sprintf("table %s: bounds [%d:%d] exceed font size %d",
				tag, off, tableEnd, len(src)))
		}
		otf.tables[tag] = parseTable(tag, src[off:tableEnd], off, size, ec)
	}
	linkTables(otf, ec)

	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings
	return otf, nil
}

// parseTable dispatches on the table tag. Tables this package does not
// interpret are kept as generic tables, so clients still see their bytes.
// A table parser that fails records the failure and drops back to a
// generic table; the typed accessor for it will then be nil and the
// convenience functions degrade to empty results.
func parseTable(t Tag, b binarySegm, offset, size uint32, ec *errorCollector) Table {
	var table Table
	var err error
	switch t {
	case T("head"):
		table, err = parseHead(t, b, offset, size)
	case T("maxp"):
		table, err = parseMaxP(t, b, offset, size)
	case T("hhea"):
		table, err = parseHHea(t, b, offset, size)
	case T("hmtx"):
		table, err = parseHMtx(t, b, offset, size)
	case T("loca"):
		table, err = parseLoca(t, b, offset, size)
	case T("name"):
		table, err = parseName(t, b, offset, size)
	case T("glyf"):
		table, err = parseGlyf(t, b, offset, size)
	default:
		tracer().Infof("font contains table (%s), will not be interpreted", t)
		return newTable(t, b, offset, size)
	}
	if err != nil {
		ec.addError(t, "Parse", err.Error(), SeverityMajor, offset)
		return newTable(t, b, offset, size)
	}
	if table == nil {
		ec.addWarning(t, "table empty or too small, kept uninterpreted", offset)
		return newTable(t, b, offset, size)
	}
	return table
}

// linkTables collects shortcuts to the typed tables and resolves the
// dependencies between them: hhea supplies hmtx's record count, head
// selects the loca offset format, maxp supplies the loca entry count.
func linkTables(otf *Font, ec *errorCollector) {
	if t := otf.Table(T("head")); t != nil {
		otf.Head = t.Self().AsHead()
	}
	if t := otf.Table(T("maxp")); t != nil {
		otf.MaxP = t.Self().AsMaxP()
	}
	if t := otf.Table(T("hhea")); t != nil {
		otf.HHea = t.Self().AsHHea()
	}
	if t := otf.Table(T("hmtx")); t != nil {
		otf.HMtx = t.Self().AsHMtx()
	}
	if t := otf.Table(T("loca")); t != nil {
		otf.Loca = t.Self().AsLoca()
	}
	if t := otf.Table(T("name")); t != nil {
		otf.Name = t.Self().AsName()
	}
	if t := otf.Table(T("glyf")); t != nil {
		otf.Glyf = t.Self().AsGlyf()
	}
	if otf.HMtx != nil && otf.HHea != nil && otf.MaxP != nil {
		if err := otf.HMtx.link(otf.MaxP.NumGlyphs, otf.HHea.NumberOfHMetrics); err != nil {
			ec.addError(T("hmtx"), "Link", err.Error(), SeverityMajor, otf.HMtx.offset)
			otf.HMtx = nil
		}
	}
	if otf.Loca != nil {
		if otf.Head != nil && otf.Head.IndexToLocFormat == 1 {
			otf.Loca.inx2loc = longLocaVersion
		}
		if otf.MaxP != nil {
			// loca holds one entry per glyph plus a final sentinel offset
			otf.Loca.locCnt = otf.MaxP.NumGlyphs + 1
		}
	}
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size < 54 {
		return nil, errFontFormat(fmt.Sprintf("head table too small: %d bytes (need 54)", size))
	}
	t := newHeadTable(tag, b, offset, size)
	t.Flags, _ = b.u16(16)      // flags
	t.UnitsPerEm, _ = b.u16(18) // units per em
	// IndexToLocFormat is needed to interpret the loca table:
	// 0 for short offsets, 1 for long
	t.IndexToLocFormat, _ = b.u16(50)
	if t.IndexToLocFormat > 1 {
		return nil, errFontFormat(fmt.Sprintf("invalid head.IndexToLocFormat: %d (must be 0 or 1)",
			t.IndexToLocFormat))
	}
	return t, nil
}

// --- MaxP table ------------------------------------------------------------

// This table establishes the memory requirements for this font. Fonts with
// CFF data must use Version 0.5 of this table, specifying only the numGlyphs
// field. Fonts with TrueType outlines must use Version 1.0.
func parseMaxP(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size <= 6 {
		return nil, nil
	}
	t := newMaxPTable(tag, b, offset, size)
	n, _ := b.u16(4)
	t.NumGlyphs = int(n)
	return t, nil
}

// --- HHea table ------------------------------------------------------------

func parseHHea(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size == 0 {
		return nil, nil
	}
	if size < 36 {
		return nil, errFontFormat(fmt.Sprintf("hhea table too small: %d bytes (need 36)", size))
	}
	t := newHHeaTable(tag, b, offset, size)
	asc, _ := b.u16(4)
	desc, _ := b.u16(6)
	gap, _ := b.u16(8)
	t.Ascender = int16(asc)
	t.Descender = int16(desc)
	t.LineGap = int16(gap)
	t.AdvanceWidthMax, _ = b.u16(10)
	n, _ := b.u16(34)
	t.NumberOfHMetrics = int(n)
	return t, nil
}

// --- HMtx table ------------------------------------------------------------

// The value of the numOfLongHorMetrics field is found in the 'hhea' table;
// record decoding is deferred until linkTables has supplied it.
func parseHMtx(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	if size == 0 {
		return nil, nil
	}
	return newHMtxTable(tag, b, offset, size), nil
}

// --- Loca table ------------------------------------------------------------

// The size of entries in the 'loca' table must be appropriate for the value
// of the indexToLocFormat field of the 'head' table. The number of entries
// must be numGlyphs + 1, with numGlyphs taken from the 'maxp' table. Both
// dependencies are resolved in linkTables.
func parseLoca(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	return newLocaTable(tag, b, offset, size), nil
}
