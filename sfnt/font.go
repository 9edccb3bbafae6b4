package sfnt

import "fmt"

// Font represents the internal structure of an SFNT font container.
// It is a read-only view over the byte buffer handed to Parse: the buffer
// is borrowed, never copied, and must stay alive as long as the Font is
// in use. Accessors reparse from the buffer on demand; there is no
// cross-call cache, which is why a Font can be queried concurrently.
type Font struct {
	Header        *FontHeader
	tables        map[Tag]Table
	Head          *HeadTable    // typed access to head
	MaxP          *MaxPTable    // typed access to maxp
	HHea          *HHeaTable    // typed access to hhea
	HMtx          *HMtxTable    // typed access to hmtx
	Loca          *LocaTable    // typed access to loca
	Name          *NameTable    // typed access to name
	Glyf          *GlyfTable    // typed access to glyf
	parseErrors   []FontError   // Errors accumulated during parsing
	parseWarnings []FontWarning // Warnings accumulated during parsing
}

// FontHeader is a directory of the top-level tables in a font. If the font
// file contains only one font, the table directory will begin at byte 0 of
// the file.
//
// Fonts that contain TrueType outlines use the value 0x00010000 for the
// FontType. Fonts containing CFF data use 0x4F54544F ('OTTO', when
// re-interpreted as a Tag). Apple additionally allows 'true' for TrueType.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// Only the tables needed for metadata and outline extraction are
// interpreted (head, maxp, hhea, hmtx, loca, name, glyf); every other
// table contained in the font is still returned as a generic table, i.e.
// no table information is dropped.
func (otf *Font) Table(tag Tag) Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	return tags
}

// Errors returns all errors encountered during font parsing.
// These errors represent issues that were found but did not prevent parsing
// from completing. Clients can inspect them to decide whether the font is
// suitable for their use case.
func (otf *Font) Errors() []FontError {
	if otf.parseErrors == nil {
		return []FontError{}
	}
	return otf.parseErrors
}

// Warnings returns all warnings encountered during font parsing.
// Warnings indicate potential issues that are generally safe to ignore.
func (otf *Font) Warnings() []FontWarning {
	if otf.parseWarnings == nil {
		return []FontWarning{}
	}
	return otf.parseWarnings
}

// HasCriticalErrors returns true if any critical errors were encountered
// during parsing. Fonts with critical errors may be unreliable or unusable.
func (otf *Font) HasCriticalErrors() bool {
	for _, err := range otf.parseErrors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("name"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the various SFNT font tables.
//
// Required tables, according to the OpenType specification:
// 'cmap' (Character to glyph mapping), 'head' (Font header), 'hhea' (Horizontal header),
// 'hmtx' (Horizontal metrics), 'maxp' (Maximum profile), 'name' (Naming table),
// 'OS/2' (OS/2 and Windows specific metrics), 'post' (PostScript information).
// This package does not enforce their presence; a missing table shows up as
// a nil Table and the convenience accessors degrade to empty results.
type Table interface {
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Binary() []byte           // the bytes of this table; should be treated as read-only by clients
	Self() TableSelf          // reference to itself
}

func newTable(tag Tag, b binarySegm, offset, size uint32) *genericTable {
	t := &genericTable{tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	},
	}
	t.self = t
	return t
}

type genericTable struct {
	tableBase
}

// tableBase is a common parent for all kinds of font tables.
type tableBase struct {
	data   binarySegm // a table is a slice of font data
	name   Tag        // 4-byte name as an integer
	offset uint32     // from offset
	length uint32     // to offset + length
	self   any
}

// Extent returns offset and byte size of this table within the font.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

// TableSelf is a reference to a table. Its primary use is for converting
// a generic table to a concrete table flavour, and for reproducing the
// name tag of a table.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the 4-letter name of a table.
func (tself TableSelf) NameTag() Tag {
	return tself.tableBase.name
}

func safeSelf(tself TableSelf) any {
	if tself.tableBase == nil || tself.tableBase.self == nil {
		return TableSelf{}
	}
	return tself.tableBase.self
}

// AsHead returns this table as a head table, or nil.
func (tself TableSelf) AsHead() *HeadTable {
	if k, ok := safeSelf(tself).(*HeadTable); ok {
		return k
	}
	return nil
}

// AsMaxP returns this table as a maxp table, or nil.
func (tself TableSelf) AsMaxP() *MaxPTable {
	if k, ok := safeSelf(tself).(*MaxPTable); ok {
		return k
	}
	return nil
}

// AsLoca returns this table as a loca table, or nil.
func (tself TableSelf) AsLoca() *LocaTable {
	if k, ok := safeSelf(tself).(*LocaTable); ok {
		return k
	}
	return nil
}

// AsHHea returns this table as a hhea table, or nil.
func (tself TableSelf) AsHHea() *HHeaTable {
	if k, ok := safeSelf(tself).(*HHeaTable); ok {
		return k
	}
	return nil
}

// AsHMtx returns this table as a hmtx table, or nil.
func (tself TableSelf) AsHMtx() *HMtxTable {
	if k, ok := safeSelf(tself).(*HMtxTable); ok {
		return k
	}
	return nil
}

// AsName returns this table as a name table, or nil.
func (tself TableSelf) AsName() *NameTable {
	if k, ok := safeSelf(tself).(*NameTable); ok {
		return k
	}
	return nil
}

// AsGlyf returns this table as a glyf table, or nil.
func (tself TableSelf) AsGlyf() *GlyfTable {
	if k, ok := safeSelf(tself).(*GlyfTable); ok {
		return k
	}
	return nil
}

// --- Concrete table implementations ----------------------------------------

// HeadTable gives global information about the font.
// Only a small subset of fields is made public, as needed for interpreting
// the loca table and for scaling glyph coordinates.
type HeadTable struct {
	tableBase
	Flags            uint16 // see https://docs.microsoft.com/en-us/typography/opentype/spec/head
	UnitsPerEm       uint16 // values 16 … 16384 are valid
	IndexToLocFormat uint16 // needed to interpret loca table
}

func newHeadTable(tag Tag, b binarySegm, offset, size uint32) *HeadTable {
	t := &HeadTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.self = t
	return t
}

// LocaTable stores the offsets to the locations of the glyphs in the font,
// relative to the beginning of the glyph data table.
// By definition, index zero points to the “missing character”, which is the
// character that appears if a character is not found in the font.
type LocaTable struct {
	tableBase
	inx2loc func(t *LocaTable, gid GlyphIndex) uint32 // returns glyph location for glyph gid
	locCnt  int                                       // number of locations (numGlyphs + 1)
}

// IndexToLocation returns the offset of a glyph's data block within the
// 'glyf' table, indexed by glyph ID.
func (t *LocaTable) IndexToLocation(gid GlyphIndex) uint32 {
	return t.inx2loc(t, gid)
}

// glyphRange returns the byte range [start,end) of a glyph's data within
// the glyf table. ok is false if the loca table has no entry pair for gid.
func (t *LocaTable) glyphRange(gid GlyphIndex) (start, end uint32, ok bool) {
	if t == nil || int(gid)+1 >= t.locCnt {
		return 0, 0, false
	}
	start = t.inx2loc(t, gid)
	end = t.inx2loc(t, gid+1)
	if end < start {
		return 0, 0, false
	}
	return start, end, true
}

func newLocaTable(tag Tag, b binarySegm, offset, size uint32) *LocaTable {
	t := &LocaTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.inx2loc = shortLocaVersion // may get changed by font consistency check
	t.locCnt = 0                 // has to be set during consistency check
	t.self = t
	return t
}

func shortLocaVersion(t *LocaTable, gid GlyphIndex) uint32 {
	// in case of error link to 'missing character' at location 0
	if int(gid) >= t.locCnt {
		return 0
	}
	loc, err := t.data.u16(int(gid) * 2)
	if err != nil {
		return 0
	}
	return uint32(loc) * 2
}

func longLocaVersion(t *LocaTable, gid GlyphIndex) uint32 {
	// in case of error link to 'missing character' at location 0
	if int(gid) >= t.locCnt {
		return 0
	}
	loc, err := t.data.u32(int(gid) * 4)
	if err != nil {
		return 0
	}
	return loc
}

// MaxPTable establishes the memory requirements for this font.
// The 'maxp' table contains a count for the number of glyphs in the font.
type MaxPTable struct {
	tableBase
	NumGlyphs int
}

func newMaxPTable(tag Tag, b binarySegm, offset, size uint32) *MaxPTable {
	t := &MaxPTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.self = t
	return t
}

// HHeaTable contains information for horizontal layout.
type HHeaTable struct {
	tableBase
	Ascender         int16
	Descender        int16
	LineGap          int16
	AdvanceWidthMax  uint16
	NumberOfHMetrics int
}

func newHHeaTable(tag Tag, b binarySegm, offset, size uint32) *HHeaTable {
	t := &HHeaTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.self = t
	return t
}

// HMtxTable contains metric information for the horizontal layout of each
// glyph in the font. The first NumberOfHMetrics entries are long records
// holding advance width and left side bearing; the remaining glyphs share
// the last advance width and store only a left side bearing.
// The value NumberOfHMetrics is taken from the hhea table and copied here
// for easier access.
type HMtxTable struct {
	tableBase
	NumberOfHMetrics int
	numGlyphs        int
}

func newHMtxTable(tag Tag, b binarySegm, offset, size uint32) *HMtxTable {
	t := &HMtxTable{}
	base := tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
	t.tableBase = base
	t.self = t
	return t
}

// link sets the glyph and metrics counts taken from maxp and hhea, and
// validates the table size against them.
func (t *HMtxTable) link(numGlyphs, numberOfHMetrics int) error {
	if t == nil {
		return nil
	}
	if numGlyphs < 0 {
		return fmt.Errorf("invalid glyph count %d: %w", numGlyphs, ErrMalformed)
	}
	if numberOfHMetrics < 0 || numberOfHMetrics > numGlyphs {
		return fmt.Errorf("invalid numberOfHMetrics %d (numGlyphs=%d): %w", numberOfHMetrics, numGlyphs, ErrMalformed)
	}
	longSize, err := checkedMulInt(numberOfHMetrics, 4)
	if err != nil {
		return err
	}
	lsbSize, err := checkedMulInt(numGlyphs-numberOfHMetrics, 2)
	if err != nil {
		return err
	}
	required, err := checkedAddInt(longSize, lsbSize)
	if err != nil {
		return err
	}
	if required > len(t.data) {
		return fmt.Errorf("hmtx table too small: need %d bytes, have %d: %w", required, len(t.data), ErrMalformed)
	}
	t.NumberOfHMetrics = numberOfHMetrics
	t.numGlyphs = numGlyphs
	return nil
}

// GlyphCount returns the glyph count used when linking this hmtx table.
func (t *HMtxTable) GlyphCount() int {
	if t == nil {
		return 0
	}
	return t.numGlyphs
}

// HMetrics returns the advance width and left side bearing for a glyph.
// The records are read from the table bytes on demand; nothing is decoded
// ahead of time.
func (t *HMtxTable) HMetrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil || t.numGlyphs == 0 || int(g) >= t.numGlyphs {
		return 0, 0, false
	}
	if int(g) < t.NumberOfHMetrics {
		aw, err := t.data.u16(int(g) * 4)
		if err != nil {
			return 0, 0, false
		}
		lsb, err := t.data.u16(int(g)*4 + 2)
		if err != nil {
			return 0, 0, false
		}
		return aw, int16(lsb), true
	}
	if t.NumberOfHMetrics == 0 {
		return 0, 0, false
	}
	last := t.NumberOfHMetrics - 1
	aw, err := t.data.u16(last * 4)
	if err != nil {
		return 0, 0, false
	}
	lsb, err := t.data.u16(t.NumberOfHMetrics*4 + (int(g)-t.NumberOfHMetrics)*2)
	if err != nil {
		return 0, 0, false
	}
	return aw, int16(lsb), true
}
