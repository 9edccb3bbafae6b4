package sfnt

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Table 'name' holds localized strings associated with a font: family and
// style names, copyright notices, the PostScript name, and so on. Records
// are stored in a fixed-stride array followed by a storage region with the
// actual string bytes; this file walks both regions lazily and never trusts
// a declared offset or length.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/name

// PlatformID identifies the platform convention under which a name
// record's string bytes are encoded.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/name#platform-ids
type PlatformID uint16

const (
	PlatformUnicode   PlatformID = 0
	PlatformMacintosh PlatformID = 1
	PlatformISO       PlatformID = 2
	PlatformWindows   PlatformID = 3
	PlatformCustom    PlatformID = 4
)

// platformFromU16 maps a raw platform field to the closed enumeration.
// Unrecognized values map to None, keeping match logic exhaustive.
func platformFromU16(n uint16) Option[PlatformID] {
	if n > uint16(PlatformCustom) {
		return None[PlatformID]()
	}
	return Some(PlatformID(n))
}

func (p PlatformID) String() string {
	switch p {
	case PlatformUnicode:
		return "Unicode"
	case PlatformMacintosh:
		return "Macintosh"
	case PlatformISO:
		return "ISO"
	case PlatformWindows:
		return "Windows"
	case PlatformCustom:
		return "Custom"
	}
	return "Unrecognized"
}

// Well-known name IDs, used to identify the semantic role of a name
// record's string.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/name#name-ids
const (
	NameIDCopyrightNotice uint16 = 0
	NameIDFamily          uint16 = 1
	NameIDSubfamily       uint16 = 2
	NameIDUniqueID        uint16 = 3
	NameIDFullName        uint16 = 4
	NameIDVersion         uint16 = 5
	NameIDPostScriptName  uint16 = 6
	NameIDTrademark       uint16 = 7
	NameIDManufacturer    uint16 = 8
	NameIDDesigner        uint16 = 9
	NameIDDescription     uint16 = 10
	NameIDVendorURL       uint16 = 11
	NameIDDesignerURL     uint16 = 12
	NameIDLicense         uint16 = 13
	NameIDLicenseURL      uint16 = 14
	// 15 is reserved
	NameIDTypographicFamily              uint16 = 16
	NameIDTypographicSubfamily           uint16 = 17
	NameIDCompatibleFull                 uint16 = 18
	NameIDSampleText                     uint16 = 19
	NameIDPostScriptCID                  uint16 = 20
	NameIDWWSFamily                      uint16 = 21
	NameIDWWSSubfamily                   uint16 = 22
	NameIDLightBackgroundPalette         uint16 = 23
	NameIDDarkBackgroundPalette          uint16 = 24
	NameIDVariationsPostScriptNamePrefix uint16 = 25
)

// https://docs.microsoft.com/en-us/typography/opentype/spec/name#windows-encoding-ids
const windowsUnicodeBMPEncodingID = 1

// isUnicodeEncoding reports whether a (platform, encoding) pair stores its
// string bytes as UTF-16BE. Only such records may be decoded to text.
func isUnicodeEncoding(platform PlatformID, encodingID uint16) bool {
	switch platform {
	case PlatformUnicode:
		return true
	case PlatformWindows:
		return encodingID == windowsUnicodeBMPEncodingID
	}
	return false
}

// --- Name table ------------------------------------------------------------

// NameTable is the parsed 'name' table. It holds only the table's byte
// segment; records are located anew on every accessor call, so a NameTable
// may be shared between goroutines.
type NameTable struct {
	tableBase
}

func parseName(tag Tag, b binarySegm, offset, size uint32) (Table, error) {
	t := &NameTable{}
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

// nameRecordSize is the on-disk size of one NameRecord.
const nameRecordSize = 12

// Field offsets within a NameRecord.
const (
	recPlatformID = 0
	recEncodingID = 2
	recLanguageID = 4
	recNameID     = 6
	recLength     = 8
	recOffset     = 10
)

// records locates the record array and the string storage region.
// Failure modes (truncated header, unrecognized format, overflowing
// language-tag run, record array past the table end) surface as errors
// here and are absorbed by the public accessor Records.
func (t *NameTable) records() (Names, error) {
	const langTagRecordSize = 4
	s := NewStream(t.data)
	format, err := s.ReadU16()
	if err != nil {
		return Names{}, err
	}
	count, err := s.ReadU16()
	if err != nil {
		return Names{}, err
	}
	if err = s.Skip16(); err != nil { // storage offset; regions are derived positionally
		return Names{}, err
	}
	langTagCount := uint16(0)
	switch format {
	case 0:
		// record array follows immediately
	case 1:
		if langTagCount, err = s.ReadU16(); err != nil {
			return Names{}, err
		}
		// a run of langTagCount 4-byte language-tag records precedes the
		// record array; the multiplication is width-checked so a count
		// near 0xffff fails instead of wrapping to a too-small skip
		skip, err := checkedMulUint16(langTagCount, langTagRecordSize)
		if err != nil {
			return Names{}, err
		}
		if err = s.Advance(int(skip)); err != nil {
			return Names{}, err
		}
	default:
		return Names{}, fmt.Errorf("name table format %d: %w", format, ErrMalformed)
	}
	recsSize, err := checkedMulInt(nameRecordSize, int(count))
	if err != nil {
		return Names{}, err
	}
	recs, err := s.ReadBytes(recsSize)
	if err != nil {
		return Names{}, err
	}
	storage, err := s.Tail()
	if err != nil {
		return Names{}, err
	}
	return Names{
		records: viewArray(recs, nameRecordSize),
		storage: storage,
	}, nil
}

// checkedMulUint16 checks for overflow in multiplication of two uint16 values.
func checkedMulUint16(a, b uint16) (uint16, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0xffff/b {
		return 0, fmt.Errorf("%d * %d: %w", a, b, ErrOverflow)
	}
	return a * b, nil
}

// Records returns an iterator over the table's name records.
//
// Malformed name tables are common in fonts found in the wild, and a
// caller extracting a single name should not have to handle a hard
// failure for them; any structural defect therefore yields an iterator
// of length zero rather than an error.
func (t *NameTable) Records() Names {
	if t == nil {
		return Names{}
	}
	names, err := t.records()
	if err != nil {
		tracer().Debugf("name table unusable: %v", err)
		return Names{}
	}
	return names
}

// LangTags returns the language-tag records of a format-1 name table as a
// lazy view. Format-0 tables yield an empty view.
func (t *NameTable) LangTags() LangTags {
	if t == nil || len(t.data) < 8 {
		return LangTags{}
	}
	if format := u16(t.data); format != 1 {
		return LangTags{}
	}
	count := int(u16(t.data[6:8]))
	region, err := t.data.view(8, count*4)
	if err != nil {
		return LangTags{}
	}
	return LangTags{tags: viewArray(region, 4)}
}

// LangTags is a lazy view over the language-tag records of a format-1
// name table. Each record is a (length, offset) pair into the table's
// string storage; this package exposes only the raw records.
type LangTags struct {
	tags array
}

// Len returns the number of language-tag records.
func (lt LangTags) Len() int {
	return lt.tags.Len()
}

// Nth returns the raw bytes of language-tag record i.
func (lt LangTags) Nth(i int) ([]byte, bool) {
	b, ok := lt.tags.Nth(i)
	return b, ok
}

// --- Name record iterator ---------------------------------------------------

// Names is an iterator over a font's name records. The zero value is a
// valid, empty iterator. Names is a pair of views (record array, string
// storage) plus a cursor; copying a Names value restarts iteration.
type Names struct {
	records array
	storage binarySegm
	index   int
}

// Len returns the number of name records.
func (ns Names) Len() int {
	return ns.records.Len()
}

// Nth returns the record at index i without touching the iteration cursor.
// Indexing at Len() or beyond returns false.
func (ns Names) Nth(i int) (NameRecord, bool) {
	b, ok := ns.records.Nth(i)
	if !ok {
		return NameRecord{}, false
	}
	return NameRecord{data: b, storage: ns.storage}, true
}

// Next returns the record at the cursor and advances it.
func (ns *Names) Next() (NameRecord, bool) {
	rec, ok := ns.Nth(ns.index)
	if ok {
		ns.index++
	}
	return rec, ok
}

// Reset rewinds the iteration cursor.
func (ns *Names) Reset() {
	ns.index = 0
}

// Range iterates over all records in on-disk order.
func (ns Names) Range() iter.Seq[NameRecord] {
	return func(yield func(NameRecord) bool) {
		for i := range ns.Len() {
			rec, ok := ns.Nth(i)
			if !ok || !yield(rec) {
				return
			}
		}
	}
}

// --- Name record ------------------------------------------------------------

// NameRecord is one 12-byte entry of the name table's record array.
// Fields are read from the record bytes on demand; nothing is decoded
// until the respective accessor is called.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/name#name-records
type NameRecord struct {
	data    binarySegm // the 12 record bytes
	storage binarySegm // the table's string storage region
}

func (n NameRecord) fieldU16(offset int) uint16 {
	v, err := n.data.u16(offset)
	if err != nil {
		return 0
	}
	return v
}

// PlatformID returns the record's platform, or None for a raw value
// outside the registered enumeration.
func (n NameRecord) PlatformID() Option[PlatformID] {
	return platformFromU16(n.fieldU16(recPlatformID))
}

// EncodingID returns the platform-specific encoding ID.
func (n NameRecord) EncodingID() uint16 {
	return n.fieldU16(recEncodingID)
}

// LanguageID returns the record's language ID.
func (n NameRecord) LanguageID() uint16 {
	return n.fieldU16(recLanguageID)
}

// NameID identifies the semantic role of the record's string; well-known
// values are listed as the NameID… constants.
func (n NameRecord) NameID() uint16 {
	return n.fieldU16(recNameID)
}

// Name returns the record's string bytes, still in the record's own
// encoding. A record whose declared (offset, length) pair reaches outside
// the storage region yields an empty slice; that includes a nonzero
// length at an offset equal to the storage size.
func (n NameRecord) Name() []byte {
	start := int(n.fieldU16(recOffset))
	length := int(n.fieldU16(recLength))
	b, err := n.storage.view(start, length)
	if err != nil {
		return []byte{}
	}
	return b
}

// IsUnicode reports whether the record's string bytes are UTF-16BE:
// either the Unicode platform, or Windows platform with the Unicode BMP
// encoding.
func (n NameRecord) IsUnicode() bool {
	platform, ok := n.PlatformID().Unwrap()
	if !ok {
		return false
	}
	return isUnicodeEncoding(platform, n.EncodingID())
}

// NameString decodes the record's string bytes as UTF-16BE.
//
// Only Unicode records are supported (see IsUnicode); all others yield
// None, as do string bytes containing invalid UTF-16. This is the one
// heap-allocating accessor on a record.
func (n NameRecord) NameString() Option[string] {
	if !n.IsUnicode() {
		return None[string]()
	}
	return nameFromUTF16BE(n.Name())
}

// nameFromUTF16BE decodes big-endian UTF-16 strictly: unpaired surrogates
// fail the decode instead of degrading to replacement characters. The
// code units are read through a stride-2 view, so an odd trailing byte is
// inert.
func nameFromUTF16BE(b []byte) Option[string] {
	units := viewArray(b, 2)
	var sb strings.Builder
	for i := 0; i < units.Len(); i++ {
		seg, ok := units.Nth(i)
		if !ok {
			return None[string]()
		}
		u := rune(u16(seg))
		if !utf16.IsSurrogate(u) {
			sb.WriteRune(u)
			continue
		}
		if u >= 0xDC00 { // low surrogate without preceding high surrogate
			return None[string]()
		}
		i++
		seg, ok = units.Nth(i)
		if !ok {
			return None[string]()
		}
		r := utf16.DecodeRune(u, rune(u16(seg)))
		if r == unicode.ReplacementChar {
			return None[string]()
		}
		sb.WriteRune(r)
	}
	return Some(sb.String())
}

// --- Name resolution --------------------------------------------------------

// Names returns an iterator over the font's name records. Fonts without a
// usable name table yield an empty iterator.
func (otf *Font) Names() Names {
	if otf == nil || otf.Name == nil {
		return Names{}
	}
	return otf.Name.Records()
}

// FamilyName returns the font's family name.
//
// 'Typographic Family' is preferred over 'Family': a single pass scans
// the records in on-disk order, remembering the latest Unicode 'Family'
// record but stopping at the first Unicode 'Typographic Family'. Records
// that are not Unicode-decodable never participate.
func (otf *Font) FamilyName() Option[string] {
	names := otf.Names()
	candidate := -1
	for i := 0; i < names.Len(); i++ {
		rec, ok := names.Nth(i)
		if !ok {
			break
		}
		if !rec.IsUnicode() {
			continue
		}
		if rec.NameID() == NameIDTypographicFamily {
			// typographic family always wins, first occurrence ends the scan
			candidate = i
			break
		} else if rec.NameID() == NameIDFamily {
			candidate = i
			// keep scanning, a later 'Typographic Family' overrides
		}
	}
	if candidate < 0 {
		return None[string]()
	}
	rec, ok := names.Nth(candidate)
	if !ok {
		return None[string]()
	}
	return rec.NameString()
}

// PostScriptName returns the font's PostScript name: the first Unicode
// record with the PostScript name ID, in on-disk order.
func (otf *Font) PostScriptName() Option[string] {
	names := otf.Names()
	for i := 0; i < names.Len(); i++ {
		rec, ok := names.Nth(i)
		if !ok {
			break
		}
		if rec.IsUnicode() && rec.NameID() == NameIDPostScriptName {
			return rec.NameString()
		}
	}
	return None[string]()
}
