package sfnt

import (
	"sort"
	"testing"
	"unicode/utf16"
)

// Helpers to assemble synthetic font binaries for tests. Real fonts are
// large and opaque; hand-built tables keep the fixtures readable and let
// tests corrupt exactly one aspect at a time.

func putU16(b []byte, at int, n uint16) {
	b[at] = byte(n >> 8)
	b[at+1] = byte(n)
}

func putU32(b []byte, at int, n uint32) {
	b[at] = byte(n >> 24)
	b[at+1] = byte(n >> 16)
	b[at+2] = byte(n >> 8)
	b[at+3] = byte(n)
}

// buildFont assembles an SFNT container with a correct table directory:
// records sorted by tag, table data 4-byte aligned.
func buildFont(t *testing.T, tables map[string][]byte) []byte {
	t.Helper()
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	dirSize := 12 + 16*len(tags)
	offset := (dirSize + 3) &^ 3
	total := offset
	offsets := make(map[string]int, len(tags))
	for _, tag := range tags {
		offsets[tag] = total
		total += (len(tables[tag]) + 3) &^ 3
	}
	buf := make([]byte, total)
	putU32(buf, 0, 0x00010000)
	putU16(buf, 4, uint16(len(tags)))
	for i, tag := range tags {
		rec := 12 + 16*i
		copy(buf[rec:rec+4], tag)
		putU32(buf, rec+8, uint32(offsets[tag]))
		putU32(buf, rec+12, uint32(len(tables[tag])))
		copy(buf[offsets[tag]:], tables[tag])
	}
	return buf
}

func buildHeadTable(indexToLocFormat uint16) []byte {
	b := make([]byte, 54)
	putU16(b, 18, 1000) // unitsPerEm
	putU16(b, 50, indexToLocFormat)
	return b
}

func buildMaxPTable(numGlyphs uint16) []byte {
	b := make([]byte, 32)
	putU32(b, 0, 0x00010000)
	putU16(b, 4, numGlyphs)
	return b
}

func buildHHeaTable(numberOfHMetrics uint16) []byte {
	b := make([]byte, 36)
	descender := int16(-200)
	putU16(b, 4, 800) // ascender
	putU16(b, 6, uint16(descender))
	putU16(b, 34, numberOfHMetrics)
	return b
}

// nameRec describes one name table entry for buildNameTable; value bytes
// are appended to the string storage verbatim.
type nameRec struct {
	platform uint16
	encoding uint16
	language uint16
	nameID   uint16
	value    []byte
}

// buildNameTable assembles a format 0 or format 1 name table from recs.
func buildNameTable(t *testing.T, format uint16, recs []nameRec) []byte {
	t.Helper()
	headerSize := 6
	if format == 1 {
		headerSize = 8 // langTagCount present, zero language tags
	}
	recsStart := headerSize
	storageStart := recsStart + 12*len(recs)
	storageSize := 0
	for _, r := range recs {
		storageSize += len(r.value)
	}
	b := make([]byte, storageStart+storageSize)
	putU16(b, 0, format)
	putU16(b, 2, uint16(len(recs)))
	putU16(b, 4, uint16(storageStart))
	cursor := 0
	for i, r := range recs {
		rec := recsStart + 12*i
		putU16(b, rec+0, r.platform)
		putU16(b, rec+2, r.encoding)
		putU16(b, rec+4, r.language)
		putU16(b, rec+6, r.nameID)
		putU16(b, rec+8, uint16(len(r.value)))
		putU16(b, rec+10, uint16(cursor))
		copy(b[storageStart+cursor:], r.value)
		cursor += len(r.value)
	}
	return b
}

// utf16be encodes s as big-endian UTF-16 code units.
func utf16be(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 2*len(units))
	for i, u := range units {
		putU16(b, 2*i, u)
	}
	return b
}

// nameTableOf wraps raw name table bytes in a Font, bypassing Parse.
func nameTableOf(t *testing.T, b []byte) *Font {
	t.Helper()
	table, err := parseName(T("name"), b, 0, uint32(len(b)))
	if err != nil {
		t.Fatalf("name table construction failed: %v", err)
	}
	return &Font{Name: table.Self().AsName()}
}
