package sfntview

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFacadeNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfntview")
	defer teardown()
	//
	otf, err := FromBinary(nameOnlyFont())
	if err != nil {
		t.Fatal(err)
	}
	family, subfamily := FamilyName(otf)
	if family != "Demo Sans" || subfamily != "Regular" {
		t.Errorf("expected ('Demo Sans', 'Regular'), got (%q, %q)", family, subfamily)
	}
	if psname := PostScriptName(otf); psname != "DemoSans-Regular" {
		t.Errorf("expected 'DemoSans-Regular', got %q", psname)
	}
}

func TestFacadeRejectsGarbage(t *testing.T) {
	if _, err := FromBinary([]byte("this is not a font")); err == nil {
		t.Error("expected parse failure for garbage input")
	}
}

// nameOnlyFont builds a minimal font holding just a name table with
// family, subfamily and PostScript records.
func nameOnlyFont() []byte {
	put := func(b []byte, at int, n uint16) {
		b[at] = byte(n >> 8)
		b[at+1] = byte(n)
	}
	ascii16 := func(s string) []byte {
		b := make([]byte, 2*len(s))
		for i := 0; i < len(s); i++ {
			b[2*i+1] = s[i]
		}
		return b
	}
	values := [][]byte{ascii16("Demo Sans"), ascii16("Regular"), ascii16("DemoSans-Regular")}
	nameIDs := []uint16{1, 2, 6}
	storageStart := 6 + 12*len(values)
	name := make([]byte, storageStart)
	put(name, 2, uint16(len(values)))
	put(name, 4, uint16(storageStart))
	cursor := 0
	for i, v := range values {
		rec := 6 + 12*i
		put(name, rec+0, 3) // Windows platform
		put(name, rec+2, 1) // Unicode BMP
		put(name, rec+6, nameIDs[i])
		put(name, rec+8, uint16(len(v)))
		put(name, rec+10, uint16(cursor))
		cursor += len(v)
	}
	for _, v := range values {
		name = append(name, v...)
	}

	font := make([]byte, 28, 28+len(name))
	font[1] = 0x01 // font type 0x00010000
	put(font, 4, 1)
	copy(font[12:16], "name")
	font[23] = 28 // table offset
	put(font, 26, uint16(len(name)))
	return append(font, name...)
}
