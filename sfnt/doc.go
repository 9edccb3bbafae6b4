/*
Package sfnt provides safe, zero-copy views into SFNT font binaries
(TrueType and OpenType container files).

The package is built for callers that have to read fonts of unknown
provenance — web content, embedded documents — where the byte buffer cannot
be trusted. Every access into the buffer is bounds-checked, every size
computation is overflow-checked, and no operation ever panics on malformed
input. The buffer itself is never copied: all table and record types are
views carrying offsets into the caller's slice, valid for as long as the
caller keeps the slice alive.

Parsing is deliberately lazy. A call like

	otf, err := sfnt.Parse(fontBytes)
	family, ok := otf.FamilyName().Unwrap()

locates the 'name' table once and then walks its records on demand; nothing
is decoded into intermediate structs that the caller did not ask for. The
same holds for glyph outlines, which are streamed into a caller-supplied
sink as move/line/quadratic-curve commands:

	err := otf.Outline(gid, sink)

Malformed metadata tables are common in real-world fonts, so the public
table accessors degrade to well-defined empty results instead of failing:
an unreadable 'name' table yields a zero-length record iterator, not an
error. Callers that need to distinguish absence consult Font.Table directly.

A Font is read-only after Parse returns and may be shared between
goroutines without locking; per-call objects (streams, record iterators)
carry mutable positions and are not shared.

# Status

Tables interpreted: head, maxp, hhea, hmtx, loca, name, glyf (simple
glyphs). Composite glyphs, variable fonts and font collections are not
supported. Layout tables (GSUB/GPOS et al.) are exposed as raw tables only.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfnt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.sfntview'
func tracer() tracing.Trace {
	return tracing.Select("font.sfntview")
}
