package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "names", "name", "family", "psname":
		pterm.Info.Println("Table 'name'")
		pterm.Println(`
	Table 'name' holds localized strings of a font. Records look like:
	+----------+----------+----------+---------+--------+--------+
	| Platform | Encoding | Language | Name ID | Length | Offset |
	+----------+----------+----------+---------+--------+--------+
	followed by a string storage region the offsets point into.

	names         list all records (only Unicode records decode)
	family        resolved family name ('Typographic Family' wins over 'Family')
	psname        resolved PostScript name
	`)
	case "glyph", "outline", "glyf":
		pterm.Info.Println("Glyph outlines")
		pterm.Println(`
	glyph:<index> prints metrics and the outline path of a glyph:
	move/line/quad commands in font units, one contour per move.
	Composite glyphs are not decomposed.
	`)
	case "tables", "metrics", "info", "errors":
		pterm.Info.Println("Font queries")
		pterm.Println(`
	tables        tags, offsets and sizes of all tables
	info          collected metadata names and the container flavour
	metrics       global metrics from tables 'head' and 'hhea'
	errors        defects recorded while parsing the font
	`)
	default:
		pterm.Info.Println("Commands: quit, help[:topic], tables, info, names, family, psname, metrics, glyph:<index>, errors")
	}
}
