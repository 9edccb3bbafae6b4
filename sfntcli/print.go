package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/sfntview/query"
	"github.com/npillmayer/sfntview/sfnt"
	"github.com/pterm/pterm"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	otf := intp.font.Font
	data := [][]string{
		{"Tag", "Offset", "Size"},
	}
	for _, tag := range query.TableList(otf) {
		table := otf.Table(sfnt.T(tag))
		offset, size := table.Extent()
		data = append(data, []string{
			tag,
			fmt.Sprintf("%d", offset),
			fmt.Sprintf("%d", size),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func infoOp(intp *Intp, op *Op) (error, bool) {
	otf := intp.font.Font
	pterm.Printf("font type: %s\n", query.FontType(otf))
	info := query.NameInfo(otf)
	for _, key := range []string{"family", "subfamily", "full", "version", "postscript"} {
		if value, ok := info[key]; ok {
			pterm.Printf("%-12s %s\n", key, value)
		}
	}
	return nil, false
}

func namesOp(intp *Intp, op *Op) (error, bool) {
	names := intp.font.Font.Names()
	pterm.Printf("name table has %d records\n", names.Len())
	if names.Len() == 0 {
		return nil, false
	}
	data := [][]string{
		{"Platform", "Encoding", "Language", "Name ID", "Value"},
	}
	for rec := range names.Range() {
		value := "(not Unicode)"
		if s, ok := rec.NameString().Unwrap(); ok {
			value = s
		}
		platform := "?"
		if p, ok := rec.PlatformID().Unwrap(); ok {
			platform = p.String()
		}
		data = append(data, []string{
			platform,
			fmt.Sprintf("%d", rec.EncodingID()),
			fmt.Sprintf("%d", rec.LanguageID()),
			fmt.Sprintf("%d", rec.NameID()),
			value,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func familyOp(intp *Intp, op *Op) (error, bool) {
	if fam, ok := intp.font.Font.FamilyName().Unwrap(); ok {
		pterm.Printf("family name: %s\n", fam)
	} else {
		pterm.Println("font has no decodable family name")
	}
	return nil, false
}

func psnameOp(intp *Intp, op *Op) (error, bool) {
	if psname, ok := intp.font.Font.PostScriptName().Unwrap(); ok {
		pterm.Printf("PostScript name: %s\n", psname)
	} else {
		pterm.Println("font has no decodable PostScript name")
	}
	return nil, false
}

func metricsOp(intp *Intp, op *Op) (error, bool) {
	metrics := query.FontMetrics(intp.font.Font)
	pterm.Printf("units per em: %d\n", metrics.UnitsPerEm)
	pterm.Printf("ascent:       %d\n", metrics.Ascent)
	pterm.Printf("descent:      %d\n", metrics.Descent)
	pterm.Printf("line gap:     %d\n", metrics.LineGap)
	pterm.Printf("max advance:  %d\n", metrics.MaxAdvance)
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("usage: glyph:<index>"), false
	}
	gid, err := strconv.ParseUint(arg, 10, 16)
	if err != nil {
		return fmt.Errorf("not a glyph index: %s", arg), false
	}
	otf := intp.font.Font
	metrics := query.GlyphMetrics(otf, sfnt.GlyphIndex(gid))
	pterm.Printf("glyph %d: advance=%d lsb=%d rsb=%d bbox=%dx%d\n", gid,
		metrics.Advance, metrics.LSB, metrics.RSB, metrics.BBox.Dx(), metrics.BBox.Dy())
	printer := &pathPrinter{}
	if err := otf.Outline(sfnt.GlyphIndex(gid), printer); err != nil {
		return err, false
	}
	if printer.count == 0 {
		pterm.Println("glyph has no outline")
	}
	return nil, false
}

func errorsOp(intp *Intp, op *Op) (error, bool) {
	otf := intp.font.Font
	for _, e := range otf.Errors() {
		pterm.Error.Println(e.Error())
	}
	for _, w := range otf.Warnings() {
		pterm.Println(w.String())
	}
	if len(otf.Errors()) == 0 && len(otf.Warnings()) == 0 {
		pterm.Println("font parsed without defects")
	}
	return nil, false
}

// pathPrinter prints outline commands, one per line.
type pathPrinter struct {
	count int
}

func (p *pathPrinter) MoveTo(x, y float32) {
	p.count++
	pterm.Printf("  move  (%g, %g)\n", x, y)
}

func (p *pathPrinter) LineTo(x, y float32) {
	p.count++
	pterm.Printf("  line  (%g, %g)\n", x, y)
}

func (p *pathPrinter) QuadTo(cx, cy, x, y float32) {
	p.count++
	pterm.Printf("  quad  (%g, %g) -> (%g, %g)\n", cx, cy, x, y)
}
