package query

import (
	xsfnt "golang.org/x/image/font/sfnt"

	"github.com/npillmayer/sfntview/sfnt"
)

// FontMetrics retrieves selected metrics of a font.
// Metrics from missing or defective tables stay zero.
func FontMetrics(otf *sfnt.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if otf == nil {
		return metrics
	}
	if hhea := otf.HHea; hhea != nil {
		metrics.Ascent = xsfnt.Units(hhea.Ascender)
		metrics.Descent = xsfnt.Units(hhea.Descender)
		metrics.LineGap = xsfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = xsfnt.Units(hhea.AdvanceWidthMax)
	}
	if head := otf.Head; head != nil {
		metrics.UnitsPerEm = xsfnt.Units(head.UnitsPerEm)
	}
	return metrics
}

// GlyphMetrics retrieves metrics for a given glyph.
func GlyphMetrics(otf *sfnt.Font, gid sfnt.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	if otf == nil {
		return metrics
	}
	// table hmtx: advance width and left side bearing
	if aw, lsb, ok := otf.HMtx.HMetrics(gid); ok {
		metrics.Advance = xsfnt.Units(aw)
		metrics.LSB = xsfnt.Units(lsb)
	}
	// table glyf: bounding box from the glyph header
	metrics.BBox = glyphBBox(otf, gid)
	if !metrics.BBox.IsEmpty() && metrics.Advance != 0 {
		metrics.RSB = metrics.Advance - metrics.LSB - metrics.BBox.Dx()
	}
	return metrics
}

// glyphBBox reads xMin/yMin/xMax/yMax from a glyph's header. Empty
// glyphs and out-of-range glyph indices yield a zero box.
func glyphBBox(otf *sfnt.Font, gid sfnt.GlyphIndex) BoundingBox {
	bbox := BoundingBox{}
	if otf.Glyf == nil || otf.Loca == nil {
		return bbox
	}
	glyf := otf.Glyf.Binary()
	start := otf.Loca.IndexToLocation(gid)
	end := otf.Loca.IndexToLocation(gid + 1)
	if end <= start || end > uint32(len(glyf)) || end-start < 10 {
		return bbox
	}
	b := glyf[start : start+10]
	bbox.MinX = xsfnt.Units(i16(b[2:]))
	bbox.MinY = xsfnt.Units(i16(b[4:]))
	bbox.MaxX = xsfnt.Units(i16(b[6:]))
	bbox.MaxY = xsfnt.Units(i16(b[8:]))
	return bbox
}

func i16(b []byte) int16 {
	return int16(b[0])<<8 | int16(b[1])<<0
}
