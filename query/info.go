package query

import (
	"sort"

	"github.com/npillmayer/sfntview/sfnt"
)

// FontType returns the flavour of a font's container: "TrueType" for
// fonts with TrueType outlines, "OpenType" for fonts with CFF data, or
// "unknown".
func FontType(otf *sfnt.Font) string {
	if otf == nil || otf.Header == nil {
		return "unknown"
	}
	switch otf.Header.FontType {
	case 0x00010000, 0x74727565: // 'true' is Apple's legacy TrueType tag
		return "TrueType"
	case 0x4f54544f: // 'OTTO'
		return "OpenType"
	}
	return "unknown"
}

// TableList returns the tags of all tables contained in a font, sorted
// alphabetically.
func TableList(otf *sfnt.Font) []string {
	if otf == nil {
		return []string{}
	}
	tags := otf.TableTags()
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.String()
	}
	sort.Strings(names)
	return names
}
