package fontload

import (
	"os"

	"github.com/npillmayer/sfntview/query"
	"github.com/npillmayer/sfntview/sfnt"
)

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	Font     *sfnt.Font
}

// LoadFont loads a TrueType or OpenType font from a file.
func LoadFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	return ParseFont(bytez)
}

// ParseFont loads a TrueType or OpenType font from memory.
func ParseFont(fbytes []byte) (*ScalableFont, error) {
	otf, err := sfnt.Parse(fbytes)
	if err != nil {
		return nil, err
	}
	f := &ScalableFont{Binary: fbytes, Font: otf}
	info := query.NameInfo(otf)
	switch {
	case info["full"] != "":
		f.Fontname = info["full"]
	case info["family"] != "":
		f.Fontname = info["family"]
	default:
		f.Fontname = "(unnamed font)"
	}
	return f, nil
}
