package query

import (
	"iter"

	"github.com/npillmayer/sfntview/sfnt"
	"golang.org/x/text/encoding/unicode"
)

// NamesRange yields decoded `(nameID, value)` pairs from a font's
// name table, in on-disk order.
//
// Only Unicode-encoded records are yielded (Unicode platform and Windows
// BMP). Decoding is lenient: where sfnt.NameRecord.NameString rejects
// invalid UTF-16 outright, this query substitutes replacement characters,
// which is usually the right trade-off when listing names for a user.
// Empty and undecodable values are skipped.
func NamesRange(otf *sfnt.Font) iter.Seq2[uint16, string] {
	return func(yield func(uint16, string) bool) {
		if otf == nil {
			return
		}
		for rec := range otf.Names().Range() {
			if !rec.IsUnicode() {
				continue
			}
			value, err := decodeNameUTF16(rec.Name())
			if err != nil || value == "" {
				continue
			}
			if !yield(rec.NameID(), value) {
				return
			}
		}
	}
}

// NameInfo collects the most common metadata names of a font into a map.
// Map keys are "family", "subfamily", "full", "version" and "postscript";
// keys without a usable record are absent. The "family" and "postscript"
// entries follow the resolution rules of sfnt.Font.FamilyName and
// sfnt.Font.PostScriptName.
func NameInfo(otf *sfnt.Font) map[string]string {
	info := map[string]string{}
	if otf == nil {
		return info
	}
	if fam, ok := otf.FamilyName().Unwrap(); ok {
		info["family"] = fam
	}
	if psname, ok := otf.PostScriptName().Unwrap(); ok {
		info["postscript"] = psname
	}
	wanted := map[uint16]string{
		sfnt.NameIDSubfamily: "subfamily",
		sfnt.NameIDFullName:  "full",
		sfnt.NameIDVersion:   "version",
	}
	for nameID, value := range NamesRange(otf) {
		key, ok := wanted[nameID]
		if !ok {
			continue
		}
		if _, have := info[key]; !have {
			info[key] = value
		}
	}
	tracer().Debugf("collected %d name entries", len(info))
	return info
}

func decodeNameUTF16(str []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoder := enc.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", err
	}
	return string(s), nil
}
