/*
Package sfntview is for reading typefaces and fonts.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

This package is the convenience facade over the module: parsing lives in
package sfnt, application-level queries in package query. The facade
covers the common case of loading a single font and asking for its names.

# Status

Does not yet contain methods for font collections (*.ttc), e.g.,
/System/Library/Fonts/Helvetica.ttc on Mac OS.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntview

import (
	"github.com/npillmayer/sfntview/query"
	"github.com/npillmayer/sfntview/sfnt"
)

// FromBinary parses raw TrueType or OpenType bytes and returns a decoded
// font.
//
// The input is expected to contain a complete single-font SFNT stream.
// It must not change after parsing for the font to be usable.
func FromBinary(data []byte) (*sfnt.Font, error) {
	return sfnt.Parse(data)
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// The family name follows the resolution rules of sfnt.Font.FamilyName,
// i.e. a 'Typographic Family' record wins over a plain 'Family' record.
// Returned values are empty if no matching records exist or if records
// cannot be decoded by the current name-table reader.
func FamilyName(otf *sfnt.Font) (family, subfamily string) {
	family, _ = otf.FamilyName().Unwrap()
	for nameID, stringValue := range query.NamesRange(otf) {
		if nameID == sfnt.NameIDSubfamily {
			subfamily = stringValue
			break
		}
	}
	return
}

// PostScriptName extracts a font's PostScript name, or "" if the font
// carries no decodable record for it.
func PostScriptName(otf *sfnt.Font) string {
	psname, _ := otf.PostScriptName().Unwrap()
	return psname
}
