/*
Package query provides higher-level queries over parsed SFNT fonts.

Where package sfnt exposes tables and records close to their on-disk
shape, this package answers application-level questions: what is this
font called, which glyph metrics does it carry, what kind of container
is it. Queries are tolerant by design; a defective or missing table
yields an empty answer, never an error.

# Status

Work in progress.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package query

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'font.sfntview.query'.
func tracer() tracing.Trace {
	return tracing.Select("font.sfntview.query")
}
