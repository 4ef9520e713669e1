// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package screen parses the screen config of a dispatcher workstation into
// a typed [Document].
//
// # Format
//
// A screen config is line oriented. Blank lines and whitespace surrounding a
// line are insignificant. Sections are opened with a "[Name]" line and closed
// with a "[#Name]" line; everything else of the form "key = value" is a
// key value pair. String values may be wrapped in double quotes, which are
// removed; there are no escape sequences.
//
//	internal_address = 331
//	name = "Engineer"
//	[AvailableRadiostations]
//	[AvailableRadiostation01]
//	radio_name = "Tower 134.1"
//	slot = -1
//	[#AvailableRadiostation01]
//	[#AvailableRadiostations]
//	[PhonePanels]
//	[Panel01]
//	[Button01]
//	internal_address = 303
//	position_x = 0.02
//	position_y = 0.016
//	size_height = 0.147
//	size_width = 0.225
//	text = "X"
//	[#Button01]
//	[#Panel01]
//	[#PhonePanels]
//
// Three top level sections are understood: AvailableRadiostations,
// PhonePanels and RadioPanels. Any other top level section is skipped up to
// the first closing tag carrying its name. Unknown keys, unmatched closing
// tags and lines which are neither a tag nor a key value pair are ignored.
//
// # Errors
//
// A value which fails numeric conversion aborts the whole parse with an
// [InvalidIntError] or [InvalidFloatError]. With the [Strict] option an
// unknown top level key is reported as an [UnknownGlobalKeyError].
package screen
