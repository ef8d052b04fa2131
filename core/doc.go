// Package core provides low-level vCard and iCalendar parsing primitives.
//
// This package implements the fundamental building blocks for reading
// vObject-family text formats: line unfolding and content-line tokenization.
// Higher-level packages build component trees on top of these primitives.
//
// # Unfolding
//
// Both vCard and iCalendar fold long logical lines across multiple physical
// lines. The [FoldedLineReader] type reverses this transparently: its
// ReadLine method returns whole logical lines, joining continuation lines
// marked by leading whitespace (RFC 5545 / RFC 6350) and, for
// QUOTED-PRINTABLE property values, the legacy trailing "=" continuation
// style emitted by some non-conformant producers. Blank physical lines
// between properties are skipped, and physical line numbers are tracked for
// diagnostics via LineNum.
//
// # Content Lines
//
// The [ContentLineParser] type tokenizes each unfolded line into a
// [ContentLine]: group, property name, parameters, and the raw value.
// Values are not interpreted; transfer encodings such as quoted-printable
// and base64 are decoded by consumers when needed.
package core
