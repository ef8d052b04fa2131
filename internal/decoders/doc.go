// Package decoders provides transfer-encoding decoders for property values.
//
// vCard 2.1 and early iCalendar producers encode binary or non-ASCII
// property values with quoted-printable or base64 transfer encodings,
// selected by the ENCODING parameter. This package implements lenient
// decoders for both.
//
// Quoted-printable:
//
//	decoded, err := decoders.QuotedPrintable(data)
//
// Invalid escape sequences are passed through literally instead of
// failing, because real-world producers emit raw "=" characters without
// encoding them.
//
// Base64:
//
//	decoded, err := decoders.Base64(data)
//
// Whitespace is stripped and missing padding is tolerated.
package decoders
