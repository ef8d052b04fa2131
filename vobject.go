// Package vobject provides a fluent API for parsing vCard and iCalendar
// streams, including vCards embedded in HTML as hCard microformats.
//
// Basic usage:
//
//	cards, warnings, err := vobject.Open("contacts.vcf").Cards()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", vobject.FormatWarnings(warnings))
//	}
//
// With options:
//
//	cards, _, err := vobject.Open("contacts.vcf").
//	    Charset("iso-8859-1").
//	    Strict().
//	    Cards()
//
// For advanced use cases, the lower-level core package is also available:
// its FoldedLineReader unfolds logical lines one at a time, and its
// ContentLineParser tokenizes them without building a component tree.
package vobject

import (
	"io"
	"strings"
)

// Open opens a vCard, iCalendar, or hCard HTML file and returns a Decoder
// for fluent configuration. The format is inferred from the filename
// extension; use As to override it.
//
// Example:
//
//	cards, warnings, err := vobject.Open("contacts.vcf").Cards()
func Open(filename string) *Decoder {
	return &Decoder{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates a Decoder reading from r. The caller remains
// responsible for closing r if it needs closing.
//
// Example:
//
//	cards, warnings, err := vobject.FromReader(f).Cards()
func FromReader(r io.Reader) *Decoder {
	return &Decoder{
		source:  r,
		options: defaultOptions(),
	}
}

// FromString creates a Decoder reading from a string.
//
// Example:
//
//	cards, warnings, err := vobject.FromString(text).Cards()
func FromString(text string) *Decoder {
	return FromReader(strings.NewReader(text))
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDecode is a helper that wraps a terminal Decoder operation and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	cards := vobject.MustDecode(vobject.Open("contacts.vcf").Cards())
func MustDecode[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
