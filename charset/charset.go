// Package charset provides character-encoding resolution and transcoding
// for vObject streams.
//
// vCard 2.1 files commonly carry a CHARSET parameter and arrive in legacy
// encodings such as ISO-8859-1 or Windows-1252. This package resolves
// encoding labels to golang.org/x/text encodings and wraps byte streams in
// UTF-8 transcoding readers that remember which encoding they decode from,
// so downstream readers can report it as metadata.
package charset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	xcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Reader decodes a wrapped byte stream into UTF-8 and remembers the source
// encoding. It implements io.Reader; the decoded bytes are always UTF-8
// regardless of the source encoding.
type Reader struct {
	r    io.Reader
	enc  encoding.Encoding
	name string
}

// Read reads decoded UTF-8 bytes.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// Encoding returns the source encoding the reader decodes from.
func (r *Reader) Encoding() encoding.Encoding {
	return r.enc
}

// Name returns the canonical name of the source encoding, or "" when it is
// not known.
func (r *Reader) Name() string {
	return r.name
}

// Resolve maps an encoding label (such as a CHARSET parameter value) to an
// encoding. Labels are matched case-insensitively using the WHATWG index,
// which covers the MIME and IANA names found in real-world vCards.
func Resolve(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc, nil
}

// NewReader wraps r in a transcoding reader for the named encoding.
func NewReader(r io.Reader, label string) (*Reader, error) {
	enc, err := Resolve(label)
	if err != nil {
		return nil, err
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	return NewReaderEncoding(r, enc, name), nil
}

// NewReaderEncoding wraps r in a transcoding reader for enc. The name is
// kept as metadata and may be empty.
func NewReaderEncoding(r io.Reader, enc encoding.Encoding, name string) *Reader {
	return &Reader{
		r:    enc.NewDecoder().Reader(r),
		enc:  enc,
		name: name,
	}
}

// Sniff determines the encoding of r by examining its first bytes (byte
// order marks and content heuristics) and returns a transcoding reader.
// When the encoding cannot be determined the stream is assumed to be UTF-8,
// which subsumes plain ASCII.
func Sniff(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	preview, err := br.Peek(1024)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing charset: %w", err)
	}
	enc, name, certain := xcharset.DetermineEncoding(preview, "")
	if enc == nil || (!certain && utf8.Valid(trimPartialRune(preview))) {
		// The fallback guess is windows-1252; prefer UTF-8 whenever the
		// content allows it, since UTF-8 subsumes ASCII and is what
		// modern producers emit.
		enc, name = unicode.UTF8, "utf-8"
	}
	// The decoders pass a byte order mark through as U+FEFF, so drop it
	// from the stream here.
	switch {
	case bytes.HasPrefix(preview, []byte{0xEF, 0xBB, 0xBF}):
		br.Discard(3)
	case bytes.HasPrefix(preview, []byte{0xFE, 0xFF}), bytes.HasPrefix(preview, []byte{0xFF, 0xFE}):
		br.Discard(2)
	}
	return NewReaderEncoding(br, enc, name), nil
}

// trimPartialRune drops a trailing multi-byte sequence that the preview
// window may have cut short, so validity checking is not fooled by it.
func trimPartialRune(p []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(p); i++ {
		b := p[len(p)-i]
		if b < utf8.RuneSelf {
			return p
		}
		if b >= 0xC0 {
			// Start byte of the possibly-incomplete rune.
			if r, _ := utf8.DecodeRune(p[len(p)-i:]); r == utf8.RuneError {
				return p[:len(p)-i]
			}
			return p
		}
	}
	return p
}
