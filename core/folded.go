package core

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
)

// foldedQuotedPrintableRegex detects the first physical line of a folded
// quoted-printable property value: a line containing the token
// QUOTED-PRINTABLE before the first colon and ending with a "=" continuation
// marker. The whole line must match, not just a prefix.
var foldedQuotedPrintableRegex = regexp.MustCompile(`(?i)^[^:]*?QUOTED-PRINTABLE.*?:.*?=$`)

// encodingReader is implemented by readers that know the character encoding
// of their source, such as *charset.Reader.
type encodingReader interface {
	Encoding() encoding.Encoding
}

// pendingLine is a one-slot lookahead buffer. It holds a physical line that
// was read while assembling a logical line but turned out to belong to the
// next one, together with the physical line number it was read at.
type pendingLine struct {
	line    string
	lineNum int
	ok      bool
}

// FoldedLineReader reads lines of text from a reader, transparently
// unfolding lines that are folded.
//
// Standard folding marks a continuation line with a leading space or tab
// (RFC 5545 / RFC 6350). In addition, the reader recognizes a legacy style
// used for QUOTED-PRINTABLE property values by some non-conformant
// producers, where continuation is signaled by a trailing "=" on the
// previous line instead.
//
// A FoldedLineReader is not safe for concurrent use.
type FoldedLineReader struct {
	reader      *bufio.Reader
	pending     pendingLine
	lineCount   int // physical lines consumed, blank lines included
	lastLineNum int // physical line number at which the last logical line began
	enc         encoding.Encoding
}

// NewFoldedLineReader creates a folded line reader wrapping r. If r knows
// its character encoding (it implements Encoding() encoding.Encoding, as
// *charset.Reader does), the encoding is captured as read-only metadata.
func NewFoldedLineReader(r io.Reader) *FoldedLineReader {
	f := &FoldedLineReader{
		reader: bufio.NewReader(r),
	}
	if er, ok := r.(encodingReader); ok {
		f.enc = er.Encoding()
	}
	return f
}

// NewFoldedLineReaderString creates a folded line reader that reads from a
// string.
func NewFoldedLineReaderString(text string) *FoldedLineReader {
	return NewFoldedLineReader(strings.NewReader(text))
}

// LineNum returns the physical line number (1-based, counting blank lines)
// at which the most recently returned unfolded line began. It returns 0
// before the first successful ReadLine call.
func (f *FoldedLineReader) LineNum() int {
	return f.lastLineNum
}

// Encoding returns the character encoding of the underlying reader, or nil
// if it could not be determined at construction time. The value is purely
// informational and never affects unfolding.
func (f *FoldedLineReader) Encoding() encoding.Encoding {
	return f.enc
}

// readPhysicalLine reads the next physical line from the underlying reader,
// without its line terminator. Lines may be terminated by LF, CR, or CRLF.
// At end of input a final unterminated line is returned as-is; once the
// input is exhausted it returns io.EOF.
func (f *FoldedLineReader) readPhysicalLine() (string, error) {
	var sb strings.Builder
	read := false
	for {
		b, err := f.reader.ReadByte()
		if err != nil {
			if err == io.EOF && read {
				return sb.String(), nil
			}
			return "", err
		}
		read = true
		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			// Collapse CRLF into a single terminator.
			if next, err := f.reader.Peek(1); err == nil && next[0] == '\n' {
				f.reader.ReadByte()
			}
			return sb.String(), nil
		default:
			sb.WriteByte(b)
		}
	}
}

// readRawLine reads the next physical line, blank or not, and counts it.
func (f *FoldedLineReader) readRawLine() (string, error) {
	line, err := f.readPhysicalLine()
	if err != nil {
		return "", err
	}
	f.lineCount++
	return line, nil
}

// readNonBlankLine reads the next physical line with length > 0. Blank lines
// are skipped because some producers (notably certain mobile devices) emit
// stray empty lines between folded lines, which would otherwise break
// unfolding. Every line consumed, blank or not, still counts toward the
// physical line number.
func (f *FoldedLineReader) readNonBlankLine() (string, error) {
	for {
		line, err := f.readRawLine()
		if err != nil {
			return "", err
		}
		if len(line) > 0 {
			return line, nil
		}
	}
}

// isFoldedLine reports whether line starts with folding whitespace.
func isFoldedLine(line string) bool {
	if len(line) == 0 {
		return false
	}
	return line[0] == ' ' || line[0] == '\t'
}

// chop removes the last character from a string.
func chop(s string) string {
	if len(s) == 0 {
		return s
	}
	return s[:len(s)-1]
}

// ReadLine reads the next unfolded line. It returns io.EOF once the end of
// the stream has been reached; subsequent calls keep returning io.EOF. Any
// other read error from the underlying reader is returned as-is and no
// partial line is produced.
func (f *FoldedLineReader) ReadLine() (string, error) {
	var first string
	var firstNum int
	if f.pending.ok {
		first, firstNum = f.pending.line, f.pending.lineNum
		f.pending = pendingLine{}
	} else {
		line, err := f.readNonBlankLine()
		if err != nil {
			return "", err
		}
		first, firstNum = line, f.lineCount
	}

	// QUOTED-PRINTABLE values are folded in a peculiar way by some legacy
	// producers: a "=" is appended to the end of a line to signal that the
	// next line is folded, and the folded lines are not necessarily
	// prefixed with whitespace. For example:
	//
	//	BEGIN:VCARD
	//	NOTE;QUOTED-PRINTABLE: This is an=0D=0A=
	//	annoyingly formatted=0D=0A=
	//	note=
	//
	//	END:VCARD
	//
	// The empty line above END is still part of the NOTE value because the
	// line before it ends with "=". Blank lines therefore must not be
	// skipped while assembling such a value.
	legacyQP := foldedQuotedPrintableRegex.MatchString(first)
	if legacyQP {
		first = chop(first)
	}

	f.lastLineNum = firstNum
	var unfolded strings.Builder
	unfolded.WriteString(first)
	for {
		var line string
		var err error
		if legacyQP {
			line, err = f.readRawLine()
		} else {
			line, err = f.readNonBlankLine()
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		if legacyQP {
			if isFoldedLine(line) {
				line = line[1:]
			}
			if strings.HasSuffix(line, "=") {
				unfolded.WriteString(chop(line))
				continue
			}
			unfolded.WriteString(line)
			break
		}

		if isFoldedLine(line) {
			unfolded.WriteString(line[1:])
			continue
		}

		f.pending = pendingLine{line: line, lineNum: f.lineCount, ok: true}
		break
	}

	return unfolded.String(), nil
}
