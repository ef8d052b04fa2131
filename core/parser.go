package core

import (
	"fmt"
	"io"
	"strings"
)

// Param is a single parameter of a content line. A parameter with an empty
// Name is a vCard 2.1 bare type parameter (e.g. the HOME in
// "TEL;HOME;VOICE:...").
type Param struct {
	Name  string
	Value string
}

// ContentLine is one tokenized logical line of a vCard or iCalendar stream,
// in the shape
//
//	[group.]NAME[;PARAM[=value]...]:value
//
// The value is left exactly as it appeared on the unfolded line; transfer
// decoding (quoted-printable, base64) and semantic interpretation are the
// caller's concern.
type ContentLine struct {
	Group   string
	Name    string
	Params  []Param
	Value   string
	LineNum int // physical line number the logical line began at
}

// ContentLineParser tokenizes unfolded logical lines into content lines.
// It consumes a FoldedLineReader and performs no validation beyond the
// structural [group.]NAME...:value shape.
type ContentLineParser struct {
	reader *FoldedLineReader
}

// NewContentLineParser creates a parser reading from r.
func NewContentLineParser(r io.Reader) *ContentLineParser {
	return &ContentLineParser{reader: NewFoldedLineReader(r)}
}

// NewContentLineParserString creates a parser reading from a string.
func NewContentLineParserString(text string) *ContentLineParser {
	return &ContentLineParser{reader: NewFoldedLineReaderString(text)}
}

// Reader returns the underlying folded line reader.
func (p *ContentLineParser) Reader() *FoldedLineReader {
	return p.reader
}

// Next returns the next content line, or io.EOF at the end of the stream.
func (p *ContentLineParser) Next() (*ContentLine, error) {
	line, err := p.reader.ReadLine()
	if err != nil {
		return nil, err
	}
	cl, err := parseContentLine(line)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", p.reader.LineNum(), err)
	}
	cl.LineNum = p.reader.LineNum()
	return cl, nil
}

// parser states for a content line.
const (
	stateName = iota
	stateParamName
	stateParamValue
)

// parseContentLine tokenizes a single unfolded line.
func parseContentLine(line string) (*ContentLine, error) {
	cl := &ContentLine{}
	var buf strings.Builder
	var paramName string
	var inQuotes, escaped bool
	state := stateName

	flushParam := func() {
		cl.Params = append(cl.Params, Param{Name: paramName, Value: buf.String()})
		paramName = ""
	}
	flushBare := func() {
		// Nameless parameter (vCard 2.1 style); empty segments from
		// doubled semicolons are dropped.
		if v := buf.String(); v != "" {
			cl.Params = append(cl.Params, Param{Value: v})
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		if state == stateParamValue {
			// Parameter values support double quotes and backslash
			// escapes, so the structural characters lose their meaning
			// inside them.
			if escaped {
				buf.WriteByte(c)
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				inQuotes = !inQuotes
				continue
			}
			if inQuotes {
				buf.WriteByte(c)
				continue
			}
		}

		switch c {
		case '.':
			if state == stateName && cl.Group == "" {
				cl.Group = buf.String()
				buf.Reset()
				continue
			}
			buf.WriteByte(c)
		case ';':
			switch state {
			case stateName:
				cl.Name = buf.String()
			case stateParamName:
				flushBare()
			case stateParamValue:
				flushParam()
			}
			buf.Reset()
			state = stateParamName
		case '=':
			if state == stateParamName {
				paramName = buf.String()
				buf.Reset()
				state = stateParamValue
				continue
			}
			buf.WriteByte(c)
		case ',':
			if state == stateParamValue {
				// Multi-valued parameter; each value gets its own entry.
				cl.Params = append(cl.Params, Param{Name: paramName, Value: buf.String()})
				buf.Reset()
				continue
			}
			buf.WriteByte(c)
		case ':':
			switch state {
			case stateName:
				cl.Name = buf.String()
			case stateParamName:
				flushBare()
			case stateParamValue:
				flushParam()
			}
			if cl.Name == "" {
				return nil, fmt.Errorf("content line has no property name: %q", line)
			}
			cl.Value = line[i+1:]
			return cl, nil
		default:
			buf.WriteByte(c)
		}
	}

	return nil, fmt.Errorf("content line has no colon: %q", line)
}
