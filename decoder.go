package vobject

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/plicate/vobject/charset"
	"github.com/plicate/vobject/core"
	"github.com/plicate/vobject/format"
	"github.com/plicate/vobject/hcard"
	"github.com/plicate/vobject/model"
)

// Warning describes a non-fatal problem encountered while decoding, such
// as a malformed line that was skipped or an END without a matching BEGIN.
type Warning struct {
	LineNum int
	Message string
}

// String returns the warning with its line number.
func (w Warning) String() string {
	if w.LineNum > 0 {
		return fmt.Sprintf("line %d: %s", w.LineNum, w.Message)
	}
	return w.Message
}

// FormatWarnings joins warnings into a single readable string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// Decoder provides a fluent interface for decoding vObject streams.
// Each configuration method returns a new Decoder instance, making it safe
// to share a configured Decoder as a template and allowing method chaining.
type Decoder struct {
	// Source (exactly one of filename and source is set)
	filename string
	source   io.Reader
	format   format.Format

	// Configuration
	options DecodeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Decoder. Each chain method returns a new
// instance so a configured Decoder can be reused.
func (d *Decoder) clone() *Decoder {
	return &Decoder{
		filename: d.filename,
		source:   d.source,
		format:   d.format,
		options:  d.options.clone(),
		err:      d.err,
	}
}

// Charset declares the character encoding of the source, for example
// "iso-8859-1". Without it the encoding is sniffed from the stream and
// defaults to UTF-8.
//
// Example:
//
//	cards, _, err := vobject.Open("old.vcf").Charset("windows-1252").Cards()
func (d *Decoder) Charset(label string) *Decoder {
	newDec := d.clone()
	newDec.options.charsetLabel = label
	return newDec
}

// Strict makes structural problems fatal instead of producing warnings:
// malformed content lines, properties outside any component, and
// mismatched or missing BEGIN/END markers all abort decoding.
func (d *Decoder) Strict() *Decoder {
	newDec := d.clone()
	newDec.options.strict = true
	return newDec
}

// As overrides format inference. It is mainly useful with FromReader,
// where no filename extension is available, to route HTML content to the
// hCard extractor.
//
// Example:
//
//	cards, _, err := vobject.FromReader(resp.Body).As(format.HCard).Cards()
func (d *Decoder) As(f format.Format) *Decoder {
	newDec := d.clone()
	newDec.format = f
	return newDec
}

// Components decodes the stream and returns all top-level components in
// order, together with any warnings produced along the way.
func (d *Decoder) Components() ([]*model.Component, []Warning, error) {
	if d.err != nil {
		return nil, nil, d.err
	}

	src, closeSrc, err := d.open()
	if err != nil {
		return nil, nil, err
	}
	defer closeSrc()

	if d.resolvedFormat() == format.HCard {
		comps, err := hcard.Extract(src)
		if err != nil {
			return nil, nil, fmt.Errorf("extracting hCards: %w", err)
		}
		return comps, nil, nil
	}

	return d.buildTree(core.NewContentLineParser(src))
}

// Cards decodes the stream and returns its top-level vCards. For hCard
// HTML sources, each hCard element becomes one card.
func (d *Decoder) Cards() ([]*model.Component, []Warning, error) {
	comps, warnings, err := d.Components()
	if err != nil {
		return nil, warnings, err
	}
	var cards []*model.Component
	for _, c := range comps {
		if c.Name == "VCARD" {
			cards = append(cards, c)
		}
	}
	return cards, warnings, nil
}

// Calendar decodes the stream and returns its first VCALENDAR component.
func (d *Decoder) Calendar() (*model.Component, []Warning, error) {
	comps, warnings, err := d.Components()
	if err != nil {
		return nil, warnings, err
	}
	for _, c := range comps {
		if c.Name == "VCALENDAR" {
			return c, warnings, nil
		}
	}
	return nil, warnings, fmt.Errorf("no VCALENDAR component found")
}

// resolvedFormat returns the decode format: the explicit override if set,
// otherwise the format inferred from the filename extension.
func (d *Decoder) resolvedFormat() format.Format {
	if d.format != format.Unknown {
		return d.format
	}
	if d.filename != "" {
		return format.Detect(d.filename)
	}
	return format.Unknown
}

// open resolves the source into a UTF-8 character stream.
func (d *Decoder) open() (io.Reader, func() error, error) {
	var raw io.Reader
	closeSrc := func() error { return nil }

	switch {
	case d.filename != "":
		f, err := os.Open(d.filename)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file: %w", err)
		}
		raw = f
		closeSrc = f.Close
	case d.source != nil:
		raw = d.source
	default:
		return nil, nil, fmt.Errorf("no source specified")
	}

	if label := d.options.charsetLabel; label != "" {
		cr, err := charset.NewReader(raw, label)
		if err != nil {
			closeSrc()
			return nil, nil, err
		}
		return cr, closeSrc, nil
	}
	cr, err := charset.Sniff(raw)
	if err != nil {
		closeSrc()
		return nil, nil, err
	}
	return cr, closeSrc, nil
}

// buildTree assembles the component tree from a stream of content lines.
func (d *Decoder) buildTree(p *core.ContentLineParser) ([]*model.Component, []Warning, error) {
	var (
		roots    []*model.Component
		stack    []*model.Component
		warnings []Warning
	)

	warn := func(lineNum int, msg string, args ...any) {
		warnings = append(warnings, Warning{
			LineNum: lineNum,
			Message: fmt.Sprintf(msg, args...),
		})
	}

	for {
		cl, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if d.options.strict {
				return nil, warnings, err
			}
			warn(p.Reader().LineNum(), "skipping malformed line: %v", err)
			continue
		}

		switch strings.ToUpper(cl.Name) {
		case "BEGIN":
			child := model.NewComponent(strings.TrimSpace(cl.Value))
			if len(stack) == 0 {
				roots = append(roots, child)
			} else {
				stack[len(stack)-1].AddComponent(child)
			}
			stack = append(stack, child)

		case "END":
			name := strings.ToUpper(strings.TrimSpace(cl.Value))
			idx := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].Name == name {
					idx = i
					break
				}
			}
			if idx == -1 {
				if d.options.strict {
					return nil, warnings, fmt.Errorf("line %d: END:%s without matching BEGIN", cl.LineNum, name)
				}
				warn(cl.LineNum, "END:%s without matching BEGIN", name)
				continue
			}
			if idx != len(stack)-1 {
				if d.options.strict {
					return nil, warnings, fmt.Errorf("line %d: END:%s closes unterminated %s", cl.LineNum, name, stack[len(stack)-1].Name)
				}
				warn(cl.LineNum, "END:%s closes unterminated %s", name, stack[len(stack)-1].Name)
			}
			stack = stack[:idx]

		default:
			if len(stack) == 0 {
				if d.options.strict {
					return nil, warnings, fmt.Errorf("line %d: property %s outside any component", cl.LineNum, cl.Name)
				}
				warn(cl.LineNum, "ignoring property %s outside any component", cl.Name)
				continue
			}
			stack[len(stack)-1].AddProperty(&model.Property{
				Group:   cl.Group,
				Name:    strings.ToUpper(cl.Name),
				Params:  toModelParams(cl.Params),
				Value:   cl.Value,
				LineNum: cl.LineNum,
			})
		}
	}

	if len(stack) > 0 {
		if d.options.strict {
			return nil, warnings, fmt.Errorf("unexpected end of stream: %s not terminated", stack[len(stack)-1].Name)
		}
		warn(p.Reader().LineNum(), "end of stream: %s not terminated", stack[len(stack)-1].Name)
	}

	return roots, warnings, nil
}

// toModelParams converts tokenized parameters to the model representation.
func toModelParams(params []core.Param) model.Params {
	if len(params) == 0 {
		return nil
	}
	out := make(model.Params, len(params))
	for i, p := range params {
		out[i] = model.Param{Name: p.Name, Value: p.Value}
	}
	return out
}
