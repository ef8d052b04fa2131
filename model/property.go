package model

import (
	"fmt"
	"strings"

	"github.com/plicate/vobject/charset"
	"github.com/plicate/vobject/internal/decoders"
)

// Property represents one content line of a component: group, name,
// parameters, and the raw text value exactly as it appeared after
// unfolding.
type Property struct {
	Group   string
	Name    string
	Params  Params
	Value   string
	LineNum int // physical line number the property began at, for diagnostics
}

// Encoding returns the transfer encoding declared on the property: the
// value of the ENCODING parameter, or a bare vCard 2.1 parameter naming a
// known encoding. The result is upper-case; it is empty when the value is
// plain text.
func (p *Property) Encoding() string {
	if v, ok := p.Params.Get("ENCODING"); ok {
		return strings.ToUpper(v)
	}
	for _, param := range p.Params {
		if param.Name != "" {
			continue
		}
		switch v := strings.ToUpper(param.Value); v {
		case "QUOTED-PRINTABLE", "BASE64", "B", "8BIT", "7BIT":
			return v
		}
	}
	return ""
}

// Charset returns the value of the CHARSET parameter, or "" if absent.
func (p *Property) Charset() string {
	v, _ := p.Params.Get("CHARSET")
	return v
}

// DecodedValue reverses the property's transfer encoding and returns the
// raw value bytes. Quoted-printable values are additionally transcoded to
// UTF-8 when a CHARSET parameter is present, since 2.1-era producers
// encode the underlying text in legacy charsets. Properties without a
// transfer encoding are returned as-is.
func (p *Property) DecodedValue() ([]byte, error) {
	switch p.Encoding() {
	case "QUOTED-PRINTABLE":
		decoded, err := decoders.QuotedPrintable([]byte(p.Value))
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.Name, err)
		}
		if label := p.Charset(); label != "" {
			enc, err := charset.Resolve(label)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", p.Name, err)
			}
			decoded, err = enc.NewDecoder().Bytes(decoded)
			if err != nil {
				return nil, fmt.Errorf("property %s: decoding %s: %w", p.Name, label, err)
			}
		}
		return decoded, nil
	case "BASE64", "B":
		decoded, err := decoders.Base64([]byte(p.Value))
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.Name, err)
		}
		return decoded, nil
	default:
		return []byte(p.Value), nil
	}
}

// String returns the property in content-line form, without folding.
func (p *Property) String() string {
	var sb strings.Builder
	if p.Group != "" {
		sb.WriteString(p.Group)
		sb.WriteByte('.')
	}
	sb.WriteString(p.Name)
	for _, param := range p.Params {
		sb.WriteByte(';')
		if param.Name != "" {
			sb.WriteString(param.Name)
			sb.WriteByte('=')
		}
		sb.WriteString(param.Value)
	}
	sb.WriteByte(':')
	sb.WriteString(p.Value)
	return sb.String()
}
