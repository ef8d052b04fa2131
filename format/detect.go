// Package format provides stream format and version detection for the
// vobject library.
package format

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported vObject stream format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// VCard indicates a vCard stream (BEGIN:VCARD).
	VCard
	// ICalendar indicates an iCalendar stream (BEGIN:VCALENDAR).
	ICalendar
	// HCard indicates a vCard embedded in HTML as an hCard microformat.
	HCard
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case VCard:
		return "vCard"
	case ICalendar:
		return "iCalendar"
	case HCard:
		return "hCard"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case VCard:
		return ".vcf"
	case ICalendar:
		return ".ics"
	case HCard:
		return ".html"
	default:
		return ""
	}
}

// MIMEType returns the registered media type for the format.
func (f Format) MIMEType() string {
	switch f {
	case VCard:
		return "text/vcard"
	case ICalendar:
		return "text/calendar"
	case HCard:
		return "text/html"
	default:
		return ""
	}
}

// Version identifies a specification version of a vObject format.
type Version string

const (
	// VersionUnknown indicates a missing or unrecognized VERSION property.
	VersionUnknown Version = ""
	// V2_1 is vCard 2.1.
	V2_1 Version = "2.1"
	// V3_0 is vCard 3.0 (RFC 2426).
	V3_0 Version = "3.0"
	// V4_0 is vCard 4.0 (RFC 6350).
	V4_0 Version = "4.0"
	// ICal2_0 is iCalendar 2.0 (RFC 5545).
	ICal2_0 Version = "2.0"
)

// Detect determines stream format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".vcf", ".vcard":
		return VCard
	case ".ics", ".ical", ".icalendar":
		return ICalendar
	case ".html", ".htm":
		return HCard
	default:
		return Unknown
	}
}

// DetectReader inspects stream content to determine its format. This is
// more reliable than extension-based detection. It reads at most the first
// few non-blank lines of r; wrap the reader with bufio and re-open, or use
// an io.TeeReader, if the content must be parsed afterwards.
func DetectReader(r io.Reader) (Format, error) {
	s := bufio.NewScanner(r)
	for i := 0; s.Scan() && i < 10; i++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "BEGIN:VCARD"):
			return VCard, nil
		case strings.HasPrefix(upper, "BEGIN:VCALENDAR"):
			return ICalendar, nil
		case strings.HasPrefix(upper, "<!DOCTYPE"), strings.HasPrefix(upper, "<HTML"), strings.HasPrefix(upper, "<?XML"):
			return HCard, nil
		}
		// Anything else before a BEGIN line means this is not a vObject
		// stream.
		return Unknown, nil
	}
	if err := s.Err(); err != nil {
		return Unknown, err
	}
	return Unknown, nil
}

// DetectVersion maps the value of a VERSION property to a Version for the
// given format. Unrecognized values map to VersionUnknown.
func DetectVersion(f Format, value string) Version {
	value = strings.TrimSpace(value)
	switch f {
	case VCard:
		switch value {
		case "2.1":
			return V2_1
		case "3.0":
			return V3_0
		case "4.0":
			return V4_0
		}
	case ICalendar:
		if value == "2.0" {
			return ICal2_0
		}
	}
	return VersionUnknown
}
