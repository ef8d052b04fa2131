// Package media identifies binary media payloads carried by PHOTO, LOGO,
// and similar properties.
//
// vCards embed images either as base64 payloads or as URIs. For embedded
// payloads this package reports the image format and its dimensions without
// fully decoding the pixel data.
package media

import (
	"bytes"
	"fmt"
	"image"

	// Registered image formats: stdlib plus the extended set commonly
	// found in PHOTO payloads.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes a sniffed image payload.
type Info struct {
	Format    string // registered format name, e.g. "png"
	MIMEType  string // e.g. "image/png"
	Extension string // e.g. ".png"
	Width     int
	Height    int
}

// Sniff identifies the image format and dimensions of data. It reads only
// the image header, not the full pixel data.
func Sniff(data []byte) (Info, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("identifying image: %w", err)
	}
	info := Info{
		Format: name,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	switch name {
	case "jpeg":
		info.MIMEType, info.Extension = "image/jpeg", ".jpg"
	default:
		info.MIMEType, info.Extension = "image/"+name, "."+name
	}
	return info, nil
}
