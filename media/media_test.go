package media

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// encode renders a small test image in the given format.
func encode(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, nil)
	default:
		t.Fatalf("unknown format %q", format)
	}
	if err != nil {
		t.Fatalf("encoding %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	tests := []struct {
		format   string
		mimeType string
		ext      string
	}{
		{"png", "image/png", ".png"},
		{"jpeg", "image/jpeg", ".jpg"},
		{"gif", "image/gif", ".gif"},
		{"bmp", "image/bmp", ".bmp"},
		{"tiff", "image/tiff", ".tiff"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data := encode(t, tt.format, 4, 3)
			info, err := Sniff(data)
			if err != nil {
				t.Fatalf("Sniff: %v", err)
			}
			if info.Format != tt.format {
				t.Errorf("Format = %q, want %q", info.Format, tt.format)
			}
			if info.MIMEType != tt.mimeType {
				t.Errorf("MIMEType = %q, want %q", info.MIMEType, tt.mimeType)
			}
			if info.Extension != tt.ext {
				t.Errorf("Extension = %q, want %q", info.Extension, tt.ext)
			}
			if info.Width != 4 || info.Height != 3 {
				t.Errorf("dimensions = %dx%d, want 4x3", info.Width, info.Height)
			}
		})
	}
}

func TestSniffGarbage(t *testing.T) {
	if _, err := Sniff([]byte("definitely not an image")); err == nil {
		t.Fatal("Sniff on garbage succeeded, want error")
	}
	if _, err := Sniff(nil); err == nil {
		t.Fatal("Sniff on empty data succeeded, want error")
	}
}
