package decoders

import (
	"encoding/base64"
	"fmt"
)

// Base64 decodes base64 encoded data leniently. Interior whitespace (from
// folded lines) is stripped and missing trailing padding is tolerated.
func Base64(data []byte) ([]byte, error) {
	compact := make([]byte, 0, len(data))
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		compact = append(compact, c)
	}

	// Drop trailing padding and decode unpadded, so inputs with missing
	// or excess "=" both work.
	for len(compact) > 0 && compact[len(compact)-1] == '=' {
		compact = compact[:len(compact)-1]
	}
	decoded, err := base64.RawStdEncoding.DecodeString(string(compact))
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	return decoded, nil
}
