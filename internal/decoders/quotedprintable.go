package decoders

import "bytes"

// QuotedPrintable decodes quoted-printable encoded data leniently.
// "=XX" hex escapes are decoded, "=" at end of data and soft line breaks
// ("=\r\n" or "=\n") are dropped, and any other invalid escape is passed
// through literally rather than rejected.
func QuotedPrintable(data []byte) ([]byte, error) {
	var result bytes.Buffer
	result.Grow(len(data))

	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '=' {
			result.WriteByte(c)
			continue
		}

		// "=" at the very end is a dangling soft break.
		if i+1 >= len(data) {
			break
		}

		// Soft line break: "=\n" or "=\r\n".
		if data[i+1] == '\n' {
			i++
			continue
		}
		if data[i+1] == '\r' {
			i++
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			continue
		}

		// Hex escape.
		if i+2 < len(data) {
			hi, okHi := fromHex(data[i+1])
			lo, okLo := fromHex(data[i+2])
			if okHi && okLo {
				result.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}

		// Invalid escape: keep the "=" as-is.
		result.WriteByte(c)
	}

	return result.Bytes(), nil
}

// fromHex converts a hexadecimal digit to its value.
func fromHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}
