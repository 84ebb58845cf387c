package normalize

import (
	"encoding/binary"
	"os"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// readFile reads a file trying UTF-8 first, then UTF-16, then Latin-1.
// The first encoding that decodes cleanly wins; Latin-1 accepts any
// byte sequence, so only the read itself can fail. A leading byte-order
// marker is stripped.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return decode(data), nil
}

func decode(data []byte) string {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), "\uFEFF")
	}

	if text, ok := decodeUTF16(data); ok {
		return text
	}

	text, err := charmap.ISO8859_1.NewDecoder().String(string(data))
	if err != nil {
		// Latin-1 maps every byte; decode as raw bytes as a last resort.
		return string(data)
	}
	return text
}

// decodeUTF16 attempts a strict UTF-16 decode. Byte order comes from a
// BOM when present, little-endian otherwise. Odd-length input and
// unpaired surrogates are rejected so the Latin-1 fallback can take over.
func decodeUTF16(data []byte) (string, bool) {
	if len(data)%2 != 0 {
		return "", false
	}

	var order binary.ByteOrder = binary.LittleEndian
	if len(data) >= 2 {
		switch {
		case data[0] == 0xFE && data[1] == 0xFF:
			order = binary.BigEndian
			data = data[2:]
		case data[0] == 0xFF && data[1] == 0xFE:
			data = data[2:]
		}
	}

	units := make([]uint16, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		units = append(units, order.Uint16(data[i:]))
	}

	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u < 0xDC00:
			// High surrogate must be followed by a low surrogate.
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] >= 0xE000 {
				return "", false
			}
			i++
		case u >= 0xDC00 && u < 0xE000:
			// Unpaired low surrogate.
			return "", false
		}
	}

	return string(utf16.Decode(units)), true
}
