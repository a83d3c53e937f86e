// Package hexutil formats raw instruction and data bytes as the hex strings
// shown alongside disassembly, mirroring the teacher's use of encoding/hex
// for dumping undecodable regions.
package hexutil

import "encoding/hex"

// EncodeTruncated renders bs as a space-separated uppercase hex string (or,
// if spaced is false, a tightly packed lowercase one), truncating with an
// ellipsis if the result would exceed width characters.
func EncodeTruncated(bs []byte, width int, spaced bool) string {
	var s string
	if spaced {
		s = encodeSpaced(bs)
	} else {
		s = hex.EncodeToString(bs)
	}
	if width <= 0 || len(s) <= width {
		return s
	}
	const ellipsis = "..."
	if width <= len(ellipsis) {
		return s[:width]
	}
	return s[:width-len(ellipsis)] + ellipsis
}

// encodeSpaced hex-encodes bs with a single space between each byte pair.
func encodeSpaced(bs []byte) string {
	if len(bs) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(bs)*3)
	for i, b := range bs {
		if i != 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, hexDigits[b>>4], hexDigits[b&0xf])
	}
	return string(buf)
}

const hexDigits = "0123456789ABCDEF"
