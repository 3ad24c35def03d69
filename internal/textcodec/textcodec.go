// Package textcodec decodes novel files of unknown character encoding.
// Candidate encodings are tried in a fixed priority order; the first
// decoder that accepts the whole byte stream wins. A decoder accepting
// the bytes does not guarantee the text is meaningful: a mismatched
// encoding can decode "successfully" into garbled output. That risk is
// accepted: there is no heuristic to rank competing decodes.
package textcodec

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// utf16Candidate is one UTF-16 decode attempt.
type utf16Candidate struct {
	endianness unicode.Endianness
	bomPolicy  unicode.BOMPolicy
}

// utf16Candidates lists the UTF-16 attempts in priority order:
// BOM-tagged first, then little endian, then big endian.
var utf16Candidates = []utf16Candidate{
	{unicode.BigEndian, unicode.ExpectBOM},
	{unicode.LittleEndian, unicode.IgnoreBOM},
	{unicode.BigEndian, unicode.IgnoreBOM},
}

// Decode converts raw file bytes to a string.
// It never fails: when no candidate encoding accepts the input the
// bytes are decoded as UTF-8 with U+FFFD substituted for every invalid
// sequence. Empty input yields the empty string.
//
// Priority order: UTF-8, UTF-16 with BOM, UTF-16LE, UTF-16BE, ASCII.
// Pure ASCII input is already valid UTF-8, so the ASCII rung of the
// ladder never rejects anything the first rung accepted.
func Decode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	if utf8.Valid(data) {
		return string(data)
	}

	// UTF-16 text has an even byte count; skip the attempts otherwise.
	if len(data)%2 == 0 {
		for _, c := range utf16Candidates {
			dec := unicode.UTF16(c.endianness, c.bomPolicy).NewDecoder()
			out, err := dec.Bytes(data)
			if err != nil {
				continue
			}
			return string(out)
		}
	}

	// Nothing matched: lossy UTF-8 fallback.
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
