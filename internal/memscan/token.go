package memscan

import (
	"bytes"
	"encoding/binary"
	"regexp"
	"unicode/utf16"

	"github.com/google/uuid"
)

// uuidRe matches the 8-4-4-4-12 hex shape of the secret value.
var uuidRe = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// Pattern holds both wire encodings of one anchor marker string. Desktop
// targets keep the same key in UTF-8 (network buffers) and UTF-16LE
// (JS strings, Windows APIs), so both are searched on every chunk.
type Pattern struct {
	UTF8    []byte
	UTF16LE []byte
}

// NewPattern builds the two encodings of an anchor string.
func NewPattern(anchor string) Pattern {
	units := utf16.Encode([]rune(anchor))
	le := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(le[2*i:], u)
	}
	return Pattern{
		UTF8:    []byte(anchor),
		UTF16LE: le,
	}
}

// MaxLen returns the longer of the two encoded anchor lengths. The chunk
// overlap is derived from it so a boundary-spanning anchor is never missed.
func (p Pattern) MaxLen() int {
	if len(p.UTF16LE) > len(p.UTF8) {
		return len(p.UTF16LE)
	}
	return len(p.UTF8)
}

// Searcher finds a UUID-shaped secret that follows an anchor marker in a
// raw memory buffer. It is pure: no OS access, safe for concurrent use.
type Searcher struct {
	lookahead int
}

// NewSearcher returns a Searcher inspecting lookahead bytes after each
// anchor occurrence.
func NewSearcher(lookahead int) *Searcher {
	return &Searcher{lookahead: lookahead}
}

// Search scans data for every occurrence of either anchor encoding, in
// buffer order, and returns the first structurally valid secret found in
// the window after an occurrence. An early anchor occurrence may belong to
// an unrelated field, so all occurrences are tried, not just the first.
func (s *Searcher) Search(data []byte, pat Pattern) (string, bool) {
	for _, anchor := range [][]byte{pat.UTF8, pat.UTF16LE} {
		for _, pos := range findAllOccurrences(data, anchor) {
			start := pos + len(anchor)
			if start >= len(data) {
				continue
			}
			end := start + s.lookahead
			if end > len(data) {
				end = len(data)
			}
			if tok, ok := findSecret(data[start:end]); ok {
				return tok, true
			}
		}
	}
	return "", false
}

// decoders are the window interpretations tried against the secret shape,
// in order: raw bytes as UTF-8, then UTF-16LE code units.
var decoders = []func([]byte) string{
	func(b []byte) string { return string(b) },
	decodeUTF16LE,
}

// findSecret decodes the lookahead window with each decoder and returns
// the first match of the secret shape that parses as a UUID.
func findSecret(window []byte) (string, bool) {
	for _, decode := range decoders {
		m := uuidRe.FindString(decode(window))
		if m == "" {
			continue
		}
		if _, err := uuid.Parse(m); err == nil {
			return m, true
		}
	}
	return "", false
}

// decodeUTF16LE interprets b as little-endian UTF-16 code units. A
// trailing odd byte is dropped; invalid surrogates decode to U+FFFD.
func decodeUTF16LE(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, binary.LittleEndian.Uint16(b[i:]))
	}
	return string(utf16.Decode(units))
}

// findAllOccurrences returns every index of needle in haystack, including
// overlapping and adjacent occurrences (the cursor advances one byte past
// each match, not the needle length).
func findAllOccurrences(haystack, needle []byte) []int {
	if len(needle) == 0 || len(haystack) < len(needle) {
		return nil
	}
	var positions []int
	for i := 0; i <= len(haystack)-len(needle); {
		j := bytes.Index(haystack[i:], needle)
		if j < 0 {
			break
		}
		positions = append(positions, i+j)
		i += j + 1
	}
	return positions
}
