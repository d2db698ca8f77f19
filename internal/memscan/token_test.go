package memscan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAnchor = "x-codeium-csrf-token"
	testUUID   = "01234567-89ab-cdef-0123-456789abcdef"
)

func TestNewPattern(t *testing.T) {
	pat := NewPattern(testAnchor)

	assert.Equal(t, []byte(testAnchor), pat.UTF8)
	// ASCII anchors encode to exactly twice the length in UTF-16LE, with a
	// zero high byte per character.
	require.Len(t, pat.UTF16LE, 2*len(testAnchor))
	assert.Equal(t, byte('x'), pat.UTF16LE[0])
	assert.Equal(t, byte(0), pat.UTF16LE[1])
	assert.Equal(t, 2*len(testAnchor), pat.MaxLen())
}

func TestSearch_UTF8(t *testing.T) {
	s := NewSearcher(200)
	pat := NewPattern(testAnchor)

	buf := make([]byte, 4096)
	payload := testAnchor + `":"` + testUUID + `"`
	copy(buf[1000:], payload)

	token, ok := s.Search(buf, pat)
	require.True(t, ok)
	assert.Equal(t, testUUID, token)
}

func TestSearch_UTF16LE(t *testing.T) {
	s := NewSearcher(200)
	pat := NewPattern(testAnchor)

	// The same anchor+value sequence, UTF-16LE encoded end to end.
	encoded := NewPattern(testAnchor + `":"` + testUUID + `"`).UTF16LE

	buf := make([]byte, 4096)
	copy(buf[512:], encoded)

	token, ok := s.Search(buf, pat)
	require.True(t, ok)
	assert.Equal(t, testUUID, token)
}

func TestSearch_AnchorWithoutSecret(t *testing.T) {
	s := NewSearcher(200)
	pat := NewPattern(testAnchor)

	buf := []byte("some noise " + testAnchor + " and nothing uuid-shaped after it")

	_, ok := s.Search(buf, pat)
	assert.False(t, ok)
}

func TestSearch_SecondOccurrenceCarriesSecret(t *testing.T) {
	s := NewSearcher(200)
	pat := NewPattern(testAnchor)

	// The first anchor occurrence is an unrelated header name with no
	// value; the secret follows the second occurrence.
	var buf bytes.Buffer
	buf.WriteString(testAnchor)
	buf.WriteString(", accept-encoding, ")
	buf.Write(make([]byte, 300)) // push the secret outside the first window
	buf.WriteString(testAnchor)
	buf.WriteString(": " + testUUID)

	token, ok := s.Search(buf.Bytes(), pat)
	require.True(t, ok)
	assert.Equal(t, testUUID, token)
}

func TestSearch_WindowTruncatedByBufferEnd(t *testing.T) {
	s := NewSearcher(200)
	pat := NewPattern(testAnchor)

	// Buffer ends mid-window, right after the secret.
	buf := []byte(testAnchor + ":" + testUUID)

	token, ok := s.Search(buf, pat)
	require.True(t, ok)
	assert.Equal(t, testUUID, token)

	// Anchor at the very end of the buffer: window is empty, no panic.
	_, ok = s.Search([]byte("prefix"+testAnchor), pat)
	assert.False(t, ok)
}

func TestSearch_SecretOutsideLookahead(t *testing.T) {
	s := NewSearcher(16)
	pat := NewPattern(testAnchor)

	buf := []byte(testAnchor + "................." + testUUID)

	_, ok := s.Search(buf, pat)
	assert.False(t, ok)
}

func TestSearch_MalformedShapeRejected(t *testing.T) {
	s := NewSearcher(200)
	pat := NewPattern(testAnchor)

	// Right shape prefix but a truncated last group.
	buf := []byte(testAnchor + ":01234567-89ab-cdef-0123-456789ab")

	_, ok := s.Search(buf, pat)
	assert.False(t, ok)
}

func TestFindAllOccurrences(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     []int
	}{
		{"overlapping", "ababab", "ab", []int{0, 2, 4}},
		{"self-overlapping needle", "aaaa", "aa", []int{0, 1, 2}},
		{"single", "hello", "ell", []int{1}},
		{"none", "hello", "xyz", nil},
		{"empty needle", "hello", "", nil},
		{"needle longer than haystack", "ab", "abc", nil},
		{"match at end", "xxab", "ab", []int{2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := findAllOccurrences([]byte(tc.haystack), []byte(tc.needle))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	assert.Equal(t, "abc", decodeUTF16LE([]byte{'a', 0, 'b', 0, 'c', 0}))
	// Trailing odd byte is dropped.
	assert.Equal(t, "ab", decodeUTF16LE([]byte{'a', 0, 'b', 0, 'c'}))
	assert.Equal(t, "", decodeUTF16LE(nil))
}
