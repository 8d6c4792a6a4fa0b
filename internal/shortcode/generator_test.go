package shortcode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAlphabet(t *testing.T) {
	assert.Len(t, DefaultAlphabet, 56)
	for _, ambiguous := range "0Oo1Il" {
		assert.NotContains(t, DefaultAlphabet, string(ambiguous))
	}
}

func TestGenerator_Generate(t *testing.T) {
	g, err := NewGenerator(DefaultAlphabet, DefaultLength)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, code, DefaultLength)
		for _, c := range code {
			require.True(t, strings.ContainsRune(DefaultAlphabet, c), "unexpected symbol %q", c)
		}
		seen[code] = struct{}{}
	}
	// 500 draws from 56^8 codes: a repeat would point at a broken source.
	assert.Len(t, seen, 500)
}

func TestGenerator_SmallCodeSpace(t *testing.T) {
	g, err := NewGenerator("ab", 2)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	assert.Subset(t, []string{"aa", "ab", "ba", "bb"}, keys(seen))
}

func TestNewGenerator_Validation(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		length   int
	}{
		{name: "empty alphabet", alphabet: "", length: 8},
		{name: "single symbol", alphabet: "a", length: 8},
		{name: "zero length", alphabet: "abc", length: 0},
		{name: "duplicate symbol", alphabet: "abca", length: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.alphabet, tt.length)
			assert.Error(t, err)
		})
	}
}

func TestGenerator_ReaderFailure(t *testing.T) {
	g, err := NewGeneratorWithReader(DefaultAlphabet, DefaultLength, bytes.NewReader(nil))
	require.NoError(t, err)

	_, err = g.Generate()
	assert.Error(t, err)
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
