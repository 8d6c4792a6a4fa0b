// Package shortcode generates the public identifiers of short links.
package shortcode

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// DefaultAlphabet holds 56 symbols: digits 2-9 and both letter cases, without the
// visually ambiguous 0/O/o, 1/I/l.
const DefaultAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz"

// DefaultLength gives 56^8 (about 1.1e14) possible codes.
const DefaultLength = 8

// Generator draws fixed-length codes uniformly from an alphabet.
// It holds no state besides its configuration and is safe for concurrent use.
type Generator struct {
	alphabet string
	length   int
	max      *big.Int
	random   io.Reader
}

// NewGenerator creates a Generator backed by crypto/rand.
func NewGenerator(alphabet string, length int) (*Generator, error) {
	return NewGeneratorWithReader(alphabet, length, rand.Reader)
}

// NewGeneratorWithReader creates a Generator reading randomness from r.
func NewGeneratorWithReader(alphabet string, length int, r io.Reader) (*Generator, error) {
	if len(alphabet) < 2 {
		return nil, errors.New("shortcode: alphabet needs at least 2 symbols")
	}
	if length < 1 {
		return nil, errors.New("shortcode: length must be positive")
	}
	seen := make(map[byte]struct{}, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		if _, dup := seen[alphabet[i]]; dup {
			return nil, fmt.Errorf("shortcode: duplicate symbol %q in alphabet", alphabet[i])
		}
		seen[alphabet[i]] = struct{}{}
	}
	return &Generator{
		alphabet: alphabet,
		length:   length,
		max:      big.NewInt(int64(len(alphabet))),
		random:   r,
	}, nil
}

// Generate returns a new random code.
func (g *Generator) Generate() (string, error) {
	code := make([]byte, g.length)
	for i := range code {
		n, err := rand.Int(g.random, g.max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		code[i] = g.alphabet[n.Int64()]
	}
	return string(code), nil
}

// Length returns the configured code length.
func (g *Generator) Length() int { return g.length }

// Alphabet returns the configured alphabet.
func (g *Generator) Alphabet() string { return g.alphabet }
