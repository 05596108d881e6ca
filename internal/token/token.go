// Package token generates the random hashes behind public share links.
package token

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// alphabet deliberately excludes punctuation so hashes survive copy-paste
// and URL embedding without escaping.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// HashLength is the size of a share hash. At 62 symbols per character this
// is ~95 bits of entropy — the hash is the whole access control for a shared
// collection, so guessability is the one thing that matters here.
const HashLength = 16

// NewShareHash returns a fresh random share hash.
// Fails only when the OS entropy source does, which is not a condition to
// retry around.
func NewShareHash() (string, error) {
	hash, err := gonanoid.Generate(alphabet, HashLength)
	if err != nil {
		return "", fmt.Errorf("token: generating share hash: %w", err)
	}
	return hash, nil
}
