package id

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"github.com/cockroachdb/errors"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// RandomGenerator returns 80-bit random ids as lower-case base32 text,
// behind an optional prefix such as "ds_".
type RandomGenerator struct {
	prefix string
	read   func([]byte) (int, error)
}

func NewRandomGenerator() *RandomGenerator {
	return NewPrefixedGenerator("")
}

func NewPrefixedGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix, read: rand.Read}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 10)
	if _, err := g.read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}
	return g.prefix + strings.ToLower(idEncoding.EncodeToString(buf)), nil
}
