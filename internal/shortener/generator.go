package shortener

import (
	"crypto/rand"
	"fmt"
	"sync/atomic"
)

// Generator produces candidate short codes. Generators make no uniqueness
// guarantee; collision avoidance belongs to the Service.
type Generator interface {
	Generate() string
}

// RandomGenerator produces fixed-length codes drawn from the 62-symbol
// alphanumeric alphabet using crypto/rand.
type RandomGenerator struct {
	length int
}

// NewRandomGenerator creates a random code generator. The length must be at
// least 1; anything else fails with ErrInvalidLength.
func NewRandomGenerator(length int) (*RandomGenerator, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidLength, length)
	}

	return &RandomGenerator{length: length}, nil
}

// rejectAbove is the largest multiple of 62 that fits in a byte; bytes at or
// above it are rejected so that the modulo below stays unbiased.
const rejectAbove = byte(248)

func (g *RandomGenerator) Generate() string {
	code := make([]byte, 0, g.length)
	buf := make([]byte, g.length)

	for len(code) < g.length {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand.Read never fails on supported platforms
			panic(fmt.Sprintf("crypto/rand: %v", err))
		}

		for _, b := range buf {
			if b >= rejectAbove {
				continue
			}

			code = append(code, alphabet[int64(b)%base])
			if len(code) == g.length {
				break
			}
		}
	}

	return string(code)
}

// SequentialGenerator produces deterministic codes by base62-encoding an
// atomic counter. It is an interchangeable alternative to RandomGenerator
// for deployments that prefer compact, ordered codes.
type SequentialGenerator struct {
	next atomic.Int64
}

// NewSequentialGenerator creates a sequential generator starting at 0.
func NewSequentialGenerator() *SequentialGenerator {
	return &SequentialGenerator{}
}

func (g *SequentialGenerator) Generate() string {
	n := g.next.Add(1) - 1

	code, err := EncodeBase62(n)
	if err != nil {
		// unreachable: the counter never goes negative
		panic(err)
	}

	return code
}
