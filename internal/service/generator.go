package service

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// alphabet is the 62-symbol set short codes are drawn from.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator produces candidate short codes. Candidates are random
// and not guaranteed unique; uniqueness is enforced by the storage
// layer during insertion.
type CodeGenerator interface {
	Generate() (string, error)
}

// NanoIDGenerator generates random codes of a fixed length from the
// alphanumeric alphabet.
type NanoIDGenerator struct {
	length int
}

// NewNanoIDGenerator creates a generator producing codes of the given length.
func NewNanoIDGenerator(length int) *NanoIDGenerator {
	return &NanoIDGenerator{
		length: length,
	}
}

// Generate returns a random alphanumeric code.
func (g *NanoIDGenerator) Generate() (string, error) {
	const op = "service.NanoIDGenerator.Generate"

	code, err := gonanoid.Generate(alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate code: %w", op, err)
	}

	return code, nil
}
