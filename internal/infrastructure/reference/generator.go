package reference

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/oklog/ulid/v2"
)

const checksumLen = 4

// Generator produces globally unique, time-ordered transaction references.
// A reference is PREFIX + ULID + "-" + checksum; the checksum makes casual
// tampering or transcription errors detectable.
type Generator struct {
	prefix string
}

// NewGenerator creates a reference generator with the given prefix, e.g. "TRF".
func NewGenerator(prefix string) *Generator {
	return &Generator{prefix: strings.ToUpper(prefix)}
}

// NewReference generates a new reference.
func (g *Generator) NewReference() string {
	body := g.prefix + ulid.Make().String()

	return body + "-" + checksum(body)
}

// Verify reports whether ref is a well-formed reference with a valid checksum.
func Verify(ref string) bool {
	idx := strings.LastIndex(ref, "-")
	if idx <= 0 || len(ref)-idx-1 != checksumLen {
		return false
	}

	body, sum := ref[:idx], ref[idx+1:]

	return checksum(body) == sum
}

func checksum(body string) string {
	sum := sha256.Sum256([]byte(body))

	return strings.ToUpper(hex.EncodeToString(sum[:checksumLen/2]))
}

// ULIDGenerator generates ULID-based entity IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
