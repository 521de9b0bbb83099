package persistence

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// Hash is the checksum of image content.
type Hash [sha256.Size]byte

// Checksum computes checksum of concatenated sections.
func Checksum(sections ...[]byte) Hash {
	hasher := sha256.New()
	for _, s := range sections {
		// hash.Hash never returns an error.
		_, _ = hasher.Write(s)
	}

	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}

// VerifyChecksum verifies that checksum of provided sections matches the expected one.
func VerifyChecksum(expectedChecksum Hash, sections ...[]byte) error {
	checksum := Checksum(sections...)
	if checksum == expectedChecksum {
		return nil
	}
	return errors.Errorf("checksum mismatch, computed: %s, expected: %s",
		hex.EncodeToString(checksum[:]), hex.EncodeToString(expectedChecksum[:]))
}
