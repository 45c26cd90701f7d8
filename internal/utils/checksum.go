package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum identifies a blob of data
type Checksum struct {
	SHA256 string
	Size   int64
}

// ChecksumBytes calculates the checksum of in-memory data
func ChecksumBytes(data []byte) *Checksum {
	sum := sha256.Sum256(data)
	return &Checksum{
		SHA256: hex.EncodeToString(sum[:]),
		Size:   int64(len(data)),
	}
}
