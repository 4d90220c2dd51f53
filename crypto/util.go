package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
)

// Write operations in a hash.Hash never return an error

// Sha256 returns the SHA256 of the input bytes
func Sha256(b []byte) []byte {
	hasher := sha256.New()
	hasher.Write(b)
	return hasher.Sum(nil)
}

// DoubleSha256 returns SHA256 applied twice, the checksum primitive of the
// address encoding
func DoubleSha256(b []byte) []byte {
	hasher := sha256.New()
	hasher.Write(b)
	sha := hasher.Sum(nil)
	hasher.Reset()
	hasher.Write(sha)
	return hasher.Sum(nil)
}

// Sha512Half returns first 32 bytes of a SHA512 of the input bytes
func Sha512Half(b []byte) []byte {
	hasher := sha512.New()
	hasher.Write(b)
	return hasher.Sum(nil)[:32]
}
