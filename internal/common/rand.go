package common

import (
	"crypto/rand"
	"encoding/hex"
)

// RandBytes returns n cryptographically random bytes.
func RandBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; treat it as fatal.
		panic(err)
	}
	return b
}

// RandHex returns a hex string built from n random bytes (2n characters).
// Used for opaque refresh tokens.
func RandHex(n int) string {
	return hex.EncodeToString(RandBytes(n))
}
