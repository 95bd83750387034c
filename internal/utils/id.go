package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a random 32-character hex identifier
func NewID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
