// Package signature provides helper functions for handling the blockchain
// hashing and signature encoding needs.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gibson042/canonicaljson-go"
)

// Hash returns a unique string for the value. The value is rendered with
// canonical JSON first so the same fields always produce the same digest.
func Hash(value any) (string, error) {
	data, err := canonicaljson.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}

	return HashBytes(data), nil
}

// HashBytes returns the hex encoded sha256 digest of the data.
func HashBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// IsHashSolved checks the hash to make sure it complies with the POW rules.
// The digest must end with a difficulty number of 0's.
func IsHashSolved(difficulty int, hash string) bool {
	const match = "00000000000000000"

	if len(hash) != 64 {
		return false
	}

	if difficulty < 0 || difficulty > len(match) {
		return false
	}

	return strings.HasSuffix(hash, match[:difficulty])
}

// SignatureString returns the hex encoding of the raw signature bytes.
func SignatureString(sig []byte) string {
	return hex.EncodeToString(sig)
}

// FromSignatureString converts a hex encoded signature back into the
// raw signature bytes.
func FromSignatureString(sigStr string) ([]byte, error) {
	sig, err := hex.DecodeString(sigStr)
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}

	return sig, nil
}
