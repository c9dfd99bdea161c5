// Package identity maintains the keypair backed actors that sign
// transactions on the blockchain.
package identity

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrKeyGeneration is returned when a new keypair can't be produced.
	// There is no identity without a keypair so callers should treat
	// this as fatal.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrSigning is returned when the private key can't produce a
	// signature. Given an identity always owns its key this represents
	// an invariant violation, not a recoverable condition.
	ErrSigning = errors.New("signing failed")

	// ErrInvalidSignature is returned when a signature does not verify
	// against the claimed identity and message.
	ErrInvalidSignature = errors.New("invalid signature")
)

// =============================================================================

// ID represents the public identifier for an identity. It is the lossless
// hex encoding of the uncompressed public key bytes.
type ID string

// idLength is the fixed width of an encoded identifier. The uncompressed
// secp256k1 public key is 65 bytes.
const idLength = 130

// IsValid verifies whether the underlying data represents a properly
// hex-encoded public key.
func (id ID) IsValid() bool {
	if len(id) != idLength {
		return false
	}

	if _, err := hex.DecodeString(string(id)); err != nil {
		return false
	}

	return true
}

// publicKeyBytes decodes the identifier back into the raw public key.
func (id ID) publicKeyBytes() ([]byte, error) {
	if !id.IsValid() {
		return nil, fmt.Errorf("identifier is not a valid public key encoding")
	}

	return hex.DecodeString(string(id))
}

// =============================================================================

// Identity represents an actor who owns a keypair. The private key never
// leaves the identity except through an explicit save for wallet tooling.
type Identity struct {
	label      string
	privateKey *ecdsa.PrivateKey
	id         ID
}

// Generate constructs a new identity with a fresh secp256k1 keypair.
// The label is cosmetic and plays no part in the identity itself.
func Generate(label string) (*Identity, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyGeneration, err)
	}

	return fromKey(label, privateKey), nil
}

// Load constructs an identity from a private key stored on disk.
func Load(label string, path string) (*Identity, error) {
	privateKey, err := crypto.LoadECDSA(path)
	if err != nil {
		return nil, fmt.Errorf("loading private key: %w", err)
	}

	return fromKey(label, privateKey), nil
}

// fromKey wraps an existing private key, deriving the public identifier.
func fromKey(label string, privateKey *ecdsa.PrivateKey) *Identity {
	return &Identity{
		label:      label,
		privateKey: privateKey,
		id:         ID(hex.EncodeToString(crypto.FromECDSAPub(&privateKey.PublicKey))),
	}
}

// Label returns the human readable name for the identity.
func (idn *Identity) Label() string {
	return idn.label
}

// ID returns the public identifier for the identity. The value is derived
// once at construction and is stable across calls.
func (idn *Identity) ID() ID {
	return idn.id
}

// Sign hashes the message with sha256 and signs the digest with the
// private key. The signing is deterministic, the same message always
// produces the same signature bytes.
func (idn *Identity) Sign(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)

	sig, err := crypto.Sign(digest[:], idn.privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSigning, err)
	}

	return sig, nil
}

// SavePrivateKey writes the private key to disk for wallet tooling.
func (idn *Identity) SavePrivateKey(path string) error {
	return crypto.SaveECDSA(path, idn.privateKey)
}

// =============================================================================

// Verify checks the signature was produced over the exact message bytes
// by the identity behind the specified identifier.
func Verify(id ID, msg []byte, sig []byte) error {
	publicKey, err := id.publicKeyBytes()
	if err != nil {
		return err
	}

	// Drop the recovery id, verification only needs [R|S].
	if len(sig) == crypto.SignatureLength {
		sig = sig[:crypto.RecoveryIDOffset]
	}

	digest := sha256.Sum256(msg)
	if !crypto.VerifySignature(publicKey, digest[:], sig) {
		return ErrInvalidSignature
	}

	return nil
}
