// Package transaction maintains the transactions pending inclusion in a
// block and their canonical signing form.
package transaction

import (
	"fmt"
	"time"

	"github.com/gibson042/canonicaljson-go"
	"github.com/minichain/minichain/foundation/blockchain/identity"
	"github.com/minichain/minichain/foundation/blockchain/signature"
)

// Tx represents a transfer of value between two identities. The sender
// and receiver are non-owning handles, the identities stay owned by the
// caller and private key material is never duplicated. A transaction is
// never mutated after construction.
type Tx struct {
	Sender    *identity.Identity
	Receiver  *identity.Identity
	Value     int64
	TimeStamp time.Time
}

// New constructs a transaction stamped with the provided time. Callers
// inject the time so tests can assert exact canonical encodings. The
// value is taken as provided, negative and zero transfers are accepted.
func New(sender *identity.Identity, receiver *identity.Identity, value int64, now time.Time) Tx {
	return Tx{
		Sender:    sender,
		Receiver:  receiver,
		Value:     value,
		TimeStamp: now.UTC(),
	}
}

// txRecord is the ordered field mapping that represents a transaction
// for hashing and signing.
type txRecord struct {
	Receiver identity.ID `json:"receiver"`
	Sender   identity.ID `json:"sender"`
	Time     int64       `json:"time"`
	Value    int64       `json:"value"`
}

// CanonicalForm renders the transaction fields into the one fixed byte
// encoding that is used as the hash-then-sign input. Identical fields
// always produce identical bytes.
func (tx Tx) CanonicalForm() ([]byte, error) {
	record := txRecord{
		Receiver: tx.Receiver.ID(),
		Sender:   tx.Sender.ID(),
		Time:     tx.TimeStamp.Unix(),
		Value:    tx.Value,
	}

	data, err := canonicaljson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}

	return data, nil
}

// Sign computes a signature over the canonical form using the sender's
// private key and returns it hex encoded. The signature is recomputed on
// every call, never cached. Since the fields are immutable and the
// signing scheme is deterministic, repeated calls return the same value.
func (tx Tx) Sign() (string, error) {
	data, err := tx.CanonicalForm()
	if err != nil {
		return "", err
	}

	sig, err := tx.Sender.Sign(data)
	if err != nil {
		return "", err
	}

	return signature.SignatureString(sig), nil
}

// String implements the fmt.Stringer interface for diagnostic dumps.
func (tx Tx) String() string {
	return fmt.Sprintf("%s sent %s %d coins at %s",
		tx.Sender.Label(), tx.Receiver.Label(), tx.Value,
		tx.TimeStamp.Format("01/02/2006, 15:04:05"))
}
