package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/gibson042/canonicaljson-go"
	"github.com/minichain/minichain/foundation/blockchain/signature"
	"github.com/minichain/minichain/foundation/blockchain/transaction"
)

// EventHandler defines a function that is called when events occur
// during the mining operation.
type EventHandler func(v string, args ...any)

// =============================================================================

// BlockHeader represents the fields that are repeatedly hashed during
// the proof of work search. The header is rendered with canonical JSON
// so the encoding is stable and field boundaries are unambiguous.
type BlockHeader struct {
	PrevBlockHash string `json:"previous_hash"`    // Proof hash of the previous block, empty for the first block.
	Difficulty    int    `json:"difficulty"`       // Number of trailing 0's needed to solve the hash solution.
	TransHash     string `json:"transaction_hash"` // Digest over every transaction signature in pool order.
	Nonce         uint64 `json:"nonce"`            // Value identified to solve the hash solution.
}

// Block binds a frozen snapshot of pending transactions to the chain
// through the previous block's proof hash.
type Block struct {
	Header BlockHeader
	Trans  *transaction.Pool
}

// newBlock constructs a block over the pool snapshot and computes the
// digest covering every transaction signature. The digest is computed
// exactly once, before mining, and never again.
func newBlock(snapshot *transaction.Pool, prevBlockHash string, difficulty int) (*Block, error) {
	transHash, err := computeTransHash(snapshot)
	if err != nil {
		return nil, err
	}

	b := Block{
		Header: BlockHeader{
			PrevBlockHash: prevBlockHash,
			Difficulty:    difficulty,
			TransHash:     transHash,
			Nonce:         0, // Will be identified by the POW algorithm.
		},
		Trans: snapshot,
	}

	return &b, nil
}

// computeTransHash hashes the concatenation of the hex encoded signature
// of every transaction in pool order. An empty pool hashes the empty
// string, which is a well defined constant.
func computeTransHash(snapshot *transaction.Pool) (string, error) {
	var sb strings.Builder

	for _, tx := range snapshot.Items() {
		sig, err := tx.Sign()
		if err != nil {
			return "", fmt.Errorf("signing transaction [%s]: %w", tx, err)
		}
		sb.WriteString(sig)
	}

	return signature.HashBytes([]byte(sb.String())), nil
}

// Mine performs the proof of work search. Starting at nonce 0 the header
// is encoded and hashed until the digest ends with a difficulty number
// of trailing 0's. The loop is CPU bound and blocks the caller until a
// solution is found or the context is cancelled. Cancellation never
// changes the digest computed for a given header and nonce.
func (b *Block) Mine(ctx context.Context, ev EventHandler) (string, error) {
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	ev("chain: mine: POW: started: difficulty[%d]", b.Header.Difficulty)
	defer ev("chain: mine: POW: completed")

	b.Header.Nonce = 0

	var attempts uint64
	for {
		attempts++
		if attempts%100_000 == 0 {
			ev("chain: mine: POW: attempts[%d]", attempts)
		}

		// Did we timeout trying to solve the problem.
		if ctx.Err() != nil {
			ev("chain: mine: POW: CANCELLED")
			return "", ctx.Err()
		}

		// Hash the header and check if we have solved the puzzle.
		hash, err := b.Hash()
		if err != nil {
			return "", err
		}

		if !signature.IsHashSolved(b.Header.Difficulty, hash) {
			b.Header.Nonce++
			continue
		}

		ev("chain: mine: POW: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
		ev("chain: mine: POW: attempts[%d]", attempts)

		return hash, nil
	}
}

// Hash returns the digest of the block header under its current nonce.
func (b *Block) Hash() (string, error) {
	data, err := canonicaljson.Marshal(b.Header)
	if err != nil {
		return "", fmt.Errorf("encode block header: %w", err)
	}

	return signature.HashBytes(data), nil
}
