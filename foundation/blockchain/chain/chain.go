// Package chain implements the append only chain of blocks and the
// proof of work mining that links them.
package chain

import (
	"context"
	"errors"
	"sync"

	"github.com/minichain/minichain/foundation/blockchain/transaction"
)

// ErrEmptyChain is returned when mining is requested on a chain that
// has no blocks.
var ErrEmptyChain = errors.New("chain has no blocks")

// Blockchain represents the ordered, append only sequence of blocks.
// Blocks are appended in mining order, never reordered or removed.
type Blockchain struct {
	mu       sync.RWMutex
	blocks   []*Block
	count    int
	lastHash string
}

// New constructs a blockchain with no blocks. The empty last hash is
// the genesis anchor the first block links to.
func New() *Blockchain {
	return &Blockchain{}
}

// CreateBlock snapshots the specified pool and appends a new unmined
// block that links to the proof hash of the last mined block. Mining is
// a separate, explicit step.
func (bc *Blockchain) CreateBlock(pool *transaction.Pool, difficulty int) (*Block, error) {
	snapshot, err := pool.Snapshot()
	if err != nil {
		return nil, err
	}

	bc.mu.Lock()
	defer bc.mu.Unlock()

	b, err := newBlock(snapshot, bc.lastHash, difficulty)
	if err != nil {
		return nil, err
	}

	bc.blocks = append(bc.blocks, b)
	bc.count++

	return b, nil
}

// MineLastBlock mines the most recently appended block and records its
// proof hash as the link for the next block. The chain is left
// untouched when mining fails or no blocks exist.
func (bc *Blockchain) MineLastBlock(ctx context.Context, ev EventHandler) (string, error) {
	bc.mu.Lock()
	if bc.count == 0 {
		bc.mu.Unlock()
		return "", ErrEmptyChain
	}
	b := bc.blocks[bc.count-1]
	bc.mu.Unlock()

	hash, err := b.Mine(ctx, ev)
	if err != nil {
		return "", err
	}

	bc.mu.Lock()
	bc.lastHash = hash
	bc.mu.Unlock()

	return hash, nil
}

// Blocks returns an ordered copy of the chain for enumeration and
// diagnostics.
func (bc *Blockchain) Blocks() []*Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	blocks := make([]*Block, len(bc.blocks))
	copy(blocks, bc.blocks)

	return blocks
}

// Count returns the current number of blocks in the chain.
func (bc *Blockchain) Count() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return bc.count
}

// LastHash returns the proof hash of the most recently mined block, or
// the empty string when nothing has been mined yet.
func (bc *Blockchain) LastHash() string {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return bc.lastHash
}
