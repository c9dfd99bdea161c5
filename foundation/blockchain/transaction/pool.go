package transaction

import (
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/minichain/minichain/foundation/blockchain/identity"
)

// Pool represents an ordered collection of transactions pending
// inclusion in a block. Insertion order is significant, it determines
// the order transactions are hashed into the block digest.
type Pool struct {
	mu    sync.RWMutex
	txs   []Tx
	count int
	now   func() time.Time
}

// NewPool constructs a pool that stamps new transactions with the
// injected clock. A nil clock falls back to the system wall clock.
func NewPool(now func() time.Time) *Pool {
	if now == nil {
		now = time.Now
	}

	return &Pool{
		now: now,
	}
}

// Transfer constructs a new transaction from the specified parties and
// value and appends it to the pool.
func (p *Pool) Transfer(sender *identity.Identity, receiver *identity.Identity, value int64) Tx {
	tx := New(sender, receiver, value, p.now())
	p.Append(tx)

	return tx
}

// Append adds the transaction to the end of the pool.
func (p *Pool) Append(tx Tx) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.txs = append(p.txs, tx)
	p.count++
}

// Snapshot returns a new pool holding a copy of the current sequence.
// Only the container is new, the transaction values are shared, so
// clearing this pool afterwards does not disturb the snapshot.
func (p *Pool) Snapshot() (*Pool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snapshot := Pool{
		count: p.count,
		now:   p.now,
	}

	if err := copier.Copy(&snapshot.txs, &p.txs); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// Clear empties the pool and resets the count. Snapshots already taken
// keep their contents.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.txs = nil
	p.count = 0
}

// Items returns an ordered copy of the current transactions for
// enumeration and diagnostics.
func (p *Pool) Items() []Tx {
	p.mu.RLock()
	defer p.mu.RUnlock()

	items := make([]Tx, len(p.txs))
	copy(items, p.txs)

	return items
}

// Count returns the current number of transactions in the pool.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.count
}
