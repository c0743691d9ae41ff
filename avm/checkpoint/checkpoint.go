package checkpoint

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"

	"github.com/avm-project/machine/avm"
)

//go:generate mockgen -source checkpoint.go -destination store_mock.go -package checkpoint

// Digest is the keccak-256 content hash identifying one checkpoint buffer.
type Digest [32]byte

func (d Digest) String() string {
	return fmt.Sprintf("0x%x", d[:])
}

// Store abstracts the persistence engine holding checkpoint buffers. Which
// engine backs it (file, key-value store, ...) is the host's choice.
type Store interface {
	// Put persists a checkpoint buffer under its digest. Writing the same
	// digest twice must be harmless since the content is identical.
	Put(digest Digest, data []byte) error
	// Get retrieves the buffer stored under the given digest.
	Get(digest Digest) ([]byte, error)
}

// ErrDigestMismatch reports a stored buffer whose content no longer hashes
// to the digest it was requested under.
const ErrDigestMismatch = avm.ConstError("checkpoint digest mismatch")

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

type keccakHasher interface {
	Reset()
	Write(in []byte) (int, error)
	Read(out []byte) (int, error)
}

// DigestOf computes the keccak-256 digest of a checkpoint buffer.
func DigestOf(data []byte) Digest {
	hasher := keccakHasherPool.Get().(keccakHasher)
	hasher.Reset()
	hasher.Write(data)
	var res Digest
	hasher.Read(res[:])
	keccakHasherPool.Put(hasher)
	return res
}

// Checkpointer saves and restores machine-state snapshots through a Store,
// addressing them by content digest. Restores of recently seen digests are
// served from a bounded cache without touching the store or re-decoding.
// Like the state types it handles, a Checkpointer is not safe for
// concurrent use.
type Checkpointer struct {
	store Store
	cache *lru.Cache[Digest, *avm.BalanceTracker]
}

// NewCheckpointer creates a Checkpointer with the given restore-cache
// capacity. The capacity must be positive.
func NewCheckpointer(store Store, cacheCapacity int) (*Checkpointer, error) {
	cache, err := lru.New[Digest, *avm.BalanceTracker](cacheCapacity)
	if err != nil {
		return nil, err
	}
	return &Checkpointer{store: store, cache: cache}, nil
}

// Save serializes the tracker's fungible balances, persists the buffer
// under its digest, and returns the digest together with the number of
// non-fungible holdings the ledger encoding cannot carry. A non-zero count
// tells the caller that a later Restore will not reproduce those holdings.
func (c *Checkpointer) Save(tracker *avm.BalanceTracker) (Digest, int, error) {
	data := tracker.SerializeBalances()
	digest := DigestOf(data)
	if err := c.store.Put(digest, data); err != nil {
		return Digest{}, 0, fmt.Errorf("storing checkpoint %v: %w", digest, err)
	}
	// The cache must hold exactly what a cold restore would produce, so the
	// saved tracker cannot be cached as-is: holdings the balance encoding
	// drops would resurface on cache hits. Re-decoding the just-written
	// buffer yields the decode-equivalent state by construction.
	if snapshot, err := avm.BalanceTrackerFromBytes(data); err == nil {
		c.cache.Add(digest, snapshot)
	}
	return digest, tracker.NumAssets(), nil
}

// Restore produces a tracker holding the balances saved under the given
// digest. The returned tracker is an independent copy; callers may mutate
// it freely. Loaded buffers are verified against the digest before
// decoding.
func (c *Checkpointer) Restore(digest Digest) (*avm.BalanceTracker, error) {
	if tracker, found := c.cache.Get(digest); found {
		return tracker.Clone(), nil
	}
	data, err := c.store.Get(digest)
	if err != nil {
		return nil, fmt.Errorf("loading checkpoint %v: %w", digest, err)
	}
	if DigestOf(data) != digest {
		return nil, fmt.Errorf("%w: %v", ErrDigestMismatch, digest)
	}
	tracker, err := avm.BalanceTrackerFromBytes(data)
	if err != nil {
		return nil, err
	}
	c.cache.Add(digest, tracker)
	return tracker.Clone(), nil
}

// SaveBlockReason persists the encoded block reason under its digest.
func (c *Checkpointer) SaveBlockReason(reason avm.BlockReason) (Digest, error) {
	data := avm.SerializeBlockReason(reason)
	digest := DigestOf(data)
	if err := c.store.Put(digest, data); err != nil {
		return Digest{}, fmt.Errorf("storing block reason %v: %w", digest, err)
	}
	return digest, nil
}

// RestoreBlockReason loads and decodes the block reason saved under the
// given digest, verifying the buffer content on the way.
func (c *Checkpointer) RestoreBlockReason(digest Digest) (avm.BlockReason, error) {
	data, err := c.store.Get(digest)
	if err != nil {
		return nil, fmt.Errorf("loading block reason %v: %w", digest, err)
	}
	if DigestOf(data) != digest {
		return nil, fmt.Errorf("%w: %v", ErrDigestMismatch, digest)
	}
	return avm.BlockReasonFromBytes(data)
}
