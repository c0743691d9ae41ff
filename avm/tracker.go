package avm

import (
	"fmt"

	"golang.org/x/exp/maps"

	"github.com/avm-project/machine/avm/value"
)

// BalanceTracker records the fungible balances and non-fungible holdings of
// one machine instance. It is a plain value container without internal
// synchronization; every machine owns exactly one tracker and advances it
// from its own execution context only. Spend is the single operation that
// ever decreases a balance or removes a holding, and it re-checks
// affordability before mutating, so balances can never turn negative and a
// holding can never be removed twice.
type BalanceTracker struct {
	tokens map[TokenType]value.U256
	nfts   map[NFTKey]struct{}
}

func NewBalanceTracker() *BalanceTracker {
	return &BalanceTracker{
		tokens: make(map[TokenType]value.U256),
		nfts:   make(map[NFTKey]struct{}),
	}
}

// TokenValue returns the balance held for the given fungible token. An
// absent entry means a balance of zero. Calling this with a non-fungible
// identifier is a caller bug and panics with ErrPreconditionViolation.
func (t *BalanceTracker) TokenValue(tok TokenType) value.U256 {
	if !tok.IsToken() {
		panic(ErrPreconditionViolation)
	}
	return t.tokens[tok]
}

// HasNFT returns whether the tracked instance currently owns the given
// asset. Calling this with a fungible identifier is a caller bug and panics
// with ErrPreconditionViolation.
func (t *BalanceTracker) HasNFT(tok TokenType, id value.U256) bool {
	if tok.IsToken() {
		panic(ErrPreconditionViolation)
	}
	_, contains := t.nfts[NFTKey{Token: tok, ID: id}]
	return contains
}

// CanSpend returns whether a spend of the given amount would succeed. For
// non-fungible identifiers the amount is interpreted as the instance id.
func (t *BalanceTracker) CanSpend(tok TokenType, amount value.U256) bool {
	if tok.IsToken() {
		return !amount.Gt(t.TokenValue(tok))
	}
	return t.HasNFT(tok, amount)
}

// Spend atomically checks affordability and deducts. If the amount is not
// covered the tracker is left untouched and false is returned. A drained
// fungible balance keeps its zero-valued entry.
func (t *BalanceTracker) Spend(tok TokenType, amount value.U256) bool {
	if !t.CanSpend(tok, amount) {
		return false
	}
	if tok.IsToken() {
		t.tokens[tok] = t.tokens[tok].Sub(amount)
	} else {
		delete(t.nfts, NFTKey{Token: tok, ID: amount})
	}
	return true
}

// Add credits the given amount of a fungible token, or records ownership of
// the asset named by the amount for a non-fungible class. Adding an already
// owned asset is a no-op. Amounts are bounded to 256 bits by the
// surrounding system; a wrap-around on credit is an invariant violation and
// panics rather than silently truncating the balance.
func (t *BalanceTracker) Add(tok TokenType, amount value.U256) {
	if tok.IsToken() {
		sum, overflow := t.tokens[tok].AddOverflow(amount)
		if overflow {
			panic(fmt.Sprintf("balance overflow for token %v", tok))
		}
		t.tokens[tok] = sum
	} else {
		t.nfts[NFTKey{Token: tok, ID: amount}] = struct{}{}
	}
}

// Balances returns a copy of all fungible balance entries, including
// zero-valued ones.
func (t *BalanceTracker) Balances() map[TokenType]value.U256 {
	return maps.Clone(t.tokens)
}

// NumAssets returns the number of non-fungible holdings.
func (t *BalanceTracker) NumAssets() int {
	return len(t.nfts)
}

func (t *BalanceTracker) Clone() *BalanceTracker {
	return &BalanceTracker{
		tokens: maps.Clone(t.tokens),
		nfts:   maps.Clone(t.nfts),
	}
}

func (a *BalanceTracker) Eq(b *BalanceTracker) bool {
	return maps.Equal(a.tokens, b.tokens) &&
		maps.Equal(a.nfts, b.nfts)
}

func (a *BalanceTracker) Diff(b *BalanceTracker) (res []string) {
	for key, valueA := range a.tokens {
		valueB, contained := b.tokens[key]
		if !contained {
			res = append(res, fmt.Sprintf("Different balance entry:\n\t[%v]=%v\n\tvs\n\tmissing", key, valueA))
		} else if valueA.Ne(valueB) {
			res = append(res, fmt.Sprintf("Different balance entry:\n\t[%v]=%v\n\tvs\n\t[%v]=%v", key, valueA, key, valueB))
		}
	}
	for key, valueB := range b.tokens {
		if _, contained := a.tokens[key]; !contained {
			res = append(res, fmt.Sprintf("Different balance entry:\n\tmissing\n\tvs\n\t[%v]=%v", key, valueB))
		}
	}

	for key := range a.nfts {
		if _, contained := b.nfts[key]; !contained {
			res = append(res, fmt.Sprintf("Different holding: %v vs missing", key))
		}
	}
	for key := range b.nfts {
		if _, contained := a.nfts[key]; !contained {
			res = append(res, fmt.Sprintf("Different holding: missing vs %v", key))
		}
	}

	return
}
