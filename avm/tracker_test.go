package avm

import (
	"errors"
	"testing"

	"github.com/avm-project/machine/avm/value"
)

func fungibleToken(fill byte) TokenType {
	tok := TokenType{}
	for i := 0; i < TokenTypeLength-1; i++ {
		tok[i] = fill
	}
	return tok
}

func nonFungibleToken(fill byte) TokenType {
	tok := fungibleToken(fill)
	tok[TokenTypeLength-1] = 1
	return tok
}

func TestBalanceTracker_AbsentBalanceIsZero(t *testing.T) {
	tracker := NewBalanceTracker()
	if got := tracker.TokenValue(fungibleToken(1)); !got.IsZero() {
		t.Errorf("absent entry must read as zero, got %v", got)
	}
}

func TestBalanceTracker_TokenValuePanicsOnNonFungible(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrPreconditionViolation) {
			t.Errorf("want ErrPreconditionViolation panic, got %v", r)
		}
	}()
	NewBalanceTracker().TokenValue(nonFungibleToken(1))
}

func TestBalanceTracker_HasNFTPanicsOnFungible(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrPreconditionViolation) {
			t.Errorf("want ErrPreconditionViolation panic, got %v", r)
		}
	}()
	NewBalanceTracker().HasNFT(fungibleToken(1), value.NewU256(1))
}

func TestBalanceTracker_AddThenSpendRestoresPriorBalance(t *testing.T) {
	tok := fungibleToken(1)
	tracker := NewBalanceTracker()
	tracker.Add(tok, value.NewU256(10))

	tracker.Add(tok, value.NewU256(32))
	if !tracker.Spend(tok, value.NewU256(32)) {
		t.Fatalf("covered spend must succeed")
	}
	if want, got := value.NewU256(10), tracker.TokenValue(tok); want.Ne(got) {
		t.Errorf("balance not restored, want %v, got %v", want, got)
	}
}

func TestBalanceTracker_SpendScenario(t *testing.T) {
	tok := TokenType{} // 21 zero bytes, fungible
	tracker := NewBalanceTracker()
	tracker.Add(tok, value.NewU256(100))

	if !tracker.CanSpend(tok, value.NewU256(50)) {
		t.Fatalf("spend of 50 out of 100 must be affordable")
	}
	if !tracker.Spend(tok, value.NewU256(50)) {
		t.Fatalf("spend of 50 out of 100 must succeed")
	}
	if want, got := value.NewU256(50), tracker.TokenValue(tok); want.Ne(got) {
		t.Fatalf("wrong balance after spend, want %v, got %v", want, got)
	}

	if tracker.Spend(tok, value.NewU256(60)) {
		t.Fatalf("spend of 60 out of 50 must fail")
	}
	if want, got := value.NewU256(50), tracker.TokenValue(tok); want.Ne(got) {
		t.Errorf("failed spend must not change the balance, want %v, got %v", want, got)
	}
}

func TestBalanceTracker_UncoveredSpendLeavesTrackerUnchanged(t *testing.T) {
	tok := fungibleToken(1)
	asset := nonFungibleToken(2)
	tracker := NewBalanceTracker()
	tracker.Add(tok, value.NewU256(5))
	tracker.Add(asset, value.NewU256(7))
	before := tracker.Clone()

	if tracker.Spend(tok, value.NewU256(6)) {
		t.Fatalf("uncovered spend must fail")
	}
	if tracker.Spend(asset, value.NewU256(8)) {
		t.Fatalf("spend of unowned asset must fail")
	}
	if !tracker.Eq(before) {
		t.Errorf("failed spends mutated the tracker: %v", tracker.Diff(before))
	}
}

func TestBalanceTracker_SpendingDrainsToZeroEntry(t *testing.T) {
	tok := fungibleToken(1)
	tracker := NewBalanceTracker()
	tracker.Add(tok, value.NewU256(5))

	if !tracker.Spend(tok, value.NewU256(5)) {
		t.Fatalf("covered spend must succeed")
	}
	if want, got := 1, len(tracker.Balances()); want != got {
		t.Errorf("drained balance must keep its entry, want %d entries, got %d", want, got)
	}
	if got := tracker.TokenValue(tok); !got.IsZero() {
		t.Errorf("drained balance must be zero, got %v", got)
	}
}

func TestBalanceTracker_NFTLifecycle(t *testing.T) {
	asset := nonFungibleToken(3)
	id := value.NewU256(1234)
	tracker := NewBalanceTracker()

	tracker.Add(asset, id)
	if !tracker.HasNFT(asset, id) {
		t.Fatalf("added asset must be owned")
	}
	if !tracker.CanSpend(asset, id) {
		t.Fatalf("owned asset must be spendable")
	}

	// Re-adding an owned asset is a no-op.
	tracker.Add(asset, id)
	if want, got := 1, tracker.NumAssets(); want != got {
		t.Fatalf("duplicate add must not create entries, want %d, got %d", want, got)
	}

	if !tracker.Spend(asset, id) {
		t.Fatalf("first spend must succeed")
	}
	if tracker.HasNFT(asset, id) {
		t.Errorf("spent asset must no longer be owned")
	}
	if tracker.Spend(asset, id) {
		t.Errorf("second spend of the same asset must fail")
	}
}

func TestBalanceTracker_AddPanicsOnOverflow(t *testing.T) {
	tok := fungibleToken(1)
	tracker := NewBalanceTracker()
	tracker.Add(tok, value.MaxU256())

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("overflowing add must panic")
		}
	}()
	tracker.Add(tok, value.NewU256(1))
}

func TestBalanceTracker_Clone(t *testing.T) {
	tok := fungibleToken(1)
	asset := nonFungibleToken(2)
	id := value.NewU256(7)

	tests := map[string]struct {
		change func(*BalanceTracker)
	}{
		"add-balance": {func(tracker *BalanceTracker) {
			tracker.Add(fungibleToken(9), value.NewU256(1))
		}},
		"modify-balance": {func(tracker *BalanceTracker) {
			tracker.Add(tok, value.NewU256(1))
		}},
		"spend-balance": {func(tracker *BalanceTracker) {
			tracker.Spend(tok, value.NewU256(1))
		}},
		"add-asset": {func(tracker *BalanceTracker) {
			tracker.Add(asset, value.NewU256(8))
		}},
		"remove-asset": {func(tracker *BalanceTracker) {
			tracker.Spend(asset, id)
		}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t1 := NewBalanceTracker()
			t1.Add(tok, value.NewU256(5))
			t1.Add(asset, id)
			t2 := t1.Clone()
			if !t1.Eq(t2) {
				t.Fatalf("clones are not equal: %v", t1.Diff(t2))
			}
			test.change(t2)
			if t1.Eq(t2) {
				t.Errorf("clones are not independent")
			}
		})
	}
}
