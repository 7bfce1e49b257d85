package lending

import (
	"errors"
	"math"
	"testing"
)

func TestBalances_CreditAndGet(t *testing.T) {
	var b Balances
	if err := b.Credit(2, 1000); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	got, err := b.Get(2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 1000 {
		t.Fatalf("balance = %d, want 1000", got)
	}
}

func TestBalances_CreditOverflowLeavesSlotUnchanged(t *testing.T) {
	var b Balances
	b[5] = math.MaxUint64 - 10

	if err := b.Credit(5, 11); !errors.Is(err, ErrArithmetic) {
		t.Fatalf("err = %v, want ErrArithmetic", err)
	}
	if b[5] != math.MaxUint64-10 {
		t.Fatalf("slot mutated on failed credit: %d", b[5])
	}

	// exactly at the max is fine
	if err := b.Credit(5, 10); err != nil {
		t.Fatalf("Credit to max: %v", err)
	}
	if b[5] != math.MaxUint64 {
		t.Fatalf("slot = %d, want MaxUint64", b[5])
	}
}

func TestBalances_DebitUnderflowLeavesSlotUnchanged(t *testing.T) {
	var b Balances
	b[0] = 600

	if err := b.Debit(0, 700); !errors.Is(err, ErrArithmetic) {
		t.Fatalf("err = %v, want ErrArithmetic", err)
	}
	if b[0] != 600 {
		t.Fatalf("slot mutated on failed debit: %d", b[0])
	}
	if err := b.Debit(0, 600); err != nil {
		t.Fatalf("Debit to zero: %v", err)
	}
	if b[0] != 0 {
		t.Fatalf("slot = %d, want 0", b[0])
	}
}

func TestBalances_IndexBounds(t *testing.T) {
	var b Balances
	if err := b.Credit(8, 1); !errors.Is(err, ErrInvalidTokenIndex) {
		t.Fatalf("Credit(8) err = %v, want ErrInvalidTokenIndex", err)
	}
	if err := b.Debit(255, 1); !errors.Is(err, ErrInvalidTokenIndex) {
		t.Fatalf("Debit(255) err = %v, want ErrInvalidTokenIndex", err)
	}
	if _, err := b.Get(8); !errors.Is(err, ErrInvalidTokenIndex) {
		t.Fatalf("Get(8) err = %v, want ErrInvalidTokenIndex", err)
	}
}

func TestBalances_ScanValueRoundTrip(t *testing.T) {
	b := Balances{1, 0, 1000, 0, 0, 0, 0, math.MaxUint64}
	v, err := b.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var got Balances
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan(string): %v", err)
	}
	if got != b {
		t.Fatalf("round trip mismatch: %v vs %v", got, b)
	}

	var fromBytes Balances
	if err := fromBytes.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan(bytes): %v", err)
	}
	if fromBytes != b {
		t.Fatalf("bytes round trip mismatch: %v vs %v", fromBytes, b)
	}

	var fromNil Balances
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if fromNil != (Balances{}) {
		t.Fatalf("nil should scan to zero balances: %v", fromNil)
	}
}
