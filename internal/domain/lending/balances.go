package lending

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
)

// Balances is the fixed 8-slot per-token balance array. Access is
// bounds-checked and mutation uses checked arithmetic: a credit or debit that
// would wrap reports an error and leaves the slot untouched.
type Balances [MaxTokenSlots]uint64

// Value serializes the array as JSON for the token_balances column.
func (b Balances) Value() (driver.Value, error) {
	out, err := json.Marshal([MaxTokenSlots]uint64(b))
	if err != nil {
		return nil, err
	}
	return string(out), nil
}

// Scan accepts the JSON column back; NULL and empty mean all-zero.
func (b *Balances) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*b = Balances{}
		return nil
	case []byte:
		if len(v) == 0 {
			*b = Balances{}
			return nil
		}
		return json.Unmarshal(v, (*[MaxTokenSlots]uint64)(b))
	case string:
		if v == "" {
			*b = Balances{}
			return nil
		}
		return json.Unmarshal([]byte(v), (*[MaxTokenSlots]uint64)(b))
	default:
		return fmt.Errorf("balances: unsupported column type %T", src)
	}
}

// Get returns the balance at idx.
func (b *Balances) Get(idx uint8) (uint64, error) {
	if int(idx) >= MaxTokenSlots {
		return 0, ErrInvalidTokenIndex
	}
	return b[idx], nil
}

// Credit adds amount to slot idx, failing on overflow.
func (b *Balances) Credit(idx uint8, amount uint64) error {
	if int(idx) >= MaxTokenSlots {
		return ErrInvalidTokenIndex
	}
	if amount > math.MaxUint64-b[idx] {
		return ErrArithmetic
	}
	b[idx] += amount
	return nil
}

// Debit subtracts amount from slot idx, failing on underflow.
func (b *Balances) Debit(idx uint8, amount uint64) error {
	if int(idx) >= MaxTokenSlots {
		return ErrInvalidTokenIndex
	}
	if b[idx] < amount {
		return ErrArithmetic
	}
	b[idx] -= amount
	return nil
}
