package token

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("token account not found")
	// ErrInsufficientFunds fails a transfer whose source balance is too small.
	ErrInsufficientFunds = errors.New("source balance is insufficient")
	// ErrBadAuthority fails a transfer not authorized by the source owner.
	ErrBadAuthority = errors.New("authority does not own the source account")
	// ErrSelfTransfer fails a transfer whose source and destination are the
	// same account. Such a transfer moves nothing, so allowing it would let a
	// deposit credit the ledger without custodying any tokens.
	ErrSelfTransfer = errors.New("source and destination are the same account")
)

// Account is one token-holding account on the ledger, user-held or custodial.
type Account struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Address   string    `gorm:"column:address;type:char(32);not null;uniqueIndex:ux_token_accounts_address" json:"address"`
	Mint      string    `gorm:"column:mint;type:char(32);not null;index:idx_token_accounts_mint" json:"mint"`
	Owner     string    `gorm:"column:owner;type:char(32);not null;index:idx_token_accounts_owner" json:"owner"`
	Balance   uint64    `gorm:"column:balance;not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "token_accounts" }
