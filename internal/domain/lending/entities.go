package lending

import (
	"time"
)

// MaxTokenSlots bounds the per-user balance array. Token indexes are assigned
// off-chain at registration time and must stay below this.
const MaxTokenSlots = 8

// ProtocolConfig is the singleton parameter record. Created once by the
// administrator; re-initialization is admin-gated.
type ProtocolConfig struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Derived key hash("config"); one row per deployment.
	ConfigID                string    `gorm:"column:config_id;type:char(32);not null;uniqueIndex:ux_configs_config_id" json:"config_id"`
	InterestRateBps         uint64    `gorm:"column:interest_rate_bps;not null" json:"interest_rate_bps"`
	LiquidationThresholdBps uint64    `gorm:"column:liquidation_threshold_bps;not null" json:"liquidation_threshold_bps"`
	PriceStaleThreshold     uint64    `gorm:"column:price_stale_threshold;not null" json:"price_stale_threshold"`
	Admin                   string    `gorm:"column:admin;type:char(32);not null" json:"admin"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProtocolConfig) TableName() string { return "protocol_configs" }

// CollateralVault pairs a registered token mint with its custodial token
// account and price feed. One row per (admin, mint); immutable once written.
type CollateralVault struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Derived key hash("vault", admin, token_mint).
	VaultID      string    `gorm:"column:vault_id;type:char(32);not null;uniqueIndex:ux_vaults_vault_id" json:"vault_id"`
	Admin        string    `gorm:"column:admin;type:char(32);not null" json:"admin"`
	VaultAddress string    `gorm:"column:vault_address;type:char(32);not null" json:"vault_address"`
	TokenMint    string    `gorm:"column:token_mint;type:char(32);not null;uniqueIndex:ux_vaults_token_mint" json:"token_mint"`
	PriceFeed    string    `gorm:"column:price_feed;type:char(32);not null" json:"price_feed"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CollateralVault) TableName() string { return "collateral_vaults" }

// UserAccount is the per-wallet collateral ledger.
type UserAccount struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Derived key hash("user", owner).
	AccountID     string    `gorm:"column:account_id;type:char(32);not null;uniqueIndex:ux_users_account_id" json:"account_id"`
	Owner         string    `gorm:"column:owner;type:char(32);not null;uniqueIndex:ux_users_owner" json:"owner"`
	TokenBalances Balances  `gorm:"column:token_balances;type:json" json:"token_balances"`
	HasActiveLoan bool      `gorm:"column:has_active_loan;not null;default:false" json:"has_active_loan"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserAccount) TableName() string { return "user_accounts" }

// Loan is one origination record per (borrower, vault).
type Loan struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Derived key hash("loan", borrower, vault_id).
	LoanID           string    `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	Borrower         string    `gorm:"column:borrower;type:char(32);not null;index:idx_loans_borrower" json:"borrower"`
	CollateralVault  string    `gorm:"column:collateral_vault;type:char(32);not null" json:"collateral_vault"`
	LoanAmount       uint64    `gorm:"column:loan_amount;not null" json:"loan_amount"`
	CollateralAmount uint64    `gorm:"column:collateral_amount;not null" json:"collateral_amount"`
	// Snapshot of the config rate at origination time.
	InterestRateBps uint64    `gorm:"column:interest_rate_bps;not null" json:"interest_rate_bps"`
	StartTimestamp  int64     `gorm:"column:start_timestamp;not null" json:"start_timestamp"`
	Duration        uint64    `gorm:"column:duration;not null" json:"duration"`
	IsActive        bool      `gorm:"column:is_active;not null;default:false" json:"is_active"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
