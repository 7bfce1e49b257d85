package loan

import (
	"context"
	"errors"
	"time"

	"loanvault/internal/domain/lending"
	"loanvault/internal/domain/uow"
	"loanvault/internal/oracle"
	"loanvault/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	loans lending.LoanRepository
	uow   uow.UnitOfWork
	// Optional. When wired, origination is gated on oracle-priced solvency;
	// when nil the engine accepts any loan the raw balance can collateralize.
	oracle *oracle.Validator
	now    func() time.Time
}

func NewUsecase(loans lending.LoanRepository, tx uow.UnitOfWork, v *oracle.Validator) *Usecase {
	return &Usecase{loans: loans, uow: tx, oracle: v, now: time.Now}
}

type InitializeLoanInput struct {
	Caller           string
	VaultID          string
	LoanAmount       uint64
	CollateralAmount uint64
	Duration         uint64
	TokenIndex       uint8
}

type LoanDTO struct {
	LoanID           string `json:"loan_id"`
	Borrower         string `json:"borrower"`
	CollateralVault  string `json:"collateral_vault"`
	LoanAmount       uint64 `json:"loan_amount"`
	CollateralAmount uint64 `json:"collateral_amount"`
	InterestRateBps  uint64 `json:"interest_rate_bps"`
	StartTimestamp   int64  `json:"start_timestamp"`
	Duration         uint64 `json:"duration"`
	IsActive         bool   `json:"is_active"`
}

func loanDTO(l *lending.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		Borrower:         l.Borrower,
		CollateralVault:  l.CollateralVault,
		LoanAmount:       l.LoanAmount,
		CollateralAmount: l.CollateralAmount,
		InterestRateBps:  l.InterestRateBps,
		StartTimestamp:   l.StartTimestamp,
		Duration:         l.Duration,
		IsActive:         l.IsActive,
	}
}

// InitializeLoan validates the origination request and, only once every
// precondition holds, writes the loan and debits the collateral. Precondition
// order is part of the contract: loan amount, collateral amount, duration,
// token index, ownership, balance.
func (u *Usecase) InitializeLoan(ctx context.Context, in InitializeLoanInput) (*LoanDTO, error) {
	if in.LoanAmount == 0 {
		return nil, lending.ErrInvalidAmount
	}
	if in.CollateralAmount == 0 {
		return nil, lending.ErrInvalidAmount
	}
	if in.Duration == 0 {
		return nil, lending.ErrInvalidDuration
	}
	if in.TokenIndex >= lending.MaxTokenSlots {
		return nil, lending.ErrInvalidTokenIndex
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acct, err := r.Users.GetByOwnerForUpdate(ctx, in.Caller)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lending.ErrUnauthorizedAccess
		}
		if err != nil {
			return err
		}
		if acct.Owner != in.Caller {
			return lending.ErrUnauthorizedAccess
		}

		balance, err := acct.TokenBalances.Get(in.TokenIndex)
		if err != nil {
			return err
		}
		if balance < in.CollateralAmount {
			return lending.ErrInsufficientCollateral
		}

		vault, err := r.Vaults.GetByVaultID(ctx, in.VaultID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lending.ErrNotFound
		}
		if err != nil {
			return err
		}
		cfg, err := r.Configs.Get(ctx)
		if err != nil {
			return err
		}

		if u.oracle != nil {
			price, err := u.oracle.FetchPrice(ctx, vault.PriceFeed, cfg.PriceStaleThreshold, u.now())
			if err != nil {
				return err
			}
			if !Solvent(in.CollateralAmount, in.LoanAmount, cfg.LiquidationThresholdBps, price) {
				return lending.ErrInsufficientCollateral
			}
		}

		loanID := id.Derive32("loan", in.Caller, vault.VaultID)
		existing, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		switch {
		case err == nil:
			if existing.IsActive {
				return lending.ErrLoanAlreadyActive
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = nil
		default:
			return err
		}

		l := &lending.Loan{
			LoanID:           loanID,
			Borrower:         in.Caller,
			CollateralVault:  vault.VaultID,
			LoanAmount:       in.LoanAmount,
			CollateralAmount: in.CollateralAmount,
			InterestRateBps:  cfg.InterestRateBps,
			StartTimestamp:   u.now().Unix(),
			Duration:         in.Duration,
			IsActive:         true,
		}
		if existing != nil {
			// A settled loan record is re-originated in place.
			l.ID = existing.ID
			l.CreatedAt = existing.CreatedAt
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		} else if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		// Unreachable after the balance precondition, kept as an invariant
		// check.
		if err := acct.TokenBalances.Debit(in.TokenIndex, in.CollateralAmount); err != nil {
			return err
		}
		acct.HasActiveLoan = true
		if err := r.Users.Save(ctx, acct); err != nil {
			return err
		}

		dto = loanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get reads one loan record by its derived id.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return loanDTO(l), nil
}
