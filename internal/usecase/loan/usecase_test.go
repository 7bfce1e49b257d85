package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "loanvault/internal/domain/lending"
	"loanvault/internal/domain/uow"
	"loanvault/internal/oracle"
	"loanvault/internal/testutil/lendingmock"
	"loanvault/internal/testutil/uowmock"
	"loanvault/pkg/id"

	"gorm.io/gorm"
)

const (
	borrower = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	vaultID  = "cccccccccccccccccccccccccccccccc"
	feedID   = "dddddddddddddddddddddddddddddddd"
)

func fixedNow() time.Time { return time.Unix(1_700_000_000, 0) }

// engineFixture wires a loan usecase over function-backed repos holding one
// funded user, one vault and the protocol config.
type engineFixture struct {
	uc      *Usecase
	account *domain.UserAccount
	loans   *lendingmock.LoanRepo
	saved   *domain.Loan
}

func newEngineFixture(t *testing.T, v *oracle.Validator) *engineFixture {
	t.Helper()
	f := &engineFixture{
		account: &domain.UserAccount{
			AccountID:     id.Derive32("user", borrower),
			Owner:         borrower,
			TokenBalances: domain.Balances{0, 0, 1000},
		},
	}
	users := &lendingmock.UserRepo{
		GetByOwnerForUpdateFn: func(_ context.Context, owner string) (*domain.UserAccount, error) {
			if owner != borrower {
				return nil, gorm.ErrRecordNotFound
			}
			return f.account, nil
		},
	}
	vaults := &lendingmock.VaultRepo{
		GetByVaultIDFn: func(_ context.Context, vid string) (*domain.CollateralVault, error) {
			if vid != vaultID {
				return nil, gorm.ErrRecordNotFound
			}
			return &domain.CollateralVault{VaultID: vaultID, PriceFeed: feedID}, nil
		},
	}
	configs := &lendingmock.ConfigRepo{
		GetFn: func(context.Context) (*domain.ProtocolConfig, error) {
			return &domain.ProtocolConfig{
				InterestRateBps:         300,
				LiquidationThresholdBps: 11_000,
				PriceStaleThreshold:     3600,
				Admin:                   "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			}, nil
		},
	}
	f.loans = &lendingmock.LoanRepo{
		GetByLoanIDForUpdateFn: func(context.Context, string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(_ context.Context, l *domain.Loan) error {
			f.saved = l
			return nil
		},
	}
	mockUoW := uowmock.Immediate(uow.Repos{Configs: configs, Vaults: vaults, Users: users, Loans: f.loans})
	f.uc = NewUsecase(f.loans, mockUoW, v)
	f.uc.now = fixedNow
	return f
}

func validInput() InitializeLoanInput {
	return InitializeLoanInput{
		Caller:           borrower,
		VaultID:          vaultID,
		LoanAmount:       1000,
		CollateralAmount: 400,
		Duration:         86_400,
		TokenIndex:       2,
	}
}

func TestInitializeLoan_Success(t *testing.T) {
	f := newEngineFixture(t, nil)

	dto, err := f.uc.InitializeLoan(context.Background(), validInput())
	if err != nil {
		t.Fatalf("InitializeLoan: %v", err)
	}
	if dto.LoanID != id.Derive32("loan", borrower, vaultID) {
		t.Fatalf("loan id = %q", dto.LoanID)
	}
	if !dto.IsActive {
		t.Fatal("loan should be active")
	}
	if dto.InterestRateBps != 300 {
		t.Fatalf("rate snapshot = %d, want 300", dto.InterestRateBps)
	}
	if dto.StartTimestamp != fixedNow().Unix() {
		t.Fatalf("start timestamp = %d", dto.StartTimestamp)
	}
	if f.account.TokenBalances[2] != 600 {
		t.Fatalf("balance after debit = %d, want 600", f.account.TokenBalances[2])
	}
	if !f.account.HasActiveLoan {
		t.Fatal("has_active_loan not set")
	}
}

func TestInitializeLoan_PreconditionOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*InitializeLoanInput)
		want   error
	}{
		{"zero loan amount", func(in *InitializeLoanInput) { in.LoanAmount = 0 }, domain.ErrInvalidAmount},
		{"zero collateral", func(in *InitializeLoanInput) { in.CollateralAmount = 0 }, domain.ErrInvalidAmount},
		{"zero duration", func(in *InitializeLoanInput) { in.Duration = 0 }, domain.ErrInvalidDuration},
		{"index out of range", func(in *InitializeLoanInput) { in.TokenIndex = 8 }, domain.ErrInvalidTokenIndex},
		// zero amount wins even when everything else is broken too:
		// amount checks precede collateral checks.
		{"zero amount with huge collateral", func(in *InitializeLoanInput) { in.LoanAmount = 0; in.CollateralAmount = 1_000_000 }, domain.ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newEngineFixture(t, nil)
			in := validInput()
			tc.mutate(&in)
			if _, err := f.uc.InitializeLoan(context.Background(), in); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if f.saved != nil {
				t.Fatal("loan must not be written on failed preconditions")
			}
			if f.account.TokenBalances[2] != 1000 {
				t.Fatalf("balance mutated: %d", f.account.TokenBalances[2])
			}
		})
	}
}

func TestInitializeLoan_UnknownCaller(t *testing.T) {
	f := newEngineFixture(t, nil)
	in := validInput()
	in.Caller = "ffffffffffffffffffffffffffffffff"
	if _, err := f.uc.InitializeLoan(context.Background(), in); !errors.Is(err, domain.ErrUnauthorizedAccess) {
		t.Fatalf("err = %v, want ErrUnauthorizedAccess", err)
	}
}

func TestInitializeLoan_InsufficientCollateral(t *testing.T) {
	f := newEngineFixture(t, nil)
	in := validInput()
	in.CollateralAmount = 1001
	if _, err := f.uc.InitializeLoan(context.Background(), in); !errors.Is(err, domain.ErrInsufficientCollateral) {
		t.Fatalf("err = %v, want ErrInsufficientCollateral", err)
	}
	if f.account.TokenBalances[2] != 1000 {
		t.Fatalf("balance mutated on failed origination: %d", f.account.TokenBalances[2])
	}
}

func TestInitializeLoan_RejectsActiveReorigination(t *testing.T) {
	f := newEngineFixture(t, nil)
	f.loans.GetByLoanIDForUpdateFn = func(context.Context, string) (*domain.Loan, error) {
		return &domain.Loan{LoanID: id.Derive32("loan", borrower, vaultID), IsActive: true}, nil
	}
	if _, err := f.uc.InitializeLoan(context.Background(), validInput()); !errors.Is(err, domain.ErrLoanAlreadyActive) {
		t.Fatalf("err = %v, want ErrLoanAlreadyActive", err)
	}
	if f.account.TokenBalances[2] != 1000 {
		t.Fatalf("balance mutated: %d", f.account.TokenBalances[2])
	}
}

func TestInitializeLoan_ReusesSettledRecord(t *testing.T) {
	f := newEngineFixture(t, nil)
	var savedInPlace *domain.Loan
	f.loans.GetByLoanIDForUpdateFn = func(context.Context, string) (*domain.Loan, error) {
		return &domain.Loan{ID: 7, LoanID: id.Derive32("loan", borrower, vaultID), IsActive: false}, nil
	}
	f.loans.SaveFn = func(_ context.Context, l *domain.Loan) error {
		savedInPlace = l
		return nil
	}
	f.loans.CreateFn = func(context.Context, *domain.Loan) error {
		t.Fatal("Create must not be called when a settled record exists")
		return nil
	}
	if _, err := f.uc.InitializeLoan(context.Background(), validInput()); err != nil {
		t.Fatalf("InitializeLoan: %v", err)
	}
	if savedInPlace == nil || savedInPlace.ID != 7 || !savedInPlace.IsActive {
		t.Fatalf("settled record not reused in place: %+v", savedInPlace)
	}
}

func TestInitializeLoan_OracleGate(t *testing.T) {
	reader := oracle.NewManualFeedReader()
	v := oracle.NewValidator(reader)

	// collateral 400 at price 1.00 => value 400; loan 1000 at threshold
	// 110% needs 1100. Insolvent.
	reader.Set(oracle.PriceUpdate{FeedID: feedID, Price: 100, Expo: -2, PublishTime: fixedNow().Unix()})
	f := newEngineFixture(t, v)
	if _, err := f.uc.InitializeLoan(context.Background(), validInput()); !errors.Is(err, domain.ErrInsufficientCollateral) {
		t.Fatalf("err = %v, want ErrInsufficientCollateral", err)
	}
	if f.account.TokenBalances[2] != 1000 {
		t.Fatalf("balance mutated on insolvent origination: %d", f.account.TokenBalances[2])
	}

	// price 3.00 => value 1200 >= 1100. Solvent.
	reader.Set(oracle.PriceUpdate{FeedID: feedID, Price: 300, Expo: -2, PublishTime: fixedNow().Unix()})
	f = newEngineFixture(t, v)
	if _, err := f.uc.InitializeLoan(context.Background(), validInput()); err != nil {
		t.Fatalf("solvent origination rejected: %v", err)
	}

	// stale price blocks origination entirely
	reader.Set(oracle.PriceUpdate{FeedID: feedID, Price: 300, Expo: -2, PublishTime: fixedNow().Unix() - 3601})
	f = newEngineFixture(t, v)
	if _, err := f.uc.InitializeLoan(context.Background(), validInput()); !errors.Is(err, domain.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
}
