package oracle

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"time"

	"loanvault/internal/domain/lending"
)

// PriceUpdate is the raw record published by the external oracle writer.
// Price is a fixed-point integer scaled by 10^Expo (Expo is usually negative,
// e.g. price=2456000000, expo=-8 means 24.56).
type PriceUpdate struct {
	FeedID      string `json:"feed_id"`
	Price       int64  `json:"price"`
	Expo        int32  `json:"expo"`
	Conf        uint64 `json:"conf"`
	PublishTime int64  `json:"publish_time"`
}

// Price is a validated, non-zero price with its fixed-point exponent.
type Price struct {
	Value uint64
	Expo  int32
}

// FeedReader fetches the latest raw update for one feed. Implementations are
// injected so tests can run against synthetic updates.
type FeedReader interface {
	LatestUpdate(ctx context.Context, feedID string) (PriceUpdate, error)
}

// Validator gates every value computation on feed identity, staleness and
// sign. It never mutates state.
type Validator struct {
	reader FeedReader
}

func NewValidator(r FeedReader) *Validator { return &Validator{reader: r} }

// FetchPrice validates the latest update for feedID. The expected feed id
// comes from the vault record, not a compiled-in constant. staleSeconds is
// the protocol's staleness bound; an update exactly that old is still
// accepted, one second older is not.
func (v *Validator) FetchPrice(ctx context.Context, feedID string, staleSeconds uint64, now time.Time) (Price, error) {
	u, err := v.reader.LatestUpdate(ctx, feedID)
	if err != nil {
		return Price{}, fmt.Errorf("%w: %v", lending.ErrInvalidPrice, err)
	}
	if u.FeedID != feedID {
		return Price{}, fmt.Errorf("%w: feed id mismatch (got %s, want %s)", lending.ErrInvalidPrice, u.FeedID, feedID)
	}
	age := now.Unix() - u.PublishTime
	if staleSeconds > math.MaxInt64 || age > int64(staleSeconds) {
		return Price{}, fmt.Errorf("%w: update is %d seconds old (bound %d)", lending.ErrInvalidPrice, age, staleSeconds)
	}
	if u.Price <= 0 {
		return Price{}, fmt.Errorf("%w: non-positive price %d", lending.ErrInvalidPrice, u.Price)
	}
	return Price{Value: uint64(u.Price), Expo: u.Expo}, nil
}

// UsdValue applies the exponent: amount * price * 10^expo, exact big.Rat.
func UsdValue(amount uint64, p Price) *big.Rat {
	v := new(big.Rat).SetInt(new(big.Int).Mul(
		new(big.Int).SetUint64(amount),
		new(big.Int).SetUint64(p.Value),
	))
	return v.Mul(v, expoScale(p.Expo))
}

func expoScale(expo int32) *big.Rat {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(expo))), nil)
	if expo < 0 {
		return new(big.Rat).SetFrac(big.NewInt(1), scale)
	}
	return new(big.Rat).SetInt(scale)
}

func abs32(n int32) int64 {
	if n < 0 {
		return -int64(n)
	}
	return int64(n)
}
