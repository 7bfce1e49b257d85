package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"loanvault/internal/domain/lending"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const feedID = "feedfeedfeedfeedfeedfeedfeedfe12"

func validatorWith(u PriceUpdate) *Validator {
	m := NewManualFeedReader()
	m.Set(u)
	return NewValidator(m)
}

func TestFetchPrice_Valid(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	v := validatorWith(PriceUpdate{FeedID: feedID, Price: 2_456_000_000, Expo: -8, PublishTime: now.Unix() - 5})

	p, err := v.FetchPrice(context.Background(), feedID, 3600, now)
	if err != nil {
		t.Fatalf("FetchPrice: %v", err)
	}
	if p.Value != 2_456_000_000 || p.Expo != -8 {
		t.Fatalf("price = %+v", p)
	}
}

func TestFetchPrice_StalenessBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	const stale = 3600

	// exactly stale seconds old: accepted
	v := validatorWith(PriceUpdate{FeedID: feedID, Price: 100, Expo: 0, PublishTime: now.Unix() - stale})
	if _, err := v.FetchPrice(context.Background(), feedID, stale, now); err != nil {
		t.Fatalf("exactly-at-bound update rejected: %v", err)
	}

	// one second older: rejected
	v = validatorWith(PriceUpdate{FeedID: feedID, Price: 100, Expo: 0, PublishTime: now.Unix() - stale - 1})
	if _, err := v.FetchPrice(context.Background(), feedID, stale, now); !errors.Is(err, lending.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
}

func TestFetchPrice_FeedIDMismatch(t *testing.T) {
	now := time.Now()
	m := NewManualFeedReader()
	m.Set(PriceUpdate{FeedID: "otherotherotherotherotherother12", Price: 100, PublishTime: now.Unix()})
	// reader keyed by what was set; asking for feedID finds nothing
	v := NewValidator(m)
	if _, err := v.FetchPrice(context.Background(), feedID, 60, now); !errors.Is(err, lending.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
}

type fixedReader struct{ u PriceUpdate }

func (f fixedReader) LatestUpdate(context.Context, string) (PriceUpdate, error) { return f.u, nil }

func TestFetchPrice_ReaderServesWrongFeed(t *testing.T) {
	// A reader that answers with another feed's record must still be caught.
	now := time.Now()
	v := NewValidator(fixedReader{u: PriceUpdate{FeedID: "otherotherotherotherotherother12", Price: 100, PublishTime: now.Unix()}})
	if _, err := v.FetchPrice(context.Background(), feedID, 60, now); !errors.Is(err, lending.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
}

func TestFetchPrice_NonPositivePrice(t *testing.T) {
	now := time.Now()
	for _, price := range []int64{0, -5} {
		v := validatorWith(PriceUpdate{FeedID: feedID, Price: price, PublishTime: now.Unix()})
		if _, err := v.FetchPrice(context.Background(), feedID, 60, now); !errors.Is(err, lending.ErrInvalidPrice) {
			t.Fatalf("price %d: err = %v, want ErrInvalidPrice", price, err)
		}
	}
}

func TestUsdValue_AppliesExponent(t *testing.T) {
	// 400 units at 24.56 (price 2456, expo -2) = 9824
	v := UsdValue(400, Price{Value: 2456, Expo: -2})
	if v.FloatString(2) != "9824.00" {
		t.Fatalf("UsdValue = %s", v.FloatString(2))
	}
	// positive exponent scales up
	v = UsdValue(3, Price{Value: 7, Expo: 2})
	if v.FloatString(0) != "2100" {
		t.Fatalf("UsdValue = %s", v.FloatString(0))
	}
}

func TestRedisFeedReader_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	u := PriceUpdate{FeedID: feedID, Price: 123456, Expo: -4, PublishTime: time.Now().Unix()}
	if err := PublishUpdate(context.Background(), rdb, u, time.Minute); err != nil {
		t.Fatalf("PublishUpdate: %v", err)
	}

	r := NewRedisFeedReader(rdb)
	got, err := r.LatestUpdate(context.Background(), feedID)
	if err != nil {
		t.Fatalf("LatestUpdate: %v", err)
	}
	if got != u {
		t.Fatalf("update mismatch: %+v vs %+v", got, u)
	}
}

func TestRedisFeedReader_MissingAndMalformed(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := NewRedisFeedReader(rdb)
	if _, err := r.LatestUpdate(context.Background(), feedID); err == nil {
		t.Fatal("expected error for missing feed")
	}

	mr.Set(feedKeyPrefix+feedID, "{not json")
	if _, err := r.LatestUpdate(context.Background(), feedID); err == nil {
		t.Fatal("expected error for malformed update")
	}

	// and the validator reports it as an invalid price
	v := NewValidator(r)
	if _, err := v.FetchPrice(context.Background(), feedID, 60, time.Now()); !errors.Is(err, lending.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
}
