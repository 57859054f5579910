package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/internal/data/store"
	"ticket-ledger/internal/dto/request"
	"ticket-ledger/pkg/address"
)

// failingStore wraps an AccountStore and fails Commit once armed,
// after letting through a configured number of commits. Used to force
// the post-payment persistence fault.
type failingStore struct {
	store.AccountStore
	armed        bool
	passCommits  int
	failErr      error
	commitsSoFar int
}

func (f *failingStore) Commit(ctx context.Context, ops ...store.Op) error {
	if f.armed {
		f.commitsSoFar++
		if f.commitsSoFar > f.passCommits {
			return f.failErr
		}
	}
	return f.AccountStore.Commit(ctx, ops...)
}

type saleFixture struct {
	env    *testEnv
	owner  address.Address
	buyer  address.Address
	mint   address.Address
	payout address.Address
}

// setupSale builds the standard fixture: venue "123" owned by A with
// mint M, tier "basic" priced 100 with supply 10, buyer B funded 1000.
func setupSale(t *testing.T, s store.AccountStore) *saleFixture {
	t.Helper()

	env := newTestEnv(t, s)
	ctx := context.Background()
	owner := identity(t, "owner-a")
	buyer := identity(t, "buyer-b")
	mint := identity(t, "mint-m")
	payout := env.fundedOwner(t, mint, owner)

	_, err := env.service.Venue.CreateVenue(ctx, owner, &request.CreateVenueRequest{
		Identifier:    "123",
		PaymentMint:   mint.String(),
		PayoutAccount: payout.String(),
	})
	require.NoError(t, err)

	_, err = env.service.Venue.AddTier(ctx, owner, "123", &request.AddTierRequest{
		Name:        "basic",
		UnitPrice:   100,
		TotalSupply: 10,
	})
	require.NoError(t, err)

	require.NoError(t, env.ledger.CreateAccount(ctx, mint, buyer))
	require.NoError(t, env.ledger.MintTo(ctx, mint, buyer, 1000))

	return &saleFixture{env: env, owner: owner, buyer: buyer, mint: mint, payout: payout}
}

func (f *saleFixture) balances(t *testing.T) (buyer, owner uint64) {
	t.Helper()
	ctx := context.Background()

	buyerBal, err := f.env.ledger.Balance(ctx, f.mint, f.buyer)
	require.NoError(t, err)
	ownerBal, err := f.env.ledger.Balance(ctx, f.mint, f.owner)
	require.NoError(t, err)
	return buyerBal, ownerBal
}

func TestPurchaseScenario(t *testing.T) {
	f := setupSale(t, store.NewMemoryStore())
	ctx := context.Background()

	resp, err := f.env.service.Purchase.Purchase(ctx, f.buyer, &request.PurchaseRequest{
		VenueID:  "123",
		TierName: "basic",
		Quantity: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(800), resp.TotalCost)
	assert.Equal(t, uint64(2), resp.Remaining)
	assert.Equal(t, uint64(8), resp.Receipt.Holdings["basic"])
	assert.NotEmpty(t, resp.TransferRef)

	buyerBal, ownerBal := f.balances(t)
	assert.Equal(t, uint64(200), buyerBal, "buyer debited 800")
	assert.Equal(t, uint64(800), ownerBal, "owner credited 800")

	venue, err := f.env.service.Venue.FetchVenue(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), venue.Tiers[0].RemainingSupply)

	// Oversell: only 2 left, asking 3 must fail and change nothing.
	_, err = f.env.service.Purchase.Purchase(ctx, f.buyer, &request.PurchaseRequest{
		VenueID:  "123",
		TierName: "basic",
		Quantity: 3,
	})
	assert.ErrorIs(t, err, entity.ErrInsufficientSupply)

	buyerBal, ownerBal = f.balances(t)
	assert.Equal(t, uint64(200), buyerBal)
	assert.Equal(t, uint64(800), ownerBal)

	venue, err = f.env.service.Venue.FetchVenue(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), venue.Tiers[0].RemainingSupply)

	receipt, err := f.env.service.Purchase.FetchReceipt(ctx, "123", f.buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), receipt.Holdings["basic"])
}

func TestPurchaseAccumulatesHoldings(t *testing.T) {
	f := setupSale(t, store.NewMemoryStore())
	ctx := context.Background()

	for _, qty := range []uint64{3, 4} {
		_, err := f.env.service.Purchase.Purchase(ctx, f.buyer, &request.PurchaseRequest{
			VenueID:  "123",
			TierName: "basic",
			Quantity: qty,
		})
		require.NoError(t, err)
	}

	venue, err := f.env.service.Venue.FetchVenue(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), venue.Tiers[0].RemainingSupply, "10 - 3 - 4")

	receipt, err := f.env.service.Purchase.FetchReceipt(ctx, "123", f.buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), receipt.Holdings["basic"])
}

func TestPurchaseUnknownTier(t *testing.T) {
	f := setupSale(t, store.NewMemoryStore())

	_, err := f.env.service.Purchase.Purchase(context.Background(), f.buyer, &request.PurchaseRequest{
		VenueID:  "123",
		TierName: "platinum",
		Quantity: 1,
	})
	assert.ErrorIs(t, err, entity.ErrTierNotFound)
	assert.NotErrorIs(t, err, entity.ErrInsufficientSupply, "missing tier and sold-out tier are distinct failures")
}

func TestPurchaseUnknownVenue(t *testing.T) {
	f := setupSale(t, store.NewMemoryStore())

	_, err := f.env.service.Purchase.Purchase(context.Background(), f.buyer, &request.PurchaseRequest{
		VenueID:  "999",
		TierName: "basic",
		Quantity: 1,
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPurchaseInsufficientFundsLeavesStateUntouched(t *testing.T) {
	f := setupSale(t, store.NewMemoryStore())
	ctx := context.Background()

	// Buyer holds 1000; 10 tickets cost exactly 1000, so drain first.
	_, err := f.env.service.Purchase.Purchase(ctx, f.buyer, &request.PurchaseRequest{
		VenueID:  "123",
		TierName: "basic",
		Quantity: 9,
	})
	require.NoError(t, err)

	// 100 left in the wallet, 1 ticket costs 100: fine. But first, a
	// purchase that fails at payment must not touch supply or receipt.
	require.NoError(t, f.env.ledger.CreateAccount(ctx, f.mint, identity(t, "drain")))
	ref, err := f.env.ledger.Transfer(ctx, f.mint, f.buyer, identity(t, "drain"), 50, f.buyer)
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	_, err = f.env.service.Purchase.Purchase(ctx, f.buyer, &request.PurchaseRequest{
		VenueID:  "123",
		TierName: "basic",
		Quantity: 1,
	})
	assert.ErrorIs(t, err, entity.ErrPaymentFailed)

	venue, err := f.env.service.Venue.FetchVenue(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), venue.Tiers[0].RemainingSupply, "supply unchanged by failed payment")

	receipt, err := f.env.service.Purchase.FetchReceipt(ctx, "123", f.buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), receipt.Holdings["basic"])
}

func TestPurchaseOverflowRejected(t *testing.T) {
	f := setupSale(t, store.NewMemoryStore())
	ctx := context.Background()
	owner := f.owner

	// A tier whose price makes quantity*price overflow uint64.
	_, err := f.env.service.Venue.AddTier(ctx, owner, "123", &request.AddTierRequest{
		Name:        "galactic",
		UnitPrice:   math.MaxUint64 / 2,
		TotalSupply: 10,
	})
	require.NoError(t, err)

	_, err = f.env.service.Purchase.Purchase(ctx, f.buyer, &request.PurchaseRequest{
		VenueID:  "123",
		TierName: "galactic",
		Quantity: 3,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestPurchaseFreeTierSkipsPayment(t *testing.T) {
	f := setupSale(t, store.NewMemoryStore())
	ctx := context.Background()

	_, err := f.env.service.Venue.AddTier(ctx, f.owner, "123", &request.AddTierRequest{
		Name:        "guestlist",
		UnitPrice:   0,
		TotalSupply: 5,
	})
	require.NoError(t, err)

	resp, err := f.env.service.Purchase.Purchase(ctx, f.buyer, &request.PurchaseRequest{
		VenueID:  "123",
		TierName: "guestlist",
		Quantity: 2,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.TransferRef)
	assert.Equal(t, uint64(0), resp.TotalCost)
	assert.Equal(t, uint64(2), resp.Receipt.Holdings["guestlist"])

	buyerBal, ownerBal := f.balances(t)
	assert.Equal(t, uint64(1000), buyerBal)
	assert.Equal(t, uint64(0), ownerBal)
}

func TestFetchReceiptBeforeFirstPurchase(t *testing.T) {
	f := setupSale(t, store.NewMemoryStore())

	_, err := f.env.service.Purchase.FetchReceipt(context.Background(), "123", f.buyer)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPurchaseConsistencyFault(t *testing.T) {
	inner := store.NewMemoryStore()
	fs := &failingStore{
		AccountStore: inner,
		failErr:      errors.New("disk on fire"),
	}
	f := setupSale(t, fs)
	ctx := context.Background()

	// Arm after setup: the purchase's transfer commit passes, the
	// venue+receipt commit fails.
	fs.armed = true
	fs.passCommits = 1

	_, err := f.env.service.Purchase.Purchase(ctx, f.buyer, &request.PurchaseRequest{
		VenueID:  "123",
		TierName: "basic",
		Quantity: 8,
	})
	require.Error(t, err)

	var fault *entity.ConsistencyFaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, f.buyer, fault.Buyer)
	assert.Equal(t, "basic", fault.Tier)
	assert.Equal(t, uint64(8), fault.Quantity)
	assert.NotEmpty(t, fault.TransferRef, "reconciliation needs the transfer reference")

	// Payment went through even though the state write failed.
	buyerBal, ownerBal := f.balances(t)
	assert.Equal(t, uint64(200), buyerBal)
	assert.Equal(t, uint64(800), ownerBal)
}
