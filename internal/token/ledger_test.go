package token

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/internal/data/repository"
	"ticket-ledger/internal/data/store"
	"ticket-ledger/pkg/address"
)

func newTestLedger(t *testing.T) Ledger {
	t.Helper()
	repo := repository.NewRepository(store.NewMemoryStore(), zap.NewNop())
	return NewLedger(repo.TokenAccount, zap.NewNop())
}

func ident(t *testing.T, name string) address.Address {
	t.Helper()
	addr, err := address.Derive("identity", []byte(name))
	require.NoError(t, err)
	return addr
}

func TestMintAndBalance(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	mint := ident(t, "mint")
	alice := ident(t, "alice")

	require.NoError(t, ledger.CreateAccount(ctx, mint, alice))
	require.NoError(t, ledger.MintTo(ctx, mint, alice, 1000))

	balance, err := ledger.Balance(ctx, mint, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), balance)
}

func TestCreateAccountDuplicate(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	mint := ident(t, "mint")
	alice := ident(t, "alice")

	require.NoError(t, ledger.CreateAccount(ctx, mint, alice))
	err := ledger.CreateAccount(ctx, mint, alice)
	assert.ErrorIs(t, err, entity.ErrAlreadyExists)
}

func TestTransferMovesBalance(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	mint := ident(t, "mint")
	alice := ident(t, "alice")
	bob := ident(t, "bob")

	require.NoError(t, ledger.CreateAccount(ctx, mint, alice))
	require.NoError(t, ledger.CreateAccount(ctx, mint, bob))
	require.NoError(t, ledger.MintTo(ctx, mint, alice, 1000))

	ref, err := ledger.Transfer(ctx, mint, alice, bob, 800, alice)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	aliceBal, err := ledger.Balance(ctx, mint, alice)
	require.NoError(t, err)
	bobBal, err := ledger.Balance(ctx, mint, bob)
	require.NoError(t, err)

	assert.Equal(t, uint64(200), aliceBal)
	assert.Equal(t, uint64(800), bobBal)
}

func TestTransferInsufficientFunds(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	mint := ident(t, "mint")
	alice := ident(t, "alice")
	bob := ident(t, "bob")

	require.NoError(t, ledger.CreateAccount(ctx, mint, alice))
	require.NoError(t, ledger.CreateAccount(ctx, mint, bob))
	require.NoError(t, ledger.MintTo(ctx, mint, alice, 100))

	_, err := ledger.Transfer(ctx, mint, alice, bob, 101, alice)
	assert.ErrorIs(t, err, entity.ErrPaymentFailed)

	// Neither balance may have moved.
	aliceBal, err := ledger.Balance(ctx, mint, alice)
	require.NoError(t, err)
	bobBal, err := ledger.Balance(ctx, mint, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), aliceBal)
	assert.Equal(t, uint64(0), bobBal)
}

func TestTransferWrongAuthority(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	mint := ident(t, "mint")
	alice := ident(t, "alice")
	bob := ident(t, "bob")
	mallory := ident(t, "mallory")

	require.NoError(t, ledger.CreateAccount(ctx, mint, alice))
	require.NoError(t, ledger.CreateAccount(ctx, mint, bob))
	require.NoError(t, ledger.MintTo(ctx, mint, alice, 100))

	_, err := ledger.Transfer(ctx, mint, alice, bob, 50, mallory)
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestTransferRejectsBadArguments(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	mint := ident(t, "mint")
	alice := ident(t, "alice")
	bob := ident(t, "bob")

	require.NoError(t, ledger.CreateAccount(ctx, mint, alice))
	require.NoError(t, ledger.CreateAccount(ctx, mint, bob))

	_, err := ledger.Transfer(ctx, mint, alice, bob, 0, alice)
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = ledger.Transfer(ctx, mint, alice, alice, 10, alice)
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)

	_, err = ledger.Transfer(ctx, mint, alice, bob, 10, alice)
	assert.ErrorIs(t, err, entity.ErrPaymentFailed, "empty account cannot pay")
}

func TestMintOverflowRejected(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	mint := ident(t, "mint")
	alice := ident(t, "alice")

	require.NoError(t, ledger.CreateAccount(ctx, mint, alice))
	require.NoError(t, ledger.MintTo(ctx, mint, alice, math.MaxUint64))

	err := ledger.MintTo(ctx, mint, alice, 1)
	assert.ErrorIs(t, err, entity.ErrInvalidArgument)
}
