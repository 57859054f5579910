package store

import (
	"context"
	"testing"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/pkg/address"
)

func openBadger(t *testing.T) AccountStore {
	t.Helper()

	opts := badgerdb.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badgerdb.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewBadgerStore(db, zap.NewNop())
}

// Both drivers must satisfy the same contract; the postgres driver is
// excluded here because it needs a live database.
func eachStore(t *testing.T, run func(t *testing.T, s AccountStore)) {
	t.Run("memory", func(t *testing.T) {
		run(t, NewMemoryStore())
	})
	t.Run("badger", func(t *testing.T) {
		run(t, openBadger(t))
	})
}

func mustDerive(t *testing.T, namespace string, parts ...[]byte) address.Address {
	t.Helper()
	addr, err := address.Derive(namespace, parts...)
	require.NoError(t, err)
	return addr
}

func TestCreateReadWrite(t *testing.T) {
	eachStore(t, func(t *testing.T, s AccountStore) {
		ctx := context.Background()
		addr := mustDerive(t, "venue", []byte("a"))
		owner := mustDerive(t, "identity", []byte("owner"))

		exists, err := s.Exists(ctx, addr)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = s.Read(ctx, addr)
		assert.ErrorIs(t, err, entity.ErrNotFound)

		require.NoError(t, s.Create(ctx, addr, owner, []byte("v1")))

		exists, err = s.Exists(ctx, addr)
		require.NoError(t, err)
		assert.True(t, exists)

		acc, err := s.Read(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, owner, acc.Owner)
		assert.Equal(t, []byte("v1"), acc.Data)

		require.NoError(t, s.Write(ctx, addr, []byte("v2")))

		acc, err = s.Read(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), acc.Data)
		assert.Equal(t, owner, acc.Owner, "overwrite must keep the original owner")
	})
}

func TestCreateDuplicateRejected(t *testing.T) {
	eachStore(t, func(t *testing.T, s AccountStore) {
		ctx := context.Background()
		addr := mustDerive(t, "venue", []byte("dup"))
		owner := mustDerive(t, "identity", []byte("owner"))

		require.NoError(t, s.Create(ctx, addr, owner, []byte("x")))
		err := s.Create(ctx, addr, owner, []byte("y"))
		assert.ErrorIs(t, err, entity.ErrAlreadyExists)

		acc, err := s.Read(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), acc.Data, "failed create must not clobber")
	})
}

func TestWriteMissingRejected(t *testing.T) {
	eachStore(t, func(t *testing.T, s AccountStore) {
		err := s.Write(context.Background(), mustDerive(t, "venue", []byte("ghost")), []byte("x"))
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestCommitAllOrNothing(t *testing.T) {
	eachStore(t, func(t *testing.T, s AccountStore) {
		ctx := context.Background()
		owner := mustDerive(t, "identity", []byte("owner"))
		a := mustDerive(t, "venue", []byte("a"))
		b := mustDerive(t, "ticket", []byte("a"), []byte("buyer"))

		require.NoError(t, s.Create(ctx, a, owner, []byte("a1")))

		// Batch: update a + create b. Succeeds together.
		err := s.Commit(ctx,
			WriteOp(a, []byte("a2")),
			CreateOp(b, owner, []byte("b1")),
		)
		require.NoError(t, err)

		acc, err := s.Read(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, []byte("a2"), acc.Data)

		acc, err = s.Read(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []byte("b1"), acc.Data)

		// Batch with a failing op: nothing may change.
		err = s.Commit(ctx,
			WriteOp(a, []byte("a3")),
			CreateOp(b, owner, []byte("b2")), // b already exists
		)
		assert.ErrorIs(t, err, entity.ErrAlreadyExists)

		acc, err = s.Read(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, []byte("a2"), acc.Data, "failed batch must not apply partially")
	})
}

func TestCodecRoundTrip(t *testing.T) {
	venue := &entity.VenueRecord{
		Identifier: "123",
		Tiers: []entity.TicketTier{
			{Name: "basic", UnitPrice: 100, TotalSupply: 10, RemainingSupply: 10},
		},
	}

	raw, err := Marshal(venue)
	require.NoError(t, err)

	var decoded entity.VenueRecord
	require.NoError(t, Unmarshal(raw, &decoded))
	assert.Equal(t, *venue, decoded)

	// Deterministic mode: same record, same bytes.
	raw2, err := Marshal(venue)
	require.NoError(t, err)
	assert.Equal(t, raw, raw2)
}
