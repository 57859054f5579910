package database

import (
	"fmt"
	"os"

	badgerdb "github.com/dgraph-io/badger/v3"

	"ticket-ledger/pkg/utils"
)

// InitBadger opens the embedded BadgerDB used by the default account
// store driver. SyncWrites stays on: a purchase must be durable before
// the commit is reported back to the buyer.
func InitBadger(config utils.BadgerConfig) (*badgerdb.DB, error) {
	path := config.Path
	if path == "" {
		path = "data/badger"
	}

	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("create badger data dir %s: %w", path, err)
	}

	opts := badgerdb.DefaultOptions(path)
	opts.SyncWrites = true
	opts.Logger = nil

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}

	return db, nil
}
