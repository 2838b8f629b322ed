// Package journal stores runtime dictionary additions in a Badger
// database so they survive restarts.
//
// Entries are lexicon lines keyed by a monotonically increasing sequence
// number, so Replay returns them in append order.
package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

var (
	entryPrefix = []byte("item/")
	seqKey      = []byte("seq/item")
)

// seqBandwidth is the number of sequence values leased from the database
// at a time.
const seqBandwidth = 64

// ErrClosed is returned by operations on a closed journal.
var ErrClosed = errors.New("journal: closed")

// Journal is an append-only log of lexicon lines. It is safe for
// concurrent use.
type Journal struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger *slog.Logger
}

// Open opens the journal in directory path, creating it if needed. An
// empty path opens an in-memory journal that is lost on Close.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("journal: open %q: %w", path, err)
	}
	seq, err := db.GetSequence(seqKey, seqBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: sequence: %w", err)
	}
	logger.Debug("journal opened", slog.String("path", path), slog.Bool("in_memory", path == ""))
	return &Journal{db: db, seq: seq, logger: logger}, nil
}

// Append stores entry after all previous entries.
func (j *Journal) Append(entry string) error {
	if j.db.IsClosed() {
		return ErrClosed
	}
	n, err := j.seq.Next()
	if err != nil {
		return fmt.Errorf("journal: next sequence: %w", err)
	}
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(n), []byte(entry))
	})
	if err != nil {
		return fmt.Errorf("journal: append: %w", err)
	}
	j.logger.Debug("journal append", slog.Uint64("seq", n), slog.String("entry", entry))
	return nil
}

// Replay calls fn for every entry in append order. It stops at the first
// error fn returns and returns it.
func (j *Journal) Replay(fn func(entry string) error) error {
	if j.db.IsClosed() {
		return ErrClosed
	}
	return j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var entry string
			err := it.Item().Value(func(val []byte) error {
				entry = string(val)
				return nil
			})
			if err != nil {
				return fmt.Errorf("journal: read %x: %w", it.Item().Key(), err)
			}
			if err := fn(entry); err != nil {
				return err
			}
		}
		return nil
	})
}

// Len returns the number of stored entries.
func (j *Journal) Len() (int, error) {
	n := 0
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Close releases the sequence lease and closes the database.
func (j *Journal) Close() error {
	if j.db.IsClosed() {
		return nil
	}
	return errors.Join(j.seq.Release(), j.db.Close())
}

// entryKey is entryPrefix followed by n in big-endian order, so byte
// order equals append order.
func entryKey(n uint64) []byte {
	k := make([]byte, len(entryPrefix)+8)
	copy(k, entryPrefix)
	binary.BigEndian.PutUint64(k[len(entryPrefix):], n)
	return k
}
