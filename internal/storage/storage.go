// Package storage persists parsed quads. A small key-value abstraction
// with logical tables fronts BadgerDB; QuadStore builds the RDF layer on
// top of it using the fixed-size term encoding.
package storage

import "errors"

var (
	ErrNotFound      = errors.New("key not found")
	ErrTransactionRO = errors.New("transaction is read-only")
)

// Storage is the underlying key-value store.
type Storage interface {
	// Begin starts a new transaction.
	Begin(writable bool) (Transaction, error)

	// Close closes the storage.
	Close() error

	// Sync flushes writes to disk.
	Sync() error
}

// Transaction is a database transaction with snapshot isolation.
type Transaction interface {
	Get(table Table, key []byte) ([]byte, error)
	Set(table Table, key, value []byte) error
	Delete(table Table, key []byte) error

	// Scan iterates over a key range [start, end). A nil start begins at
	// the first key, a nil end scans to the last.
	Scan(table Table, start, end []byte) (Iterator, error)

	Commit() error
	Rollback() error
}

// Iterator iterates over key-value pairs.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Close() error
}

// Table is a logical table in the storage, encoded as a key prefix.
type Table byte

const (
	// hash -> lookup string
	TableID2Str Table = iota

	// quad indexes
	TableSPOG
	TableGSPO

	// named graph labels
	TableGraphs

	TableCount
)

func (t Table) String() string {
	switch t {
	case TableID2Str:
		return "id2str"
	case TableSPOG:
		return "spog"
	case TableGSPO:
		return "gspo"
	case TableGraphs:
		return "graphs"
	default:
		return "unknown"
	}
}

// TablePrefix returns the key prefix that namespaces a table.
func TablePrefix(table Table) []byte {
	return []byte{byte(table)}
}

// PrefixKey prepends the table prefix to a key.
func PrefixKey(table Table, key []byte) []byte {
	prefix := TablePrefix(table)
	result := make([]byte, len(prefix)+len(key))
	copy(result, prefix)
	copy(result[len(prefix):], key)
	return result
}
