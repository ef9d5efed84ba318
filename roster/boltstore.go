package roster

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketWindows    = []byte("windows")
	bucketBuckets    = []byte("buckets")
	bucketSubBuckets = []byte("sub_buckets")
	bucketEntries    = []byte("entries")
	bucketOwnerIndex = []byte("owner_index")
)

// BoltStore persists engine state in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("roster: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("roster: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		names := [][]byte{bucketWindows, bucketBuckets, bucketSubBuckets, bucketEntries, bucketOwnerIndex}
		for _, name := range names {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("roster: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// View runs fn in a read-only bolt transaction.
func (s *BoltStore) View(fn func(Tx) error) error {
	return s.db.View(func(btx *bbolt.Tx) error {
		return fn(&boltTx{tx: btx})
	})
}

// Update runs fn in a writable bolt transaction; all writes commit
// atomically when fn returns nil and roll back otherwise.
func (s *BoltStore) Update(fn func(Tx) error) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		return fn(&boltTx{tx: btx})
	})
}

// Keys. Composite keys are big-endian so lexicographic bolt order matches
// the engine's (window, denom, sub, index) processing order.

func windowKey(id uint32) []byte {
	k := make([]byte, 4)
	binary.BigEndian.PutUint32(k, id)
	return k
}

func bucketStateKey(windowID uint32, denom uint8) []byte {
	k := make([]byte, 5)
	binary.BigEndian.PutUint32(k[0:4], windowID)
	k[4] = denom
	return k
}

func subBucketKey(windowID uint32, denom, sub uint8) []byte {
	k := make([]byte, 6)
	binary.BigEndian.PutUint32(k[0:4], windowID)
	k[4] = denom
	k[5] = sub
	return k
}

func entryStoreKey(windowID uint32, denom, sub uint8, index uint32) []byte {
	k := make([]byte, 10)
	binary.BigEndian.PutUint32(k[0:4], windowID)
	k[4] = denom
	k[5] = sub
	binary.BigEndian.PutUint32(k[6:10], index)
	return k
}

func ownerIndexKey(owner Address, windowID uint32) []byte {
	k := make([]byte, 24)
	copy(k[0:20], owner[:])
	binary.BigEndian.PutUint32(k[20:24], windowID)
	return k
}

type boltTx struct {
	tx *bbolt.Tx
}

func (t *boltTx) Window(id uint32) (*Window, error) {
	data := t.tx.Bucket(bucketWindows).Get(windowKey(id))
	if data == nil {
		return nil, ErrWindowNotFound
	}
	return decodeWindow(data)
}

func (t *boltTx) CreateWindow(w *Window) error {
	b := t.tx.Bucket(bucketWindows)
	key := windowKey(w.ID)
	if b.Get(key) != nil {
		return ErrWindowExists
	}
	if err := b.Put(key, encodeWindow(w)); err != nil {
		return fmt.Errorf("boltstore: create window: %w", err)
	}
	return nil
}

func (t *boltTx) PutWindow(w *Window) error {
	b := t.tx.Bucket(bucketWindows)
	key := windowKey(w.ID)
	if b.Get(key) == nil {
		return ErrWindowNotFound
	}
	if err := b.Put(key, encodeWindow(w)); err != nil {
		return fmt.Errorf("boltstore: put window: %w", err)
	}
	return nil
}

func (t *boltTx) Bucket(windowID uint32, denom uint8) (*BucketState, error) {
	data := t.tx.Bucket(bucketBuckets).Get(bucketStateKey(windowID, denom))
	if data == nil {
		return &BucketState{}, nil
	}
	return decodeBucket(data)
}

func (t *boltTx) PutBucket(windowID uint32, denom uint8, b *BucketState) error {
	err := t.tx.Bucket(bucketBuckets).Put(bucketStateKey(windowID, denom), encodeBucket(b))
	if err != nil {
		return fmt.Errorf("boltstore: put bucket state: %w", err)
	}
	return nil
}

func (t *boltTx) SubBucket(windowID uint32, denom, sub uint8) (*SubBucketStats, error) {
	data := t.tx.Bucket(bucketSubBuckets).Get(subBucketKey(windowID, denom, sub))
	if data == nil {
		return &SubBucketStats{}, nil
	}
	return decodeSubBucket(data)
}

func (t *boltTx) PutSubBucket(windowID uint32, denom, sub uint8, s *SubBucketStats) error {
	err := t.tx.Bucket(bucketSubBuckets).Put(subBucketKey(windowID, denom, sub), encodeSubBucket(s))
	if err != nil {
		return fmt.Errorf("boltstore: put sub-bucket stats: %w", err)
	}
	return nil
}

func (t *boltTx) Entry(windowID uint32, denom, sub uint8, index uint32) (*Entry, error) {
	data := t.tx.Bucket(bucketEntries).Get(entryStoreKey(windowID, denom, sub, index))
	if data == nil {
		return nil, ErrEntryNotFound
	}
	return decodeEntry(data)
}

func (t *boltTx) PutEntry(e *Entry) error {
	key := entryStoreKey(e.WindowID, e.Denom, e.SubBucket, e.Index)
	if err := t.tx.Bucket(bucketEntries).Put(key, encodeEntry(e)); err != nil {
		return fmt.Errorf("boltstore: put entry: %w", err)
	}
	return nil
}

func (t *boltTx) OwnerRef(owner Address, windowID uint32) (*OwnerRef, error) {
	data := t.tx.Bucket(bucketOwnerIndex).Get(ownerIndexKey(owner, windowID))
	if data == nil {
		return nil, ErrOwnerNotFound
	}
	return decodeOwnerRef(data)
}

func (t *boltTx) PutOwnerRef(owner Address, windowID uint32, ref *OwnerRef) error {
	err := t.tx.Bucket(bucketOwnerIndex).Put(ownerIndexKey(owner, windowID), encodeOwnerRef(ref))
	if err != nil {
		return fmt.Errorf("boltstore: put owner index: %w", err)
	}
	return nil
}
