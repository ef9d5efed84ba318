package roster

import "sync"

// Tx exposes the record operations available inside one store transaction.
// Every operation is O(1); no method ever scans.
type Tx interface {
	// Window retrieves a window record, or ErrWindowNotFound.
	Window(id uint32) (*Window, error)

	// CreateWindow stores a new window record, or ErrWindowExists.
	CreateWindow(w *Window) error

	// PutWindow overwrites an existing window record, or ErrWindowNotFound.
	PutWindow(w *Window) error

	// Bucket retrieves the per-(window, denom) record. Absent buckets
	// read as the zero value.
	Bucket(windowID uint32, denom uint8) (*BucketState, error)

	// PutBucket stores the per-(window, denom) record.
	PutBucket(windowID uint32, denom uint8, b *BucketState) error

	// SubBucket retrieves sub-bucket aggregates. Absent sub-buckets read
	// as the zero value.
	SubBucket(windowID uint32, denom, sub uint8) (*SubBucketStats, error)

	// PutSubBucket stores sub-bucket aggregates.
	PutSubBucket(windowID uint32, denom, sub uint8, s *SubBucketStats) error

	// Entry retrieves one entry by position, or ErrEntryNotFound.
	Entry(windowID uint32, denom, sub uint8, index uint32) (*Entry, error)

	// PutEntry stores an entry at its position.
	PutEntry(e *Entry) error

	// OwnerRef retrieves the per-(owner, window) index record, or
	// ErrOwnerNotFound.
	OwnerRef(owner Address, windowID uint32) (*OwnerRef, error)

	// PutOwnerRef stores the per-(owner, window) index record.
	PutOwnerRef(owner Address, windowID uint32, ref *OwnerRef) error
}

// Store is the engine's persistence boundary. Update runs fn in a writable
// transaction whose effects become visible atomically when fn returns nil;
// View runs fn read-only. Invocations are strictly sequential per the
// engine's scheduling model, so stores only need to serialize transactions,
// never to arbitrate concurrent writers.
type Store interface {
	View(fn func(Tx) error) error
	Update(fn func(Tx) error) error
	Close() error
}

// ---------------------------------------------------------------------------
// MemStore: in-memory Store for tests and ephemeral deployments.
// ---------------------------------------------------------------------------

type bucketKey struct {
	window uint32
	denom  uint8
}

type subKey struct {
	window uint32
	denom  uint8
	sub    uint8
}

type entryKey struct {
	window uint32
	denom  uint8
	sub    uint8
	index  uint32
}

type ownerKey struct {
	owner  Address
	window uint32
}

// MemStore keeps all records in maps. Reads return copies so callers can
// mutate freely before committing with a Put.
type MemStore struct {
	mu      sync.RWMutex
	windows map[uint32]Window
	buckets map[bucketKey]BucketState
	subs    map[subKey]SubBucketStats
	entries map[entryKey]Entry
	owners  map[ownerKey]OwnerRef
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		windows: make(map[uint32]Window),
		buckets: make(map[bucketKey]BucketState),
		subs:    make(map[subKey]SubBucketStats),
		entries: make(map[entryKey]Entry),
		owners:  make(map[ownerKey]OwnerRef),
	}
}

// View runs fn read-only.
func (s *MemStore) View(fn func(Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memTx{store: s})
}

// Update runs fn with write access. MemStore does not roll back on error;
// callers follow the validate-then-mutate discipline the engine uses, so a
// failed closure has not written anything.
func (s *MemStore) Update(fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memTx{store: s})
}

// Close releases nothing; it exists to satisfy Store.
func (s *MemStore) Close() error { return nil }

type memTx struct {
	store *MemStore
}

func (t *memTx) Window(id uint32) (*Window, error) {
	w, ok := t.store.windows[id]
	if !ok {
		return nil, ErrWindowNotFound
	}
	if w.Round != nil {
		round := *w.Round
		w.Round = &round
	}
	return &w, nil
}

func (t *memTx) CreateWindow(w *Window) error {
	if _, ok := t.store.windows[w.ID]; ok {
		return ErrWindowExists
	}
	t.putWindow(w)
	return nil
}

func (t *memTx) PutWindow(w *Window) error {
	if _, ok := t.store.windows[w.ID]; !ok {
		return ErrWindowNotFound
	}
	t.putWindow(w)
	return nil
}

func (t *memTx) putWindow(w *Window) {
	cp := *w
	if w.Round != nil {
		round := *w.Round
		cp.Round = &round
	}
	t.store.windows[w.ID] = cp
}

func (t *memTx) Bucket(windowID uint32, denom uint8) (*BucketState, error) {
	b := t.store.buckets[bucketKey{windowID, denom}]
	return &b, nil
}

func (t *memTx) PutBucket(windowID uint32, denom uint8, b *BucketState) error {
	t.store.buckets[bucketKey{windowID, denom}] = *b
	return nil
}

func (t *memTx) SubBucket(windowID uint32, denom, sub uint8) (*SubBucketStats, error) {
	st := t.store.subs[subKey{windowID, denom, sub}]
	return &st, nil
}

func (t *memTx) PutSubBucket(windowID uint32, denom, sub uint8, st *SubBucketStats) error {
	t.store.subs[subKey{windowID, denom, sub}] = *st
	return nil
}

func (t *memTx) Entry(windowID uint32, denom, sub uint8, index uint32) (*Entry, error) {
	e, ok := t.store.entries[entryKey{windowID, denom, sub, index}]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return &e, nil
}

func (t *memTx) PutEntry(e *Entry) error {
	t.store.entries[entryKey{e.WindowID, e.Denom, e.SubBucket, e.Index}] = *e
	return nil
}

func (t *memTx) OwnerRef(owner Address, windowID uint32) (*OwnerRef, error) {
	ref, ok := t.store.owners[ownerKey{owner, windowID}]
	if !ok {
		return nil, ErrOwnerNotFound
	}
	return &ref, nil
}

func (t *memTx) PutOwnerRef(owner Address, windowID uint32, ref *OwnerRef) error {
	t.store.owners[ownerKey{owner, windowID}] = *ref
	return nil
}
