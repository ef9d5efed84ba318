package roster

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openStores returns one store of each implementation so behavioral tests
// run against both.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	bolt, err := OpenBoltStore(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })

	return map[string]Store{
		"mem":  NewMemStore(),
		"bolt": bolt,
	}
}

func TestStore_WindowLifecycle(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.View(func(tx Tx) error {
				_, err := tx.Window(1)
				return err
			})
			assert.ErrorIs(t, err, ErrWindowNotFound)

			err = s.Update(func(tx Tx) error {
				return tx.PutWindow(&Window{ID: 1})
			})
			assert.ErrorIs(t, err, ErrWindowNotFound, "PutWindow must not create")

			newOpenWindow(t, s, 1)

			err = s.Update(func(tx Tx) error {
				return tx.CreateWindow(&Window{ID: 1, State: StateOpen})
			})
			assert.ErrorIs(t, err, ErrWindowExists)

			err = s.Update(func(tx Tx) error {
				w, err := tx.Window(1)
				if err != nil {
					return err
				}
				w.State = StateSelecting
				w.PoolAmount = 777
				return tx.PutWindow(w)
			})
			require.NoError(t, err)

			err = s.View(func(tx Tx) error {
				w, err := tx.Window(1)
				require.NoError(t, err)
				assert.Equal(t, StateSelecting, w.State)
				assert.Equal(t, uint64(777), w.PoolAmount)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestStore_ZeroValueReads(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.View(func(tx Tx) error {
				b, err := tx.Bucket(5, 9)
				require.NoError(t, err)
				assert.Equal(t, &BucketState{}, b)

				st, err := tx.SubBucket(5, 9, 2)
				require.NoError(t, err)
				assert.Equal(t, &SubBucketStats{}, st)

				_, err = tx.Entry(5, 9, 2, 0)
				assert.ErrorIs(t, err, ErrEntryNotFound)

				_, err = tx.OwnerRef(makeOwner(0x11), 5)
				assert.ErrorIs(t, err, ErrOwnerNotFound)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			newOpenWindow(t, s, 1)

			// Mutating a loaded record without Put must not change the store.
			err := s.Update(func(tx Tx) error {
				w, err := tx.Window(1)
				if err != nil {
					return err
				}
				w.PoolAmount = 123456
				return nil
			})
			require.NoError(t, err)

			err = s.View(func(tx Tx) error {
				w, err := tx.Window(1)
				require.NoError(t, err)
				assert.Equal(t, uint64(0), w.PoolAmount)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	newOpenWindow(t, s, 4)
	_, err = register(t, s, 4, makeOwner(0x42), 500, 8)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	err = s.View(func(tx Tx) error {
		w, err := tx.Window(4)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), w.EntryCount)

		ref, err := tx.OwnerRef(makeOwner(0x42), 4)
		require.NoError(t, err)

		e, err := tx.Entry(4, ref.Denom, ref.SubBucket, ref.Index)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), e.Weight)
		return nil
	})
	require.NoError(t, err)
}

func TestBoltStore_UpdateRollsBackOnError(t *testing.T) {
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	defer s.Close()

	newOpenWindow(t, s, 1)

	boom := assert.AnError
	err = s.Update(func(tx Tx) error {
		w, err := tx.Window(1)
		if err != nil {
			return err
		}
		w.PoolAmount = 999
		if err := tx.PutWindow(w); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = s.View(func(tx Tx) error {
		w, err := tx.Window(1)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), w.PoolAmount, "failed transaction must not commit")
		return nil
	})
	require.NoError(t, err)
}
