package roster

import (
	"encoding/binary"
	"fmt"
)

// Fixed binary layouts for persisted records. All integers big-endian.
const (
	// id(4) + state(1) + seed(32) + pool(8) + entryCount(8) + selectCursor(1) +
	// settleDenom(1) + settleMember(4) + winningWeight(8) + remainingPool(8) +
	// remainingWeight(8) + roundSet(1) + roundPool(8) + roundWeight(8)
	windowRecordSize = 100

	// owner(20) + weight(8) + window(4) + denom(1) + sub(1) + index(4)
	entryRecordSize = 38

	// count(4) + weightSum(8) + topOwner(20) + topWeight(8)
	subBucketRecordSize = 40

	// entryCount(4) + winningSub(1) + winnerSet(1)
	bucketRecordSize = 6

	// denom(1) + sub(1) + index(4) + claimed(1)
	ownerRefRecordSize = 7
)

func encodeBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// encodeWindow serializes a window record.
func encodeWindow(w *Window) []byte {
	buf := make([]byte, windowRecordSize)
	binary.BigEndian.PutUint32(buf[0:4], w.ID)
	buf[4] = byte(w.State)
	copy(buf[5:37], w.Seed[:])
	binary.BigEndian.PutUint64(buf[37:45], w.PoolAmount)
	binary.BigEndian.PutUint64(buf[45:53], w.EntryCount)
	buf[53] = w.SelectCursor
	buf[54] = w.SettleDenom
	binary.BigEndian.PutUint32(buf[55:59], w.SettleMember)
	binary.BigEndian.PutUint64(buf[59:67], w.WinningWeight)
	binary.BigEndian.PutUint64(buf[67:75], w.RemainingPool)
	binary.BigEndian.PutUint64(buf[75:83], w.RemainingWeight)
	buf[83] = encodeBool(w.Round != nil)
	if w.Round != nil {
		binary.BigEndian.PutUint64(buf[84:92], w.Round.PoolAmount)
		binary.BigEndian.PutUint64(buf[92:100], w.Round.TotalWinningWeight)
	}
	return buf
}

// decodeWindow deserializes a window record.
func decodeWindow(data []byte) (*Window, error) {
	if len(data) != windowRecordSize {
		return nil, fmt.Errorf("%w: window record expected %d bytes, got %d",
			ErrInvalidRecord, windowRecordSize, len(data))
	}
	w := &Window{}
	w.ID = binary.BigEndian.Uint32(data[0:4])
	w.State = WindowState(data[4])
	copy(w.Seed[:], data[5:37])
	w.PoolAmount = binary.BigEndian.Uint64(data[37:45])
	w.EntryCount = binary.BigEndian.Uint64(data[45:53])
	w.SelectCursor = data[53]
	w.SettleDenom = data[54]
	w.SettleMember = binary.BigEndian.Uint32(data[55:59])
	w.WinningWeight = binary.BigEndian.Uint64(data[59:67])
	w.RemainingPool = binary.BigEndian.Uint64(data[67:75])
	w.RemainingWeight = binary.BigEndian.Uint64(data[75:83])
	if data[83] != 0 {
		w.Round = &ClaimRound{
			PoolAmount:         binary.BigEndian.Uint64(data[84:92]),
			TotalWinningWeight: binary.BigEndian.Uint64(data[92:100]),
		}
	}
	return w, nil
}

// encodeEntry serializes an entry record.
func encodeEntry(e *Entry) []byte {
	buf := make([]byte, entryRecordSize)
	copy(buf[0:20], e.Owner[:])
	binary.BigEndian.PutUint64(buf[20:28], e.Weight)
	binary.BigEndian.PutUint32(buf[28:32], e.WindowID)
	buf[32] = e.Denom
	buf[33] = e.SubBucket
	binary.BigEndian.PutUint32(buf[34:38], e.Index)
	return buf
}

// decodeEntry deserializes an entry record.
func decodeEntry(data []byte) (*Entry, error) {
	if len(data) != entryRecordSize {
		return nil, fmt.Errorf("%w: entry record expected %d bytes, got %d",
			ErrInvalidRecord, entryRecordSize, len(data))
	}
	e := &Entry{}
	copy(e.Owner[:], data[0:20])
	e.Weight = binary.BigEndian.Uint64(data[20:28])
	e.WindowID = binary.BigEndian.Uint32(data[28:32])
	e.Denom = data[32]
	e.SubBucket = data[33]
	e.Index = binary.BigEndian.Uint32(data[34:38])
	return e, nil
}

// encodeSubBucket serializes sub-bucket aggregates.
func encodeSubBucket(s *SubBucketStats) []byte {
	buf := make([]byte, subBucketRecordSize)
	binary.BigEndian.PutUint32(buf[0:4], s.Count)
	binary.BigEndian.PutUint64(buf[4:12], s.WeightSum)
	copy(buf[12:32], s.TopOwner[:])
	binary.BigEndian.PutUint64(buf[32:40], s.TopWeight)
	return buf
}

// decodeSubBucket deserializes sub-bucket aggregates.
func decodeSubBucket(data []byte) (*SubBucketStats, error) {
	if len(data) != subBucketRecordSize {
		return nil, fmt.Errorf("%w: sub-bucket record expected %d bytes, got %d",
			ErrInvalidRecord, subBucketRecordSize, len(data))
	}
	s := &SubBucketStats{}
	s.Count = binary.BigEndian.Uint32(data[0:4])
	s.WeightSum = binary.BigEndian.Uint64(data[4:12])
	copy(s.TopOwner[:], data[12:32])
	s.TopWeight = binary.BigEndian.Uint64(data[32:40])
	return s, nil
}

// encodeBucket serializes a per-(window, denom) record.
func encodeBucket(b *BucketState) []byte {
	buf := make([]byte, bucketRecordSize)
	binary.BigEndian.PutUint32(buf[0:4], b.EntryCount)
	buf[4] = b.WinningSub
	buf[5] = encodeBool(b.WinnerSet)
	return buf
}

// decodeBucket deserializes a per-(window, denom) record.
func decodeBucket(data []byte) (*BucketState, error) {
	if len(data) != bucketRecordSize {
		return nil, fmt.Errorf("%w: bucket record expected %d bytes, got %d",
			ErrInvalidRecord, bucketRecordSize, len(data))
	}
	b := &BucketState{}
	b.EntryCount = binary.BigEndian.Uint32(data[0:4])
	b.WinningSub = data[4]
	b.WinnerSet = data[5] != 0
	return b, nil
}

// encodeOwnerRef serializes a per-(owner, window) index record.
func encodeOwnerRef(r *OwnerRef) []byte {
	buf := make([]byte, ownerRefRecordSize)
	buf[0] = r.Denom
	buf[1] = r.SubBucket
	binary.BigEndian.PutUint32(buf[2:6], r.Index)
	buf[6] = encodeBool(r.Claimed)
	return buf
}

// decodeOwnerRef deserializes a per-(owner, window) index record.
func decodeOwnerRef(data []byte) (*OwnerRef, error) {
	if len(data) != ownerRefRecordSize {
		return nil, fmt.Errorf("%w: owner index record expected %d bytes, got %d",
			ErrInvalidRecord, ownerRefRecordSize, len(data))
	}
	r := &OwnerRef{}
	r.Denom = data[0]
	r.SubBucket = data[1]
	r.Index = binary.BigEndian.Uint32(data[2:6])
	r.Claimed = data[6] != 0
	return r, nil
}
