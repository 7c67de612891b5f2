package losslist

import (
	"github.com/google/btree"
	"github.com/sirupsen/logrus"

	"github.com/walkermi/srt/syncx"
)

var log = logrus.WithField("component", "losslist")

const noNode = -1

// rangeNode is one arena slot: a closed sequence range plus its
// neighbors in the sorted chain, addressed by integer index rather
// than pointer so the arena can be a flat preallocated slice.
type rangeNode struct {
	head, tail SeqNo
	prev, next int
}

// rangeKey orders arena slots by head in the secondary index. It uses
// plain uint32 ordering rather than Seqcmp, which agrees with modular
// order only while the live heads do not straddle the wrap at zero.
// locateStart therefore checks the index's answer with Seqcmp and
// falls back to the chain head when it does not precede lo. The chain
// walk that does the actual merge decisions always uses Seqcmp; this
// index only narrows the starting point.
type rangeKey struct {
	head SeqNo
	idx  int
}

func lessRangeKey(a, b rangeKey) bool {
	if a.head != b.head {
		return a.head < b.head
	}
	return a.idx < b.idx
}

// SndLossList is the sender loss list: a bounded set of disjoint
// closed sequence ranges pending retransmission. All operations lock
// the list's own mutex to mutate the arena, then release it before
// reporting to the Recorder: the mutex is always the outermost SLL
// lock, and no caller-supplied code runs from under it.
type SndLossList struct {
	mu syncx.Mutex

	arena []rangeNode
	free  []int
	index *btree.BTreeG[rangeKey]

	headIdx       int
	lastInsertIdx int
	length        int
	capacity      int

	rec Recorder
}

// NewSndLossList allocates a loss list with fixed storage for up to
// capacity outstanding sequence numbers. rec may be nil.
func NewSndLossList(capacity int, rec Recorder) *SndLossList {
	if rec == nil {
		rec = nopRecorder{}
	}
	l := &SndLossList{
		arena:         make([]rangeNode, capacity),
		free:          make([]int, capacity),
		index:         btree.NewG(32, lessRangeKey),
		headIdx:       noNode,
		lastInsertIdx: noNode,
		capacity:      capacity,
		rec:           rec,
	}
	for i := 0; i < capacity; i++ {
		l.free[i] = capacity - 1 - i
	}
	return l
}

func (l *SndLossList) allocNode(head, tail SeqNo) int {
	idx := l.free[len(l.free)-1]
	l.free = l.free[:len(l.free)-1]
	l.arena[idx] = rangeNode{head: head, tail: tail, prev: noNode, next: noNode}
	return idx
}

func (l *SndLossList) releaseNode(idx int) {
	l.free = append(l.free, idx)
}

func (l *SndLossList) indexInsert(idx int) {
	l.index.ReplaceOrInsert(rangeKey{head: l.arena[idx].head, idx: idx})
}

func (l *SndLossList) indexDelete(idx int) {
	l.index.Delete(rangeKey{head: l.arena[idx].head, idx: idx})
}

// floorIndex returns the arena index of the live node with the
// largest head <= seq under plain numeric order, or noNode if none.
func (l *SndLossList) floorIndex(seq SeqNo) int {
	found := noNode
	l.index.DescendLessOrEqual(rangeKey{head: seq, idx: 1<<31 - 1}, func(item rangeKey) bool {
		found = item.idx
		return false
	})
	return found
}

// locateStart returns a node to begin the merge scan at, guaranteed
// to be at or before the true insertion point for lo: every node
// strictly earlier in the chain is provably non-overlapping.
func (l *SndLossList) locateStart(lo SeqNo) int {
	if l.lastInsertIdx != noNode && Seqcmp(lo, l.arena[l.lastInsertIdx].head) >= 0 {
		return l.lastInsertIdx
	}
	if idx := l.floorIndex(lo); idx != noNode && Seqcmp(lo, l.arena[idx].head) >= 0 {
		return idx
	}
	return l.headIdx
}

// Insert records that [lo, hi] is lost. It returns the count of
// newly-added sequence numbers not already present; 0 if everything
// in the range was already recorded, or if honoring the insert would
// push the list's length above its capacity.
func (l *SndLossList) Insert(lo, hi SeqNo) int {
	if Seqcmp(lo, hi) > 0 {
		log.WithFields(logrus.Fields{"lo": lo, "hi": hi}).Warn("insert: lo does not precede hi, ignoring")
		return 0
	}

	lock := syncx.NewUniqueLock(&l.mu)
	defer lock.Unlock()

	if l.headIdx == noNode {
		count := rangeLen(lo, hi)
		if count > l.capacity {
			lock.Unlock()
			l.rec.ObserveCapacityExceeded()
			return 0
		}
		idx := l.allocNode(lo, hi)
		l.headIdx = idx
		l.lastInsertIdx = idx
		l.length = count
		l.indexInsert(idx)
		length := l.length
		lock.Unlock()
		l.rec.ObserveInserted(count)
		l.rec.ObserveLength(length)
		return count
	}

	startIdx := l.locateStart(lo)
	prevIdx := l.arena[startIdx].prev

	newLo, newHi := lo, hi
	removedSum := 0
	var removed []int

	curIdx := startIdx
	for curIdx != noNode {
		node := l.arena[curIdx]
		if Seqcmp(node.head, newHi.Add(1)) > 0 {
			break
		}
		if Seqcmp(node.tail, newLo.Add(-1)) < 0 {
			prevIdx = curIdx
			curIdx = node.next
			continue
		}
		if Seqcmp(node.head, newLo) < 0 {
			newLo = node.head
		}
		if Seqcmp(node.tail, newHi) > 0 {
			newHi = node.tail
		}
		removedSum += rangeLen(node.head, node.tail)
		removed = append(removed, curIdx)
		curIdx = node.next
	}

	delta := rangeLen(newLo, newHi) - removedSum
	newLength := l.length + delta
	if newLength > l.capacity {
		lock.Unlock()
		l.rec.ObserveCapacityExceeded()
		return 0
	}

	for _, idx := range removed {
		l.indexDelete(idx)
		l.releaseNode(idx)
	}

	mergedIdx := l.allocNode(newLo, newHi)
	l.arena[mergedIdx].prev = prevIdx
	l.arena[mergedIdx].next = curIdx
	if prevIdx == noNode {
		l.headIdx = mergedIdx
	} else {
		l.arena[prevIdx].next = mergedIdx
	}
	if curIdx != noNode {
		l.arena[curIdx].prev = mergedIdx
	}
	l.indexInsert(mergedIdx)
	l.lastInsertIdx = mergedIdx
	l.length = newLength
	length := l.length
	lock.Unlock()

	l.rec.ObserveInserted(delta)
	l.rec.ObserveLength(length)
	return delta
}

// PopLostSeq removes and returns the smallest sequence number in the
// list, or -1 if the list is empty.
func (l *SndLossList) PopLostSeq() int {
	lock := syncx.NewUniqueLock(&l.mu)
	defer lock.Unlock()

	if l.headIdx == noNode {
		return -1
	}

	idx := l.headIdx
	seq := l.arena[idx].head

	if l.arena[idx].head == l.arena[idx].tail {
		next := l.arena[idx].next
		l.indexDelete(idx)
		l.headIdx = next
		if next != noNode {
			l.arena[next].prev = noNode
		}
		if l.lastInsertIdx == idx {
			l.lastInsertIdx = l.headIdx
		}
		l.releaseNode(idx)
	} else {
		l.indexDelete(idx)
		l.arena[idx].head = l.arena[idx].head.Add(1)
		l.indexInsert(idx)
	}

	l.length--
	length := l.length
	lock.Unlock()

	l.rec.ObservePopped()
	l.rec.ObserveLength(length)
	return int(seq)
}

// Remove drops from the list every sequence number s with s <= seq in
// modular order. Ranges entirely past seq are left untouched, and a
// seq that falls behind every stored range (a modular-past value) is
// a no-op.
func (l *SndLossList) Remove(seq SeqNo) {
	lock := syncx.NewUniqueLock(&l.mu)
	defer lock.Unlock()

	idx := l.headIdx
	removedSum := 0
	for idx != noNode {
		node := l.arena[idx]
		if Seqcmp(node.head, seq) > 0 {
			break
		}
		if Seqcmp(node.tail, seq) <= 0 {
			next := node.next
			removedSum += rangeLen(node.head, node.tail)
			l.indexDelete(idx)
			l.headIdx = next
			if next != noNode {
				l.arena[next].prev = noNode
			}
			if l.lastInsertIdx == idx {
				l.lastInsertIdx = noNode
			}
			l.releaseNode(idx)
			idx = next
			continue
		}

		removedSum += rangeLen(node.head, seq)
		l.indexDelete(idx)
		l.arena[idx].head = seq.Add(1)
		l.indexInsert(idx)
		break
	}

	if removedSum == 0 {
		return
	}

	if l.lastInsertIdx == noNode && l.headIdx != noNode {
		l.lastInsertIdx = l.headIdx
	}

	l.length -= removedSum
	length := l.length
	lock.Unlock()

	l.rec.ObserveRemoved(removedSum)
	l.rec.ObserveLength(length)
}

// GetLossLength returns the current count of outstanding lost
// sequence numbers. O(1).
func (l *SndLossList) GetLossLength() int {
	lock := syncx.NewUniqueLock(&l.mu)
	defer lock.Unlock()
	return l.length
}
