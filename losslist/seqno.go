// Package losslist implements the sender loss list: a bounded,
// sequence-number-keyed ordered container of disjoint closed ranges
// that the sending thread consults to decide what to retransmit.
package losslist

// SeqNo is a 31-bit sequence number. The top bit is never set; values
// wrap modulo 2^31, and ordering between any two live sequence numbers
// is defined by Seqcmp rather than by the raw uint32 value.
type SeqNo uint32

const (
	seqNoBits    = 31
	seqNoRange   = uint32(1) << seqNoBits       // 2^31
	seqNoMask    = seqNoRange - 1                // 0x7fffffff
	seqNoSignBit = uint32(1) << (seqNoBits - 1) // 2^30
)

// Seqcmp returns the signed 31-bit difference a-b: negative if a
// precedes b, zero if equal, positive if a follows b. Comparisons
// near the midpoint of the 31-bit space (more than half the range
// apart) are inherently ambiguous in modular arithmetic; Seqcmp
// resolves them the same way as every other comparison, by taking the
// shorter of the two directions around the ring.
func Seqcmp(a, b SeqNo) int32 {
	diff := (uint32(a) - uint32(b)) & seqNoMask
	if diff&seqNoSignBit != 0 {
		return int32(diff - seqNoRange)
	}
	return int32(diff)
}

// Seqoff returns b-a (mod 2^31) as a signed count: the number of
// sequence numbers in the half-open interval [a, b) when positive.
func Seqoff(a, b SeqNo) int32 {
	return Seqcmp(b, a)
}

// Less reports whether a precedes b in modular order.
func Less(a, b SeqNo) bool {
	return Seqcmp(a, b) < 0
}

// Add returns s advanced by n (n may be negative), wrapped into the
// 31-bit space.
func (s SeqNo) Add(n int32) SeqNo {
	return SeqNo((uint32(s) + uint32(n)) & seqNoMask)
}

// rangeLen returns the count of sequence numbers in the closed range
// [lo, hi].
func rangeLen(lo, hi SeqNo) int {
	return int(Seqoff(lo, hi)) + 1
}
