package losslist

import "github.com/pkg/errors"

// ErrInvalidRange is wrapped by ValidateRange when lo is not before or
// equal to hi in modular order.
var ErrInvalidRange = errors.New("losslist: seq_lo does not precede seq_hi in modular order")

// ValidateRange is the protocol-layer guard callers run before Insert.
// Insert itself logs a warning and returns 0 without mutating the list
// when lo follows hi; ValidateRange reports the same condition as an
// error wrapping ErrInvalidRange before the list is reached.
func ValidateRange(lo, hi SeqNo) error {
	if Seqcmp(lo, hi) > 0 {
		return errors.Wrapf(ErrInvalidRange, "lo=%d hi=%d", lo, hi)
	}
	return nil
}
