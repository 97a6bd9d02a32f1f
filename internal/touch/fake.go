package touch

import "errors"

// FakeBus records register writes and serves scripted status reads.
type FakeBus struct {
	// Writes contains every register write in order.
	Writes []regWrite

	// Status contains scripted status bytes.
	// Each read consumes the next; the last one repeats.
	Status []byte

	// TxError, if set, is returned by every transaction.
	TxError error

	index int
}

// NewFakeBus creates a FakeBus serving the given status bytes.
func NewFakeBus(status ...byte) *FakeBus {
	return &FakeBus{Status: status}
}

// Tx implements Bus.
func (f *FakeBus) Tx(w, r []byte) error {
	if f.TxError != nil {
		return f.TxError
	}
	switch {
	case len(w) == 2 && len(r) == 0:
		f.Writes = append(f.Writes, regWrite{w[0], w[1]})
		return nil
	case len(w) == 1 && w[0] == regTouchStatus && len(r) == 1:
		if len(f.Status) == 0 {
			return errors.New("no status configured")
		}
		r[0] = f.Status[f.index]
		if f.index < len(f.Status)-1 {
			f.index++
		}
		return nil
	}
	return errors.New("unexpected transaction")
}
