package chrono

import "github.com/chazu/chronospatial/pkg/memo"

// Snapshot is the complete initial state of a machine. Two machines built
// from equal snapshots produce identical output, which makes a snapshot a
// valid memoization key for a run.
type Snapshot struct {
	A       uint64   `cbor:"1,keyasint"`
	B       uint64   `cbor:"2,keyasint"`
	C       uint64   `cbor:"3,keyasint"`
	Program []uint64 `cbor:"4,keyasint"`
}

// Machine builds a fresh machine at counter 0 from the snapshot.
func (s Snapshot) Machine() *Machine {
	return New(Registers{A: s.A, B: s.B, C: s.C}, Program(s.Program))
}

// Key returns the canonical content key of the snapshot.
func (s Snapshot) Key() (memo.Key, error) {
	return memo.KeyOf(s)
}
