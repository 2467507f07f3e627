// Package query1 implements the TPC-H Q1-shaped aggregation executor: a
// run-aligned streaming merge over a row-group file's RLE key columns and
// fixed-width measure columns, folding into a fixed 65536-slot accumulator
// table, and a printer that renders the populated slots.
package query1

// StateSize is the number of accumulator slots: every (return_flag, line_status)
// byte pair, per the key-index bijection in StateIndex.
const StateSize = 65536

// Accumulator holds the five running sums for one (return_flag, line_status)
// group. All fields are accumulated in 64-bit unsigned arithmetic over raw
// fixed-point measures; rescaling to real values is deferred to the printer.
type Accumulator struct {
	Count        uint64
	SumQuantity  uint64
	SumBasePrice uint64
	SumDiscount  uint64
	SumTax       uint64
}

// StateIndex maps a (return_flag, line_status) key pair to its accumulator
// slot: rf*256 + ls, a bijection on [0,255]x[0,255] -> [0,65536).
func StateIndex(returnFlag, lineStatus byte) int {
	return int(returnFlag)*256 + int(lineStatus)
}

// StateTable is the fixed-size accumulator table the executor folds row
// groups into. A slot is absent until first touched.
type StateTable struct {
	slots     [StateSize]Accumulator
	populated [StateSize]bool
}

// NewStateTable creates an empty accumulator table.
func NewStateTable() *StateTable {
	return &StateTable{}
}

// touch marks the slot at idx populated and returns a pointer to it,
// zero-valued on first touch.
func (t *StateTable) touch(idx int) *Accumulator {
	t.populated[idx] = true
	return &t.slots[idx]
}

// Get returns the accumulator at (returnFlag, lineStatus) and whether it has
// been touched.
func (t *StateTable) Get(returnFlag, lineStatus byte) (Accumulator, bool) {
	idx := StateIndex(returnFlag, lineStatus)
	return t.slots[idx], t.populated[idx]
}

// PopulatedCount returns the number of slots touched by at least one row.
func (t *StateTable) PopulatedCount() int {
	n := 0
	for _, p := range t.populated {
		if p {
			n++
		}
	}
	return n
}
