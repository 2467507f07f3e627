package query1

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/adbrowne/lineitemcol/endian"
	"github.com/adbrowne/lineitemcol/errs"
	"github.com/adbrowne/lineitemcol/rowgroup"
)

// RunFile opens path, streams every row group to end-of-stream, and returns
// the final accumulator table (§4.8).
func RunFile(path string) (*StateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("query1: open %s: %w", path, err)
	}
	defer f.Close()

	return Run(f)
}

// Run streams every row group readable from r to end-of-stream and returns
// the final accumulator table.
func Run(r io.Reader) (*StateTable, error) {
	engine := endian.GetLittleEndianEngine()
	br := bufio.NewReader(r)
	reader := rowgroup.NewReader(engine)
	table := NewStateTable()

	for {
		atEOF, err := isCleanEOF(br)
		if err != nil {
			return nil, fmt.Errorf("query1: %w", err)
		}
		if atEOF {
			return table, nil
		}

		rg, err := reader.ReadRowGroup(br)
		if err != nil {
			return nil, fmt.Errorf("query1: %w", err)
		}

		if err := accumulateRowGroup(table, rg); err != nil {
			return nil, fmt.Errorf("query1: %w", err)
		}
	}
}

// isCleanEOF reports whether r has no more bytes. A row group's header is
// never absent mid-stream by the time this is called from Run's loop start,
// so an empty peek here means the file ended on a row-group boundary; any
// other error means corruption or an I/O failure.
func isCleanEOF(r *bufio.Reader) (bool, error) {
	_, err := r.Peek(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return false, nil
}

// accumulateRowGroup runs the run-aligned merge of rg.ReturnFlag and
// rg.LineStatus against the four measure columns, one accumulation step per
// coincident run (§4.8).
func accumulateRowGroup(table *StateTable, rg *rowgroup.RowGroup) error {
	pullRF, stopRF := iter.Pull2(rg.ReturnFlag.Compressed())
	defer stopRF()
	pullLS, stopLS := iter.Pull2(rg.LineStatus.Compressed())
	defer stopLS()

	var rfValue, lsValue byte
	var rfRemaining, lsRemaining uint32

	n := rg.N
	i := 0

	for i < n {
		if rfRemaining == 0 {
			v, c, ok := pullRF()
			if !ok {
				return fmt.Errorf("%w: return_flag runs exhausted at row %d of %d", errs.ErrKeyColumnDesync, i, n)
			}
			rfValue, rfRemaining = v, c
		}

		if lsRemaining == 0 {
			v, c, ok := pullLS()
			if !ok {
				return fmt.Errorf("%w: line_status runs exhausted at row %d of %d", errs.ErrKeyColumnDesync, i, n)
			}
			lsValue, lsRemaining = v, c
		}

		l := rfRemaining
		if lsRemaining < l {
			l = lsRemaining
		}

		acc := table.touch(StateIndex(rfValue, lsValue))

		var sumQty, sumPrice, sumDisc, sumTax uint64
		end := i + int(l)
		for j := i; j < end; j++ {
			sumQty += uint64(rg.Quantity[j])
			sumPrice += uint64(rg.ExtendedPrice[j])
			sumDisc += uint64(rg.Discount[j])
			sumTax += uint64(rg.Tax[j])
		}

		acc.Count += uint64(l)
		acc.SumQuantity += sumQty
		acc.SumBasePrice += sumPrice
		acc.SumDiscount += sumDisc
		acc.SumTax += sumTax

		rfRemaining -= l
		lsRemaining -= l
		i = end
	}

	if rfRemaining != 0 || lsRemaining != 0 {
		return fmt.Errorf("%w: runs outlive item count", errs.ErrKeyColumnDesync)
	}

	if _, _, ok := pullRF(); ok {
		return fmt.Errorf("%w: return_flag has runs beyond item count", errs.ErrKeyColumnDesync)
	}
	if _, _, ok := pullLS(); ok {
		return fmt.Errorf("%w: line_status has runs beyond item count", errs.ErrKeyColumnDesync)
	}

	return nil
}
