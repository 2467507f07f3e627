// Package source provides a CSV-based stand-in for the lineitem data feed.
//
// The format this module persists was originally populated from a live SQL
// database; this package reproduces only the shape of that ingestion (read
// rows, batch at the row-group size, hand batches to the writer) against a
// plain CSV file instead, so the writer and executor can be exercised without
// a database dependency.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/adbrowne/lineitemcol/rowgroup"
)

// expectedHeader is the CSV column order ReadCSV requires.
var expectedHeader = []string{
	"return_flag", "line_status", "quantity", "extended_price", "discount", "tax",
}

// ReadCSV parses CSV rows shaped like lineitem from r and invokes onBatch
// once for every full batch of rowgroup.MaxSize records, plus once more for
// any final partial batch. The first row must be the header
// "return_flag,line_status,quantity,extended_price,discount,tax".
//
// onBatch receives ownership of batch; ReadCSV does not reuse it across calls.
func ReadCSV(r io.Reader, onBatch func(batch []rowgroup.Record) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(expectedHeader)

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("source: read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return err
	}

	batch := make([]rowgroup.Record, 0, rowgroup.MaxSize)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("source: read row: %w", err)
		}

		rec, err := parseRow(row)
		if err != nil {
			return err
		}

		batch = append(batch, rec)
		if len(batch) == rowgroup.MaxSize {
			if err := onBatch(batch); err != nil {
				return err
			}
			batch = make([]rowgroup.Record, 0, rowgroup.MaxSize)
		}
	}

	if len(batch) > 0 {
		if err := onBatch(batch); err != nil {
			return err
		}
	}

	return nil
}

func checkHeader(got []string) error {
	if len(got) != len(expectedHeader) {
		return fmt.Errorf("source: expected %d columns, got %d", len(expectedHeader), len(got))
	}
	for i, want := range expectedHeader {
		if got[i] != want {
			return fmt.Errorf("source: column %d: expected %q, got %q", i, want, got[i])
		}
	}
	return nil
}

func parseRow(row []string) (rowgroup.Record, error) {
	if row[0] == "" || row[1] == "" {
		return rowgroup.Record{}, fmt.Errorf("source: return_flag and line_status must be non-empty")
	}

	quantity, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return rowgroup.Record{}, fmt.Errorf("source: quantity: %w", err)
	}
	extendedPrice, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return rowgroup.Record{}, fmt.Errorf("source: extended_price: %w", err)
	}
	discount, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return rowgroup.Record{}, fmt.Errorf("source: discount: %w", err)
	}
	tax, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return rowgroup.Record{}, fmt.Errorf("source: tax: %w", err)
	}

	return rowgroup.Record{
		ReturnFlag:    row[0][0],
		LineStatus:    row[1][0],
		Quantity:      quantity,
		ExtendedPrice: extendedPrice,
		Discount:      discount,
		Tax:           tax,
	}, nil
}
