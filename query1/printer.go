package query1

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Row is one rendered output line: a populated (return_flag, line_status)
// group with its rescaled derived aggregates (§4.9).
type Row struct {
	ReturnFlag   byte
	LineStatus   byte
	Count        uint64
	SumQty       float64
	SumBasePrice float64
	SumDiscPrice float64
	SumCharge    float64
	AvgQty       float64
	AvgPrice     float64
	AvgDisc      float64
}

// Rows walks the table's slots in lexical (return_flag, line_status) order
// and derives one Row per populated slot.
//
// The derived aggregates are column-level formulas, not per-row ones: each is
// computed once from the accumulated sums, not folded row by row during the
// merge (§4.9).
func Rows(table *StateTable) []Row {
	var rows []Row

	for rf := 0; rf < 256; rf++ {
		for ls := 0; ls < 256; ls++ {
			acc, ok := table.Get(byte(rf), byte(ls))
			if !ok {
				continue
			}

			sumQty := float64(acc.SumQuantity) / 100
			sumBasePrice := float64(acc.SumBasePrice) / 100
			avgDiscFraction := float64(acc.SumDiscount) / 100 / float64(acc.Count)
			sumDiscPrice := sumBasePrice * (1 - float64(acc.SumDiscount)/100)
			sumCharge := sumDiscPrice * (1 + float64(acc.SumTax)/100)

			rows = append(rows, Row{
				ReturnFlag:   byte(rf),
				LineStatus:   byte(ls),
				Count:        acc.Count,
				SumQty:       sumQty,
				SumBasePrice: sumBasePrice,
				SumDiscPrice: sumDiscPrice,
				SumCharge:    sumCharge,
				AvgQty:       sumQty / float64(acc.Count),
				AvgPrice:     sumBasePrice / float64(acc.Count),
				AvgDisc:      avgDiscFraction,
			})
		}
	}

	return rows
}

// Print renders the table's populated slots as a tab-aligned table, one line
// per (return_flag, line_status) group in lexical order.
func Print(w io.Writer, table *StateTable) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	header := "return_flag\tline_status\tcount\tsum_qty\tsum_base_price\tsum_disc_price\tsum_charge\tavg_qty\tavg_price\tavg_disc"
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}

	for _, r := range Rows(table) {
		_, err := fmt.Fprintf(tw, "%c\t%c\t%d\t%.2f\t%.2f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.ReturnFlag, r.LineStatus, r.Count,
			r.SumQty, r.SumBasePrice, r.SumDiscPrice, r.SumCharge,
			r.AvgQty, r.AvgPrice, r.AvgDisc,
		)
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}
