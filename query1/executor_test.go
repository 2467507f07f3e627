package query1

import (
	"bytes"
	"testing"

	"github.com/adbrowne/lineitemcol/encoding"
	"github.com/adbrowne/lineitemcol/endian"
	"github.com/adbrowne/lineitemcol/rowgroup"
	"github.com/stretchr/testify/require"
)

func writeRowGroups(t *testing.T, batches [][]rowgroup.Record) []byte {
	t.Helper()

	engine := endian.GetLittleEndianEngine()
	w := rowgroup.NewWriter(engine)

	var buf bytes.Buffer
	tw := rowgroup.NewTrackedWriter(&buf)

	for _, batch := range batches {
		in := make([]rowgroup.Record, len(batch))
		copy(in, batch)
		require.NoError(t, w.WriteRowGroup(tw, in))
	}
	require.NoError(t, tw.Flush())

	return buf.Bytes()
}

func uniformBatch(rf, ls byte, n int, qty, price, disc, tax float64) []rowgroup.Record {
	records := make([]rowgroup.Record, n)
	for i := range records {
		records[i] = rowgroup.Record{
			ReturnFlag:    rf,
			LineStatus:    ls,
			Quantity:      qty,
			ExtendedPrice: price,
			Discount:      disc,
			Tax:           tax,
		}
	}
	return records
}

func TestRun_SingleGroupUniformKeys(t *testing.T) {
	const n = 2000
	data := writeRowGroups(t, [][]rowgroup.Record{
		uniformBatch('A', 'F', n/2, 10, 100, 0.05, 0.08),
		uniformBatch('A', 'F', n/2, 10, 100, 0.05, 0.08),
	})

	table, err := Run(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, table.PopulatedCount())

	acc, ok := table.Get('A', 'F')
	require.True(t, ok)
	require.Equal(t, uint64(n), acc.Count)
	require.Equal(t, uint64(n)*uint64(encoding.CompressMeasure(10)), acc.SumQuantity)
	require.Equal(t, uint64(n)*uint64(encoding.CompressMeasure(100)), acc.SumBasePrice)
	require.Equal(t, uint64(n)*uint64(encoding.CompressMeasure(0.05)), acc.SumDiscount)
	require.Equal(t, uint64(n)*uint64(encoding.CompressMeasure(0.08)), acc.SumTax)
}

func TestRun_TwoRowGroupsThreeKeys(t *testing.T) {
	data := writeRowGroups(t, [][]rowgroup.Record{
		append(uniformBatch('A', 'F', 3, 1, 2, 0, 0), uniformBatch('B', 'O', 2, 3, 4, 0, 0)...),
		uniformBatch('A', 'F', 4, 5, 6, 0, 0),
		append(uniformBatch('B', 'O', 1, 7, 8, 0, 0), uniformBatch('C', 'N', 2, 9, 10, 0, 0)...),
	})

	table, err := Run(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 3, table.PopulatedCount())

	af, ok := table.Get('A', 'F')
	require.True(t, ok)
	require.Equal(t, uint64(7), af.Count)

	bo, ok := table.Get('B', 'O')
	require.True(t, ok)
	require.Equal(t, uint64(3), bo.Count)

	cn, ok := table.Get('C', 'N')
	require.True(t, ok)
	require.Equal(t, uint64(2), cn.Count)
}

func TestRun_RLEDegenerateAllDistinctKeys(t *testing.T) {
	var records []rowgroup.Record
	pairs := [][2]byte{
		{'A', 'F'}, {'A', 'O'}, {'B', 'F'}, {'B', 'O'},
		{'C', 'F'}, {'C', 'O'}, {'D', 'F'}, {'D', 'O'},
	}
	for i, p := range pairs {
		records = append(records, rowgroup.Record{
			ReturnFlag: p[0],
			LineStatus: p[1],
			Quantity:   float64(i + 1),
		})
	}

	data := writeRowGroups(t, [][]rowgroup.Record{records})

	table, err := Run(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 8, table.PopulatedCount())
}

func TestRun_TruncatedFileReportsError(t *testing.T) {
	data := writeRowGroups(t, [][]rowgroup.Record{
		uniformBatch('A', 'F', 5, 1, 2, 0, 0),
	})

	_, err := Run(bytes.NewReader(data[:len(data)-2]))
	require.Error(t, err)
}

func TestRun_EmptyFileYieldsEmptyTable(t *testing.T) {
	table, err := Run(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Equal(t, 0, table.PopulatedCount())
}
