package source

import (
	"strings"
	"testing"

	"github.com/adbrowne/lineitemcol/rowgroup"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_ParsesRowsIntoBatches(t *testing.T) {
	csvData := `return_flag,line_status,quantity,extended_price,discount,tax
A,F,10.5,100.25,0.05,0.08
B,O,2,50,0,0.1
`
	var batches [][]rowgroup.Record
	err := ReadCSV(strings.NewReader(csvData), func(batch []rowgroup.Record) error {
		batches = append(batches, batch)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)

	require.Equal(t, rowgroup.Record{
		ReturnFlag: 'A', LineStatus: 'F',
		Quantity: 10.5, ExtendedPrice: 100.25, Discount: 0.05, Tax: 0.08,
	}, batches[0][0])
	require.Equal(t, rowgroup.Record{
		ReturnFlag: 'B', LineStatus: 'O',
		Quantity: 2, ExtendedPrice: 50, Discount: 0, Tax: 0.1,
	}, batches[0][1])
}

func TestReadCSV_FlushesFullBatchesBeforeEOF(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("return_flag,line_status,quantity,extended_price,discount,tax\n")
	for i := 0; i < rowgroup.MaxSize+1; i++ {
		sb.WriteString("A,F,1,1,0,0\n")
	}

	var batchSizes []int
	err := ReadCSV(strings.NewReader(sb.String()), func(batch []rowgroup.Record) error {
		batchSizes = append(batchSizes, len(batch))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{rowgroup.MaxSize, 1}, batchSizes)
}

func TestReadCSV_RejectsWrongHeader(t *testing.T) {
	err := ReadCSV(strings.NewReader("a,b,c,d,e,f\n"), func([]rowgroup.Record) error { return nil })
	require.Error(t, err)
}

func TestReadCSV_RejectsEmptyKeyByte(t *testing.T) {
	csvData := "return_flag,line_status,quantity,extended_price,discount,tax\n,F,1,1,0,0\n"
	err := ReadCSV(strings.NewReader(csvData), func([]rowgroup.Record) error { return nil })
	require.Error(t, err)
}
