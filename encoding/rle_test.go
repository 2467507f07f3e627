package encoding

import (
	"testing"

	"github.com/adbrowne/lineitemcol/endian"
	"github.com/stretchr/testify/require"
)

func encodeRLE(t *testing.T, engine endian.EndianEngine, values []byte) []byte {
	t.Helper()

	enc := NewRLEEncoder(engine)
	defer enc.Finish()
	enc.WriteSlice(values)

	out := make([]byte, len(enc.Bytes()))
	copy(out, enc.Bytes())

	return out
}

func TestRLEEncoder_CollapsesAdjacentRuns(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := []byte{'A', 'A', 'A', 'B', 'B', 'C'}

	enc := NewRLEEncoder(engine)
	defer enc.Finish()
	enc.WriteSlice(values)

	require.Equal(t, len(values), enc.Len())

	dec := NewRLEDecoder(engine)
	k, body, err := dec.RunHeader(enc.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint64(3), k)

	var col RLEColumn
	require.NoError(t, dec.DecodeEntryByEntry(body, k, &col))
	require.Equal(t, 3, col.Runs())
	require.Equal(t, len(values), col.TotalCount())

	v0, c0 := col.RunAt(0)
	require.Equal(t, byte('A'), v0)
	require.Equal(t, uint32(3), c0)
}

func TestRLE_RoundTrip_ExpandedMatchesInput(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := []byte("AAAABBBCCCCCCDAABBBBBBBBBBBBBB")

	encoded := encodeRLE(t, engine, values)

	dec := NewRLEDecoder(engine)
	k, body, err := dec.RunHeader(encoded)
	require.NoError(t, err)

	var col RLEColumn
	require.NoError(t, dec.DecodeBulk(body, k, &col))

	var got []byte
	for v := range col.Expanded() {
		got = append(got, v)
	}
	require.Equal(t, values, got)
	require.Equal(t, len(values), col.TotalCount())
}

func TestRLE_CompressedIterator_YieldsAdjacentCollapse(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := []byte{'X', 'X', 'Y', 'X', 'X', 'X'}

	encoded := encodeRLE(t, engine, values)
	dec := NewRLEDecoder(engine)
	k, body, err := dec.RunHeader(encoded)
	require.NoError(t, err)

	var col RLEColumn
	require.NoError(t, dec.DecodeEntryByEntry(body, k, &col))

	type pair struct {
		v byte
		c uint32
	}
	var got []pair
	for v, c := range col.Compressed() {
		got = append(got, pair{v, c})
	}
	require.Equal(t, []pair{{'X', 2}, {'Y', 1}, {'X', 3}}, got)
}

func TestRLE_BulkAndEntryByEntry_ProduceIdenticalResults(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := []byte("AFAFAFAFBNBNBNCCCCCCCCCCCCCCCC")

	encoded := encodeRLE(t, engine, values)
	dec := NewRLEDecoder(engine)
	k, body, err := dec.RunHeader(encoded)
	require.NoError(t, err)

	var entryCol, bulkCol RLEColumn
	require.NoError(t, dec.DecodeEntryByEntry(body, k, &entryCol))
	require.NoError(t, dec.DecodeBulk(body, k, &bulkCol))

	require.Equal(t, entryCol.values, bulkCol.values)
	require.Equal(t, entryCol.counts, bulkCol.counts)
	require.Equal(t, entryCol.total, bulkCol.total)
}

func TestRLE_DegenerateAllDistinct(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := make([]byte, 0, 100)
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			values = append(values, 'F')
		} else {
			values = append(values, 'N')
		}
	}

	encoded := encodeRLE(t, engine, values)
	dec := NewRLEDecoder(engine)
	k, body, err := dec.RunHeader(encoded)
	require.NoError(t, err)
	require.Equal(t, uint64(len(values)), k, "every adjacent pair differs, so each run has count 1")

	var col RLEColumn
	require.NoError(t, dec.DecodeBulk(body, k, &col))
	require.Equal(t, len(values), col.Runs())

	for i := range col.counts {
		require.Equal(t, uint32(1), col.counts[i])
	}
}

func TestRLE_CountStrings_EqualsN(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := []byte("RRRRRRRRRRGGGGGGGGGGGGGGGGBBBBBBBB")

	encoded := encodeRLE(t, engine, values)
	dec := NewRLEDecoder(engine)
	k, body, err := dec.RunHeader(encoded)
	require.NoError(t, err)

	var col RLEColumn
	require.NoError(t, dec.DecodeEntryByEntry(body, k, &col))
	require.Equal(t, len(values), col.TotalCount())
}

func TestRLE_EmptyColumn(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	encoded := encodeRLE(t, engine, nil)
	dec := NewRLEDecoder(engine)
	k, body, err := dec.RunHeader(encoded)
	require.NoError(t, err)
	require.Equal(t, uint64(0), k)

	var col RLEColumn
	require.NoError(t, dec.DecodeBulk(body, k, &col))
	require.Equal(t, 0, col.Runs())
	require.Equal(t, 0, col.TotalCount())
}

func TestRLE_TruncatedRunHeader(t *testing.T) {
	dec := NewRLEDecoder(endian.GetLittleEndianEngine())
	_, _, err := dec.RunHeader([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestRLE_TruncatedRunBody(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoded := encodeRLE(t, engine, []byte{'A', 'A', 'B'})

	dec := NewRLEDecoder(engine)
	k, body, err := dec.RunHeader(encoded)
	require.NoError(t, err)

	var col RLEColumn
	err = dec.DecodeEntryByEntry(body[:len(body)-1], k, &col)
	require.Error(t, err)

	err = dec.DecodeBulk(body[:len(body)-1], k, &col)
	require.Error(t, err)
}
