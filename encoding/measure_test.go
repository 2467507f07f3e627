package encoding

import (
	"testing"

	"github.com/adbrowne/lineitemcol/endian"
	"github.com/stretchr/testify/require"
)

func TestMeasureEncoder_WriteAndDecode(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	enc := NewMeasureEncoder(engine)
	defer enc.Finish()

	values := []float64{1.23, 0.0, 0.01, 2.345, 655.35}
	for _, v := range values {
		enc.Write(v)
	}

	require.Equal(t, len(values), enc.Len())
	require.Equal(t, len(values)*2, len(enc.Bytes()))

	dec := NewMeasureDecoder(engine)
	dst := make([]uint16, len(values))
	require.NoError(t, dec.Decode(enc.Bytes(), len(values), dst))

	for i, v := range values {
		require.Equal(t, CompressMeasure(v), dst[i])
	}
}

func TestMeasureEncoder_WriteSlice_MatchesWrite(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := []float64{10.5, 20.25, 0.0, 99.99}

	byValue := NewMeasureEncoder(engine)
	defer byValue.Finish()
	for _, v := range values {
		byValue.Write(v)
	}

	bySlice := NewMeasureEncoder(engine)
	defer bySlice.Finish()
	bySlice.WriteSlice(values)

	require.Equal(t, byValue.Bytes(), bySlice.Bytes())
	require.Equal(t, byValue.Len(), bySlice.Len())
}

func TestMeasureEncoder_Reset(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	enc := NewMeasureEncoder(engine)
	defer enc.Finish()

	enc.Write(1.0)
	enc.Write(2.0)
	require.Equal(t, 2, enc.Len())

	enc.Reset()
	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, len(enc.Bytes()))

	enc.Write(3.0)
	require.Equal(t, 1, enc.Len())
}

func TestMeasureDecoder_All_YieldsRawImages(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	enc := NewMeasureEncoder(engine)
	defer enc.Finish()

	enc.WriteRaw(100)
	enc.WriteRaw(200)
	enc.WriteRaw(0)

	dec := NewMeasureDecoder(engine)

	var got []uint16
	for v := range dec.All(enc.Bytes(), enc.Len()) {
		got = append(got, v)
	}
	require.Equal(t, []uint16{100, 200, 0}, got)
}

func TestMeasureDecoder_AllReal_YieldsDecompressed(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	enc := NewMeasureEncoder(engine)
	defer enc.Finish()

	enc.Write(1.23)
	enc.Write(4.56)

	dec := NewMeasureDecoder(engine)

	var got []float64
	for v := range dec.AllReal(enc.Bytes(), enc.Len()) {
		got = append(got, v)
	}
	require.InDeltaSlice(t, []float64{1.23, 4.56}, got, 1e-9)
}

func TestMeasureDecoder_Decode_ShortBufferErrors(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	dec := NewMeasureDecoder(engine)
	dst := make([]uint16, 4)

	err := dec.Decode([]byte{1, 2, 3}, 4, dst)
	require.Error(t, err)
}

func TestMeasureDecoder_Decode_DstLengthMismatchErrors(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	dec := NewMeasureDecoder(engine)
	data := make([]byte, 8)
	dst := make([]uint16, 3)

	err := dec.Decode(data, 4, dst)
	require.Error(t, err)
}

func TestMeasureDecoder_All_TruncatesOnShortBuffer(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	dec := NewMeasureDecoder(engine)

	count := 0
	for range dec.All([]byte{1, 2, 3}, 4) {
		count++
	}
	require.Equal(t, 0, count, "short buffer should yield nothing rather than reading out of bounds")
}
