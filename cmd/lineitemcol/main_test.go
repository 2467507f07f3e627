package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCSV = `return_flag,line_status,quantity,extended_price,discount,tax
A,F,10,100,0.05,0.08
A,F,5,50,0.05,0.08
B,O,2,20,0,0.1
`

func TestLoadThenQuery_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "lineitem.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	outPath := filepath.Join(dir, "out.bin")
	require.NoError(t, runLoad(csvPath, outPath, "none"))

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	require.NoError(t, runQuery(outPath, "none"))
}

func TestLoadThenQuery_WithZstdCompression(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "lineitem.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	outPath := filepath.Join(dir, "out.bin.zst")
	require.NoError(t, runLoad(csvPath, outPath, "zstd"))
	require.NoError(t, runQuery(outPath, "zstd"))
}

func TestRunLoad_RejectsUnknownCompression(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "lineitem.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	err := runLoad(csvPath, filepath.Join(dir, "out.bin"), "bogus")
	require.Error(t, err)
}

func TestDeriveOutputPath_IsDeterministic(t *testing.T) {
	a := deriveOutputPath("/data/lineitem.csv")
	b := deriveOutputPath("/data/lineitem.csv")
	require.Equal(t, a, b)

	c := deriveOutputPath("/data/other.csv")
	require.NotEqual(t, a, c)
}
