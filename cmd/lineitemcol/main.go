// Command lineitemcol loads a CSV dataset shaped like TPC-H lineitem into the
// row-group binary format and runs the Q1-shaped aggregation over it.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/adbrowne/lineitemcol/compress"
	"github.com/adbrowne/lineitemcol/endian"
	"github.com/adbrowne/lineitemcol/format"
	"github.com/adbrowne/lineitemcol/internal/hash"
	"github.com/adbrowne/lineitemcol/query1"
	"github.com/adbrowne/lineitemcol/rowgroup"
	"github.com/adbrowne/lineitemcol/source"
)

const defaultOutputName = "lineitems_column.bin"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lineitemcol",
		Short: "Columnar row-group storage and TPC-H Q1-shaped aggregation over lineitem data",
	}

	root.AddCommand(newLoadCmd(), newQueryCmd())

	return root
}

func newLoadCmd() *cobra.Command {
	var output string
	var compressionName string

	cmd := &cobra.Command{
		Use:   "load [csv-file]",
		Short: "Load a lineitem-shaped CSV file into the row-group binary format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args[0], output, compressionName)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: "+defaultOutputName+".<hash of the input path>.bin)")
	cmd.Flags().StringVarP(&compressionName, "compression", "c", "none", "outer compression: none, zstd, s2, or lz4")

	return cmd
}

func newQueryCmd() *cobra.Command {
	var compressionName string

	cmd := &cobra.Command{
		Use:   "query [bin-file]",
		Short: "Run the TPC-H Q1-shaped aggregation over a row-group file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(args[0], compressionName)
		},
	}
	cmd.Flags().StringVarP(&compressionName, "compression", "c", "none", "outer compression the file was written with: none, zstd, s2, or lz4")

	return cmd
}

// runLoad streams CSV rows into row groups held in memory, then applies the
// chosen outer compression codec once over the complete row-group stream
// before writing it out in a single file.
func runLoad(inputPath, output, compressionName string) error {
	compressionType, err := format.ParseCompressionType(compressionName)
	if err != nil {
		return err
	}

	codec, err := compress.CreateCodec(compressionType, "load")
	if err != nil {
		return err
	}

	if output == "" {
		output = deriveOutputPath(inputPath)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("lineitemcol: open %s: %w", inputPath, err)
	}
	defer in.Close()

	var buf bytes.Buffer
	tw := rowgroup.NewTrackedWriter(&buf)
	writer := rowgroup.NewWriter(endian.GetLittleEndianEngine())

	var rowGroupCount, recordCount int
	err = source.ReadCSV(bufio.NewReader(in), func(batch []rowgroup.Record) error {
		if err := writer.WriteRowGroup(tw, batch); err != nil {
			return err
		}
		rowGroupCount++
		recordCount += len(batch)
		return nil
	})
	if err != nil {
		return fmt.Errorf("lineitemcol: load %s: %w", inputPath, err)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("lineitemcol: flush row groups: %w", err)
	}

	compressed, err := codec.Compress(buf.Bytes())
	if err != nil {
		return fmt.Errorf("lineitemcol: compress: %w", err)
	}

	if err := os.WriteFile(output, compressed, 0o644); err != nil {
		return fmt.Errorf("lineitemcol: write %s: %w", output, err)
	}

	log.Printf("loaded %d records into %d row groups (%d bytes uncompressed, %d bytes on disk) -> %s [compression=%s]",
		recordCount, rowGroupCount, tw.BytesWritten(), len(compressed), output, compressionType)

	return nil
}

func runQuery(path, compressionName string) error {
	compressionType, err := format.ParseCompressionType(compressionName)
	if err != nil {
		return err
	}

	codec, err := compress.CreateCodec(compressionType, "query")
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("lineitemcol: open %s: %w", path, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("lineitemcol: read %s: %w", path, err)
	}

	decompressed, err := codec.Decompress(raw)
	if err != nil {
		return fmt.Errorf("lineitemcol: decompress %s: %w", path, err)
	}

	table, err := query1.Run(bytes.NewReader(decompressed))
	if err != nil {
		return fmt.Errorf("lineitemcol: query %s: %w", path, err)
	}

	log.Printf("scanned %s: %d populated groups", path, table.PopulatedCount())

	return query1.Print(os.Stdout, table)
}

func deriveOutputPath(inputPath string) string {
	id := hash.ID(inputPath)
	return fmt.Sprintf("%s.%016x.bin", defaultOutputName, id)
}
