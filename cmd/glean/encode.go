package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"glean/internal/codec"
	"glean/internal/treefile"
)

var encodeCmd = &cobra.Command{
	Use:   "encode IN.toml OUT.mp",
	Short: "Convert a TOML tree file into the msgpack wire format",
	Args:  cobra.ExactArgs(2),
	RunE:  runEncode,
}

func runEncode(cmd *cobra.Command, args []string) (err error) {
	in, out := args[0], args[1]
	if filepath.Ext(out) != ".mp" {
		return fmt.Errorf("output %q must have the .mp extension", out)
	}
	f, err := treefile.Load(in)
	if err != nil {
		return err
	}

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", out, cerr)
		}
		if err != nil {
			_ = os.Remove(out)
		}
	}()
	if err := codec.Encode(dst, f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", in, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d patterns)\n", out, len(f.Patterns))
	return nil
}
