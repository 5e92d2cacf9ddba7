package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/joshuapare/oatkit/pkg/oat"
)

var (
	extractOutput string
	extractIndex  int
)

func init() {
	cmd := newExtractCmd()
	cmd.Flags().StringVarP(&extractOutput, "output", "o", ".", "Directory to write DEX files to")
	cmd.Flags().IntVar(&extractIndex, "index", -1, "Extract only the DEX file with this index")
	rootCmd.AddCommand(cmd)
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <oat>",
		Short: "Carve the embedded DEX images out of an OAT file",
		Long: `The extract command writes every DEX image embedded in an OAT file to
its own file. Files are named after the DEX location, prefixed with the
index: /system/framework/core.jar:classes2.dex becomes
01_core.jar_classes2.dex.

Example:
  oatdump extract boot.oat -o out/
  oatdump extract boot.oat --index 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args)
		},
	}
	return cmd
}

// extracted is one carved image, reported by --json.
type extracted struct {
	Index    int    `json:"index"`
	Location string `json:"location"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

func runExtract(args []string) error {
	path := args[0]

	f, err := oat.Open(path, oatOptions())
	if err != nil {
		return fmt.Errorf("failed to parse OAT file: %w", err)
	}
	defer f.Close()

	headers := f.DexHeaders
	if extractIndex >= 0 {
		headers = lo.Filter(headers, func(h oat.DexHeader, _ int) bool { return h.Index == extractIndex })
		if len(headers) == 0 {
			return fmt.Errorf("no DEX file with index %d (file has %d)", extractIndex, len(f.DexHeaders))
		}
	}

	if err := os.MkdirAll(extractOutput, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var results []extracted
	for _, h := range headers {
		out := filepath.Join(extractOutput, dexFileName(h))
		if !jsonOut {
			printVerbose("Carving DEX %d (%d bytes at 0x%x) to %s\n", h.Index, h.DexSize, h.DexOffset, out)
		}

		n, err := writeDex(f, h, out)
		if err != nil {
			return err
		}
		results = append(results, extracted{Index: h.Index, Location: h.Location(), Path: out, Size: n})
		if !jsonOut {
			printInfo("%s %s (%d bytes)\n", render(tagStyle, "Extracted"), render(pathStyle, out), n)
		}
	}

	if jsonOut {
		return printJSON(results)
	}
	return nil
}

func writeDex(f *oat.File, h oat.DexHeader, path string) (int64, error) {
	w, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	n, err := f.Carve(w, h)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("failed to extract DEX %d: %w", h.Index, err)
	}
	return n, nil
}

// dexFileName derives an output name from the DEX location. Multidex entries
// ("core.jar:classes2.dex") keep their suffix; anything else gains ".dex".
func dexFileName(h oat.DexHeader) string {
	loc := h.Location()
	if i := strings.LastIndexByte(loc, '/'); i >= 0 {
		loc = loc[i+1:]
	}
	loc = strings.Map(func(r rune) rune {
		switch r {
		case ':', '!', '/', '\\':
			return '_'
		}
		return r
	}, loc)
	loc = lo.Ternary(loc == "", "dex", loc)
	if !strings.HasSuffix(loc, ".dex") {
		loc += ".dex"
	}
	return fmt.Sprintf("%02d_%s", h.Index, loc)
}
