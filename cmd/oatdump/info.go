package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/oatkit/pkg/oat"
	"github.com/joshuapare/oatkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <oat>",
		Short: "Report the OAT header and the DEX files it embeds",
		Long: `The info command parses an OAT file and displays the container
header, the key/value store written by dex2oat, and one line per
embedded DEX file.

Example:
  oatdump info boot.oat
  oatdump info boot.oat --json
  oatdump info boot.oat --samsung -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	if !jsonOut {
		printVerbose("Opening OAT file: %s\n", path)
	}

	f, err := oat.Open(path, oatOptions())
	if err != nil {
		return fmt.Errorf("failed to parse OAT file: %w", err)
	}
	defer f.Close()

	if jsonOut {
		return printJSON(f)
	}

	printInfo("\n%s %s\n", render(headingStyle, "OAT File:"), render(pathStyle, path))
	printInfo("  %s 0x%x\n", label("Base Offset"), f.BaseOffset)
	printInfo("  %s 0x%x\n", label("oatdata Offset"), f.OatDataOffset)
	printInfo("  %s %s\n", label("Magic"), strconv.Quote(f.Magic))
	printInfo("  %s %03d (%s layout)\n", label("Version"), f.Version, f.Layout.Name)
	printInfo("  %s %d\n", label("DEX Files"), f.DexFileCount)
	printInfo("  %s %d bytes\n", label("Key/Value Store"), f.KeyValueStoreSize)
	printInfo("  %s 0x%x\n", label("DEX Header Start"), f.DexHeaderStart)

	if len(f.KeyValues) > 0 {
		printInfo("\n%s\n", render(headingStyle, "Key/Value Store:"))
		for _, kv := range f.KeyValues {
			printInfo("  %s = %s\n", kv.Key, kv.Value)
		}
	}

	if len(f.Diagnostics) > 0 {
		printInfo("\n%s\n", render(headingStyle, "Diagnostics:"))
		for _, line := range strings.Split(strings.TrimSuffix(types.FormatCompact(f.Diagnostics), "\n"), "\n") {
			printInfo("  %s\n", line)
		}
	}

	printInfo("\n%s\n", render(headingStyle, "DEX Files:"))
	for _, h := range f.DexHeaders {
		printInfo("  [%d] %s\n", h.Index, render(pathStyle, h.Location()))
		printInfo("      sub-header 0x%x-0x%x  dex 0x%x  size %d  classes %d  checksum 0x%08x\n",
			h.StartOffset, h.EndOffset, h.DexOffset, h.DexSize, h.ClassDefsSize, h.Checksum)
	}
	return nil
}

// label pads a field name so the values line up.
func label(name string) string {
	return render(labelStyle, fmt.Sprintf("%-18s", name+":"))
}
