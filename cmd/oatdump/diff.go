package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/oatkit/pkg/dexdb"
	"github.com/joshuapare/oatkit/pkg/dexdiff"
)

func init() {
	rootCmd.AddCommand(newDiffCmd())
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <local.db> <base.db>",
		Short: "List classes a DEX database adds on top of a baseline",
		Long: `The diff command compares two DEX databases and prints every class of
the first that the second does not contain, with its fields and methods.

Example:
  oatdump diff device.db aosp.db
  oatdump diff device.db aosp.db --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
	return cmd
}

func runDiff(args []string) error {
	localPath, basePath := args[0], args[1]

	if !jsonOut {
		printVerbose("Comparing %s against %s...\n", localPath, basePath)
	}

	local, err := dexdb.Open(localPath, dexdb.Options{Safe: true, Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	defer local.Close()

	base, err := dexdb.Open(basePath, dexdb.Options{Safe: true, Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to open base database: %w", err)
	}
	defer base.Close()

	reports, err := dexdiff.Diff(local, base)
	if err != nil {
		return fmt.Errorf("failed to compare databases: %w", err)
	}

	if jsonOut {
		return printJSON(reports)
	}
	if quiet {
		return nil
	}

	style := dexdiff.Style{
		Tag:   func(s string) string { return render(tagStyle, s) },
		Class: func(s string) string { return render(classStyle, s) },
	}
	if err := dexdiff.WriteReport(os.Stdout, reports, style); err != nil {
		return err
	}
	printVerbose("\n%d new classes in %s\n", len(reports), local.Name())
	return nil
}
