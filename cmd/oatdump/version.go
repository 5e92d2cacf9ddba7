package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/oatkit/pkg/oat"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information and supported OAT header layouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion() error {
	layouts := oat.Layouts()
	if jsonOut {
		return printJSON(struct {
			Version string       `json:"version"`
			Commit  string       `json:"commit"`
			Built   string       `json:"built"`
			Layouts []oat.Layout `json:"layouts"`
		}{version, commit, date, layouts})
	}

	fmt.Printf("oatdump %s\n", version)
	fmt.Printf("  commit: %s\n", commit)
	fmt.Printf("  built: %s\n", date)
	fmt.Println("  oat layouts:")
	for _, l := range layouts {
		fmt.Printf("    %-7s version >= %03d  key/value size at +%d  header %d bytes\n",
			l.Name, l.MinVersion, l.KeyValueSizeOffset, l.HeaderSize)
	}
	return nil
}
