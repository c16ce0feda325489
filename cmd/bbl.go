package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/portfolios/bbl"
)

var errBadBBL = errors.New("invalid BBL")

var bblCmd = &cobra.Command{
	Use:   "bbl <bbl>...",
	Short: "Check and decode ten-digit BBL identifiers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBBL,
}

func init() {
	rootCmd.AddCommand(bblCmd)
}

func runBBL(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	bad := 0
	for _, arg := range args {
		b, err := bbl.Parse(arg)
		if err != nil {
			bad++
			fmt.Fprintf(out, "%q\t%v\n", arg, err)
			continue
		}
		fmt.Fprintf(out, "%s\tborough=%d (%s) block=%d lot=%d\n",
			b, b.Borough(), b.Borough(), b.Block(), b.Lot())
	}
	if bad > 0 {
		return fmt.Errorf("%w: %d of %d", errBadBBL, bad, len(args))
	}

	return nil
}
