package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/portfolios/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Build portfolios and print the largest ones",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	addPipelineFlags(summaryCmd)
	summaryCmd.Flags().Int("top", 0, "portfolios to list (0 lists all)")
	summaryCmd.Flags().Int("width", 100, "wrap width of the rendered output")
	summaryCmd.Flags().String("style", "", `glamour style ("dark", "light", "notty"); default detects the terminal`)
	summaryCmd.Flags().Bool("raw", false, "print Markdown without styling")

	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	res, err := execute(ctx, cfg)
	if err != nil {
		return err
	}
	md := report.Summary(res.Map, cfg.SummaryTop)

	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	var out string
	if style, _ := cmd.Flags().GetString("style"); style != "" {
		out, err = report.RenderStyle(md, style, width)
	} else {
		out, err = report.Render(md, width)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)

	return err
}
