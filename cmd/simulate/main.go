package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "simulate",
		Short:        "Solar benefit scenarios against historical and predicted demand",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(chartCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func calcCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Print the benefits of every active scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func exportCmd() *cobra.Command {
	opts := &options{}
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the benefits table to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts, out)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "beneficios.xlsx", "output workbook")
	return cmd
}

func chartCmd() *cobra.Command {
	opts := &options{}
	var out, kind string
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the demand or benefits chart as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChart(cmd, opts, kind, out)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&kind, "kind", "benefits", "chart to render: demand or benefits")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image (default <kind>.png)")
	return cmd
}
