package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/heatquote/internal/logging"
)

func main() {
	var logLevel string
	log := zap.NewNop()

	rootCmd := &cobra.Command{
		Use:          "heatquote",
		Short:        "Labor and cost estimates for heating installations",
		SilenceUsage: true,
	}
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		l, err := logging.New(logLevel, "console")
		if err != nil {
			return err
		}
		log = l
		return nil
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = log.Sync()
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	logger := func() *zap.Logger { return log }
	rootCmd.AddCommand(estimateCmd(logger))
	rootCmd.AddCommand(exportCmd(logger))
	rootCmd.AddCommand(validateCmd(logger))
	rootCmd.AddCommand(normsCmd())
	rootCmd.AddCommand(initCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func estimateCmd(logger func() *zap.Logger) *cobra.Command {
	var opts estimateOptions

	cmd := &cobra.Command{
		Use:   "estimate [document]",
		Short: "Print the labor and cost estimate of a project document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("commissioning") {
				opts.commissioning = &opts.withCommissioning
			}
			return runEstimate(cmd.OutOrStdout(), logger(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.withCommissioning, "commissioning", false, "include commissioning, overriding the document")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&opts.plan, "plan", false, "print the radiator installation plan")
	return cmd
}

func exportCmd(logger func() *zap.Logger) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export [document]",
		Short: "Write the estimate table as PDF or Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), logger(), args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "output format (pdf or xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: document name with the format extension)")
	return cmd
}

func validateCmd(logger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [document]",
		Short: "Check a project document for unknown keys and connection point mismatches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), logger(), args[0])
		},
	}
}

func normsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "norms",
		Short: "Print the built-in time norms and coefficients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNorms(cmd.OutOrStdout())
		},
	}
}

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [document]",
		Short: "Write an example project document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), args[0], force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
