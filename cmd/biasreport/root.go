package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"biasreport/internal/config"
	"biasreport/internal/logger"
	"biasreport/pkg/pipeline"
)

const version = "0.1.0"

// NewRootCmd creates the biasreport command.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "biasreport",
		Short: "Visualize racial bias in law school bar exam passage rates",
		Long: `biasreport reads the law school dataset (columns race and pass_bar),
prints bar exam pass rates per group, and saves a four panel figure:
pass rate, pass/fail counts, composition of passing students, and
statistical parity difference / disparate impact against their fair values.

Paths default to the project layout and can be overridden with flags or
the BIAS_INPUT, BIAS_OUTPUT, BIAS_REPORT and BIAS_DPI environment variables.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
			gen := pipeline.NewGenerator(pipeline.Options{
				InputPath:  cfg.InputPath,
				OutputPath: cfg.OutputPath,
				ReportPath: cfg.ReportPath,
				DPI:        cfg.DPI,
				Stdout:     cmd.OutOrStdout(),
			}, log)
			_, err := gen.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "Path to the law school CSV")
	cmd.Flags().StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "Path of the PNG figure")
	cmd.Flags().StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "Path of the Markdown summary (empty to skip)")
	cmd.Flags().IntVar(&cfg.DPI, "dpi", cfg.DPI, "Resolution of the PNG figure")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
