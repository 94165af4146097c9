package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/platform/config"
	"worktracker/internal/platform/logging"
)

var version = "dev"

type cliState struct {
	cfgFile  string
	logLevel string
	model    string
	cfg      config.Config
	logger   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{}
	root := &cobra.Command{
		Use:   "paycalc",
		Short: "Work session earnings calculator",
		Long: `paycalc turns clock times, breaks and overtime into hours, gross pay,
itemized deductions and net pay. It can import CSV or XLSX timesheets,
summarize them and serve the same calculations over HTTP.`,
		SilenceUsage:      true,
		PersistentPreRunE: state.init,
	}

	root.PersistentFlags().StringVar(&state.cfgFile, "config", "", "config file (yaml, json or toml); environment variables take precedence")
	root.PersistentFlags().StringVar(&state.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&state.model, "model", "", "deduction model: flat or annualized (default from DEDUCTION_MODEL)")

	root.AddCommand(calcCmd(state))
	root.AddCommand(importCmd(state))
	root.AddCommand(reportCmd(state))
	root.AddCommand(serveCmd(state))
	root.AddCommand(versionCmd())
	return root
}

func (s *cliState) init(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFile(s.cfgFile)
	if err != nil {
		return err
	}
	if s.logLevel != "" {
		cfg.LogLevel = s.logLevel
	}
	if s.model != "" {
		cfg.DeductionModel = s.model
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogPretty)
	log.Logger = s.logger
	cmd.SetContext(s.logger.WithContext(cmd.Context()))
	return nil
}

func (s *cliState) calculator() (*earnings.Calculator, error) {
	model, err := earnings.ModelByName(s.cfg.DeductionModel)
	if err != nil {
		return nil, err
	}
	return earnings.NewCalculator(model), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paycalc %s\n", version)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
