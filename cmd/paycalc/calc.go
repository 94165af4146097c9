package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/worklog"
)

func calcCmd(state *cliState) *cobra.Command {
	var (
		session  earnings.WorkSession
		overtime float64
		payType  string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate earnings for one work session",
		Example: `  paycalc calc --start 09:00 --end 17:00 --break 60 --rate 25
  paycalc calc --start 22:00 --end 06:00 --rate 20 --overtime 1.5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session.StartTime = strings.TrimSpace(session.StartTime)
			session.EndTime = strings.TrimSpace(session.EndTime)
			if overtime != 0 {
				session.IsOvertime = true
				session.OvertimeMultiplier = overtime
			}
			if payType != "" {
				isOvertime, multiplier, err := worklog.ParsePayType(payType)
				if err != nil {
					return err
				}
				session.IsOvertime = isOvertime
				session.OvertimeMultiplier = multiplier
			}

			calc, err := state.calculator()
			if err != nil {
				return err
			}
			breakdown, err := calc.Calculate(session)
			if err != nil {
				return fmt.Errorf("calculate: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(breakdown)
			}
			printBreakdown(cmd.OutOrStdout(), session, breakdown, calc.ModelName())
			return nil
		},
	}

	cmd.Flags().StringVar(&session.StartTime, "start", "", "start time (HH:MM, 24 hour)")
	cmd.Flags().StringVar(&session.EndTime, "end", "", "end time (HH:MM, 24 hour); earlier than start means overnight")
	cmd.Flags().IntVar(&session.BreakMinutes, "break", 0, "unpaid break in minutes (0-480)")
	cmd.Flags().Float64Var(&session.BaseHourlyRate, "rate", 0, "base hourly rate")
	cmd.Flags().Float64Var(&overtime, "overtime", 0, "overtime multiplier between 1.0 and 3.0")
	cmd.Flags().StringVar(&payType, "pay-type", "", "named pay rate: regular, overtime, double or triple")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the breakdown as JSON")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("rate")
	cmd.MarkFlagsMutuallyExclusive("overtime", "pay-type")

	return cmd
}
