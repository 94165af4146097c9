package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"worktracker/internal/domain/reports"
	"worktracker/internal/domain/statement"
	"worktracker/internal/domain/worklog"
)

func reportCmd(state *cliState) *cobra.Command {
	var (
		opts          sheetOptions
		from, to      string
		lastDays      int
		statementPath string
		owner         string
	)

	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Summarize a timesheet by day and optionally render a PDF statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := worklog.ParseDate(from)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			toDate, err := worklog.ParseDate(to)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}
			filter := reports.Filter{From: fromDate, To: toDate}
			if lastDays > 0 && from == "" && to == "" {
				filter = reports.LastNDays(time.Now(), lastDays)
			}

			result, err := loadSheet(cmd, state, args[0], opts)
			if err != nil {
				return err
			}
			if result.Failed > 0 {
				printImportResult(cmd.ErrOrStderr(), result)
			}

			report := reports.Summarize(result.Entries, filter)
			printReport(cmd.OutOrStdout(), report)

			if statementPath == "" {
				return nil
			}
			f, err := os.Create(statementPath)
			if err != nil {
				return fmt.Errorf("create statement: %w", err)
			}
			err = statement.Render(f, statement.Statement{
				Owner:   owner,
				From:    filter.From,
				To:      filter.To,
				Entries: result.Entries,
			})
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return fmt.Errorf("render statement: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mutedStyle.Render("wrote"), statementPath)
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVar(&from, "from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().IntVar(&lastDays, "last", 0, "only the last N days, when --from and --to are not set")
	cmd.Flags().StringVar(&statementPath, "statement", "", "render a PDF earnings statement to this path")
	cmd.Flags().StringVar(&owner, "owner", "", "name printed on the statement")
	return cmd
}
