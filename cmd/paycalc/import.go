package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"worktracker/internal/domain/timesheet"
	"worktracker/internal/domain/worklog"
)

type sheetOptions struct {
	rate    float64
	project string
}

func (o *sheetOptions) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.rate, "rate", 0, "hourly rate applied to every row")
	cmd.Flags().StringVar(&o.project, "project", "", "project name (default: file name)")
	_ = cmd.MarkFlagRequired("rate")
}

// loadSheet imports the CSV or XLSX file at path for a single project.
func loadSheet(cmd *cobra.Command, state *cliState, path string, opts sheetOptions) (timesheet.Result, error) {
	format, err := timesheet.DetectFormat(path, "")
	if err != nil {
		return timesheet.Result{}, err
	}
	name := strings.TrimSpace(opts.project)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	project := worklog.Project{Name: name, HourlyRate: opts.rate}.Normalize()
	if err := project.Validate(); err != nil {
		return timesheet.Result{}, err
	}

	calc, err := state.calculator()
	if err != nil {
		return timesheet.Result{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return timesheet.Result{}, fmt.Errorf("open timesheet: %w", err)
	}
	defer f.Close()

	ctx := zerolog.Ctx(cmd.Context()).With().Str("file", path).Logger().WithContext(cmd.Context())
	return timesheet.NewImporter(calc).Import(ctx, f, format, project)
}

func importCmd(state *cliState) *cobra.Command {
	var (
		opts sheetOptions
		out  string
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a CSV or XLSX timesheet and compute every row",
		Long: `Import reads a timesheet with date, start and end columns (break,
description and overtime are optional) and computes earnings for each row.
Rows that cannot be read are listed with their spreadsheet row number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := loadSheet(cmd, state, args[0], opts)
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), result)

			if out == "" {
				return nil
			}
			format, err := timesheet.DetectFormat(out, "")
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := timesheet.Export(f, format, result.Entries); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mutedStyle.Render("wrote"), out)
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write computed entries to a .csv or .xlsx file")
	return cmd
}
