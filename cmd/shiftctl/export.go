package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arnavshah/help-scheduler-go/pkg/calendar"
	"github.com/arnavshah/help-scheduler-go/pkg/config"
	"github.com/arnavshah/help-scheduler-go/pkg/database"
	"github.com/arnavshah/help-scheduler-go/pkg/grid"
	"github.com/arnavshah/help-scheduler-go/pkg/period"
	"github.com/arnavshah/help-scheduler-go/pkg/report"
	"github.com/arnavshah/help-scheduler-go/pkg/roster"
	"github.com/arnavshah/help-scheduler-go/pkg/schedule"
	"github.com/spf13/cobra"
)

// exporter holds what every export subcommand needs once the month is loaded.
type exporter struct {
	cfg    config.Config
	roster *roster.Roster
	svc    *schedule.Service
	month  period.Month
	grid   *grid.Grid
	days   []calendar.Day
}

type exportFlags struct {
	year, month int
	out         string
}

func exportCmd() *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write schedule reports to files",
	}
	cmd.PersistentFlags().IntVar(&f.year, "year", 0, "Business month year (default: current month)")
	cmd.PersistentFlags().IntVar(&f.month, "month", 0, "Business month, 1-12 (default: current month)")
	cmd.PersistentFlags().StringVarP(&f.out, "out", "o", "", "Output file (default: the report's download name)")

	var area, employee, store string

	help := &cobra.Command{
		Use:   "help",
		Short: "Help table PDF of every employee, or of one staff area",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd.Context(), f)
			if err != nil {
				return err
			}
			pdf, err := e.pdf()
			if err != nil {
				return err
			}
			employees := e.roster.Employees()
			if area != "" {
				employees = e.roster.StaffArea(area)
			}
			tables := report.HelpTables(e.grid, e.days, employees, area)
			return save(cmd, f.out, report.HelpPDFName(e.month), func(w io.Writer) error {
				return pdf.WriteHelpTable(w, tables)
			})
		},
	}
	help.Flags().StringVar(&area, "area", "", "Staff area to include")

	emp := &cobra.Command{
		Use:   "employee",
		Short: "Schedule PDF of one employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd.Context(), f)
			if err != nil {
				return err
			}
			if !e.roster.HasEmployee(employee) {
				return fmt.Errorf("%w: %q", schedule.ErrUnknownEmployee, employee)
			}
			pdf, err := e.pdf()
			if err != nil {
				return err
			}
			t := report.Employee(e.grid, e.days, employee)
			return save(cmd, f.out, report.EmployeePDFName(e.month, employee), func(w io.Writer) error {
				return pdf.WriteEmployee(w, t)
			})
		},
	}
	emp.Flags().StringVar(&employee, "employee", "", "Employee name")
	emp.MarkFlagRequired("employee")

	st := &cobra.Command{
		Use:   "store",
		Short: "Schedule PDF of one store with its help requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd.Context(), f)
			if err != nil {
				return err
			}
			if !e.roster.HasStore(store) {
				return fmt.Errorf("%w: %q", schedule.ErrUnknownStore, store)
			}
			pdf, err := e.pdf()
			if err != nil {
				return err
			}
			requests, err := e.svc.RawHelpRequests(cmd.Context(), e.month)
			if err != nil {
				return err
			}
			t := report.Store(e.grid, e.days, store, requests)
			return save(cmd, f.out, report.StorePDFName(e.month, store), func(w io.Writer) error {
				return pdf.WriteStore(w, t)
			})
		},
	}
	st.Flags().StringVar(&store, "store", "", "Store name")
	st.MarkFlagRequired("store")

	xlsx := &cobra.Command{
		Use:   "xlsx",
		Short: "Help table spreadsheet of every employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd.Context(), f)
			if err != nil {
				return err
			}
			return save(cmd, f.out, report.HelpXLSXName(e.month), func(w io.Writer) error {
				return report.WriteHelpXLSX(w, e.grid, e.days, e.roster.Employees(), e.roster.Palette)
			})
		},
	}

	cmd.AddCommand(help, emp, st, xlsx)
	return cmd
}

func load(ctx context.Context, f exportFlags) (*exporter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	r, err := roster.LoadOrDefault(cfg.RosterPath)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	holidays := calendar.NewRemote(cfg.HolidayAPI)
	holidays.Load(ctx)
	svc := schedule.NewService(database.NewStore(db), r, holidays)

	m := svc.CurrentMonth()
	if f.year != 0 || f.month != 0 {
		if m, err = period.Parse(f.year, f.month); err != nil {
			return nil, err
		}
	}

	g, err := svc.Grid(ctx, m)
	if err != nil {
		return nil, err
	}
	return &exporter{cfg: cfg, roster: r, svc: svc, month: m, grid: g, days: svc.Days(m)}, nil
}

func (e *exporter) pdf() (*report.PDF, error) {
	fonts, err := report.LoadFonts(e.cfg.FontPath, e.cfg.BoldFontPath)
	if err != nil {
		return nil, err
	}
	return report.NewPDF(e.roster.Palette, fonts), nil
}

// save writes a report to path, or to name in the working directory. A
// partial file is removed on failure.
func save(cmd *cobra.Command, path, name string, write func(io.Writer) error) error {
	if path == "" {
		path = name
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
