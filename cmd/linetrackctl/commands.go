package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"linetrack/internal/core/shift"
	"linetrack/internal/core/version"
	"linetrack/internal/platform/config"
	perr "linetrack/internal/platform/errors"
	"linetrack/internal/platform/logger"
	"linetrack/internal/platform/net/http/bind"
	ptime "linetrack/internal/platform/time"
	prodmod "linetrack/internal/services/production/module"
	"linetrack/internal/services/production/repo"
	prodsvc "linetrack/internal/services/production/service"
	"linetrack/internal/services/reports/domain"
	repsvc "linetrack/internal/services/reports/service"
)

// globals are the persistent flags shared by every subcommand
type globals struct {
	file string
	tz   string
}

// open builds a production service over the data file; subcommands only read through it
func (g globals) open(clock ptime.Clock) (*prodsvc.Svc, error) {
	loc, err := ptime.LoadLocation(g.tz)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("unknown time zone %q", g.tz), "tz")
	}
	log := logger.Named("linetrackctl")
	return prodsvc.New(
		repo.NewFileStore(g.file),
		prodsvc.WithClock(clock),
		prodsvc.WithLocation(loc),
		prodsvc.WithLogger(log),
	), nil
}

func newRootCmd(out io.Writer, clock ptime.Clock) *cobra.Command {
	cfg := config.New()
	g := globals{
		file: prodmod.FromConfig(cfg).File,
		tz:   cfg.MayString("LINETRACK_TIMEZONE", "Local"),
	}

	root := &cobra.Command{
		Use:           "linetrackctl",
		Short:         "Inspect production line state and reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&g.file, "file", g.file, "production data file (LINETRACK_STORE_FILE)")
	root.PersistentFlags().StringVar(&g.tz, "tz", g.tz, "plant time zone (LINETRACK_TIMEZONE)")

	root.AddCommand(
		shiftCmd(&g, out, clock),
		statusCmd(&g, out, clock),
		reportsCmd(&g, out, clock),
		exportCmd(&g, out, clock),
		versionCmd(out),
	)
	return root
}

func shiftCmd(g *globals, out io.Writer, clock ptime.Clock) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Print the shift for now or for --at HH:MM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if at != "" {
				t, err := time.Parse("15:04", at)
				if err != nil {
					return perr.WithField(perr.InvalidArgf("--at %q is not HH:MM", at), "at")
				}
				_, err = fmt.Fprintf(out, "%s %s\n", at, shift.At(t))
				return err
			}
			prod, err := g.open(clock)
			if err != nil {
				return err
			}
			v, err := prod.CurrentShift(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s %s\n", v.At, v.Shift)
			return err
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "time of day as HH:MM")
	return cmd
}

func versionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			bi := version.Info("linetrackctl")
			_, err := fmt.Fprintf(out, "%s %s (%s, %s, %s)\n", bi.Service, bi.Version, bi.Commit, bi.Date, bi.Go)
			return err
		},
	}
}

func statusCmd(g *globals, out io.Writer, clock ptime.Clock) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print live progress without advancing the line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prod, err := g.open(clock)
			if err != nil {
				return err
			}
			p, err := prod.Peek(cmd.Context())
			if err != nil {
				return err
			}
			if p.Item == "" {
				_, err = fmt.Fprintln(out, "idle, nothing queued")
				return err
			}
			state := "stopped"
			if p.Running {
				state = "running"
			}
			_, err = fmt.Fprintf(out, "%s %s %d/%d (%ds per unit, %ds elapsed, %s)\n",
				p.Item, state, p.Count, p.TargetCount, p.CycleSeconds, p.ElapsedSeconds, p.Source)
			return err
		},
	}
}

// filterFlags binds the report filter flags and returns the validated query
func filterFlags(cmd *cobra.Command) func() (domain.Query, error) {
	var q domain.Query
	f := cmd.Flags()
	f.StringVar(&q.FromDate, "from", "", "first day YYYY-MM-DD, needs --to")
	f.StringVar(&q.ToDate, "to", "", "last day YYYY-MM-DD, needs --from")
	f.StringVar(&q.ReportType, "type", "", "month or shift")
	f.StringVar(&q.Month, "month", "", "YYYY-MM, with --type month")
	f.StringVar(&q.Shift, "shift", "", "A, B or C, with --type shift")
	return func() (domain.Query, error) {
		q.Shift = strings.ToUpper(q.Shift)
		if err := bind.Validate(q); err != nil {
			return domain.Query{}, err
		}
		return q, nil
	}
}

func reportsCmd(g *globals, out io.Writer, clock ptime.Clock) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List finished items, nothing is listed until a filter is given",
		Args:  cobra.NoArgs,
	}
	query := filterFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		q, err := query()
		if err != nil {
			return err
		}
		prod, err := g.open(clock)
		if err != nil {
			return err
		}
		rows, err := repsvc.New(prod).List(cmd.Context(), q)
		if err != nil {
			return err
		}
		return printReports(out, rows)
	}
	return cmd
}

func printReports(out io.Writer, rows []domain.Report) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "no reports")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(repsvc.ExportColumns, "\t"))
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%d\t%s\n",
			r.Item, r.SecondsPerItem, r.Count, r.StartTime, r.StopTime, r.TotalSeconds, r.Shift)
	}
	return tw.Flush()
}

func exportCmd(g *globals, out io.Writer, clock ptime.Clock) *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write reports to a spreadsheet, everything when no filter is given",
		Args:  cobra.NoArgs,
	}
	query := filterFlags(cmd)
	cmd.Flags().StringVar(&dest, "out", domain.ExportFileName, "destination .xlsx file")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		q, err := query()
		if err != nil {
			return err
		}
		prod, err := g.open(clock)
		if err != nil {
			return err
		}
		x, err := repsvc.New(prod).Export(cmd.Context(), q)
		if err != nil {
			return err
		}
		if x.NoData {
			_, err = fmt.Fprintln(out, domain.NoDataMessage)
			return err
		}
		if err := writeFile(dest, x.Body); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "wrote %d reports to %s\n", x.Rows, dest)
		return err
	}
	return cmd
}

func writeFile(path string, body []byte) error {
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "write %s", path)
	}
	return nil
}
