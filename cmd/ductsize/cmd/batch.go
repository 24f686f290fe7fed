package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Airduct/internal/calc/batch"
	"Airduct/internal/calc/importer"
	"Airduct/internal/calc/rect"
	"Airduct/internal/calc/report"
	"Airduct/internal/logging"
)

func batchCmd(g *globals) *cobra.Command {
	var (
		pdfPath, xlsxPath string
		project, author   string
		title             string
	)
	cmd := &cobra.Command{
		Use:   "batch <schedule.xlsx>",
		Short: "Size every segment of an Excel duct schedule",
		Long: `Size every row of the first sheet of an Excel schedule.

Columns: tag, cfm, mode, friction_rate, velocity_fpm, insulation_in,
preset, policy. The first row is a header.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := importer.Parse(f)
			if err != nil {
				return err
			}
			for _, rej := range s.Rejected {
				logging.Warn("row rejected", zap.Int("row", rej.Row), zap.String("reason", rej.Message))
			}
			if len(s.Items) == 0 {
				return fmt.Errorf("%s: no valid rows", args[0])
			}
			batch.ApplyDefaultPolicy(s.Items, rect.Policy(g.cfg.Sizing.DefaultPolicy))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			res, err := batch.Calculate(ctx, batch.Input{Items: s.Items}, g.cfg.Sizing.Workers)
			if err != nil {
				return err
			}

			rep := report.Report{
				Title:    title,
				Project:  project,
				Author:   author,
				Date:     time.Now(),
				Segments: res.Results,
			}
			if rep.Project == "" {
				rep.Project = filepath.Base(args[0])
			}
			if err := writeFile(pdfPath, rep, report.WritePDF); err != nil {
				return err
			}
			if err := writeFile(xlsxPath, rep, report.WriteXLSX); err != nil {
				return err
			}

			out := struct {
				batch.Result
				Rejected []importer.RowError `json:"rejected"`
			}{res, s.Rejected}
			return g.emit(cmd, out, func(w io.Writer) {
				fmt.Fprintln(w, "TAG\tCFM\tMODE\tROUND\tVELOCITY\tFRICTION\tBEST RECTANGULAR\tNOTE")
				for _, r := range res.Results {
					if !r.OK() {
						fmt.Fprintf(w, "%s\t%s\t%s\t\t\t\t\t%s\n", r.Tag, num(r.Input.CFM, 0), r.Input.Mode, r.Error)
						continue
					}
					best := "-"
					if alts := r.Result.Alternatives; len(alts) > 0 {
						best = fmt.Sprintf("%vx%v", alts[0].WidthIn, alts[0].HeightIn)
					}
					note := ""
					if r.Result.Round.NonStandard {
						note = "non-standard"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						r.Tag, num(r.Input.CFM, 0), r.Input.Mode,
						num(r.Result.Round.NominalSizeIn, 0),
						num(r.Result.Round.VelocityFPM, 0),
						num(r.Result.Round.FrictionRate, 3),
						best, note)
				}
				fmt.Fprintf(w, "\n%d sized, %d failed, %d rows rejected\n",
					res.Count-res.Failed, res.Failed, len(s.Rejected))
			})
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF report to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an Excel report to this path")
	cmd.Flags().StringVar(&title, "title", "", "report title")
	cmd.Flags().StringVar(&project, "project", "", "project name for reports (default: schedule file name)")
	cmd.Flags().StringVar(&author, "author", "", "report author")
	return cmd
}

func writeFile(path string, rep report.Report, write func(io.Writer, report.Report) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, rep); err != nil {
		f.Close()
		return err
	}
	logging.Debug("report written", zap.String("path", path))
	return f.Close()
}
