package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/watchfour/shiftlog/internal/export"
	"github.com/watchfour/shiftlog/internal/utils"
)

type ExportCmd struct {
	Format string `help:"Output format (csv, txt, xlsx)." default:"csv"`
	From   string `help:"Range start (YYYY-MM-DD); defaults to the first of the current month."`
	To     string `help:"Range end (YYYY-MM-DD); defaults to today."`
	Out    string `help:"Output file path; defaults to stdout (csv/txt) or shiftlog-export.xlsx."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	now := utils.NowInRosterZone()
	from := c.From
	if from == "" {
		from = utils.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	}
	to := c.To
	if to == "" {
		to = utils.FormatDate(now)
	}

	report, err := export.BuildReport(ctx.Store, from, to)
	if err != nil {
		return err
	}

	if format == export.FormatXLSX {
		out := c.Out
		if out == "" {
			out = "shiftlog-export.xlsx"
		}
		if err := report.WriteXLSX(out); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d entries and %d notes to %s\n", len(report.Entries), len(report.Notes), out)
		return nil
	}

	w := os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case export.FormatCSV:
		err = report.WriteCSV(w)
	case export.FormatTXT:
		err = report.WriteTXT(w)
	}
	if err != nil {
		return err
	}
	if c.Out != "" {
		fmt.Printf("✓ Exported %d entries and %d notes to %s\n", len(report.Entries), len(report.Notes), c.Out)
	}
	return nil
}
