package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/export"
	"github.com/spec-kit/cdce-console/internal/report"
	"github.com/spec-kit/cdce-console/internal/service"
)

func runBackup(ctx context.Context, app *console, args []string, stdout io.Writer) error {
	fs := app.newFlagSet("backup")
	out := fs.StringP("output", "o", "", "write the backup to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	file, err := app.backup.Export(ctx)
	if err != nil {
		return err
	}
	return writeOutput(*out, file.Content, stdout)
}

func runRestore(ctx context.Context, app *console, args []string, stdout io.Writer) error {
	fs := app.newFlagSet("restore")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("restore needs exactly one backup file")
	}
	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	counts, err := app.backup.Restore(ctx, raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %d tickets, %d items\n", service.MessageFor(events.EventBackupRestored), counts.Tickets, counts.Inventory)
	return nil
}

func runExport(_ context.Context, app *console, args []string, stdout io.Writer) error {
	fs := app.newFlagSet("export")
	formatFlag := fs.String("format", string(export.FormatPDF), "pdf, word or email")
	query := fs.StringP("query", "q", "", "search text")
	out := fs.StringP("output", "o", "", "write the document to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("export needs a list: history or inventory")
	}
	format, err := export.ParseFormat(*formatFlag, export.FormatPDF, export.FormatWord, export.FormatEmail)
	if err != nil {
		return err
	}

	var (
		titles  export.Titles
		records []export.Record
	)
	switch fs.Arg(0) {
	case "history":
		titles = export.HistoryTitles
		records = export.HistoryRecords(app.tickets.History(*query))
	case "inventory":
		titles = export.InventoryTitles
		records = export.InventoryRecords(app.inventory.Filter(service.InventoryFilter{Query: *query}))
	default:
		return fmt.Errorf("unknown list %q", fs.Arg(0))
	}

	at := app.deps.Clock.Now().In(app.cfg.App.Location())
	var doc export.Document
	switch format {
	case export.FormatEmail:
		fmt.Fprintln(stdout, export.RecordsMailto(titles.Email, len(records), at).URL)
		return nil
	case export.FormatWord:
		doc, err = export.RecordsWord(titles.Document, records, at)
	default:
		doc, err = export.RecordsPDF(titles.Document, records, at)
	}
	if err != nil {
		return err
	}
	return writeOutput(*out, doc.Content, stdout)
}

func runReport(ctx context.Context, app *console, args []string, stdout io.Writer) error {
	fs := app.newFlagSet("report")
	start := fs.String("start", "", "first day, YYYY-MM-DD")
	end := fs.String("end", "", "last day, YYYY-MM-DD")
	formatFlag := fs.String("format", string(export.FormatText), "text, pdf or word")
	out := fs.StringP("output", "o", "", "write the document to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	format, err := export.ParseFormat(*formatFlag, export.FormatText, export.FormatPDF, export.FormatWord)
	if err != nil {
		return err
	}

	req := report.PeriodRequest{Mode: report.ModeAuto}
	if *start != "" || *end != "" {
		req = report.PeriodRequest{Mode: report.ModeManual, Start: *start, End: *end}
	}
	r, err := app.reports.Generate(ctx, req)
	if err != nil {
		return err
	}

	var doc export.Document
	switch format {
	case export.FormatPDF:
		doc, err = export.ReportPDF(app.profile, r)
	case export.FormatWord:
		doc, err = export.ReportWord(app.profile, r)
	default:
		doc = export.ReportText(app.profile, r)
	}
	if err != nil {
		return err
	}
	return writeOutput(*out, doc.Content, stdout)
}

func runSeed(ctx context.Context, app *console, args []string, stdout io.Writer) error {
	fs := app.newFlagSet("seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	tickets, inventory := domain.SampleTickets(), domain.SampleInventory()
	if err := app.state.ReplaceAll(ctx, tickets, inventory); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "seeded %d tickets, %d items\n", len(tickets), len(inventory))
	return nil
}
