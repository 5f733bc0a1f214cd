package presentation

import (
	"fmt"
	"io"

	"mojiport/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintInventory lists every record after a count header.
func (p Printer) PrintInventory(inv domain.Inventory) {
	fmt.Fprintf(p.Writer, "Found %d custom emoji (aliases excluded).\n", len(inv))
	if len(inv) == 0 {
		return
	}
	fmt.Fprintln(p.Writer)
	for _, rec := range inv {
		fmt.Fprintf(p.Writer, "  %s  %s\n", rec.Name, rec.SourceURL)
	}
}

func (p Printer) PrintDownload(report domain.DownloadReport) {
	total := len(report.Assets) + len(report.Failed)
	fmt.Fprintf(p.Writer, "Downloaded %d of %d images.\n", len(report.Assets), total)
	if len(report.Failed) == 0 {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, "Failed downloads:")
	for _, name := range report.Failed {
		fmt.Fprintln(p.Writer, "  "+name)
	}
}

func (p Printer) PrintUpload(report domain.UploadReport) {
	fmt.Fprintf(p.Writer, "Uploaded %d, skipped %d (already present), failed %d.\n",
		report.Uploaded(), report.Skipped(), report.Failed())
	if report.Failed() == 0 {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, "Failed uploads:")
	for _, outcome := range report {
		if outcome.Status != domain.StatusFailed {
			continue
		}
		if p.Verbose && outcome.Reason != "" {
			fmt.Fprintf(p.Writer, "  %s  (%s)\n", outcome.Name, outcome.Reason)
		} else {
			fmt.Fprintln(p.Writer, "  "+outcome.Name)
		}
	}
}

func (p Printer) PrintExport(report domain.ExportReport) {
	fmt.Fprintf(p.Writer, "Listed %d custom emoji.\n", report.Listed)
	fmt.Fprintln(p.Writer)
	p.PrintDownload(report.Download)
	fmt.Fprintln(p.Writer)
	p.PrintUpload(report.Upload)
}
