/*
main.go - Batch reconciliation CLI

PURPOSE:
  Runs one reconciliation from files on disk and writes the export artifacts
  next to them, for scripted use and for debugging a day's numbers without
  the server.

USAGE:
  reconcile -roster roster.csv -mytime mytime.csv -date 2026-08-28 \
      [-vacation vac.csv] [-swap-out out.csv] [-swap-in in.csv] [-vet vet.csv] \
      [-shift Day] [-exclude-new-hires] [-filter-by-corner] [-out ./exports]

  The MyTime file has its banner row skipped, same as the server upload.
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phoenix/attendance-engine/config"
	"github.com/phoenix/attendance-engine/export"
	"github.com/phoenix/attendance-engine/ingest"
	"github.com/phoenix/attendance-engine/reconcile"
)

func main() {
	var (
		rosterPath   = flag.String("roster", "", "roster file (required)")
		mytimePath   = flag.String("mytime", "", "MyTime on-premises file (required)")
		vacationPath = flag.String("vacation", "", "vacation/hours file")
		swapOutPath  = flag.String("swap-out", "", "swap-out requests file")
		swapInPath   = flag.String("swap-in", "", "swap-in requests file")
		vetPath      = flag.String("vet", "", "VET/VTO opportunities file")
		date         = flag.String("date", "", "selected day, YYYY-MM-DD (required)")
		shift        = flag.String("shift", "Day", "shift schedule key")
		excludeNew   = flag.Bool("exclude-new-hires", false, "drop workers hired under 3 days ago")
		filterCorner = flag.Bool("filter-by-corner", false, "restrict roster to the day's scheduled corners")
		settingsPath = flag.String("settings", "settings.json", "site rule overrides")
		outDir       = flag.String("out", ".", "directory for export artifacts")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if *rosterPath == "" || *mytimePath == "" || *date == "" {
		flag.Usage()
		os.Exit(2)
	}

	settings, err := config.LoadSettings(*settingsPath, logger)
	if err != nil {
		fatal(logger, "loading settings", err)
	}

	files := map[string]ingest.File{}
	addFile(files, "roster", *rosterPath, false)
	addFile(files, "mytime", *mytimePath, true)
	addFile(files, "vacation", *vacationPath, false)
	addFile(files, "swap_out", *swapOutPath, false)
	addFile(files, "swap_in", *swapInPath, false)
	addFile(files, "vet", *vetPath, false)

	decoded, err := ingest.DecodeAll(files)
	if err != nil {
		fatal(logger, "decoding inputs", err)
	}

	result, err := reconcile.Run(reconcile.RunContext{
		Settings:        settings,
		Day:             *date,
		Shift:           *shift,
		ExcludeNewHires: *excludeNew,
		FilterByCorner:  *filterCorner,
		Sources: reconcile.Sources{
			Roster:        decoded["roster"],
			Timeclock:     decoded["mytime"],
			Leave:         decoded["vacation"],
			SwapOut:       decoded["swap_out"],
			SwapIn:        decoded["swap_in"],
			Opportunities: decoded["vet"],
		},
		Logger: logger,
	})
	if err != nil {
		fatal(logger, "reconciliation", err)
	}

	if err := writeArtifacts(*outDir, result); err != nil {
		fatal(logger, "writing exports", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fatal(logger, "encoding result", err)
	}
}

func writeArtifacts(dir string, result *reconcile.Result) error {
	artifacts := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{"reconciliation_" + result.Day + ".csv", func() ([]byte, error) { return export.ReconciliationCSV(result) }},
		{"audit_" + result.Day + ".csv", func() ([]byte, error) { return export.AuditCSV(result.Audit) }},
		{"no_shows_" + result.Day + ".csv", func() ([]byte, error) { return export.NoShowCSV(result.NoShows) }},
		{"site_split_" + result.Day + ".xlsx", func() ([]byte, error) { return export.SiteSplitWorkbook(result) }},
	}
	for _, a := range artifacts {
		data, err := a.render()
		if err != nil {
			return fmt.Errorf("%s: %w", a.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, a.name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func addFile(files map[string]ingest.File, source, path string, skipRow bool) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
		os.Exit(1)
	}
	files[source] = ingest.File{Name: filepath.Base(path), Data: data, SkipFirstDataRow: skipRow}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
