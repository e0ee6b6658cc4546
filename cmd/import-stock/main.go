// Command import-stock loads a dealer stock export (.csv or .xlsx) into the
// stock table, upserting rows by ad id.
//
// Usage:
//
//	import-stock --file=stock.xlsx [--sheet=Hoja1] [--delimiter=";"] [--dry-run]
//
// Flags override the import config (--import-config YAML or STOCK_FILE_* env).
// Exit codes: 0 = success, 1 = error, 2 = finished with row errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/heartmarshall/cvo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cvo-backend/internal/adapter/postgres/stock"
	"github.com/heartmarshall/cvo-backend/internal/app"
	"github.com/heartmarshall/cvo-backend/internal/app/stockfile"
	"github.com/heartmarshall/cvo-backend/internal/config"
	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/service/stockimport"
)

func main() {
	importConfigPath := flag.String("import-config", "", "path to import config YAML")
	file := flag.String("file", "", "stock export to import (.csv or .xlsx)")
	sheet := flag.String("sheet", "", "xlsx sheet name (default: first sheet)")
	delimiter := flag.String("delimiter", "", "csv delimiter (default: ,)")
	dryRun := flag.Bool("dry-run", false, "parse the file without writing")
	flag.Parse()

	importCfg, err := stockfile.LoadConfig(*importConfigPath)
	if err != nil {
		log.Fatalf("load import config: %v", err)
	}
	if *file != "" {
		importCfg.Path = *file
	}
	if *sheet != "" {
		importCfg.Sheet = *sheet
	}
	if *delimiter != "" {
		importCfg.Delimiter = *delimiter
	}
	importCfg.DryRun = importCfg.DryRun || *dryRun

	if importCfg.Path == "" {
		fmt.Fprintln(os.Stderr, "Usage: import-stock --file=stock.xlsx [--sheet=NAME] [--delimiter=;] [--dry-run]")
		os.Exit(1)
	}
	comma, err := importCfg.Comma()
	if err != nil {
		log.Fatal(err)
	}

	rows, err := stockfile.Parse(importCfg.Path, importCfg.Sheet, comma)
	if err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
	color.Cyan("Read %d rows from %s", len(rows), filepath.Base(importCfg.Path))

	if importCfg.DryRun {
		color.Yellow("Dry run: nothing written")
		return
	}

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	logger := app.NewLogger(appCfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := stockimport.NewService(logger, stock.New(pool), nil)

	bar := progressBar(len(rows), "Importing stock")
	res, err := svc.ImportBatch(ctx, rows, filepath.Base(importCfg.Path), func(done, total int) {
		_ = bar.Set(done)
	})
	_ = bar.Finish()
	fmt.Println()

	printSummary(res)
	if err != nil {
		color.Red("✗ %v", err)
		pool.Close()
		os.Exit(1)
	}
	if res.Errors > 0 {
		pool.Close()
		os.Exit(2)
	}
}

func progressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func printSummary(res domain.StockImportResult) {
	color.Green("✓ %d inserted, %d updated", res.Inserted, res.Updated)
	if res.Errors == 0 {
		return
	}
	color.Red("✗ %d of %d rows failed", res.Errors, res.TotalProcessed)
	for _, d := range res.ErrorDetails {
		color.Red("  %s", d)
	}
}
