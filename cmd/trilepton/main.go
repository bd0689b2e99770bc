// Command trilepton runs the three-lepton signal-region selection over a
// JSON-lines event file and reports, plots and stores the cutflows.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/banshee-data/trilepton/internal/config"
	"github.com/banshee-data/trilepton/internal/db"
	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/fsutil"
	"github.com/banshee-data/trilepton/internal/report"
	"github.com/banshee-data/trilepton/internal/runner"
	"github.com/banshee-data/trilepton/internal/version"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: trilepton <command> [options]

Commands:
  run       process an event file
  runs      list stored runs
  migrate   apply pending schema migrations and print the version
  version   print build information
`)
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "run":
		err = runCommand(ctx, args, os.Stdout)
	case "runs":
		err = runsCommand(ctx, args, os.Stdout)
	case "migrate":
		err = migrateCommand(args, os.Stdout)
	case "version":
		fmt.Println(version.String())
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		usage(os.Stderr)
		log.Fatalf("unknown command %q", cmd)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

type runFlags struct {
	input    string
	config   string
	dbPath   string
	plotsDir string
	htmlPath string
	workers  int
	noWeight bool
	progress int64
}

func parseRunFlags(args []string, env config.Env) (runFlags, error) {
	var f runFlags
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.StringVar(&f.input, "input", "", "JSON-lines event file (- for stdin)")
	fs.StringVar(&f.config, "config", env.ConfigPath, "analysis config JSON (defaults when empty)")
	fs.StringVar(&f.dbPath, "db", env.DBPath, "SQLite results database (not stored when empty)")
	fs.StringVar(&f.plotsDir, "plots", env.PlotsDir, "directory for PNG histograms")
	fs.StringVar(&f.htmlPath, "html", "", "write an HTML cutflow report to this file")
	fs.IntVar(&f.workers, "workers", env.Workers, "number of concurrent workers")
	fs.BoolVar(&f.noWeight, "no-weight", false, "ignore generator event weights")
	fs.Int64Var(&f.progress, "progress", 0, "log progress every n events (0 disables)")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.input == "" {
		return f, errors.New("-input is required")
	}
	if f.workers < 1 {
		return f, fmt.Errorf("-workers must be at least 1, got %d", f.workers)
	}
	return f, nil
}

func loadAnalysisConfig(path string) (*config.AnalysisConfig, error) {
	if path == "" {
		return config.EmptyAnalysisConfig(), nil
	}
	return config.LoadAnalysisConfig(path)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(filepath.Clean(path))
}

func runCommand(ctx context.Context, args []string, stdout io.Writer) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	f, err := parseRunFlags(args, env)
	if err != nil {
		return err
	}

	acfg, err := loadAnalysisConfig(f.config)
	if err != nil {
		return err
	}
	if f.noWeight {
		off := false
		acfg.UseEventWeights = &off
	}

	in, err := openInput(f.input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	sum, err := runner.Run(ctx, event.NewDecoder(in), runner.Options{
		Workers:       f.workers,
		Config:        acfg.EngineConfig(),
		ProgressEvery: f.progress,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "events: %d  skipped (zero weight): %d\n\n", sum.Events, sum.Skipped)
	if err := sum.Manager.WriteReport(stdout); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if f.plotsDir != "" {
		paths, err := report.WritePNGs(fsutil.OSFileSystem{}, f.plotsDir, sum.Manager)
		if err != nil {
			return err
		}
		log.Printf("wrote %d plots to %s", len(paths), f.plotsDir)
	}

	if f.htmlPath != "" {
		title := "trilepton: " + filepath.Base(f.input)
		if err := report.WriteHTMLFile(fsutil.OSFileSystem{}, f.htmlPath, title, sum.Manager); err != nil {
			return err
		}
		log.Printf("wrote %s", f.htmlPath)
	}

	if f.dbPath != "" {
		id, err := storeRun(ctx, f, acfg, sum)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nrun %s stored in %s\n", id, f.dbPath)
	}
	return nil
}

func storeRun(ctx context.Context, f runFlags, acfg *config.AnalysisConfig, sum *runner.Summary) (string, error) {
	database, err := db.NewDB(f.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	cfgJSON, err := json.Marshal(acfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	run := &db.Run{
		Input:      f.input,
		ConfigJSON: string(cfgJSON),
		Workers:    f.workers,
		Events:     sum.Events,
		Skipped:    sum.Skipped,
		StartedAt:  sum.Started,
		FinishedAt: sum.Started.Add(sum.Elapsed),
		Version:    version.String(),
	}
	if err := database.RecordRun(ctx, run, sum.Manager); err != nil {
		return "", err
	}
	return run.ID, nil
}

func runsCommand(ctx context.Context, args []string, stdout io.Writer) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	dbPath := fs.String("db", env.DBPath, "SQLite results database")
	limit := fs.Int("limit", 20, "maximum number of runs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		return errors.New("-db is required")
	}

	database, err := db.NewDB(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(ctx, *limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(stdout, "%s  %s  events=%d skipped=%d workers=%d  %s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Events, r.Skipped, r.Workers, r.Input)
	}
	return nil
}

func migrateCommand(args []string, stdout io.Writer) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	dbPath := fs.String("db", env.DBPath, "SQLite results database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		return errors.New("-db is required")
	}
	// NewDB migrates to the latest version on open.
	database, err := db.NewDB(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	v, dirty, err := database.MigrateVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "schema version %d (dirty=%v)\n", v, dirty)
	return nil
}
