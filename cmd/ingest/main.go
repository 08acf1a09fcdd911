package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"github.com/KevinKasozi/MatchWise/internal/app"
	"github.com/KevinKasozi/MatchWise/internal/config"
	"github.com/KevinKasozi/MatchWise/internal/infrastructure/repository/memory"
	"github.com/KevinKasozi/MatchWise/internal/infrastructure/repository/postgres"
	"github.com/KevinKasozi/MatchWise/internal/ingest"
	"github.com/KevinKasozi/MatchWise/internal/ingest/mapper"
	"github.com/KevinKasozi/MatchWise/internal/ingest/verify"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "run":
		err = runIngestion(ctx, cfg, logger, os.Args[2:])
	case "build-mapper":
		err = buildMapper(cfg, logger, os.Args[2:])
	case "verify":
		err = runVerify(ctx, cfg, logger, os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func runIngestion(ctx context.Context, cfg config.Config, logger *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	force := fs.Bool("force", false, "reprocess files whose content hash is unchanged")
	league := fs.String("league", "", "restrict the run to one league directory")
	parallel := fs.Bool("parallel", false, "fan files out across workers")
	workers := fs.Int("workers", cfg.IngestWorkers, "worker count for parallel runs")
	dryRun := fs.Bool("dry-run", false, "parse and resolve without writing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.SeedOnStart {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	resolver, err := app.LoadMapper(cfg, logger)
	if err != nil {
		return err
	}

	runner := app.NewRunner(cfg, app.NewRepositories(db, cfg), resolver, logger)

	summary, err := runner.Run(ctx, ingest.Options{
		Force:    *force,
		League:   *league,
		Parallel: *parallel,
		Workers:  *workers,
		DryRun:   *dryRun,
	})
	if err != nil {
		return err
	}

	if queue := resolver.ReviewQueue(); len(queue) > 0 {
		if err := writeReviewQueue(cfg.ReviewQueuePath, queue); err != nil {
			logger.Warn("write review queue", "path", cfg.ReviewQueuePath, "error", err)
		} else {
			logger.Info("ambiguous names queued for review", "path", cfg.ReviewQueuePath, "names", len(queue))
		}
	}

	return printJSON(summary)
}

func writeReviewQueue(path string, queue []mapper.ReviewItem) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	raw, err := sonic.ConfigStd.MarshalIndent(queue, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func buildMapper(cfg config.Config, logger *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("build-mapper", flag.ExitOnError)
	out := fs.String("out", defaultMapperPath(cfg), "path for the mapper artifact")
	useDB := fs.Bool("use-db", false, "merge stored club rows and aliases into the mapper")
	if err := fs.Parse(args); err != nil {
		return err
	}

	builder := mapper.NewBuilder(logger)
	builder.AddClubs(memory.SeedClubs())
	if *useDB {
		ctx := context.Background()
		db, err := app.OpenDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		stored, err := app.NewRepositories(db, cfg).Clubs.List(ctx)
		if err != nil {
			return fmt.Errorf("list stored clubs: %w", err)
		}
		builder.AddClubs(stored)
	}
	if err := builder.ScanRoot(cfg.DataPath); err != nil {
		return fmt.Errorf("scan data root: %w", err)
	}

	m := builder.Build()
	if err := m.Save(*out); err != nil {
		return err
	}

	logger.Info("mapper artifact written", "path", *out, "variants", m.Len())
	return nil
}

func runVerify(ctx context.Context, cfg config.Config, logger *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	out := fs.String("out", "", "optional path for the JSON report")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repos := app.NewRepositories(db, cfg)
	verifier := verify.NewVerifier(verify.VerifierParams{
		DataPath:     cfg.DataPath,
		Clubs:        repos.Clubs,
		Teams:        repos.Teams,
		Competitions: repos.Competitions,
		Seasons:      repos.Seasons,
		Fixtures:     repos.Fixtures,
		Logger:       logger,
	})

	report, err := verifier.Run(ctx)
	if err != nil {
		return err
	}

	if *out != "" {
		if err := report.Save(*out); err != nil {
			return err
		}
		logger.Info("verification report written", "path", *out, "issues", len(report.Issues))
	}

	if err := printJSON(report); err != nil {
		return err
	}
	if len(report.Issues) > 0 {
		return fmt.Errorf("verification found %d issue(s)", len(report.Issues))
	}
	return nil
}

func defaultMapperPath(cfg config.Config) string {
	if cfg.TeamMapperPath != "" {
		return cfg.TeamMapperPath
	}
	return filepath.Join(".ingest", "team-mapper.json")
}

func printJSON(v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: %s <run|build-mapper|verify> [flags]\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s run -parallel -workers 4\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(os.Stderr, "  %s run -league eng-england -force\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(os.Stderr, "  %s build-mapper -out .ingest/team-mapper.json\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(os.Stderr, "  %s verify -out .ingest/verify-report.json\n", filepath.Base(os.Args[0]))
}
