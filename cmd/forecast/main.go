package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/forecast-engine/internal/config"
	"github.com/andresuchdata/forecast-engine/internal/forecast"
	"github.com/andresuchdata/forecast-engine/internal/repository/postgres"
	"github.com/andresuchdata/forecast-engine/internal/service"
	"github.com/andresuchdata/forecast-engine/internal/storage"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newTenantFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "tenant",
		Usage:    "Tenant to build the report for",
		Required: true,
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "forecast",
		Usage: "Build forecast reports from the command line",
		Commands: []*cli.Command{
			{
				Name:  "report",
				Usage: "Build a full forecast report for one tenant and print it as JSON",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newTenantFlag(),
					&cli.StringFlag{
						Name:  "as-of",
						Usage: "Report reference time (RFC3339), defaults to now",
					},
					&cli.IntFlag{
						Name:  "window-days",
						Usage: "Analysis window in days",
						Value: forecast.DefaultAnalysisWindowDays,
					},
					&cli.IntFlag{
						Name:  "lead-time-days",
						Usage: "Supplier lead time in days",
						Value: forecast.DefaultLeadTimeDays,
					},
					&cli.IntFlag{
						Name:  "safety-days",
						Usage: "Safety buffer in days",
						Value: forecast.DefaultSafetyDays,
					},
					&cli.BoolFlag{
						Name:  "archive",
						Usage: "Also upload the report to object storage",
						Value: false,
					},
				},
				Action: runReport,
			},
			{
				Name:  "list",
				Usage: "List archived reports for one tenant",
				Flags: []cli.Flag{
					newTenantFlag(),
				},
				Action: runList,
			},
			{
				Name:  "show",
				Usage: "Print one archived report by its object key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Object key of the archived report",
						Required: true,
					},
				},
				Action: runShow,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runReport(c *cli.Context) error {
	asOf := time.Now().UTC()
	if raw := c.String("as-of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("invalid --as-of value: %w", err)
		}
		asOf = parsed
	}

	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var archive *storage.ReportArchive
	if c.Bool("archive") {
		archive, err = newArchive()
		if err != nil {
			return err
		}
	}

	repo := postgres.NewForecastRepository(db)
	defaults := forecast.Config{
		AnalysisWindowDays: c.Int("window-days"),
		LeadTimeDays:       c.Int("lead-time-days"),
		SafetyDays:         c.Int("safety-days"),
	}
	svc := service.NewForecastService(repo, nil, archive, defaults)

	report, err := svc.BuildReport(c.Context, c.String("tenant"), asOf, forecast.Config{})
	if err != nil {
		return fmt.Errorf("failed to build forecast report: %w", err)
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(payload))

	return nil
}

func runList(c *cli.Context) error {
	archive, err := newArchive()
	if err != nil {
		return err
	}

	infos, err := archive.List(c.Context, c.String("tenant"))
	if err != nil {
		return fmt.Errorf("failed to list archived reports: %w", err)
	}
	if len(infos) == 0 {
		fmt.Println("no archived reports")
		return nil
	}

	for _, info := range infos {
		fmt.Printf("%s\t%d bytes\n", info.Key, info.Size)
	}

	return nil
}

func runShow(c *cli.Context) error {
	archive, err := newArchive()
	if err != nil {
		return err
	}

	report, err := archive.Fetch(c.Context, c.String("key"))
	if err != nil {
		return fmt.Errorf("failed to fetch archived report: %w", err)
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(payload))

	return nil
}

func newArchive() (*storage.ReportArchive, error) {
	cfg := config.Load()
	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	return storage.NewReportArchive(store, cfg.Storage.Prefix), nil
}
