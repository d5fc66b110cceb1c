// Package main provides the datagen CLI, which writes generated store
// analytics records to stdout or to export files without starting a server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"retailpulse/backend/internal/domain"
	"retailpulse/backend/internal/generator"
)

const (
	Version = "0.1.0"
	appName = "datagen"
)

type options struct {
	store      string
	seed       int64
	format     string
	out        string
	date       string
	timezone   string
	skuCount   int
	orderCount int
	logLevel   string
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(stdout io.Writer) *cobra.Command {
	defaults := generator.DefaultOptions()
	opts := options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate synthetic store analytics records",
		Long: `datagen builds the same per-store analytics record the API serves
and writes it as JSON or YAML.

Examples:
  datagen --store Chennai --seed 42
  datagen --format yaml --out ./exports     # one file per store
  datagen --date 2026-03-14 --seed 7        # fully reproducible output`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.store, "store", "all", "Store to generate (Tirupur, Coimbatore, Chennai or all)")
	cmd.Flags().Int64Var(&opts.seed, "seed", envInt64("DATA_SEED", 0), "Random seed; 0 seeds from the clock")
	cmd.Flags().StringVar(&opts.format, "format", "json", "Output format (json, yaml)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output directory; empty writes to stdout")
	cmd.Flags().StringVar(&opts.date, "date", "", "Generation date (YYYY-MM-DD); empty uses the current time")
	cmd.Flags().StringVar(&opts.timezone, "timezone", envString("TIMEZONE", "Asia/Kolkata"), "IANA timezone for dates")
	cmd.Flags().IntVar(&opts.skuCount, "sku-count", defaults.SKUCount, "SKUs in the synthetic catalog")
	cmd.Flags().IntVar(&opts.orderCount, "order-count", defaults.OrderCount, "Recent orders per store")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func run(opts options, stdout io.Writer) error {
	level := slog.LevelInfo
	switch strings.ToLower(opts.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q", opts.format)
	}
	if opts.skuCount < 0 || opts.orderCount < 0 {
		return fmt.Errorf("sku-count and order-count must not be negative")
	}

	stores, err := selectStores(opts.store)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", opts.timezone, err)
	}
	now, err := clockFor(opts.date, loc)
	if err != nil {
		return err
	}

	gen := generator.New(generator.Config{
		Seed:     opts.seed,
		Location: loc,
		Now:      now,
		Options: generator.Options{
			SKUCount:   opts.skuCount,
			OrderCount: opts.orderCount,
			RankedSKUs: generator.DefaultOptions().RankedSKUs,
		},
	})

	records := make([]domain.StoreData, 0, len(stores))
	for _, id := range stores {
		data := gen.Generate(id)
		logger.Debug("generated store data", "store", id, "total_sales", data.KPI.TotalSales, "orders", len(data.RecentOrders))
		records = append(records, data)
	}

	if opts.out == "" {
		if len(records) == 1 {
			return encode(stdout, format, records[0])
		}
		return encode(stdout, format, records)
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, data := range records {
		path := filepath.Join(opts.out, fmt.Sprintf("beelittle-%s-analytics.%s", strings.ToLower(string(data.StoreID)), format))
		if err := writeFile(path, format, data); err != nil {
			return err
		}
		logger.Info("wrote export", "store", data.StoreID, "path", path)
	}
	return nil
}

func selectStores(raw string) ([]domain.StoreID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return domain.AllStores(), nil
	}
	id, ok := domain.ParseStoreID(raw)
	if !ok {
		return nil, fmt.Errorf("unknown store %q", raw)
	}
	return []domain.StoreID{id}, nil
}

func clockFor(date string, loc *time.Location) (func() time.Time, error) {
	if date == "" {
		return time.Now, nil
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	// Records are stamped at noon of the requested day.
	fixed := day.Add(12 * time.Hour)
	return func() time.Time { return fixed }, nil
}

func writeFile(path string, format string, data domain.StoreData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f, format, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func encode(w io.Writer, format string, value any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func envString(key string, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	val, err := strconv.ParseInt(envString(key, ""), 10, 64)
	if err != nil {
		return fallback
	}
	return val
}
