package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Datahenge/schemasync"
)

var (
	sourceURL  string
	targetURL  string
	schemaName string
	tables     string
	planOnly   bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "schemasync",
	Short: "Synchronize a database schema with a source database",
	Long: `Schemasync introspects the schema of a source database, diffs it against
the schema of a target database, and either prints the DDL plan or applies it,
bringing the target's schema in line with the source.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&sourceURL, "source-url", "", "Connection URL of the database whose schema is the desired state")
	rootCmd.Flags().StringVar(&targetURL, "target-url", "", "Connection URL of the database to synchronize")
	rootCmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Database schema name (default: public for PostgreSQL)")
	rootCmd.Flags().StringVarP(&tables, "tables", "t", "", "Specific tables (comma-separated, optional)")
	rootCmd.Flags().BoolVar(&planOnly, "plan", false, "Print the DDL statements without executing them")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, or error")
}

func run(cmd *cobra.Command, args []string) error {
	if err := validateFlags(sourceURL, targetURL); err != nil {
		return err
	}

	ctx := context.Background()
	logger := newLogger(logLevel)

	opts := &schemasync.Options{
		SchemaName: schemaName,
		Tables:     splitTables(tables),
		Logger:     logger,
	}

	target, err := schemasync.Introspect(ctx, sourceURL, opts)
	if err != nil {
		return fmt.Errorf("failed to introspect source database: %w", err)
	}

	if planOnly {
		source, err := schemasync.Introspect(ctx, targetURL, opts)
		if err != nil {
			return fmt.Errorf("failed to introspect target database: %w", err)
		}
		d, err := schemasync.DialectFor(targetURL)
		if err != nil {
			return err
		}
		plan, err := schemasync.Plan(d, source, target)
		if err != nil {
			return fmt.Errorf("failed to compute schema changes: %w", err)
		}
		if plan == "" {
			fmt.Fprintln(os.Stderr, "schema up to date")
			return nil
		}
		fmt.Println(plan)
		return nil
	}

	if err := schemasync.Sync(ctx, targetURL, target, opts); err != nil {
		return fmt.Errorf("failed to synchronize schema: %w", err)
	}
	return nil
}

// validateFlags checks the required URL flags.
func validateFlags(sourceURL, targetURL string) error {
	if sourceURL == "" {
		return fmt.Errorf("--source-url must be specified")
	}
	if targetURL == "" {
		return fmt.Errorf("--target-url must be specified")
	}
	if sourceURL == targetURL {
		return fmt.Errorf("--source-url and --target-url must differ")
	}
	return nil
}

// splitTables parses the comma-separated table list.
func splitTables(tables string) []string {
	if tables == "" {
		return nil
	}
	list := strings.Split(tables, ",")
	for i, t := range list {
		list[i] = strings.TrimSpace(t)
	}
	return list
}

func newLogger(level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
