package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dangerclosesec/ciclo/internal/migration"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	dbConnString string
	historyLimit int
	historyOp    string
)

func init() {
	dbCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string")
	historyCmd.Flags().StringVarP(&dbConnString, "db", "d", "", "Database connection string")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().StringVar(&historyOp, "operation", "", "Only show entries for one operation")

	dbCmd.AddCommand(dbInitCmd)
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the audit database",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database schema",
	Long:  `Create the analysis audit table and its indexes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if dbConnString == "" {
			log.Fatal("Database connection string is required")
		}

		db, err := migration.Open(dbConnString)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		migrator := migration.NewMigrator(db)
		if err := migrator.InitializeSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}

		fmt.Println("Schema initialized successfully")

		if verbose {
			count, err := migrator.AuditLogCount(ctx)
			if err != nil {
				log.Fatalf("Failed to count audit entries: %v", err)
			}
			fmt.Printf("Audit entries: %d\n", count)
		}
	},
}

// historyEntry is one row of the analysis audit trail
type historyEntry struct {
	ID           uuid.UUID
	Timestamp    time.Time
	Operation    string
	Success      bool
	SourceBytes  int
	DurationMS   int64
	CacheHit     bool
	ErrorMessage string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analysis requests",
	Run: func(cmd *cobra.Command, args []string) {
		if dbConnString == "" {
			log.Fatal("Database connection string is required")
		}
		if historyLimit < 1 {
			log.Fatal("Limit must be positive")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, dbConnString)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		entries, err := queryHistory(ctx, pool, historyOp, historyLimit)
		if err != nil {
			log.Fatalf("Failed to query history: %v", err)
		}

		if len(entries) == 0 {
			fmt.Println("No audit entries found")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tOPERATION\tRESULT\tBYTES\tDURATION\tCACHE")
		for _, e := range entries {
			result := "ok"
			if !e.Success {
				result = "failed"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dms\t%t\n",
				e.Timestamp.Format(time.RFC3339), e.Operation, result,
				e.SourceBytes, e.DurationMS, e.CacheHit)
			if verbose && e.ErrorMessage != "" {
				fmt.Fprintf(w, "\t%s\t\t\t\t\n", e.ErrorMessage)
			}
		}
		w.Flush()
	},
}

func queryHistory(ctx context.Context, pool *pgxpool.Pool, operation string, limit int) ([]historyEntry, error) {
	query := `
		SELECT
			id, timestamp, operation, success, source_bytes,
			duration_ms, cache_hit, error_message
		FROM
			analysis_audit_logs
		WHERE
			($1 = '' OR operation = $1)
		ORDER BY
			timestamp DESC
		LIMIT $2
	`

	rows, err := pool.Query(ctx, query, operation, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var entries []historyEntry
	for rows.Next() {
		var e historyEntry
		var errorMessage sql.NullString

		err := rows.Scan(
			&e.ID, &e.Timestamp, &e.Operation, &e.Success, &e.SourceBytes,
			&e.DurationMS, &e.CacheHit, &errorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		if errorMessage.Valid {
			e.ErrorMessage = errorMessage.String
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit logs: %w", err)
	}

	return entries, nil
}
