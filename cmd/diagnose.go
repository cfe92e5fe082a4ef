package cmd

import (
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var diagnoseCmd = &cobra.Command{
	RunE:  runDiagnose,
	Use:   "diagnose",
	Short: "check database connectivity and verify all expected tables exist",
}

var expectedTables = []string{
	"users",
	"access_records",
	"city_grants",
	"store_grants",
	"cities",
	"job_titles",
	"stores",
	"submissions",
	"audit_logs",
}

func runDiagnose(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	db, err := sqlx.Connect("pgx", cfg.Database.Source)
	if err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	defer db.Close()

	fmt.Println("database: reachable")

	failures := 0
	for _, table := range expectedTables {
		var count int64
		err := db.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
		if err != nil {
			fmt.Printf("table %-16s MISSING (%v)\n", table, err)
			failures++
			continue
		}
		fmt.Printf("table %-16s ok (%d rows)\n", table, count)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d tables missing, run the migrate command", failures, len(expectedTables))
	}

	fmt.Println("all tables present")
	return nil
}
