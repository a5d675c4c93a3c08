package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	configlibsql "cstracker-backend/lib/configutil/libsql"
	"cstracker-backend/services/tracker/db"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "tracker is a CLI for scraping esports teams, players and matches into a database.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDatabase(path string) (*sql.DB, error) {
	return configlibsql.Struct{File: path}.OpenDB(db.Schema)
}
