package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stoik/leadrelay/services/relay-service/internal/capture"
	"github.com/stoik/leadrelay/services/relay-service/internal/db"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create database tables",
	Long:  "Creates the email_captures table used by the email capture endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		pool, err := db.Connect(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		fmt.Println("Running migrations...")
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}

		fmt.Println("✓ Database setup complete")
		return nil
	},
}

var capturesCmd = &cobra.Command{
	Use:   "captures",
	Short: "List recent email captures",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		limit, _ := cmd.Flags().GetInt("limit")

		pool, err := db.Connect(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		captures, err := capture.NewPostgresStore(pool).Recent(ctx, limit)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		for _, c := range captures {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	capturesCmd.Flags().Int("limit", 20, "Number of captures to list")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(capturesCmd)
}
