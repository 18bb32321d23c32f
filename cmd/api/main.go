package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "barbeflow",
		Short:        "Barbershop appointment scheduling API",
		SilenceUsage: true,
	}

	cmd.AddCommand(serveCmd(), migrateCmd())
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			if _, err := openDB(a); err != nil {
				return err
			}

			a.logger.Info("database migrated")
			return nil
		},
	}
}
