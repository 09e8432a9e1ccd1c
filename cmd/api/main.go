package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Pet Grooming API
// @version 1.0
// @description Reservas, pagos y panel de una peluquería de mascotas.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:           "api",
		Short:         "Pet grooming booking and payments API",
		SilenceUsage:  true,
		SilenceErrors: true,
		// sin subcomando => serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations (DB_DSN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}
}
