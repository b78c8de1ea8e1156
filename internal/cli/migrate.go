package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Logistica-api/internal/infrastructure/postgres"
)

type dsnFunc func() (string, error)

func newMigrateCommand(dsn dsnFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de esquema embebidas",
	}
	cmd.AddCommand(
		newMigrateUpCommand(dsn),
		newMigrateDownCommand(dsn),
		newMigrateVersionCommand(dsn),
	)
	return cmd
}

func newMigrateUpCommand(dsn dsnFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := dsn()
			if err != nil {
				return err
			}
			if err := postgres.MigrateUp(url); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migraciones aplicadas")
			return nil
		},
	}
}

func newMigrateDownCommand(dsn dsnFunc) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "down [N]",
		Short: "Revierte N migraciones (o todas con --all)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := downSteps(args, all)
			if err != nil {
				return err
			}
			url, err := dsn()
			if err != nil {
				return err
			}
			m, err := postgres.NewMigrator(url)
			if err != nil {
				return err
			}
			defer m.Close()

			if all {
				err = m.Down()
			} else {
				err = m.Steps(-steps)
			}
			if err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migraciones: down: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migraciones revertidas")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "revertir todas las migraciones")
	return cmd
}

// downSteps exige N > 0 o --all, nunca ambos.
func downSteps(args []string, all bool) (int, error) {
	switch {
	case all && len(args) > 0:
		return 0, errors.New("usar N o --all, no ambos")
	case all:
		return 0, nil
	case len(args) == 0:
		return 0, errors.New("indicar N o --all")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("N inválido: %q", args[0])
	}
	return n, nil
}

func newMigrateVersionCommand(dsn dsnFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión aplicada del esquema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := dsn()
			if err != nil {
				return err
			}
			m, err := postgres.NewMigrator(url)
			if err != nil {
				return err
			}
			defer m.Close()

			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones aplicadas")
				return nil
			}
			if err != nil {
				return fmt.Errorf("migraciones: version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", version, dirty)
			return nil
		},
	}
}
