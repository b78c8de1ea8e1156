// Package cli comandos de administración (logisticctl): migraciones y reportes fuera del servidor HTTP.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Logistica-api/pkg/config"
)

// NewRootCommand arma el árbol de comandos. out recibe la salida normal.
func NewRootCommand(out io.Writer) *cobra.Command {
	var databaseURL string
	root := &cobra.Command{
		Use:           "logisticctl",
		Short:         "Administración de la API logística",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&databaseURL, "database-url", "", "DSN de PostgreSQL (por defecto DATABASE_URL / DB_*)")

	dsn := func() (string, error) {
		if databaseURL != "" {
			return databaseURL, nil
		}
		cfg, err := config.Load()
		if err != nil {
			return "", err
		}
		return cfg.DB.ConnectionString(), nil
	}

	root.AddCommand(newMigrateCommand(dsn), newReportCommand(dsn))
	return root
}
