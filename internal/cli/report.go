package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Logistica-api/internal/application/logistic"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/Logistica-api/pkg/config"
)

func renderers() map[string]logistic.ReportRenderer {
	return map[string]logistic.ReportRenderer{
		"pdf":  pdf.NewStockReportRenderer(),
		"xlsx": xlsx.NewStockReportRenderer(zerolog.Nop()),
	}
}

func newReportCommand(dsn dsnFunc) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "report STOCK_ID",
		Short: "Genera el reporte de posiciones de un stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := renderers()[format]; !ok {
				return fmt.Errorf("formato %q no soportado (pdf | xlsx)", format)
			}
			url, err := dsn()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
			if err != nil {
				return err
			}
			defer pool.Close()

			reports := logistic.NewReportUseCase(
				postgres.NewStockRepository(pool),
				postgres.NewPositionRepository(pool),
				postgres.NewProductRepository(pool),
				renderers(),
			)
			doc, _, filename, err := reports.Generate(ctx, args[0], format)
			if err != nil {
				return err
			}
			if output == "" {
				output = filename
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", output, len(doc))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "pdf | xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "archivo de salida (por defecto stock_<id>.<ext>)")
	return cmd
}
