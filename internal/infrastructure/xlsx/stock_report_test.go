package xlsx_test

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Logistica-api/internal/application/logistic"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/xlsx"
)

func TestStockReportRenderer_EscribeFilasYTotal(t *testing.T) {
	report := &logistic.StockReport{
		Stock: &entity.Stock{ID: "s-1", Address: "Warehouse A"},
		Lines: []logistic.ReportLine{
			{ProductTitle: "tomate", Quantity: 5, Price: decimal.RequireFromString("10"), Subtotal: decimal.RequireFromString("50")},
			{ProductTitle: "pepino", Quantity: 2, Price: decimal.RequireFromString("2.5"), Subtotal: decimal.RequireFromString("5")},
		},
		Total:       decimal.RequireFromString("55"),
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	doc, err := xlsx.NewStockReportRenderer(zerolog.Nop()).Render(context.Background(), report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Warehouse A", rows[0][0])
	assert.Equal(t, []string{"Producto", "Cantidad", "Precio", "Subtotal"}, rows[2])
	assert.Equal(t, "tomate", rows[3][0])
	assert.Equal(t, "5", rows[3][1])

	total, err := f.GetCellValue(xlsx.SheetName, "D6", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	v, err := strconv.ParseFloat(total, 64)
	require.NoError(t, err)
	assert.InDelta(t, 55.0, v, 0.001)
}
