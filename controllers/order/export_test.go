package orderControllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestExportOrdersToExcel_OneRowPerLineItem(t *testing.T) {
	db, mock := newTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/pedidos/export-excel", ExportOrdersToExcel(db))

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT (.+) FROM "orders"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_ref", "customer_id", "telefone", "lembretes"}).
			AddRow(42, "ref-1", 7, "11999999999", 2))
	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "nome", "email"}).
			AddRow(7, "Maria", "maria@example.com"))
	mock.ExpectQuery(`SELECT (.+) FROM "order_items"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_size_id", "quantidade", "cor", "status_pagamento", "status_estoque"}).
			AddRow(100, 42, 1, 5, 2, "Azul", "pending", "pending"))
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "nome", "slug"}).
			AddRow(1, "Vestido Floral", "vestido-floral"))
	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "product_id", "tamanho", "preco"}).
			AddRow(5, 1, "M", 50))

	w := performJSON(r, http.MethodGet, "/pedidos/export-excel", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "pedidos.xlsx")

	xlFile, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, xlFile.Sheets, 1)

	sheet := xlFile.Sheets[0]
	require.Equal(t, 2, sheet.MaxRow) // header + one line item
	row := sheet.Rows[1]
	assert.Equal(t, "ref-1", row.Cells[1].String())
	assert.Equal(t, "Maria", row.Cells[2].String())
	assert.Equal(t, "Vestido Floral", row.Cells[5].String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
