package orderControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newRouter(db *gorm.DB, customerID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := func(c *gin.Context) { c.Set("customer_id", customerID) }

	r.POST("/orders", authed, PlaceOrderHandler(db))
	r.POST("/orders/:id/cancel", authed, CancelOrderHandler(db))
	r.POST("/orders/:id/items/:itemId/cancel", authed, CancelOrderItemHandler(db))
	r.GET("/orders-user/:id", authed, GetCustomerOrderHandler(db))
	return r
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sizeRow(id, productID uint, preco float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "product_id", "tamanho", "preco"}).
		AddRow(id, productID, "M", preco)
}

func TestPlaceOrder_CreatesHeaderAndItemsAtomically(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db, 7)

	// Referential validation, one lookup per item.
	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).WillReturnRows(sizeRow(5, 1, 50))
	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).WillReturnRows(sizeRow(9, 3, 30))

	// One transaction: header first, then the item batch.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100).AddRow(101))
	mock.ExpectCommit()

	w := performJSON(r, http.MethodPost, "/orders", gin.H{
		"items": []gin.H{
			{"product_id": 1, "product_size_id": 5, "quantidade": 2, "cor": "Azul"},
			{"product_id": 3, "product_size_id": 9, "quantidade": 1},
		},
		"telefone": "11999999999",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message string `json:"message"`
		OrderID uint   `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(42), resp.OrderID)
	assert.NotEmpty(t, resp.Message)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_RollsBackWhenItemInsertFails(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db, 7)

	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).WillReturnRows(sizeRow(5, 1, 50))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	w := performJSON(r, http.MethodPost, "/orders", gin.H{
		"items":    []gin.H{{"product_id": 1, "product_size_id": 5, "quantidade": 2}},
		"telefone": "11999999999",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_RejectsUnknownVariantBeforeAnyWrite(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db, 7)

	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := performJSON(r, http.MethodPost, "/orders", gin.H{
		"items":    []gin.H{{"product_id": 1, "product_size_id": 999, "quantidade": 1}},
		"telefone": "11999999999",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "items[0].product_size_id")

	// No transaction was ever opened.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_ValidationErrorsAreFieldKeyed(t *testing.T) {
	db, _ := newTestDB(t)
	r := newRouter(db, 7)

	w := performJSON(r, http.MethodPost, "/orders", gin.H{
		"items": []gin.H{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "telefone")
	assert.Contains(t, resp.Errors, "items")
}

func orderHeaderRows(id uint, customerID uint) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "order_ref", "customer_id", "telefone", "observacoes", "lembretes"}).
		AddRow(id, "ref-1", customerID, "11999999999", "", 0)
}

func TestCancelOrder_SetsEveryItemCancelledAndIsIdempotent(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db, 7)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`SELECT (.+) FROM "orders"`).WillReturnRows(orderHeaderRows(42, 7))
		mock.ExpectExec(`UPDATE "order_items"`).WillReturnResult(sqlmock.NewResult(0, 2))
	}

	first := performJSON(r, http.MethodPost, "/orders/42/cancel", nil)
	second := performJSON(r, http.MethodPost, "/orders/42/cancel", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelOrder_OtherCustomersOrderIsNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db, 7)

	// Ownership lives in the predicate: the row simply does not match.
	mock.ExpectQuery(`SELECT (.+) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := performJSON(r, http.MethodPost, "/orders/42/cancel", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "ref-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelOrderItem_UnknownItemIsNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db, 7)

	mock.ExpectQuery(`SELECT (.+) FROM "orders"`).WillReturnRows(orderHeaderRows(42, 7))
	mock.ExpectExec(`UPDATE "order_items"`).WillReturnResult(sqlmock.NewResult(0, 0))

	w := performJSON(r, http.MethodPost, "/orders/42/items/999/cancel", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerOrderRoutes_NonNumericIDsAreRejected(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db, 7)

	assert.Equal(t, http.StatusBadRequest, performJSON(r, http.MethodGet, "/orders-user/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, performJSON(r, http.MethodPost, "/orders/abc/cancel", nil).Code)
	assert.Equal(t, http.StatusBadRequest, performJSON(r, http.MethodPost, "/orders/42/items/xyz/cancel", nil).Code)

	// rejected before anything reaches the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCustomerOrder_DerivesTotalFromLivePrices(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db, 7)

	// Preload ordering is an implementation detail of the ORM.
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT (.+) FROM "orders"`).WillReturnRows(orderHeaderRows(42, 7))
	mock.ExpectQuery(`SELECT (.+) FROM "order_items"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_size_id", "quantidade", "cor", "status_pagamento", "status_estoque"}).
			AddRow(100, 42, 1, 5, 2, "Azul", "pending", "pending").
			AddRow(101, 42, 3, 9, 1, "", "pending", "pending"))
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "nome", "slug", "ativo"}).
			AddRow(1, "Vestido Floral", "vestido-floral", true).
			AddRow(3, "Camiseta Basica", "camiseta-basica", true))
	mock.ExpectQuery(`SELECT (.+) FROM "product_images"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "product_id", "cor", "url"}).
			AddRow(1, 1, "", "/uploads/products/generic.jpg").
			AddRow(2, 1, "Azul", "/uploads/products/azul.jpg"))
	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "product_id", "tamanho", "preco"}).
			AddRow(5, 1, "M", 50).
			AddRow(9, 3, "G", 30))

	w := performJSON(r, http.MethodGet, "/orders-user/42", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view CustomerOrderView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	// total = 2 x price(5) + 1 x price(9), resolved from the live rows
	assert.Equal(t, 130.0, view.Total)
	assert.Equal(t, "pendente", view.Status)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Vestido Floral", view.Items[0].Produto)
	// the color-specific image wins over the generic first image
	assert.Equal(t, "/uploads/products/azul.jpg", view.Items[0].Imagem)
	assert.Equal(t, 100.0, view.Items[0].Subtotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}
