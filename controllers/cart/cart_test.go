package cartControllers

import (
	"bytes"
	"encoding/json"
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

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := func(c *gin.Context) { c.Set("customer_id", uint(7)) }

	cart := r.Group("/cart", authed)
	cart.POST("/add", AddItem(db))
	cart.GET("", GetCart(db))
	cart.PUT("/update", UpdateItem(db))
	cart.DELETE("/remove", RemoveItem(db))
	cart.DELETE("/clear", ClearCart(db))
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

func sizeRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "product_id", "tamanho", "preco"}).
		AddRow(5, 1, "M", 50)
}

func cartRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "customer_id"}).AddRow(1, 7)
}

func addBody() gin.H {
	return gin.H{"product_id": 1, "product_size_id": 5, "quantidade": 2, "cor": "Azul"}
}

func TestAddItem_FirstAddInsertsCartAndLine(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db)

	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).WillReturnRows(sizeRow())

	mock.ExpectBegin()
	// no cart yet
	mock.ExpectQuery(`SELECT (.+) FROM "carts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "carts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// no matching line yet
	mock.ExpectQuery(`SELECT (.+) FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	w := performJSON(r, http.MethodPost, "/cart/add", addBody())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItem_SameTupleIncrementsInsteadOfDuplicating(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db)

	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).WillReturnRows(sizeRow())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "carts"`).WillReturnRows(cartRow())
	mock.ExpectQuery(`SELECT (.+) FROM "cart_items"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "cart_id", "product_id", "product_size_id", "cor", "quantidade"}).
			AddRow(10, 1, 1, 5, "Azul", 1))
	// the existing row is bumped, no INSERT happens
	mock.ExpectExec(`UPDATE "cart_items" SET "quantidade"=quantidade \+ \$1 WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := performJSON(r, http.MethodPost, "/cart/add", addBody())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItem_UnknownVariantIsRejected(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db)

	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := performJSON(r, http.MethodPost, "/cart/add", addBody())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCart_NoCartReadsAsEmpty(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db)

	mock.ExpectQuery(`SELECT (.+) FROM "carts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := performJSON(r, http.MethodGet, "/cart", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []CartItemView `json:"items"`
		Total float64        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCart_TotalsUseLivePrices(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db)

	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT (.+) FROM "carts"`).WillReturnRows(cartRow())
	mock.ExpectQuery(`SELECT (.+) FROM "cart_items"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "cart_id", "product_id", "product_size_id", "cor", "quantidade"}).
			AddRow(10, 1, 1, 5, "Azul", 2).
			AddRow(11, 1, 3, 9, "", 1))
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "nome", "slug", "ativo"}).
			AddRow(1, "Vestido Floral", "vestido-floral", true).
			AddRow(3, "Camiseta Basica", "camiseta-basica", true))
	mock.ExpectQuery(`SELECT (.+) FROM "product_images"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "cor", "url"}))
	mock.ExpectQuery(`SELECT (.+) FROM "product_sizes"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "product_id", "tamanho", "preco"}).
			AddRow(5, 1, "M", 50).
			AddRow(9, 3, "G", 30))

	w := performJSON(r, http.MethodGet, "/cart", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []CartItemView `json:"items"`
		Total float64        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 100.0, resp.Items[0].Subtotal)
	assert.Equal(t, 130.0, resp.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItem_UnknownItemIsNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db)

	mock.ExpectQuery(`SELECT (.+) FROM "carts"`).WillReturnRows(cartRow())
	mock.ExpectExec(`DELETE FROM "cart_items"`).WillReturnResult(sqlmock.NewResult(0, 0))

	w := performJSON(r, http.MethodDelete, "/cart/remove", gin.H{"item_id": 999})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearCart_DeletesEveryLine(t *testing.T) {
	db, mock := newTestDB(t)
	r := newRouter(db)

	mock.ExpectQuery(`SELECT (.+) FROM "carts"`).WillReturnRows(cartRow())
	mock.ExpectExec(`DELETE FROM "cart_items"`).WillReturnResult(sqlmock.NewResult(0, 3))

	w := performJSON(r, http.MethodDelete, "/cart/clear", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
