package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/models"
)

// ExportOrdersToExcel streams every order as an xlsx, one row per line item.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		err := db.
			Preload("Customer").
			Preload("Items").
			Preload("Items.Product").
			Preload("Items.Size").
			Order("created_at DESC").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Pedidos")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderID", "OrderRef", "Cliente", "Telefone", "CreatedAt",
			"Produto", "Tamanho", "Preco", "Quantidade", "Cor", "Subtotal",
			"StatusPagamento", "StatusEstoque", "Processado", "Lembretes",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, order := range orders {
			cliente := "unknown"
			if order.Customer != nil {
				cliente = order.Customer.Nome
			}
			for _, item := range order.Items {
				view := buildItemView(item)
				row := sheet.AddRow()

				row.AddCell().SetValue(order.ID)
				row.AddCell().SetValue(order.OrderRef)
				row.AddCell().SetValue(cliente)
				row.AddCell().SetValue(order.Telefone)
				row.AddCell().SetValue(order.CreatedAt.Format("2006-01-02 15:04:05"))
				row.AddCell().SetValue(view.Produto)
				row.AddCell().SetValue(view.Tamanho)
				row.AddCell().SetValue(view.Preco)
				row.AddCell().SetValue(view.Quantidade)
				row.AddCell().SetValue(view.Cor)
				row.AddCell().SetValue(view.Subtotal)
				row.AddCell().SetValue(string(view.StatusPagamento))
				row.AddCell().SetValue(string(view.StatusEstoque))
				row.AddCell().SetValue(item.Processado)
				row.AddCell().SetValue(order.Lembretes)
			}
		}

		c.Header("Content-Disposition", "attachment; filename=pedidos.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
