package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/models"
)

// ImportProductsFromExcel bulk-creates products from an uploaded sheet.
// Expected columns: Nome | Descricao | Tamanho | Preco | CampaignID?
// Consecutive rows with the same Nome accumulate as sizes of one product.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		created, skipped := 0, 0

		// All-or-nothing: a failure on any row rolls back the whole sheet.
		err = db.Transaction(func(tx *gorm.DB) error {
			var current *models.Product
			flush := func() error {
				if current == nil {
					return nil
				}
				if err := tx.Create(current).Error; err != nil {
					return err
				}
				created++
				current = nil
				return nil
			}

			for i := 1; i < sheet.MaxRow; i++ {
				row := sheet.Rows[i]
				get := func(index int) string {
					if index < len(row.Cells) {
						return strings.TrimSpace(row.Cells[index].String())
					}
					return ""
				}

				nome := get(0)
				descricao := get(1)
				tamanho := get(2)
				preco, errPreco := strconv.ParseFloat(get(3), 64)

				if nome == "" || tamanho == "" || errPreco != nil || preco <= 0 {
					skipped++
					continue
				}

				if current == nil || current.Nome != nome {
					if err := flush(); err != nil {
						return err
					}
					productSlug, err := uniqueSlug(tx, nome)
					if err != nil {
						return err
					}
					current = &models.Product{
						Nome:      nome,
						Slug:      productSlug,
						Descricao: descricao,
						Ativo:     true,
					}
					if campaignID, err := strconv.Atoi(get(4)); err == nil && campaignID > 0 {
						current.Campaigns = []models.Campaign{{ID: uint(campaignID)}}
					}
				}
				current.Sizes = append(current.Sizes, models.ProductSize{
					Tamanho: tamanho,
					Preco:   preco,
				})
			}
			return flush()
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Import finished",
			"created": created,
			"skipped": skipped,
		})
	}
}
