package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/models"
)

const thumbWidth = 320

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// UploadProductImage saves an uploaded image under UPLOAD_DIR/products,
// writes a resized thumbnail next to it and records both URLs. An optional
// "cor" form field binds the image to a color variant.
func UploadProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		cor := c.PostForm("cor")

		filename := strings.ReplaceAll(file.Filename, " ", "_")
		saveDir := filepath.Join(uploadDir(), "products")
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create upload folder: %v", err)})
			return
		}
		savePath := filepath.Join(saveDir, filename)

		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
			return
		}

		// Thumbnail: width-bound resize keeping aspect ratio.
		thumbURL := ""
		if src, err := imaging.Open(savePath); err == nil {
			thumb := imaging.Resize(src, thumbWidth, 0, imaging.Lanczos)
			ext := filepath.Ext(filename)
			thumbName := strings.TrimSuffix(filename, ext) + "_thumb" + ext
			if err := imaging.Save(thumb, filepath.Join(saveDir, thumbName)); err == nil {
				thumbURL = "/uploads/products/" + thumbName
			}
		}

		image := models.ProductImage{
			ProductID: product.ID,
			Cor:       cor,
			URL:       "/uploads/products/" + filename,
			ThumbURL:  thumbURL,
		}
		if err := db.Create(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image record"})
			return
		}

		c.JSON(http.StatusCreated, image)
	}
}

// DeleteProductImage removes the record; files on disk are not touched.
func DeleteProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		imageID, err := strconv.Atoi(c.Param("imageId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
			return
		}

		result := db.Where("id = ? AND product_id = ?", imageID, productID).
			Delete(&models.ProductImage{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
	}
}
