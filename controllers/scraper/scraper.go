package scraperControllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/guimac3do/chica-y-nino-sub000/logger"
	"github.com/guimac3do/chica-y-nino-sub000/models"
	"github.com/guimac3do/chica-y-nino-sub000/web"
)

type ImportRequest struct {
	URL        string `json:"url" binding:"required,url"`
	CampaignID *uint  `json:"campaign_id"`
}

// Listing is one product card extracted from an external page.
type Listing struct {
	Nome   string
	Preco  float64
	Imagem string
}

// Selector chains tried in order; scraping is best-effort and cards that
// yield no name are skipped.
var (
	cardSelectors  = []string{".product-card", "li.product", "[data-product]", ".item"}
	nameSelectors  = []string{".product-title", ".product-name", ".name", "h2", "h3"}
	priceSelectors = []string{".price", ".product-price", "[data-price]"}
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// ImportFromURL clones a product listing from an external page into the
// catalog. Every extracted card becomes a product; when a price parses, a
// default size carries it.
func ImportFromURL(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": web.FromBindError(err)})
			return
		}

		var campaigns []models.Campaign
		if req.CampaignID != nil {
			var campaign models.Campaign
			if err := db.First(&campaign, "id = ?", *req.CampaignID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign does not exist"})
				return
			}
			campaigns = append(campaigns, campaign)
		}

		resp, err := httpClient.Get(req.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch page: " + err.Error()})
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Source returned status " + strconv.Itoa(resp.StatusCode)})
			return
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to parse page"})
			return
		}

		listings := ExtractListings(doc)
		created, skipped := 0, 0
		for _, listing := range listings {
			product := models.Product{
				Nome:      listing.Nome,
				Slug:      slug.Make(listing.Nome) + "-" + strconv.FormatInt(time.Now().UnixNano(), 36),
				Ativo:     false, // imported products start hidden for review
				Campaigns: campaigns,
			}
			if listing.Preco > 0 {
				product.Sizes = []models.ProductSize{{Tamanho: "Único", Preco: listing.Preco}}
			}
			if listing.Imagem != "" {
				product.Images = []models.ProductImage{{URL: listing.Imagem}}
			}
			if err := db.Create(&product).Error; err != nil {
				skipped++
				continue
			}
			created++
		}

		logger.FromCtx(c.Request.Context()).Info("listing import finished",
			zap.String("url", req.URL),
			zap.Int("created", created),
			zap.Int("skipped", skipped),
		)
		c.JSON(http.StatusOK, gin.H{
			"message": "Import finished",
			"created": created,
			"skipped": skipped,
			"found":   len(listings),
		})
	}
}

// ExtractListings walks the selector fallback chain and pulls product cards
// out of an arbitrary listing page.
func ExtractListings(doc *goquery.Document) []Listing {
	var cards *goquery.Selection
	for _, sel := range cardSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			cards = s
			break
		}
	}
	if cards == nil {
		return nil
	}

	var listings []Listing
	cards.Each(func(_ int, card *goquery.Selection) {
		nome := firstText(card, nameSelectors)
		if nome == "" {
			return
		}

		listing := Listing{Nome: nome}
		if priceText := firstText(card, priceSelectors); priceText != "" {
			listing.Preco = parsePrice(priceText)
		}
		if src, ok := card.Find("img").First().Attr("src"); ok {
			listing.Imagem = src
		}
		listings = append(listings, listing)
	})
	return listings
}

func firstText(s *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(s.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// parsePrice extracts a price from texts like "R$ 1.234,56" or "$1,234.56".
func parsePrice(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	lastComma := strings.LastIndexByte(cleaned, ',')
	lastDot := strings.LastIndexByte(cleaned, '.')
	if lastComma > lastDot {
		// comma is the decimal separator
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		if i := strings.LastIndexByte(cleaned, ','); i >= 0 {
			cleaned = strings.ReplaceAll(cleaned[:i], ",", "") + "." + cleaned[i+1:]
		}
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}
