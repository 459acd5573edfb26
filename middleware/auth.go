package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guimac3do/chica-y-nino-sub000/auth"
)

// ValidateToken resolves the bearer token to a customer id and stores it on
// the context as "customer_id". Handlers downstream rely on it being a uint.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	customerID, err := auth.ParseCustomerToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set("customer_id", customerID)
	c.Next()
}

// CustomerID reads the authenticated customer id placed by ValidateToken.
func CustomerID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("customer_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
