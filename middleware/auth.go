package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/medibook/medibook/config"
	"github.com/medibook/medibook/models"
	"github.com/medibook/medibook/utils"
)

// OperatorAuthMiddleware guards operator-only routes: complete, refund and
// reports. It validates the bearer token and loads the operator record into
// the context.
func OperatorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		operatorID, err := utils.ValidateOperatorToken(tokenString)
		if err != nil {
			utils.LogError("Invalid token: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		var operator models.Operator
		if err := config.DB.First(&operator, operatorID).Error; err != nil {
			utils.LogError("Operator not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Operator not found"})
			c.Abort()
			return
		}

		if !operator.IsActive {
			utils.LogError("Inactive operator attempted access: %d", operatorID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			c.Abort()
			return
		}

		c.Set("operator", operator)
		c.Next()
	}
}
