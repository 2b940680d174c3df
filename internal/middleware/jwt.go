package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"plantnet_back_end/internal/utils"
)

// AuthRequired lit le cookie de session "token" et attache l'email vérifié
// au contexte. Cookie absent ou signature invalide → 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			c.Abort()
			return
		}

		email, err := utils.ParseJWT(token)
		if err != nil {
			log.Println("❌ Jeton invalide:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			c.Abort()
			return
		}

		c.Set("email", email)
		c.Next()
	}
}
