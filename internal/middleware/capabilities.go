package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"plantnet_back_end/internal/cache"
	"plantnet_back_end/internal/models"
)

// Capabilities est la table déclarative route → rôles autorisés. Une route
// absente de la table n'exige que l'authentification.
var Capabilities = map[string][]models.Role{
	"GET /users":                {models.RoleAdmin},
	"PATCH /users/role/:email":  {models.RoleAdmin},
	"GET /admin-stat":           {models.RoleAdmin},
	"POST /plants":              {models.RoleSeller, models.RoleAdmin},
	"DELETE /plants/:id":        {models.RoleSeller, models.RoleAdmin},
	"GET /plants/seller":        {models.RoleSeller},
	"GET /seller-orders/:email": {models.RoleSeller},
	"PATCH /orders/:id":         {models.RoleSeller, models.RoleAdmin},
}

// LookupRole résout le rôle courant d'un email. Variable pour que les tests
// n'exigent ni Redis ni MongoDB.
var LookupRole = func(ctx context.Context, email string) (models.Role, error) {
	return cache.GetUserRole(ctx, email)
}

// Authorize applique la table Capabilities à la route appariée. À placer
// après AuthRequired.
func Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, ok := Capabilities[c.Request.Method+" "+c.FullPath()]
		if !ok {
			c.Next()
			return
		}

		email := c.GetString("email")
		role, err := LookupRole(c.Request.Context(), email)
		if err != nil {
			log.Printf("❌ Erreur résolution rôle pour %s: %v", email, err)
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		for _, r := range allowed {
			if r == role {
				c.Next()
				return
			}
		}

		log.Printf("🚫 Accès refusé: %s (%s) sur %s %s", email, role, c.Request.Method, c.FullPath())
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		c.Abort()
	}
}
