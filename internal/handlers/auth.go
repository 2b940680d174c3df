package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"plantnet_back_end/internal/utils"
)

const tokenMaxAge = 365 * 24 * 60 * 60

func inProduction() bool {
	return os.Getenv("GIN_MODE") == "release"
}

// GenerateToken signe l'email reçu et le pose en cookie de session
// HTTP-only. L'identité elle-même est établie côté client (auth hébergée) :
// le serveur ne voit jamais de mot de passe.
func GenerateToken(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide: " + err.Error()})
		return
	}

	token, err := utils.GenerateJWT(body.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du jeton"})
		return
	}

	if inProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie("token", token, tokenMaxAge, "/", "", inProduction(), true)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout efface le cookie de session.
func Logout(c *gin.Context) {
	if inProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie("token", "", -1, "/", "", inProduction(), true)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Health répond au ping de la racine.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "Hello from plantNet Server..")
}
