package plant

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"plantnet_back_end/internal/services"
)

// UploadImage reçoit l'image d'une plante en multipart et la pousse dans
// MinIO. Renvoie l'URL publique à stocker dans le document plante.
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image manquant"})
		return
	}

	url, err := services.UploadImage(c.Request.Context(), file)
	if err != nil {
		log.Println("❌ Erreur upload MinIO:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur stockage image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
