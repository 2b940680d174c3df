package plant

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"plantnet_back_end/internal/services"
)

var inventory services.PlantStore = services.MongoPlants{}

// UpdateQuantity ajuste le stock d'une plante. Le corps reprend le format
// historique du front: {quantityToUpdate, status} avec status
// "increase" | "decrease". La décrémentation est gardée : un stock
// insuffisant renvoie 409 au lieu de passer sous zéro.
func UpdateQuantity(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID plante invalide"})
		return
	}

	var req struct {
		QuantityToUpdate int    `json:"quantityToUpdate" binding:"required"`
		Status           string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.QuantityToUpdate < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	delta := -req.QuantityToUpdate
	if req.Status == "increase" {
		delta = req.QuantityToUpdate
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := inventory.AdjustQuantity(ctx, id, delta); err != nil {
		switch {
		case errors.Is(err, services.ErrPlantNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Plante introuvable"})
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Stock insuffisant"})
		default:
			log.Println("❌ Erreur ajustement stock:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "modifiedCount": 1})
}
