package plant

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"plantnet_back_end/internal/database"
	"plantnet_back_end/internal/models"
	"plantnet_back_end/internal/services"
)

// CreatePlant insère une plante avec l'instantané vendeur fourni par le
// client, puis l'indexe dans Elasticsearch (best-effort).
func CreatePlant(c *gin.Context) {
	var plant models.Plant
	if err := c.ShouldBindJSON(&plant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	plant.ID = primitive.NewObjectID()
	res, err := database.Plants().InsertOne(ctx, plant)
	if err != nil {
		log.Println("❌ Erreur insertion plante:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création plante"})
		return
	}

	go services.IndexPlant(plant)

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": res.InsertedID})
}

// GetPlants renvoie tout le catalogue.
func GetPlants(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.Plants().Find(ctx, bson.M{})
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération plantes"})
		return
	}
	defer cursor.Close(ctx)

	plants := []models.Plant{}
	if err := cursor.All(ctx, &plants); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, plants)
}

// GetPlant renvoie une plante par id.
func GetPlant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID plante invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var plant models.Plant
	if err := database.Plants().FindOne(ctx, bson.M{"_id": id}).Decode(&plant); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Plante introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, plant)
}

// GetSellerPlants liste l'inventaire du vendeur connecté.
func GetSellerPlants(c *gin.Context) {
	email := c.GetString("email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.Plants().Find(ctx, bson.M{"seller.email": email})
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération inventaire"})
		return
	}
	defer cursor.Close(ctx)

	plants := []models.Plant{}
	if err := cursor.All(ctx, &plants); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, plants)
}

// DeletePlant retire une plante du catalogue et de l'index.
func DeletePlant(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID plante invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	res, err := database.Plants().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Println("❌ Erreur suppression plante:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plante introuvable"})
		return
	}

	go services.RemovePlantFromIndex(id.Hex())

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": res.DeletedCount})
}

// SearchPlants interroge l'index Elasticsearch.
func SearchPlants(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q manquant"})
		return
	}

	results, err := services.SearchPlants(query)
	if err != nil {
		log.Println("❌ Erreur recherche Elastic:", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recherche indisponible"})
		return
	}

	c.JSON(http.StatusOK, results)
}
