package order

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"plantnet_back_end/internal/cache"
	"plantnet_back_end/internal/database"
	"plantnet_back_end/internal/models"
	"plantnet_back_end/internal/services"
	"plantnet_back_end/internal/utils"
)

var workflow = &services.Lifecycle{
	Orders: services.MongoOrders{},
	Plants: services.MongoPlants{},
}

// CreateOrder enregistre une commande payée : insertion en statut Pending
// puis décrément gardé du stock, en une unité atomique vue de l'appelant.
// Les deux e-mails (client, vendeur) partent en best-effort.
func CreateOrder(c *gin.Context) {
	var o models.Order
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide: " + err.Error()})
		return
	}
	if o.Quantity < 1 || o.PlantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité ou plante manquante"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// Pas de commande sans paiement confirmé par le webhook Stripe.
	if !cache.IsIntentPaid(ctx, o.TransactionID) {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Paiement non confirmé"})
		return
	}

	orderID, err := workflow.PlaceOrder(ctx, o)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlantNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Plante introuvable"})
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Stock insuffisant"})
		default:
			log.Println("❌ Erreur création commande:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		}
		return
	}

	o.ID = orderID
	log.Printf("✅ Commande %s enregistrée (%d × plante %s)", orderID.Hex(), o.Quantity, o.PlantID)

	plantName := lookupPlantName(ctx, o.PlantID)
	go func() {
		if err := utils.SendOrderConfirmationEmail(o, plantName); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation:", err)
		}
	}()
	go func() {
		if err := utils.SendSellerOrderAlert(o, plantName); err != nil {
			log.Println("❌ Erreur envoi alerte vendeur:", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": orderID})
}

// CancelOrder annule une commande non livrée : suppression de
// l'enregistrement puis restitution du stock.
func CancelOrder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := workflow.CancelOrder(ctx, id); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Commande introuvable"})
		case errors.Is(err, services.ErrOrderDelivered):
			c.String(http.StatusConflict, "Impossible d'annuler une commande déjà livrée !")
		default:
			log.Println("❌ Erreur annulation commande:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur annulation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": 1})
}

// UpdateStatus fait avancer le statut d'une commande (vendeur). La
// politique n'accepte que les transitions avant ; réécrire le statut
// courant est un no-op qui répond quand même succès.
func UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := workflow.SetStatus(ctx, id, body.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Commande introuvable"})
		case errors.Is(err, services.ErrBadTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Transition de statut interdite"})
		default:
			log.Println("❌ Erreur mise à jour statut:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		}
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var o models.Order
		if err := database.Orders().FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
			return
		}
		if err := utils.SendOrderStatusEmail(o, body.Status); err != nil {
			log.Println("❌ Erreur envoi e-mail statut:", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "modifiedCount": 1})
}

// GetOrder renvoie une commande par id.
func GetOrder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var o models.Order
	if err := database.Orders().FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, o)
}

// GetCustomerOrders assemble la vue "mes commandes" : filtre par email
// client puis jointure $lookup sur la plante référencée pour recopier
// nom/image/catégorie.
func GetCustomerOrders(c *gin.Context) {
	email := c.Param("email")
	listOrders(c, bson.M{"customer.email": email})
}

// GetSellerOrders assemble la vue "mes ventes" du vendeur.
func GetSellerOrders(c *gin.Context) {
	email := c.Param("email")
	listOrders(c, bson.M{"seller": email})
}

func listOrders(c *gin.Context, match bson.M) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		// Convertir la référence chaîne en ObjectId pour la jointure.
		{{Key: "$addFields", Value: bson.M{"plantId": bson.M{"$toObjectId": "$plantId"}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "plants",
			"localField":   "plantId",
			"foreignField": "_id",
			"as":           "plants",
		}}},
		{{Key: "$unwind", Value: "$plants"}},
		{{Key: "$addFields", Value: bson.M{
			"name":     "$plants.name",
			"image":    "$plants.image",
			"category": "$plants.category",
		}}},
		{{Key: "$project", Value: bson.M{"plants": 0}}},
	}

	cursor, err := database.Orders().Aggregate(ctx, pipeline)
	if err != nil {
		log.Println("❌ Erreur agrégation commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	defer cursor.Close(ctx)

	results := []bson.M{}
	if err := cursor.All(ctx, &results); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func lookupPlantName(ctx context.Context, plantID string) string {
	id, err := primitive.ObjectIDFromHex(plantID)
	if err != nil {
		return ""
	}
	var plant models.Plant
	if err := database.Plants().FindOne(ctx, bson.M{"_id": id}).Decode(&plant); err != nil {
		return ""
	}
	return plant.Name
}
