package payement

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"plantnet_back_end/internal/cache"
	"plantnet_back_end/internal/database"
	"plantnet_back_end/internal/models"
)

// ✅ Crée un PaymentIntent Stripe pour l'achat d'une plante
func CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Quantity int    `json:"quantity" binding:"required"`
		PlantID  string `json:"plantId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}

	plantID, err := primitive.ObjectIDFromHex(req.PlantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID plante invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Le prix vient toujours de la base, jamais du client.
	var plant models.Plant
	if err := database.Plants().FindOne(ctx, bson.M{"_id": plantID}).Decode(&plant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plante introuvable"})
		return
	}

	total := plant.Price * float64(req.Quantity)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(total * 100)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"plantId":  req.PlantID,
			"quantity": strconv.Itoa(req.Quantity),
			"email":    email,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("💳 PaymentIntent créé : %s (%.2f€) pour %s", intent.ID, total, email)

	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}

// ✅ Webhook Stripe : marque l'intent comme payé dans Redis. La commande
// elle-même est créée ensuite par le client via POST /order, qui vérifie
// ce marqueur.
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Println("❌ JSON invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)
	handleStripeEvent(event)

	c.Status(http.StatusOK)
}

func handleStripeEvent(event stripe.Event) {
	if event.Type != "payment_intent.succeeded" {
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Println("❌ Erreur décodage PaymentIntent:", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cache.MarkIntentPaid(ctx, pi.ID); err != nil {
		log.Println("❌ Erreur enregistrement paiement Redis:", err)
		return
	}

	log.Printf("✅ Paiement confirmé : %s (%s)", pi.ID, pi.Metadata["email"])
}
