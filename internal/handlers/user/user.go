package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"plantnet_back_end/internal/cache"
	"plantnet_back_end/internal/database"
	"plantnet_back_end/internal/models"
	"plantnet_back_end/internal/utils"
)

// SaveUser enregistre un utilisateur à sa première connexion (upsert-si-
// absent, rôle customer par défaut). Un utilisateur existant est renvoyé
// tel quel.
func SaveUser(c *gin.Context) {
	email := c.Param("email")

	var body models.User
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Println("❌ Erreur MongoDB FindOne:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	user := models.User{
		Name:      body.Name,
		Email:     email,
		Image:     body.Image,
		Role:      models.RoleCustomer,
		Timestamp: time.Now().UnixMilli(),
	}

	res, err := database.Users().InsertOne(ctx, user)
	if err != nil {
		log.Println("❌ Erreur insertion utilisateur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	go func() {
		if err := utils.SendWelcomeEmail(email, body.Name); err != nil {
			log.Println("❌ Erreur envoi e-mail de bienvenue:", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": res.InsertedID})
}

// RequestSeller passe le statut du client à "Requested". Une demande déjà
// en attente est refusée.
func RequestSeller(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil || user.Status == models.StatusRequested {
		c.String(http.StatusBadRequest, "You have already requested, wait for some time.")
		return
	}

	res, err := database.Users().UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"status": models.StatusRequested}})
	if err != nil {
		log.Println("❌ Erreur mise à jour statut:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": res.ModifiedCount})
}

// GetRole renvoie le rôle d'un utilisateur (servi via le cache Redis).
func GetRole(c *gin.Context) {
	email := c.Param("email")

	role, err := cache.GetUserRole(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"role": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": role})
}

// GetAllUsers liste tous les utilisateurs sauf l'appelant (admin).
func GetAllUsers(c *gin.Context) {
	email := c.GetString("email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.Users().Find(ctx, bson.M{"email": bson.M{"$ne": email}})
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération utilisateurs"})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateRole élève (ou rétrograde) un utilisateur et repasse son statut à
// "Verified" (admin). Invalide le cache de rôle.
func UpdateRole(c *gin.Context) {
	email := c.Param("email")

	var body struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !models.ValidRole(body.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	res, err := database.Users().UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"role": body.Role, "status": models.StatusVerified}})
	if err != nil {
		log.Println("❌ Erreur mise à jour rôle:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	cache.InvalidateUserRole(ctx, email)
	log.Printf("✅ Rôle mis à jour: %s → %s", email, body.Role)

	c.JSON(http.StatusOK, gin.H{"modifiedCount": res.ModifiedCount})
}
