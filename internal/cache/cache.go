package cache

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"plantnet_back_end/internal/database"
	"plantnet_back_end/internal/models"
)

const (
	roleCacheTTL  = 5 * time.Minute
	paidIntentTTL = 24 * time.Hour
)

// GetUserRole récupère le rôle d'un utilisateur depuis Redis ou MongoDB.
func GetUserRole(ctx context.Context, email string) (models.Role, error) {
	key := "role:" + email

	// 1. Essayer le cache Redis
	if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
		return models.Role(data), nil
	}

	// 2. Récupérer de MongoDB
	var user models.User
	err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return "", err
	}

	// 3. Mettre en cache
	database.Redis.Set(ctx, key, string(user.Role), roleCacheTTL)

	return user.Role, nil
}

// InvalidateUserRole invalide le cache de rôle d'un utilisateur.
func InvalidateUserRole(ctx context.Context, email string) {
	database.Redis.Del(ctx, "role:"+email)
}

// MarkIntentPaid enregistre qu'un PaymentIntent Stripe a atteint l'état
// "succeeded". Consulté par la création de commande : pas de commande sans
// paiement confirmé.
func MarkIntentPaid(ctx context.Context, intentID string) error {
	return database.Redis.Set(ctx, "paid_intent:"+intentID, "1", paidIntentTTL).Err()
}

// IsIntentPaid vérifie qu'un PaymentIntent a été confirmé par le webhook.
func IsIntentPaid(ctx context.Context, intentID string) bool {
	if intentID == "" {
		return false
	}
	return database.Redis.Exists(ctx, "paid_intent:"+intentID).Val() > 0
}
