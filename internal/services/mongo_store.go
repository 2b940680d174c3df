package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"plantnet_back_end/internal/database"
	"plantnet_back_end/internal/models"
)

// MongoOrders implémente OrderStore sur la collection orders.
type MongoOrders struct{}

func (MongoOrders) Insert(ctx context.Context, o models.Order) (primitive.ObjectID, error) {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := database.Orders().InsertOne(ctx, o)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return o.ID, nil
}

func (MongoOrders) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var o models.Order
	err := database.Orders().FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrOrderNotFound
	}
	return o, err
}

func (MongoOrders) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := database.Orders().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (MongoOrders) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := database.Orders().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// MongoPlants implémente PlantStore sur la collection plants.
type MongoPlants struct{}

// AdjustQuantity applique un $inc atomique. La décrémentation est gardée
// par le filtre quantity >= -delta : le compteur de stock ne passe jamais
// sous zéro, l'échec est signalé, pas écrêté.
func (MongoPlants) AdjustQuantity(ctx context.Context, plantID primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": plantID}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}

	res, err := database.Plants().UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"quantity": delta}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		// Distinguer la plante absente du stock insuffisant.
		err := database.Plants().FindOne(ctx, bson.M{"_id": plantID}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPlantNotFound
		}
		if err != nil {
			return err
		}
		return ErrInsufficientStock
	}

	return nil
}
