package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Plant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Image       string             `bson:"image" json:"image"`
	Seller      Contact            `bson:"seller" json:"seller"`
}
