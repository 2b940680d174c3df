package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts de commande. L'annulation n'est pas un statut : une commande
// annulée est supprimée.
const (
	OrderPending    = "Pending"
	OrderInProgress = "In Progress"
	OrderDelivered  = "Delivered"
)

var statusRank = map[string]int{
	OrderPending:    0,
	OrderInProgress: 1,
	OrderDelivered:  2,
}

// ValidStatus vérifie qu'un statut appartient à l'énumération.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition est la politique explicite de transition : uniquement vers
// l'avant (Pending → In Progress → Delivered), réécrire le statut courant
// est permis.
func CanTransition(from, to string) bool {
	rf, okFrom := statusRank[from]
	rt, okTo := statusRank[to]
	return okFrom && okTo && rt >= rf
}

type Order struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`

	// Référence souple vers la plante, stockée en chaîne et convertie en
	// ObjectId au moment de la lecture ($toObjectId dans l'agrégation).
	PlantID string `bson:"plantId" json:"plantId"`

	// Champs recopiés depuis la plante par le $lookup, jamais écrits.
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`

	Customer      Contact   `bson:"customer" json:"customer"`
	Seller        string    `bson:"seller" json:"seller"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	Price         float64   `bson:"price" json:"price"`
	Address       string    `bson:"address" json:"address"`
	Status        string    `bson:"status" json:"status"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
