package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"plantnet_back_end/internal/models"
)

// Erreurs de domaine du workflow de commande, traduites en statuts HTTP au
// bord des handlers (400 / 409).
var (
	ErrPlantNotFound     = errors.New("plante introuvable")
	ErrOrderNotFound     = errors.New("commande introuvable")
	ErrInsufficientStock = errors.New("stock insuffisant")
	ErrOrderDelivered    = errors.New("commande déjà livrée")
	ErrBadTransition     = errors.New("transition de statut interdite")
)

// OrderStore est la surface de persistance des commandes utilisée par le
// workflow.
type OrderStore interface {
	Insert(ctx context.Context, o models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// PlantStore expose la primitive d'ajustement de stock. Un delta négatif
// doit être gardé par le filtre quantity >= -delta et échouer avec
// ErrInsufficientStock plutôt que de passer sous zéro.
type PlantStore interface {
	AdjustQuantity(ctx context.Context, plantID primitive.ObjectID, delta int) error
}

// Lifecycle coordonne la mutation du stock avec la création, l'annulation
// et la transition de statut d'une commande. Les deux écritures de chaque
// opération forment une saga : si la seconde échoue, la première est
// compensée, et l'appelant voit une unité atomique.
type Lifecycle struct {
	Orders OrderStore
	Plants PlantStore
}

// PlaceOrder insère la commande en statut Pending puis décrémente le stock
// de la plante. Un refus du décrément (stock insuffisant, plante absente)
// supprime la commande fraîchement insérée.
func (l *Lifecycle) PlaceOrder(ctx context.Context, o models.Order) (primitive.ObjectID, error) {
	plantID, err := primitive.ObjectIDFromHex(o.PlantID)
	if err != nil {
		return primitive.NilObjectID, ErrPlantNotFound
	}

	o.Status = models.OrderPending
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	orderID, err := l.Orders.Insert(ctx, o)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if err := l.Plants.AdjustQuantity(ctx, plantID, -o.Quantity); err != nil {
		if delErr := l.Orders.Delete(ctx, orderID); delErr != nil {
			log.Printf("❌ Compensation impossible, commande orpheline %s: %v", orderID.Hex(), delErr)
		}
		return primitive.NilObjectID, err
	}

	return orderID, nil
}

// CancelOrder supprime la commande puis restitue le stock. Une commande
// livrée est immuable. Si la restitution échoue, la commande est réinsérée.
func (l *Lifecycle) CancelOrder(ctx context.Context, orderID primitive.ObjectID) (models.Order, error) {
	o, err := l.Orders.FindByID(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}

	if o.Status == models.OrderDelivered {
		return models.Order{}, ErrOrderDelivered
	}

	if err := l.Orders.Delete(ctx, orderID); err != nil {
		return models.Order{}, err
	}

	plantID, err := primitive.ObjectIDFromHex(o.PlantID)
	if err != nil {
		// Référence souple cassée : rien à restituer.
		log.Printf("⚠️ plantId illisible sur la commande %s, stock non restitué", orderID.Hex())
		return o, nil
	}

	if err := l.Plants.AdjustQuantity(ctx, plantID, o.Quantity); err != nil {
		if _, reErr := l.Orders.Insert(ctx, o); reErr != nil {
			log.Printf("❌ Compensation impossible, commande %s perdue: %v", orderID.Hex(), reErr)
		}
		return models.Order{}, err
	}

	return o, nil
}

// SetStatus applique la politique de transition : avancer seulement,
// réécrire le statut courant est un no-op accepté. Aucun effet sur le stock.
func (l *Lifecycle) SetStatus(ctx context.Context, orderID primitive.ObjectID, status string) error {
	if !models.ValidStatus(status) {
		return ErrBadTransition
	}

	o, err := l.Orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if o.Status == status {
		return nil
	}

	if !models.CanTransition(o.Status, status) {
		return ErrBadTransition
	}

	return l.Orders.SetStatus(ctx, orderID, status)
}
