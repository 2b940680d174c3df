package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"plantnet_back_end/internal/models"
)

// memOrders et memPlants simulent les deux collections en mémoire, avec des
// erreurs injectables pour exercer les compensations.
type memOrders struct {
	orders    map[primitive.ObjectID]models.Order
	insertErr error
	deleteErr error
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[primitive.ObjectID]models.Order)}
}

func (m *memOrders) Insert(_ context.Context, o models.Order) (primitive.ObjectID, error) {
	if m.insertErr != nil {
		return primitive.NilObjectID, m.insertErr
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	m.orders[o.ID] = o
	return o.ID, nil
}

func (m *memOrders) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (m *memOrders) Delete(_ context.Context, id primitive.ObjectID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.orders[id]; !ok {
		return ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memOrders) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

type memPlants struct {
	stock     map[primitive.ObjectID]int
	adjustErr error
}

func newMemPlants() *memPlants {
	return &memPlants{stock: make(map[primitive.ObjectID]int)}
}

func (m *memPlants) AdjustQuantity(_ context.Context, plantID primitive.ObjectID, delta int) error {
	if m.adjustErr != nil {
		return m.adjustErr
	}
	q, ok := m.stock[plantID]
	if !ok {
		return ErrPlantNotFound
	}
	if delta < 0 && q < -delta {
		return ErrInsufficientStock
	}
	m.stock[plantID] = q + delta
	return nil
}

func newLifecycle() (*Lifecycle, *memOrders, *memPlants) {
	orders := newMemOrders()
	plants := newMemPlants()
	return &Lifecycle{Orders: orders, Plants: plants}, orders, plants
}

func seedPlant(plants *memPlants, qty int) primitive.ObjectID {
	id := primitive.NewObjectID()
	plants.stock[id] = qty
	return id
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	lc, orders, plants := newLifecycle()
	plantID := seedPlant(plants, 5)

	orderID, err := lc.PlaceOrder(context.Background(), models.Order{
		PlantID:  plantID.Hex(),
		Quantity: 3,
		Status:   "n'importe quoi", // écrasé par le workflow
	})
	require.NoError(t, err)

	assert.Equal(t, 2, plants.stock[plantID])

	o, err := orders.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	lc, orders, plants := newLifecycle()
	plantID := seedPlant(plants, 2)

	_, err := lc.PlaceOrder(context.Background(), models.Order{PlantID: plantID.Hex(), Quantity: 3})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Compensation : pas de commande orpheline, stock intact.
	assert.Empty(t, orders.orders)
	assert.Equal(t, 2, plants.stock[plantID])
}

func TestPlaceOrderPlantMissing(t *testing.T) {
	lc, orders, _ := newLifecycle()

	_, err := lc.PlaceOrder(context.Background(), models.Order{
		PlantID:  primitive.NewObjectID().Hex(),
		Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrPlantNotFound)
	assert.Empty(t, orders.orders)
}

func TestPlaceOrderBadPlantID(t *testing.T) {
	lc, _, _ := newLifecycle()

	_, err := lc.PlaceOrder(context.Background(), models.Order{PlantID: "pas-un-hex", Quantity: 1})
	assert.ErrorIs(t, err, ErrPlantNotFound)
}

func TestCancelOrderRestocks(t *testing.T) {
	lc, orders, plants := newLifecycle()
	plantID := seedPlant(plants, 5)

	orderID, err := lc.PlaceOrder(context.Background(), models.Order{PlantID: plantID.Hex(), Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 2, plants.stock[plantID])

	_, err = lc.CancelOrder(context.Background(), orderID)
	require.NoError(t, err)

	assert.Equal(t, 5, plants.stock[plantID])
	assert.Empty(t, orders.orders)
}

func TestCancelDeliveredOrderRefused(t *testing.T) {
	lc, orders, plants := newLifecycle()
	plantID := seedPlant(plants, 5)

	orderID, err := lc.PlaceOrder(context.Background(), models.Order{PlantID: plantID.Hex(), Quantity: 3})
	require.NoError(t, err)
	require.NoError(t, orders.SetStatus(context.Background(), orderID, models.OrderDelivered))

	_, err = lc.CancelOrder(context.Background(), orderID)
	assert.ErrorIs(t, err, ErrOrderDelivered)

	// Rien n'a bougé.
	assert.Equal(t, 2, plants.stock[plantID])
	assert.Len(t, orders.orders, 1)
}

func TestCancelOrderNotFound(t *testing.T) {
	lc, _, _ := newLifecycle()

	_, err := lc.CancelOrder(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancelOrderRestockFailureReinserts(t *testing.T) {
	lc, orders, plants := newLifecycle()
	plantID := seedPlant(plants, 5)

	orderID, err := lc.PlaceOrder(context.Background(), models.Order{PlantID: plantID.Hex(), Quantity: 3})
	require.NoError(t, err)

	plants.adjustErr = errors.New("mongo indisponible")
	_, err = lc.CancelOrder(context.Background(), orderID)
	require.Error(t, err)

	// Compensation : la commande est réinsérée, la vue reste cohérente.
	o, findErr := orders.FindByID(context.Background(), orderID)
	require.NoError(t, findErr)
	assert.Equal(t, models.OrderPending, o.Status)
}

func TestSetStatusForward(t *testing.T) {
	lc, orders, plants := newLifecycle()
	plantID := seedPlant(plants, 5)

	orderID, err := lc.PlaceOrder(context.Background(), models.Order{PlantID: plantID.Hex(), Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, lc.SetStatus(context.Background(), orderID, models.OrderInProgress))
	require.NoError(t, lc.SetStatus(context.Background(), orderID, models.OrderDelivered))

	o, _ := orders.FindByID(context.Background(), orderID)
	assert.Equal(t, models.OrderDelivered, o.Status)
}

func TestSetStatusSameIsNoOp(t *testing.T) {
	lc, orders, plants := newLifecycle()
	plantID := seedPlant(plants, 5)

	orderID, err := lc.PlaceOrder(context.Background(), models.Order{PlantID: plantID.Hex(), Quantity: 1})
	require.NoError(t, err)

	assert.NoError(t, lc.SetStatus(context.Background(), orderID, models.OrderPending))

	o, _ := orders.FindByID(context.Background(), orderID)
	assert.Equal(t, models.OrderPending, o.Status)
}

func TestSetStatusBackwardRefused(t *testing.T) {
	lc, orders, plants := newLifecycle()
	plantID := seedPlant(plants, 5)

	orderID, err := lc.PlaceOrder(context.Background(), models.Order{PlantID: plantID.Hex(), Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, lc.SetStatus(context.Background(), orderID, models.OrderDelivered))

	assert.ErrorIs(t, lc.SetStatus(context.Background(), orderID, models.OrderPending), ErrBadTransition)

	o, _ := orders.FindByID(context.Background(), orderID)
	assert.Equal(t, models.OrderDelivered, o.Status)
}

func TestSetStatusUnknownRefused(t *testing.T) {
	lc, _, plants := newLifecycle()
	plantID := seedPlant(plants, 5)

	orderID, err := lc.PlaceOrder(context.Background(), models.Order{PlantID: plantID.Hex(), Quantity: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, lc.SetStatus(context.Background(), orderID, "Expédiée"), ErrBadTransition)
}
