package services

import (
	"testing"
	"time"

	"eatmove/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutCreatesOrderFromCart(t *testing.T) {
	db := newTestDB(t)
	carts := newCartSvc(db)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)
	padThai := seedMenuItem(t, db, r.ID, "Pad Thai", 50)
	springRolls := seedMenuItem(t, db, r.ID, "Spring Rolls", 30)

	require.NoError(t, carts.Add(m.ID, &AddToCartIn{RestaurantID: r.ID, MenuItemID: padThai.ID, Qty: 2}))
	require.NoError(t, carts.Add(m.ID, &AddToCartIn{RestaurantID: r.ID, MenuItemID: springRolls.ID, Qty: 1}))

	before := time.Now()
	res, err := orders.Checkout(m.ID, &CheckoutReq{
		RestaurantID: r.ID, Address: "123 Test St", PaymentMethod: PaymentCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(130+20), res.Total) // subtotal + base delivery fee
	assert.NotEmpty(t, res.PaymentRef)

	eta := res.EstimatedDeliveryAt
	assert.WithinDuration(t, before.Add(EstimatedDeliveryOffset), eta, 5*time.Second)

	o, err := orders.DetailForMember(m.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, o.Status)
	require.Len(t, o.Items, 2)
	for _, it := range o.Items {
		assert.NotEmpty(t, it.Name) // snapshot carries the dish name
	}

	// cart is consumed by checkout
	cart, err := carts.Get(m.ID, r.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Cart.Items)
}

func TestCheckoutThenOrderAgainFromSameRestaurant(t *testing.T) {
	db := newTestDB(t)
	carts := newCartSvc(db)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)
	dish := seedMenuItem(t, db, r.ID, "Pad Thai", 50)

	require.NoError(t, carts.Add(m.ID, &AddToCartIn{RestaurantID: r.ID, MenuItemID: dish.ID, Qty: 1}))
	first, err := orders.Checkout(m.ID, &CheckoutReq{RestaurantID: r.ID, Address: "x"})
	require.NoError(t, err)

	// the consumed cart must not leave a tombstone under the unique
	// member/restaurant index; a second round has to work end to end
	require.NoError(t, carts.Add(m.ID, &AddToCartIn{RestaurantID: r.ID, MenuItemID: dish.ID, Qty: 2}))
	second, err := orders.Checkout(m.ID, &CheckoutReq{RestaurantID: r.ID, Address: "x"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, int64(100+20), second.Total)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)

	_, err := orders.Checkout(m.ID, &CheckoutReq{RestaurantID: r.ID, Address: "x"})
	assert.Error(t, err)
}

func TestCheckoutClosedRestaurantRejected(t *testing.T) {
	db := newTestDB(t)
	carts := newCartSvc(db)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)
	dish := seedMenuItem(t, db, r.ID, "Pad Thai", 50)

	require.NoError(t, carts.Add(m.ID, &AddToCartIn{RestaurantID: r.ID, MenuItemID: dish.ID, Qty: 1}))
	require.NoError(t, db.Model(r).Update("is_open", false).Error)

	_, err := orders.Checkout(m.ID, &CheckoutReq{RestaurantID: r.ID, Address: "x"})
	assert.Error(t, err)
}

func TestCheckoutBelowMinimumRejected(t *testing.T) {
	db := newTestDB(t)
	carts := newCartSvc(db)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)
	dish := seedMenuItem(t, db, r.ID, "Spring Rolls", 30)

	require.NoError(t, db.Model(r).Update("min_order_amount", 100).Error)
	require.NoError(t, carts.Add(m.ID, &AddToCartIn{RestaurantID: r.ID, MenuItemID: dish.ID, Qty: 1}))

	_, err := orders.Checkout(m.ID, &CheckoutReq{RestaurantID: r.ID, Address: "x"})
	assert.Error(t, err)
}

func TestCheckoutWalletDebit(t *testing.T) {
	db := newTestDB(t)
	carts := newCartSvc(db)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 200)
	r := seedRestaurant(t, db)
	dish := seedMenuItem(t, db, r.ID, "Pad Thai", 50)

	require.NoError(t, carts.Add(m.ID, &AddToCartIn{RestaurantID: r.ID, MenuItemID: dish.ID, Qty: 2}))
	res, err := orders.Checkout(m.ID, &CheckoutReq{
		RestaurantID: r.ID, Address: "x", PaymentMethod: PaymentWallet,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(120), res.Total)

	var reloaded entity.Member
	require.NoError(t, db.First(&reloaded, m.ID).Error)
	assert.Equal(t, int64(80), reloaded.WalletBalance)
}

func TestCheckoutInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	carts := newCartSvc(db)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 50)
	r := seedRestaurant(t, db)
	dish := seedMenuItem(t, db, r.ID, "Pad Thai", 50)

	require.NoError(t, carts.Add(m.ID, &AddToCartIn{RestaurantID: r.ID, MenuItemID: dish.ID, Qty: 2}))
	_, err := orders.Checkout(m.ID, &CheckoutReq{
		RestaurantID: r.ID, Address: "x", PaymentMethod: PaymentWallet,
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// nothing committed: wallet untouched, no order, cart intact
	var reloaded entity.Member
	require.NoError(t, db.First(&reloaded, m.ID).Error)
	assert.Equal(t, int64(50), reloaded.WalletBalance)

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	cart, err := carts.Get(m.ID, r.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Cart.Items, 1)
}

func TestStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)
	o := seedOrder(t, db, m.ID, r.ID, entity.StatusPending)

	require.NoError(t, orders.Accept(r.ID, o.ID))
	require.NoError(t, orders.StartPreparing(r.ID, o.ID))
	require.NoError(t, orders.MarkReady(r.ID, o.ID))

	reloaded, err := orders.DetailForRestaurant(r.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, reloaded.Status)
	assert.NotNil(t, reloaded.AcceptedAt)
}

func TestStatusSkipRejected(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)
	o := seedOrder(t, db, m.ID, r.ID, entity.StatusPending)

	err := orders.MarkReady(r.ID, o.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = orders.UpdateStatus(r.ID, o.ID, &UpdateStatusIn{Status: entity.StatusCompleted})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = orders.UpdateStatus(r.ID, o.ID, &UpdateStatusIn{Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelByMemberOnlyWhilePending(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)
	o := seedOrder(t, db, m.ID, r.ID, entity.StatusPending)

	require.NoError(t, orders.CancelByMember(m.ID, o.ID))

	o2 := seedOrder(t, db, m.ID, r.ID, entity.StatusAccepted)
	err := orders.CancelByMember(m.ID, o2.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	other := seedMember(t, db, 0)
	r := seedRestaurant(t, db)
	o := seedOrder(t, db, m.ID, r.ID, entity.StatusPending)

	_, err := orders.DetailForMember(other.ID, o.ID)
	assert.Error(t, err)
}

func TestPaymentQR(t *testing.T) {
	db := newTestDB(t)
	carts := newCartSvc(db)
	orders := newOrderSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)
	dish := seedMenuItem(t, db, r.ID, "Pad Thai", 50)

	require.NoError(t, carts.Add(m.ID, &AddToCartIn{RestaurantID: r.ID, MenuItemID: dish.ID, Qty: 1}))
	res, err := orders.Checkout(m.ID, &CheckoutReq{RestaurantID: r.ID, Address: "x"})
	require.NoError(t, err)

	png, err := orders.PaymentQR(m.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
