package services

import (
	"context"
	"errors"
	"time"

	"eatmove/entity"
	"eatmove/pkg/events"
	"eatmove/repository"
	"eatmove/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// Every order carries the same delivery promise regardless of distance; the
// quote endpoint gives the distance-based display estimate.
const EstimatedDeliveryOffset = 35 * time.Minute

const (
	PaymentWallet = "wallet"
	PaymentCOD    = "cod"
	PaymentCard   = "card"
)

// OrderNotifier pushes live status changes to subscribed clients (the
// websocket hub implements it). Nil is fine.
type OrderNotifier interface {
	OrderUpdated(o *entity.Order)
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	RestRepo *repository.RestaurantRepository

	Pub    events.Publisher
	Notify OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	restRepo *repository.RestaurantRepository,
	pub events.Publisher,
) *OrderService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, RestRepo: restRepo, Pub: pub}
}

type CheckoutReq struct {
	RestaurantID  uint    `json:"restaurantId" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"omitempty,oneof=wallet cod card"`
	Note          string  `json:"note"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

type CheckoutRes struct {
	ID                  uint      `json:"id"`
	Total               int64     `json:"total"`
	PaymentRef          string    `json:"paymentRef"`
	EstimatedDeliveryAt time.Time `json:"estimatedDeliveryAt"`
}

// Checkout turns the (member, restaurant) cart into an order: N cart lines
// become exactly N immutable order items or nothing at all.
func (s *OrderService) Checkout(memberID uint, in *CheckoutReq) (*CheckoutRes, error) {
	rest, err := s.RestRepo.FindByID(in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !rest.IsOpen {
		return nil, errors.New("restaurant is closed")
	}

	method := in.PaymentMethod
	if method == "" {
		method = PaymentCOD
	}

	now := time.Now()
	var out CheckoutRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Snapshot the cart inside the transaction; only the lines read
		// here are billed, and only those lines are consumed afterwards.
		cart, err := s.CartRepo.GetCartWithItems(tx, memberID, in.RestaurantID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return errors.New("cart is empty")
		}

		var subtotal int64
		for _, it := range cart.Items {
			subtotal += it.Total
		}
		if subtotal < rest.MinOrderAmount {
			return errors.New("order below restaurant minimum")
		}

		deliveryFee := utils.BaseDeliveryFee
		if in.Latitude != 0 || in.Longitude != 0 {
			km := utils.HaversineKm(rest.Latitude, rest.Longitude, in.Latitude, in.Longitude)
			deliveryFee = utils.DeliveryFee(km)
		}
		total := subtotal + deliveryFee

		if method == PaymentWallet {
			ok, err := s.Repo.DebitWallet(tx, memberID, total)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientFunds
			}
		}

		order := entity.Order{
			MemberID:            memberID,
			RestaurantID:        in.RestaurantID,
			Status:              entity.StatusPending,
			Address:             in.Address,
			Subtotal:            subtotal,
			DeliveryFee:         deliveryFee,
			Total:               total,
			Note:                in.Note,
			PaymentMethod:       method,
			PaymentRef:          uuid.NewString(),
			EstimatedDeliveryAt: now.Add(EstimatedDeliveryOffset),
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		consumed := make([]uint, 0, len(cart.Items))
		for _, it := range cart.Items {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: it.MenuItemID,
				Name:       it.MenuItem.Name,
				Qty:        it.Qty,
				UnitPrice:  it.UnitPrice,
				Total:      it.Total,
				Note:       it.Note,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			consumed = append(consumed, it.ID)
		}

		if err := s.CartRepo.ConsumeItems(tx, cart.ID, consumed); err != nil {
			return err
		}

		out = CheckoutRes{
			ID: order.ID, Total: order.Total,
			PaymentRef: order.PaymentRef, EstimatedDeliveryAt: order.EstimatedDeliveryAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(out.ID)
	return &out, nil
}

func (s *OrderService) ListForMember(memberID uint, status string, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForMember(memberID, status, limit)
}

func (s *OrderService) DetailForMember(memberID, orderID uint) (*entity.Order, error) {
	return s.Repo.GetOrderForMember(memberID, orderID)
}

func (s *OrderService) ListForRestaurant(restaurantID uint, status string, page, limit int) ([]repository.RestaurantOrderSummary, int64, error) {
	return s.Repo.ListOrdersForRestaurant(restaurantID, status, page, limit)
}

func (s *OrderService) DetailForRestaurant(restaurantID, orderID uint) (*entity.Order, error) {
	return s.Repo.GetOrderForRestaurant(restaurantID, orderID)
}

// PaymentQR renders the order's payment reference as a PNG for the customer
// to scan at handoff.
func (s *OrderService) PaymentQR(memberID, orderID uint) ([]byte, error) {
	o, err := s.Repo.GetOrderForMember(memberID, orderID)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode("eatmove:pay:"+o.PaymentRef, qrcode.Medium, 256)
}

// publish reloads the order and fans it out to kafka and the tracking hub.
// Failures are logged, never surfaced: the state change already committed.
func (s *OrderService) publish(orderID uint) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		logrus.WithError(err).WithField("order", orderID).Warn("publish: reload failed")
		return
	}
	ev := events.OrderEvent{
		OrderID:      o.ID,
		MemberID:     o.MemberID,
		RestaurantID: o.RestaurantID,
		CourierID:    o.CourierID,
		Status:       o.Status,
		At:           time.Now(),
	}
	if err := s.Pub.PublishOrder(context.Background(), ev); err != nil {
		logrus.WithError(err).WithField("order", o.ID).Warn("order event publish failed")
	}
	if s.Notify != nil {
		s.Notify.OrderUpdated(o)
	}
}
