package services

import (
	"errors"
	"time"

	"eatmove/entity"
	"eatmove/repository"

	"gorm.io/gorm"
)

type CourierService struct {
	DB          *gorm.DB
	CourierRepo *repository.CourierRepository
	OrderRepo   *repository.OrderRepository

	Orders *OrderService // for event fan-out after claims/completions
}

func NewCourierService(
	db *gorm.DB,
	courierRepo *repository.CourierRepository,
	orderRepo *repository.OrderRepository,
	orders *OrderService,
) *CourierService {
	return &CourierService{DB: db, CourierRepo: courierRepo, OrderRepo: orderRepo, Orders: orders}
}

func (s *CourierService) ListAvailable(zone string) ([]repository.AvailableCourierRow, error) {
	return s.CourierRepo.ListAvailable(zone)
}

func (s *CourierService) ListClaimable() ([]repository.ClaimableOrderRow, error) {
	return s.OrderRepo.ListClaimable(50)
}

// SetAvailability flips online/offline. Going offline mid-delivery is
// refused; the order would be orphaned on the road.
func (s *CourierService) SetAvailability(courierID uint, online bool) error {
	if !online {
		active, err := s.OrderRepo.CountActiveForCourier(courierID)
		if err != nil {
			return err
		}
		if active > 0 {
			return errors.New("cannot go offline with an active delivery")
		}
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CourierRepo.SetOnline(tx, courierID, online)
	})
}

// Claim assigns the courier in one conditional UPDATE; when two couriers race
// for the same order exactly one sees the row change.
func (s *CourierService) Claim(courierID, orderID uint) error {
	co, err := s.CourierRepo.FindByID(courierID)
	if err != nil {
		return err
	}
	if !co.Online {
		return errors.New("courier is offline")
	}
	active, err := s.OrderRepo.CountActiveForCourier(courierID)
	if err != nil {
		return err
	}
	if active >= repository.MaxActiveOrders {
		return errors.New("courier at capacity")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.OrderRepo.AssignCourier(tx, orderID, courierID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyClaimed
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Orders.publish(orderID)
	return nil
}

// Complete closes the delivery: delivering → completed by the assigned
// courier only, stamping the actual delivery time.
func (s *CourierService) Complete(courierID, orderID uint) error {
	o, err := s.OrderRepo.GetOrder(orderID)
	if err != nil {
		return err
	}
	if o.CourierID == nil || *o.CourierID != courierID {
		return ErrForbidden
	}

	extra := map[string]any{}
	if o.DeliveredAt == nil {
		extra["delivered_at"] = time.Now()
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.OrderRepo.UpdateStatusFromTo(tx, orderID,
			entity.StatusDelivering, entity.StatusCompleted, extra)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Orders.publish(orderID)
	return nil
}

func (s *CourierService) Status(courierID uint) (map[string]any, error) {
	co, err := s.CourierRepo.FindByID(courierID)
	if err != nil {
		return nil, err
	}
	active, err := s.OrderRepo.CountActiveForCourier(courierID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"online":     co.Online,
		"activeLoad": active,
		"capacity":   repository.MaxActiveOrders,
	}, nil
}
