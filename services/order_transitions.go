package services

import (
	"time"

	"eatmove/entity"

	"gorm.io/gorm"
)

// allowedTransitions is the lifecycle: forward through the kitchen and the
// road, cancellable before the kitchen commits. Terminal states go nowhere.
var allowedTransitions = map[string][]string{
	entity.StatusPending:    {entity.StatusAccepted, entity.StatusCancelled},
	entity.StatusAccepted:   {entity.StatusPreparing, entity.StatusCancelled},
	entity.StatusPreparing:  {entity.StatusReady, entity.StatusDelivering},
	entity.StatusReady:      {entity.StatusDelivering},
	entity.StatusDelivering: {entity.StatusCompleted},
}

func TransitionAllowed(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// stampsFor are the server-side timestamps a transition carries with it.
func stampsFor(o *entity.Order, to string) map[string]any {
	extra := map[string]any{}
	now := time.Now()
	switch to {
	case entity.StatusAccepted:
		if o.AcceptedAt == nil {
			extra["accepted_at"] = now
		}
	case entity.StatusCompleted:
		if o.DeliveredAt == nil {
			extra["delivered_at"] = now
		}
	}
	return extra
}

type UpdateStatusIn struct {
	Status string  `json:"status" binding:"required"`
	Note   *string `json:"note"`
}

// UpdateStatus is the generic transition endpoint used by the partner UI.
// The target must be a known status and reachable from the current one; the
// write itself re-checks the current status, so a concurrent mover wins once.
func (s *OrderService) UpdateStatus(restaurantID, orderID uint, in *UpdateStatusIn) error {
	if !entity.ValidStatus(in.Status) {
		return ErrInvalidTransition
	}
	o, err := s.Repo.GetOrderForRestaurant(restaurantID, orderID)
	if err != nil {
		return err
	}
	if !TransitionAllowed(o.Status, in.Status) {
		return ErrInvalidTransition
	}

	extra := stampsFor(o, in.Status)
	if in.Note != nil {
		extra["note"] = *in.Note
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.UpdateStatusFromTo(tx, o.ID, o.Status, in.Status, extra)
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

	s.publish(o.ID)
	return nil
}

// ----- restaurant lifecycle sugar -----

func (s *OrderService) Accept(restaurantID, orderID uint) error {
	return s.UpdateStatus(restaurantID, orderID, &UpdateStatusIn{Status: entity.StatusAccepted})
}

func (s *OrderService) StartPreparing(restaurantID, orderID uint) error {
	return s.UpdateStatus(restaurantID, orderID, &UpdateStatusIn{Status: entity.StatusPreparing})
}

func (s *OrderService) MarkReady(restaurantID, orderID uint) error {
	return s.UpdateStatus(restaurantID, orderID, &UpdateStatusIn{Status: entity.StatusReady})
}

func (s *OrderService) Cancel(restaurantID, orderID uint) error {
	return s.UpdateStatus(restaurantID, orderID, &UpdateStatusIn{Status: entity.StatusCancelled})
}

// CancelByMember lets the customer back out while the order is still pending.
func (s *OrderService) CancelByMember(memberID, orderID uint) error {
	o, err := s.Repo.GetOrderForMember(memberID, orderID)
	if err != nil {
		return err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.UpdateStatusFromTo(tx, o.ID, entity.StatusPending, entity.StatusCancelled, nil)
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
	s.publish(o.ID)
	return nil
}
