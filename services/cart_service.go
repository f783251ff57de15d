package services

import (
	"errors"

	"eatmove/entity"
	"eatmove/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr}
}

type AddToCartIn struct {
	RestaurantID uint   `json:"restaurantId" binding:"required"`
	MenuItemID   uint   `json:"menuItemId" binding:"required"`
	Qty          int    `json:"qty" binding:"min=1"`
	Note         string `json:"note"`
}

type CartOut struct {
	Cart      *entity.Cart `json:"cart"`
	Subtotal  int64        `json:"subtotal"`
	ItemCount int          `json:"itemCount"`
}

func (s *CartService) Get(memberID, restaurantID uint) (*CartOut, error) {
	c, err := s.CartRepo.GetCartWithItems(s.DB, memberID, restaurantID)
	if err != nil {
		return nil, err
	}
	out := &CartOut{Cart: c}
	for _, it := range c.Items {
		out.Subtotal += it.Total
		out.ItemCount += it.Qty
	}
	return out, nil
}

func (s *CartService) Add(memberID uint, in *AddToCartIn) error {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	m, err := s.MenuRepo.GetBasics(in.MenuItemID)
	if err != nil {
		return err
	}
	if m.RestaurantID != in.RestaurantID {
		return errors.New("menu item not in this restaurant")
	}
	if !m.Available {
		return errors.New("menu item unavailable")
	}

	line := &entity.CartItem{
		MenuItemID: m.ID,
		Qty:        in.Qty,
		UnitPrice:  m.Price,
		Total:      m.Price * int64(in.Qty),
		Note:       in.Note,
	}

	// create-or-fetch cart, merge line, touch cart: all or nothing
	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.GetOrCreateCart(tx, memberID, in.RestaurantID)
		if err != nil {
			return err
		}
		if err := s.CartRepo.UpsertItem(tx, c.ID, line); err != nil {
			return err
		}
		return s.CartRepo.TouchCart(tx, c.ID)
	})
}

// UpdateItem with qty <= 0 removes the line instead of storing it.
func (s *CartService) UpdateItem(memberID, itemID uint, qty int, note string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpdateQty(tx, memberID, itemID, qty, note)
	})
}

func (s *CartService) RemoveItem(memberID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, memberID, itemID)
	})
}

func (s *CartService) Clear(memberID, restaurantID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.DeleteCart(tx, memberID, restaurantID)
	})
}
