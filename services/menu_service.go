package services

import (
	"eatmove/entity"
	"eatmove/repository"

	"gorm.io/gorm"
)

type MenuService struct {
	DB   *gorm.DB
	Repo *repository.MenuRepository
}

func NewMenuService(db *gorm.DB, repo *repository.MenuRepository) *MenuService {
	return &MenuService{DB: db, Repo: repo}
}

func (s *MenuService) List(restaurantID uint, category string, availableOnly bool) ([]entity.MenuItem, error) {
	return s.Repo.List(restaurantID, category, availableOnly)
}

type CreateMenuItemIn struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Picture     string `json:"picture"`
	Available   *bool  `json:"available"`
	Popular     bool   `json:"popular"`
}

func (s *MenuService) Create(restaurantID uint, in *CreateMenuItemIn) (*entity.MenuItem, error) {
	item := entity.MenuItem{
		RestaurantID: restaurantID,
		Name:         in.Name,
		Price:        in.Price,
		Description:  in.Description,
		Category:     in.Category,
		Picture:      in.Picture,
		Available:    true,
		Popular:      in.Popular,
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if err := s.Repo.Create(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

type UpdateMenuItemIn struct {
	Name        *string `json:"name"`
	Price       *int64  `json:"price" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Picture     *string `json:"picture"`
	Available   *bool   `json:"available"`
	Popular     *bool   `json:"popular"`
}

func (s *MenuService) Update(restaurantID, itemID uint, in *UpdateMenuItemIn) (*entity.MenuItem, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Picture != nil {
		updates["picture"] = *in.Picture
	}
	if in.Available != nil {
		updates["available"] = *in.Available
	}
	if in.Popular != nil {
		updates["popular"] = *in.Popular
	}

	if len(updates) > 0 {
		ok, err := s.Repo.Update(restaurantID, itemID, updates)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return s.Repo.GetForRestaurant(restaurantID, itemID)
}

func (s *MenuService) Delete(restaurantID, itemID uint) error {
	ok, err := s.Repo.Delete(restaurantID, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}
