package repository

import (
	"eatmove/entity"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) Create(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *MenuRepository) GetBasics(id uint) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.Select("id, name, price, restaurant_id, available").First(&m, id).Error
	return m, err
}

func (r *MenuRepository) GetForRestaurant(restaurantID, itemID uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.Where("id = ? AND restaurant_id = ?", itemID, restaurantID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) List(restaurantID uint, category string, availableOnly bool) ([]entity.MenuItem, error) {
	q := r.DB.Where("restaurant_id = ?", restaurantID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if availableOnly {
		q = q.Where("available = ?", true)
	}
	var out []entity.MenuItem
	err := q.Order("popular DESC").Order("id ASC").Find(&out).Error
	return out, err
}

func (r *MenuRepository) Update(restaurantID, itemID uint, updates map[string]any) (bool, error) {
	res := r.DB.Model(&entity.MenuItem{}).
		Where("id = ? AND restaurant_id = ?", itemID, restaurantID).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Menu items are deleted independently of the restaurant.
func (r *MenuRepository) Delete(restaurantID, itemID uint) (bool, error) {
	res := r.DB.Where("id = ? AND restaurant_id = ?", itemID, restaurantID).
		Delete(&entity.MenuItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
