package repository

import (
	"eatmove/entity"

	"gorm.io/gorm"
)

type RatingRepository struct{ DB *gorm.DB }

func NewRatingRepository(db *gorm.DB) *RatingRepository { return &RatingRepository{DB: db} }

func (r *RatingRepository) Create(tx *gorm.DB, rating *entity.Rating) error {
	return tx.Create(rating).Error
}

func (r *RatingRepository) ExistsForOrder(orderID, memberID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Rating{}).
		Where("order_id = ? AND member_id = ?", orderID, memberID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *RatingRepository) ListForRestaurant(restaurantID uint, limit, offset int) ([]entity.Rating, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var out []entity.Rating
	err := r.DB.Where("restaurant_id = ?", restaurantID).
		Order("id DESC").Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

type RatingAggregate struct {
	Avg   float64 `json:"avgRating"`
	Count int64   `json:"total"`
}

func (r *RatingRepository) AggregateForRestaurant(restaurantID uint) (RatingAggregate, error) {
	var a RatingAggregate
	err := r.DB.Model(&entity.Rating{}).
		Where("restaurant_id = ? AND restaurant_rating IS NOT NULL", restaurantID).
		Select("COALESCE(AVG(restaurant_rating), 0) AS avg, COUNT(*) AS count").
		Scan(&a).Error
	return a, err
}
