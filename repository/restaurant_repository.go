package repository

import (
	"eatmove/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(tx *gorm.DB, rest *entity.Restaurant) error {
	return tx.Create(rest).Error
}

func (r *RestaurantRepository) SetCode(tx *gorm.DB, id uint, code string) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", id).Update("code", code).Error
}

func (r *RestaurantRepository) FindByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindByEmail(email string) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Where("email = ?", email).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Restaurant{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *RestaurantRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *RestaurantRepository) Update(tx *gorm.DB, id uint, updates map[string]any) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", id).Updates(updates).Error
}

type ListFilter struct {
	Search   string
	Cuisine  string
	OpenOnly bool
	Page     int
	Limit    int
}

// Unfiltered default query (used by the cached front page too).
func (f ListFilter) IsDefault() bool {
	return f.Search == "" && f.Cuisine == "" && !f.OpenOnly && f.Page <= 1
}

func (r *RestaurantRepository) List(f ListFilter) ([]entity.Restaurant, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	q := r.DB.Model(&entity.Restaurant{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR cuisine LIKE ?", like, like)
	}
	if f.Cuisine != "" {
		q = q.Where("cuisine = ?", f.Cuisine)
	}
	if f.OpenOnly {
		q = q.Where("is_open = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Restaurant
	err := q.Order("rating DESC").Order("id ASC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&out).Error
	return out, total, err
}

// RecomputeRating persists the mean of all restaurant ratings ever given.
func (r *RestaurantRepository) RecomputeRating(tx *gorm.DB, restaurantID uint) error {
	return tx.Exec(`
		UPDATE restaurants
		   SET rating = COALESCE((
				SELECT AVG(restaurant_rating)
				  FROM ratings
				 WHERE restaurant_id = ?
				   AND restaurant_rating IS NOT NULL
				   AND deleted_at IS NULL
			), 0)
		 WHERE id = ?
	`, restaurantID, restaurantID).Error
}
