package repository

import (
	"errors"
	"time"

	"eatmove/entity"

	"gorm.io/gorm"
)

// The storage keeps every viewed restaurant; only listing is capped.
const RecentViewDisplayCap = 10

type RecentViewRepository struct{ DB *gorm.DB }

func NewRecentViewRepository(db *gorm.DB) *RecentViewRepository {
	return &RecentViewRepository{DB: db}
}

// Upsert refreshes the snapshot and bumps viewed_at for an existing pair,
// otherwise inserts.
func (r *RecentViewRepository) Upsert(view *entity.RecentView) error {
	var exist entity.RecentView
	err := r.DB.Where("member_id = ? AND restaurant_id = ?", view.MemberID, view.RestaurantID).
		First(&exist).Error
	if err == nil {
		exist.Name = view.Name
		exist.Picture = view.Picture
		exist.Cuisine = view.Cuisine
		exist.Rating = view.Rating
		exist.ViewedAt = time.Now()
		return r.DB.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	view.ViewedAt = time.Now()
	return r.DB.Create(view).Error
}

func (r *RecentViewRepository) List(memberID uint) ([]entity.RecentView, error) {
	var out []entity.RecentView
	err := r.DB.Where("member_id = ?", memberID).
		Order("viewed_at DESC").Limit(RecentViewDisplayCap).
		Find(&out).Error
	return out, err
}

// Delete removes the row for good; the member/restaurant pair is uniquely
// indexed, so a soft-deleted row would block recording the same restaurant
// again.
func (r *RecentViewRepository) Delete(memberID, restaurantID uint) error {
	return r.DB.Unscoped().Where("member_id = ? AND restaurant_id = ?", memberID, restaurantID).
		Delete(&entity.RecentView{}).Error
}

func (r *RecentViewRepository) Clear(memberID uint) error {
	return r.DB.Unscoped().Where("member_id = ?", memberID).Delete(&entity.RecentView{}).Error
}
