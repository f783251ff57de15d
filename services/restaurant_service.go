package services

import (
	"context"

	"eatmove/entity"
	"eatmove/pkg/cache"
	"eatmove/repository"
	"eatmove/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RestaurantService struct {
	DB       *gorm.DB
	Repo     *repository.RestaurantRepository
	ViewRepo *repository.RecentViewRepository

	Cache *cache.Cache
}

func NewRestaurantService(
	db *gorm.DB,
	repo *repository.RestaurantRepository,
	viewRepo *repository.RecentViewRepository,
	c *cache.Cache,
) *RestaurantService {
	return &RestaurantService{DB: db, Repo: repo, ViewRepo: viewRepo, Cache: c}
}

type RestaurantListOut struct {
	Items []entity.Restaurant `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// List serves the catalog. The unfiltered front page is read through the
// cache; anything filtered goes straight to the database.
func (s *RestaurantService) List(f repository.ListFilter) (*RestaurantListOut, error) {
	ctx := context.Background()
	cacheable := f.IsDefault()
	if cacheable {
		var cached RestaurantListOut
		if s.Cache.GetJSON(ctx, cache.RestaurantListKey, &cached) {
			return &cached, nil
		}
	}

	items, total, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	out := &RestaurantListOut{Items: items, Total: total, Page: f.Page, Limit: f.Limit}

	if cacheable {
		if err := s.Cache.SetJSON(ctx, cache.RestaurantListKey, out); err != nil {
			logrus.WithError(err).Warn("restaurant list cache set failed")
		}
	}
	return out, nil
}

// Detail fetches one restaurant (cached) and, when a member is looking,
// records the visit in their recent views.
func (s *RestaurantService) Detail(id uint, viewerMemberID uint) (*entity.Restaurant, error) {
	ctx := context.Background()
	var rest *entity.Restaurant

	var cached entity.Restaurant
	if s.Cache.GetJSON(ctx, cache.RestaurantKey(id), &cached) {
		rest = &cached
	} else {
		loaded, err := s.Repo.FindByID(id)
		if err != nil {
			return nil, err
		}
		rest = loaded
		if err := s.Cache.SetJSON(ctx, cache.RestaurantKey(id), rest); err != nil {
			logrus.WithError(err).Warn("restaurant cache set failed")
		}
	}

	if viewerMemberID != 0 {
		view := &entity.RecentView{
			MemberID:     viewerMemberID,
			RestaurantID: rest.ID,
			Name:         rest.Name,
			Picture:      rest.Picture,
			Cuisine:      rest.Cuisine,
			Rating:       rest.Rating,
		}
		if err := s.ViewRepo.Upsert(view); err != nil {
			logrus.WithError(err).Warn("recent view record failed")
		}
	}
	return rest, nil
}

type QuoteOut struct {
	DistanceKm  float64 `json:"distanceKm"`
	DeliveryFee int64   `json:"deliveryFee"`
	EtaMinutes  int     `json:"etaMinutes"`
}

// Quote is the distance/fee/ETA helper for the storefront.
func (s *RestaurantService) Quote(id uint, lat, lng float64) (*QuoteOut, error) {
	rest, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	km := utils.HaversineKm(rest.Latitude, rest.Longitude, lat, lng)
	return &QuoteOut{
		DistanceKm:  km,
		DeliveryFee: utils.DeliveryFee(km),
		EtaMinutes:  utils.EtaMinutes(km),
	}, nil
}

type UpdateRestaurantIn struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	Description    *string  `json:"description"`
	Cuisine        *string  `json:"cuisine"`
	Picture        *string  `json:"picture"`
	DeliveryArea   *string  `json:"deliveryArea"`
	BusinessHours  *string  `json:"businessHours"`
	IsOpen         *bool    `json:"isOpen"`
	MinOrderAmount *int64   `json:"minOrderAmount"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// UpdateProfile applies only the supplied fields, then drops the stale cache
// entries.
func (s *RestaurantService) UpdateProfile(id uint, in *UpdateRestaurantIn) (*entity.Restaurant, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Cuisine != nil {
		updates["cuisine"] = *in.Cuisine
	}
	if in.Picture != nil {
		updates["picture"] = *in.Picture
	}
	if in.DeliveryArea != nil {
		updates["delivery_area"] = *in.DeliveryArea
	}
	if in.BusinessHours != nil {
		updates["business_hours"] = *in.BusinessHours
	}
	if in.IsOpen != nil {
		updates["is_open"] = *in.IsOpen
	}
	if in.MinOrderAmount != nil {
		updates["min_order_amount"] = *in.MinOrderAmount
	}
	if in.Latitude != nil {
		updates["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		updates["longitude"] = *in.Longitude
	}

	if len(updates) > 0 {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			return s.Repo.Update(tx, id, updates)
		})
		if err != nil {
			return nil, err
		}
		if err := s.Cache.Delete(context.Background(),
			cache.RestaurantKey(id), cache.RestaurantListKey); err != nil {
			logrus.WithError(err).Warn("restaurant cache invalidation failed")
		}
	}
	return s.Repo.FindByID(id)
}
