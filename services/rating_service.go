package services

import (
	"context"
	"errors"
	"time"

	"eatmove/entity"
	"eatmove/pkg/cache"
	"eatmove/pkg/events"
	"eatmove/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RatingService struct {
	DB         *gorm.DB
	RatingRepo *repository.RatingRepository
	OrderRepo  *repository.OrderRepository
	RestRepo   *repository.RestaurantRepository

	Cache *cache.Cache
	Pub   events.Publisher
}

func NewRatingService(
	db *gorm.DB,
	ratingRepo *repository.RatingRepository,
	orderRepo *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	c *cache.Cache,
	pub events.Publisher,
) *RatingService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &RatingService{
		DB: db, RatingRepo: ratingRepo, OrderRepo: orderRepo, RestRepo: restRepo,
		Cache: c, Pub: pub,
	}
}

type SubmitRatingIn struct {
	OrderID          uint   `json:"orderId" binding:"required"`
	RestaurantRating *int   `json:"restaurantRating" binding:"omitempty,min=1,max=5"`
	DeliveryRating   *int   `json:"deliveryRating" binding:"omitempty,min=1,max=5"`
	Comments         string `json:"comments"`
}

// Submit records the one rating a member gets per order. Insert, the copies
// on the order row, and the restaurant's recomputed mean all commit together
// or not at all.
func (s *RatingService) Submit(memberID uint, in *SubmitRatingIn) (*entity.Rating, error) {
	if in.RestaurantRating == nil && in.DeliveryRating == nil {
		return nil, errors.New("at least one rating is required")
	}

	o, err := s.OrderRepo.GetOrderForMember(memberID, in.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.StatusCompleted {
		return nil, errors.New("order is not completed yet")
	}

	// pre-check for the friendly error; the unique index settles races
	exists, err := s.RatingRepo.ExistsForOrder(o.ID, memberID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRated
	}

	rating := entity.Rating{
		OrderID:          o.ID,
		MemberID:         memberID,
		RestaurantID:     o.RestaurantID,
		CourierID:        o.CourierID,
		RestaurantRating: in.RestaurantRating,
		DeliveryRating:   in.DeliveryRating,
		Comments:         in.Comments,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.RatingRepo.Create(tx, &rating); err != nil {
			return err
		}
		if err := s.OrderRepo.SetRatingCopies(tx, o.ID, in.RestaurantRating, in.DeliveryRating); err != nil {
			return err
		}
		if in.RestaurantRating != nil {
			if err := s.RestRepo.RecomputeRating(tx, o.RestaurantID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := s.Cache.Delete(ctx, cache.RestaurantKey(o.RestaurantID), cache.RestaurantListKey); err != nil {
		logrus.WithError(err).Warn("rating: cache invalidation failed")
	}
	if err := s.Pub.PublishRating(ctx, events.RatingEvent{
		OrderID:          o.ID,
		RestaurantID:     o.RestaurantID,
		RestaurantRating: in.RestaurantRating,
		DeliveryRating:   in.DeliveryRating,
		At:               time.Now(),
	}); err != nil {
		logrus.WithError(err).Warn("rating event publish failed")
	}

	return &rating, nil
}

type RatingListOut struct {
	Items     []entity.Rating            `json:"items"`
	Aggregate repository.RatingAggregate `json:"aggregate"`
}

func (s *RatingService) ListForRestaurant(restaurantID uint, limit, offset int) (*RatingListOut, error) {
	items, err := s.RatingRepo.ListForRestaurant(restaurantID, limit, offset)
	if err != nil {
		return nil, err
	}
	agg, err := s.RatingRepo.AggregateForRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	return &RatingListOut{Items: items, Aggregate: agg}, nil
}
