package services

import (
	"eatmove/entity"
	"eatmove/repository"

	"gorm.io/gorm"
)

type RecentViewService struct {
	DB       *gorm.DB
	Repo     *repository.RecentViewRepository
	RestRepo *repository.RestaurantRepository
}

func NewRecentViewService(db *gorm.DB, repo *repository.RecentViewRepository, restRepo *repository.RestaurantRepository) *RecentViewService {
	return &RecentViewService{DB: db, Repo: repo, RestRepo: restRepo}
}

func (s *RecentViewService) List(memberID uint) ([]entity.RecentView, error) {
	return s.Repo.List(memberID)
}

// Record snapshots the restaurant's current display fields into the member's
// history, refreshing the snapshot on repeat visits.
func (s *RecentViewService) Record(memberID, restaurantID uint) (*entity.RecentView, error) {
	rest, err := s.RestRepo.FindByID(restaurantID)
	if err != nil {
		return nil, err
	}
	view := &entity.RecentView{
		MemberID:     memberID,
		RestaurantID: rest.ID,
		Name:         rest.Name,
		Picture:      rest.Picture,
		Cuisine:      rest.Cuisine,
		Rating:       rest.Rating,
	}
	if err := s.Repo.Upsert(view); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *RecentViewService) Delete(memberID, restaurantID uint) error {
	return s.Repo.Delete(memberID, restaurantID)
}

func (s *RecentViewService) Clear(memberID uint) error {
	return s.Repo.Clear(memberID)
}
