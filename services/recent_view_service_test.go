package services

import (
	"fmt"
	"testing"
	"time"

	"eatmove/entity"
	"eatmove/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newViewSvc(db *gorm.DB) *RecentViewService {
	return NewRecentViewService(db,
		repository.NewRecentViewRepository(db),
		repository.NewRestaurantRepository(db))
}

func TestRecordViewUpserts(t *testing.T) {
	db := newTestDB(t)
	svc := newViewSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)

	_, err := svc.Record(m.ID, r.ID)
	require.NoError(t, err)
	_, err = svc.Record(m.ID, r.ID)
	require.NoError(t, err)

	var cnt int64
	require.NoError(t, db.Model(&entity.RecentView{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestRecordViewRefreshesSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := newViewSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)

	_, err := svc.Record(m.ID, r.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(r).Updates(map[string]any{
		"name": "Renamed Kitchen", "rating": 4.5,
	}).Error)

	_, err = svc.Record(m.ID, r.ID)
	require.NoError(t, err)

	views, err := svc.List(m.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Renamed Kitchen", views[0].Name)
	assert.InDelta(t, 4.5, views[0].Rating, 0.001)
}

func TestListViewsCappedAtTenNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newViewSvc(db)
	m := seedMember(t, db, 0)

	base := time.Now().Add(-time.Hour)
	var last uint
	for i := 0; i < repository.RecentViewDisplayCap+2; i++ {
		r := seedRestaurant(t, db)
		view := &entity.RecentView{
			MemberID: m.ID, RestaurantID: r.ID,
			Name:     fmt.Sprintf("Place %d", i),
			ViewedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(view).Error)
		last = r.ID
	}

	views, err := svc.List(m.ID)
	require.NoError(t, err)
	require.Len(t, views, repository.RecentViewDisplayCap)
	assert.Equal(t, last, views[0].RestaurantID)
}

func TestDeleteAndClearViews(t *testing.T) {
	db := newTestDB(t)
	svc := newViewSvc(db)
	m := seedMember(t, db, 0)
	r1 := seedRestaurant(t, db)
	r2 := seedRestaurant(t, db)

	_, err := svc.Record(m.ID, r1.ID)
	require.NoError(t, err)
	_, err = svc.Record(m.ID, r2.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(m.ID, r1.ID))
	views, err := svc.List(m.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, r2.ID, views[0].RestaurantID)

	require.NoError(t, svc.Clear(m.ID))
	views, err = svc.List(m.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestViewRecordableAgainAfterDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newViewSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)

	// delete must not leave a tombstone under the unique member/restaurant
	// index that would break the next visit
	_, err := svc.Record(m.ID, r.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(m.ID, r.ID))
	_, err = svc.Record(m.ID, r.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(m.ID))
	_, err = svc.Record(m.ID, r.ID)
	require.NoError(t, err)

	views, err := svc.List(m.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, r.ID, views[0].RestaurantID)
}
