package services

import (
	"testing"

	"eatmove/entity"
	"eatmove/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRestSvc(db *gorm.DB) *RestaurantService {
	return NewRestaurantService(db,
		repository.NewRestaurantRepository(db),
		repository.NewRecentViewRepository(db),
		nil) // cache disabled
}

func TestRestaurantListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newRestSvc(db)

	thai := seedRestaurant(t, db)
	require.NoError(t, db.Model(thai).Updates(map[string]any{
		"name": "Thai Corner", "cuisine": "thai", "rating": 4.8,
	}).Error)
	sushi := seedRestaurant(t, db)
	require.NoError(t, db.Model(sushi).Updates(map[string]any{
		"name": "Sushi Bay", "cuisine": "japanese", "rating": 4.2,
	}).Error)
	closed := seedRestaurant(t, db)
	require.NoError(t, db.Model(closed).Updates(map[string]any{
		"name": "Shut Diner", "is_open": false,
	}).Error)

	out, err := svc.List(repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	// rating DESC puts the best first
	assert.Equal(t, "Thai Corner", out.Items[0].Name)

	out, err = svc.List(repository.ListFilter{Search: "sushi"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Sushi Bay", out.Items[0].Name)

	out, err = svc.List(repository.ListFilter{Cuisine: "thai"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)

	out, err = svc.List(repository.ListFilter{OpenOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
}

func TestRestaurantDetailRecordsMemberVisit(t *testing.T) {
	db := newTestDB(t)
	svc := newRestSvc(db)
	m := seedMember(t, db, 0)
	r := seedRestaurant(t, db)

	// anonymous visit leaves no trace
	_, err := svc.Detail(r.ID, 0)
	require.NoError(t, err)
	var cnt int64
	require.NoError(t, db.Model(&entity.RecentView{}).Count(&cnt).Error)
	assert.Zero(t, cnt)

	// member visit lands in recent views
	_, err = svc.Detail(r.ID, m.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&entity.RecentView{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestRestaurantQuote(t *testing.T) {
	db := newTestDB(t)
	svc := newRestSvc(db)
	r := seedRestaurant(t, db)

	// same point: base fee, minimal ETA
	q, err := svc.Quote(r.ID, r.Latitude, r.Longitude)
	require.NoError(t, err)
	assert.InDelta(t, 0, q.DistanceKm, 0.001)
	assert.Equal(t, int64(20), q.DeliveryFee)
	assert.Equal(t, 10, q.EtaMinutes)

	// roughly 11km north of the seed point costs extra
	q, err = svc.Quote(r.ID, r.Latitude+0.1, r.Longitude)
	require.NoError(t, err)
	assert.Greater(t, q.DistanceKm, 10.0)
	assert.Greater(t, q.DeliveryFee, int64(20))
	assert.Greater(t, q.EtaMinutes, 10)
}

func TestRestaurantUpdateProfileSparse(t *testing.T) {
	db := newTestDB(t)
	svc := newRestSvc(db)
	r := seedRestaurant(t, db)

	open := false
	min := int64(150)
	updated, err := svc.UpdateProfile(r.ID, &UpdateRestaurantIn{IsOpen: &open, MinOrderAmount: &min})
	require.NoError(t, err)
	assert.False(t, updated.IsOpen)
	assert.Equal(t, int64(150), updated.MinOrderAmount)
	assert.Equal(t, r.Name, updated.Name) // untouched field survives
}
