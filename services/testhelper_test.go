package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"eatmove/configs"
	"eatmove/entity"
	"eatmove/repository"
	"eatmove/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB gives each test its own in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, configs.AutoMigrate(db))
	return db
}

// seedSeq keeps codes and emails distinct across seeded rows; both columns
// carry unique indexes.
var seedSeq atomic.Int64

func seedMember(t *testing.T, db *gorm.DB, wallet int64) *entity.Member {
	t.Helper()
	n := seedSeq.Add(1)
	m := &entity.Member{
		Code:          utils.AccountCode("M", uint(100000+n)),
		Name:          "Alice",
		Email:         fmt.Sprintf("alice%d-%d@test.local", testDBSeq.Load(), n),
		Password:      "hashed",
		WalletBalance: wallet,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedRestaurant(t *testing.T, db *gorm.DB) *entity.Restaurant {
	t.Helper()
	n := seedSeq.Add(1)
	r := &entity.Restaurant{
		Code:      utils.AccountCode("R", uint(100000+n)),
		Name:      "Test Kitchen",
		Email:     fmt.Sprintf("kitchen%d-%d@test.local", testDBSeq.Load(), n),
		Password:  "hashed",
		IsOpen:    true,
		Latitude:  13.7563,
		Longitude: 100.5018,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedCourier(t *testing.T, db *gorm.DB, online bool) *entity.Courier {
	t.Helper()
	n := seedSeq.Add(1)
	co := &entity.Courier{
		Code:     utils.AccountCode("D", uint(100000+n)),
		Name:     "Rider",
		Email:    fmt.Sprintf("rider%d-%d@test.local", testDBSeq.Load(), n),
		Password: "hashed",
		Online:   online,
	}
	require.NoError(t, db.Create(co).Error)
	return co
}

func seedMenuItem(t *testing.T, db *gorm.DB, restaurantID uint, name string, price int64) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        price,
		Available:    true,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedOrder(t *testing.T, db *gorm.DB, memberID, restaurantID uint, status string) *entity.Order {
	t.Helper()
	o := &entity.Order{
		MemberID:     memberID,
		RestaurantID: restaurantID,
		Status:       status,
		Address:      "123 Test St",
		Subtotal:     100,
		DeliveryFee:  20,
		Total:        120,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func newCartSvc(db *gorm.DB) *CartService {
	return NewCartService(db, repository.NewCartRepository(db), repository.NewMenuRepository(db))
}

func newOrderSvc(db *gorm.DB) *OrderService {
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewRestaurantRepository(db),
		nil)
}

func newCourierSvc(db *gorm.DB) *CourierService {
	return NewCourierService(db,
		repository.NewCourierRepository(db),
		repository.NewOrderRepository(db),
		newOrderSvc(db))
}

func newRatingSvc(db *gorm.DB) *RatingService {
	return NewRatingService(db,
		repository.NewRatingRepository(db),
		repository.NewOrderRepository(db),
		repository.NewRestaurantRepository(db),
		nil, nil)
}
