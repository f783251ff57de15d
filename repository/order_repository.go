package repository

import (
	"time"

	"eatmove/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForMember(memberID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").
		Where("id = ? AND member_id = ?", orderID, memberID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForRestaurant(restaurantID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").
		Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID           uint      `json:"id"`
	RestaurantID uint      `json:"restaurantId"`
	Total        int64     `json:"total"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForMember(memberID uint, status string, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	q := r.DB.Model(&entity.Order{}).
		Select("id, restaurant_id, total, status, created_at").
		Where("member_id = ?", memberID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("id DESC").Limit(limit).Scan(&out).Error
	return out, err
}

type RestaurantOrderSummary struct {
	ID         uint      `json:"id"`
	MemberID   uint      `json:"memberId"`
	MemberName string    `json:"memberName"`
	Total      int64     `json:"total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForRestaurant(restaurantID uint, status string, page, limit int) ([]RestaurantOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	count := r.DB.Model(&entity.Order{}).Where("restaurant_id = ?", restaurantID)
	if status != "" {
		count = count.Where("status = ?", status)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []RestaurantOrderSummary
	q := r.DB.Table("orders AS o").
		Select("o.id, o.member_id, m.name AS member_name, o.total, o.status, o.created_at").
		Joins("JOIN members m ON m.id = o.member_id").
		Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restaurantID)
	if status != "" {
		q = q.Where("o.status = ?", status)
	}
	if err := q.Order("o.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatusFromTo is the guarded transition: the WHERE re-checks the
// current status so two writers racing on the same move see one winner.
func (r *OrderRepository) UpdateStatusFromTo(tx *gorm.DB, orderID uint, from, to string, extra map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AssignCourier claims an order in a single conditional UPDATE. Unassigned and
// claimable are re-verified inside the statement, so concurrent claims cannot
// both win.
func (r *OrderRepository) AssignCourier(tx *gorm.DB, orderID, courierID uint) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND courier_id IS NULL AND status IN ?",
			orderID, []string{entity.StatusPreparing, entity.StatusReady}).
		Updates(map[string]any{
			"courier_id": courierID,
			"status":     entity.StatusDelivering,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CountActiveForCourier is the courier's live load: orders it is carrying or
// about to carry.
func (r *OrderRepository) CountActiveForCourier(courierID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Order{}).
		Where("courier_id = ? AND status IN ?",
			courierID, []string{entity.StatusReady, entity.StatusDelivering}).
		Count(&cnt).Error
	return cnt, err
}

type ClaimableOrderRow struct {
	ID             uint      `json:"id"`
	RestaurantID   uint      `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName"`
	Address        string    `json:"address"`
	Total          int64     `json:"total"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListClaimable(limit int) ([]ClaimableOrderRow, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []ClaimableOrderRow
	err := r.DB.Table("orders AS o").
		Select("o.id, o.restaurant_id, r.name AS restaurant_name, o.address, o.total, o.status, o.created_at").
		Joins("JOIN restaurants r ON r.id = o.restaurant_id").
		Where("o.courier_id IS NULL AND o.status IN ? AND o.deleted_at IS NULL",
			[]string{entity.StatusPreparing, entity.StatusReady}).
		Order("o.id ASC").Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// ---------------- Helpers ----------------

func (r *OrderRepository) SetRatingCopies(tx *gorm.DB, orderID uint, restaurantRating, deliveryRating *int) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{
			"restaurant_rating": restaurantRating,
			"delivery_rating":   deliveryRating,
		}).Error
}

// DebitWallet only succeeds when the balance covers the amount; the guard
// lives in the WHERE clause, not in a preceding read.
func (r *OrderRepository) DebitWallet(tx *gorm.DB, memberID uint, amount int64) (bool, error) {
	res := tx.Model(&entity.Member{}).
		Where("id = ? AND wallet_balance >= ?", memberID, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
