package repository

import (
	"eatmove/entity"

	"gorm.io/gorm"
)

// Couriers claimable at once
const MaxActiveOrders = 3

type CourierRepository struct{ DB *gorm.DB }

func NewCourierRepository(db *gorm.DB) *CourierRepository { return &CourierRepository{DB: db} }

func (r *CourierRepository) Create(tx *gorm.DB, co *entity.Courier) error {
	return tx.Create(co).Error
}

func (r *CourierRepository) SetCode(tx *gorm.DB, id uint, code string) error {
	return tx.Model(&entity.Courier{}).Where("id = ?", id).Update("code", code).Error
}

func (r *CourierRepository) FindByID(id uint) (*entity.Courier, error) {
	var co entity.Courier
	if err := r.DB.First(&co, id).Error; err != nil {
		return nil, err
	}
	return &co, nil
}

func (r *CourierRepository) FindByEmail(email string) (*entity.Courier, error) {
	var co entity.Courier
	if err := r.DB.Where("email = ?", email).First(&co).Error; err != nil {
		return nil, err
	}
	return &co, nil
}

func (r *CourierRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Courier{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *CourierRepository) SetOnline(tx *gorm.DB, id uint, online bool) error {
	return tx.Model(&entity.Courier{}).Where("id = ?", id).Update("online", online).Error
}

func (r *CourierRepository) ListWithFaceDescriptor() ([]entity.Courier, error) {
	var out []entity.Courier
	err := r.DB.Where("face_descriptor <> ''").Find(&out).Error
	return out, err
}

type AvailableCourierRow struct {
	ID    uint   `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Zone  string `json:"zone"`
	Load  int64  `json:"load"`
}

// ListAvailable returns online couriers carrying fewer than MaxActiveOrders
// orders in {ready, delivering}, least loaded first, then by name. A plain
// greedy heuristic; the claim itself is what is race-guarded.
func (r *CourierRepository) ListAvailable(zone string) ([]AvailableCourierRow, error) {
	var rows []AvailableCourierRow
	q := r.DB.Table("couriers AS c").
		Select("c.id, c.code, c.name, c.phone, c.zone, COALESCE(l.cnt, 0) AS load").
		Joins(`LEFT JOIN (
			SELECT courier_id, COUNT(*) AS cnt
			  FROM orders
			 WHERE courier_id IS NOT NULL
			   AND status IN ?
			   AND deleted_at IS NULL
			 GROUP BY courier_id
		) l ON l.courier_id = c.id`, []string{entity.StatusReady, entity.StatusDelivering}).
		Where("c.online = ? AND c.deleted_at IS NULL", true).
		Where("COALESCE(l.cnt, 0) < ?", MaxActiveOrders)
	if zone != "" {
		q = q.Where("c.zone = ?", zone)
	}
	err := q.Order("load ASC").Order("c.name ASC").Scan(&rows).Error
	return rows, err
}
