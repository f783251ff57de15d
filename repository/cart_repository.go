package repository

import (
	"errors"
	"time"

	"eatmove/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the member's cart for one restaurant. No row is
// not an error; the frontend renders an empty basket. Callers inside a
// transaction pass their tx so the read sees the same snapshot as the writes.
func (r *CartRepository) GetCartWithItems(db *gorm.DB, memberID, restaurantID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := db.Where("member_id = ? AND restaurant_id = ?", memberID, restaurantID).
		Preload("Items").
		Preload("Items.MenuItem").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{MemberID: memberID, RestaurantID: restaurantID}, nil
	}
	return &c, err
}

func (r *CartRepository) GetOrCreateCart(tx *gorm.DB, memberID, restaurantID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("member_id = ? AND restaurant_id = ?", memberID, restaurantID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{MemberID: memberID, RestaurantID: restaurantID}
		if err := tx.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

// UpsertItem merges on the dish: adding the same menu item again increments
// the existing line instead of creating a second row.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID uint, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND menu_item_id = ?", cartID, row.MenuItemID).
		First(&exist).Error
	if err == nil {
		exist.Qty += row.Qty
		exist.Total = int64(exist.Qty) * exist.UnitPrice
		if row.Note != "" {
			exist.Note = row.Note
		}
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.CartID = cartID
	return tx.Create(row).Error
}

func (r *CartRepository) UpdateQty(tx *gorm.DB, memberID, itemID uint, qty int, note string) error {
	if qty <= 0 {
		return r.RemoveItem(tx, memberID, itemID)
	}
	// the subquery pins the item to a cart the member owns
	return tx.Exec(`
		UPDATE cart_items
		   SET qty = ?, total = unit_price * ?, note = ?
		 WHERE id = ?
		   AND cart_id IN (SELECT id FROM carts WHERE member_id = ?)
	`, qty, qty, note, itemID, memberID).Error
}

// RemoveItem is idempotent: deleting an id that is gone already is fine.
func (r *CartRepository) RemoveItem(tx *gorm.DB, memberID, itemID uint) error {
	return tx.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE member_id = ?)", itemID, memberID).
		Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) TouchCart(tx *gorm.DB, cartID uint) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).
		Update("updated_at", time.Now()).Error
}

// DeleteCart removes the cart and its lines for good. The member/restaurant
// pair carries a unique index, so a soft-deleted cart would block the next
// GetOrCreateCart for the same restaurant.
func (r *CartRepository) DeleteCart(tx *gorm.DB, memberID, restaurantID uint) error {
	var c entity.Cart
	if err := tx.Where("member_id = ? AND restaurant_id = ?", memberID, restaurantID).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := tx.Unscoped().Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&c).Error
}

// ConsumeItems drops exactly the given lines after checkout snapshots them.
// Lines a member adds while the checkout transaction is in flight stay in
// the cart; the cart row itself goes only when nothing is left on it.
func (r *CartRepository) ConsumeItems(tx *gorm.DB, cartID uint, itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}
	if err := tx.Unscoped().Where("cart_id = ? AND id IN ?", cartID, itemIDs).
		Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	var remaining int64
	if err := tx.Model(&entity.CartItem{}).Where("cart_id = ?", cartID).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}
	return tx.Unscoped().Where("id = ?", cartID).Delete(&entity.Cart{}).Error
}
