package controllers

import (
	"errors"
	"strconv"
	"strings"

	"eatmove/pkg/resp"
	"eatmove/services"
	"eatmove/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

func restaurantIDQuery(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Query("restaurantId"), 10, 64)
	if err != nil || id64 == 0 {
		resp.BadRequest(c, "restaurantId is required")
		return 0, false
	}
	return uint(id64), true
}

// GET /cart?restaurantId=
func (h *CartController) Get(c *gin.Context) {
	rid, ok := restaurantIDQuery(c)
	if !ok {
		return
	}
	out, err := h.Svc.Get(utils.CurrentAccountID(c), rid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Add(utils.CurrentAccountID(c), &req); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		if strings.Contains(err.Error(), "not in this restaurant") {
			resp.Conflict(c, err.Error())
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, gin.H{"added": true})
}

// PATCH /cart/items
func (h *CartController) UpdateItem(c *gin.Context) {
	var body struct {
		ItemID uint   `json:"itemId" binding:"required"`
		Qty    *int   `json:"qty" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateItem(utils.CurrentAccountID(c), body.ItemID, *body.Qty, body.Note); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /cart/items
func (h *CartController) RemoveItem(c *gin.Context) {
	var body struct {
		ItemID uint `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.RemoveItem(utils.CurrentAccountID(c), body.ItemID); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

// DELETE /cart?restaurantId=
func (h *CartController) Clear(c *gin.Context) {
	rid, ok := restaurantIDQuery(c)
	if !ok {
		return
	}
	if err := h.Svc.Clear(utils.CurrentAccountID(c), rid); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
