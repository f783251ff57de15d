package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"eatmove/pkg/resp"
	"eatmove/services"
	"eatmove/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Svc: s}
}

func pathID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		resp.BadRequest(c, "bad id")
		return 0, false
	}
	return uint(id64), true
}

func mapOrderErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "order not found")
	case errors.Is(err, services.ErrInvalidTransition):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInsufficientFunds):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	default:
		resp.BadRequest(c, err.Error())
	}
}

// POST /orders
func (h *OrderController) Create(c *gin.Context) {
	var req services.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Checkout(utils.CurrentAccountID(c), &req)
	if err != nil {
		mapOrderErr(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /orders?status=&limit=
func (h *OrderController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.Svc.ListForMember(utils.CurrentAccountID(c), c.Query("status"), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.Svc.DetailForMember(utils.CurrentAccountID(c), id)
	if err != nil {
		mapOrderErr(c, err)
		return
	}
	resp.OK(c, o)
}

// POST /orders/:id/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.CancelByMember(utils.CurrentAccountID(c), id); err != nil {
		mapOrderErr(c, err)
		return
	}
	resp.OK(c, gin.H{"cancelled": true})
}

// GET /orders/:id/qr → payment reference QR as PNG
func (h *OrderController) PaymentQR(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	png, err := h.Svc.PaymentQR(utils.CurrentAccountID(c), id)
	if err != nil {
		mapOrderErr(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ----- partner (restaurant) surface -----

// GET /partner/orders?status=&page=&limit=
func (h *OrderController) ListForRestaurant(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, total, err := h.Svc.ListForRestaurant(utils.CurrentAccountID(c), c.Query("status"), page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

// GET /partner/orders/:id
func (h *OrderController) DetailForRestaurant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.Svc.DetailForRestaurant(utils.CurrentAccountID(c), id)
	if err != nil {
		mapOrderErr(c, err)
		return
	}
	resp.OK(c, o)
}

// PATCH /partner/orders/:id/status — generic transition with a reachability
// guard; unknown statuses and unreachable moves are rejected before any write
func (h *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.UpdateStatusIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateStatus(utils.CurrentAccountID(c), id, &req); err != nil {
		mapOrderErr(c, err)
		return
	}
	resp.OK(c, gin.H{"status": req.Status})
}

func (h *OrderController) Accept(c *gin.Context) {
	h.transition(c, h.Svc.Accept)
}
func (h *OrderController) StartPreparing(c *gin.Context) {
	h.transition(c, h.Svc.StartPreparing)
}
func (h *OrderController) MarkReady(c *gin.Context) {
	h.transition(c, h.Svc.MarkReady)
}
func (h *OrderController) CancelByRestaurant(c *gin.Context) {
	h.transition(c, h.Svc.Cancel)
}

func (h *OrderController) transition(c *gin.Context, fn func(restaurantID, orderID uint) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := fn(utils.CurrentAccountID(c), id); err != nil {
		mapOrderErr(c, err)
		return
	}
	resp.OK(c, gin.H{"moved": true})
}
