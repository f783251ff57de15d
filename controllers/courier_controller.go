package controllers

import (
	"errors"

	"eatmove/pkg/resp"
	"eatmove/services"
	"eatmove/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourierController struct{ Svc *services.CourierService }

func NewCourierController(s *services.CourierService) *CourierController {
	return &CourierController{Svc: s}
}

// GET /couriers/available?zone=
func (h *CourierController) Available(c *gin.Context) {
	rows, err := h.Svc.ListAvailable(c.Query("zone"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /courier/orders — unassigned orders waiting for a courier
func (h *CourierController) Claimable(c *gin.Context) {
	rows, err := h.Svc.ListClaimable()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// POST /courier/orders/:id/claim
func (h *CourierController) Claim(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Claim(utils.CurrentAccountID(c), id); err != nil {
		if errors.Is(err, services.ErrAlreadyClaimed) {
			resp.Conflict(c, err.Error())
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "not found")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"claimed": true})
}

// POST /courier/orders/:id/complete
func (h *CourierController) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Complete(utils.CurrentAccountID(c), id); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			resp.Forbidden(c, err.Error())
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"completed": true})
}

// PATCH /courier/status
func (h *CourierController) SetStatus(c *gin.Context) {
	var body struct {
		Online *bool `json:"online" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.SetAvailability(utils.CurrentAccountID(c), *body.Online); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"online": *body.Online})
}

// GET /courier/status
func (h *CourierController) Status(c *gin.Context) {
	st, err := h.Svc.Status(utils.CurrentAccountID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, st)
}
