package controllers

import (
	"errors"
	"strconv"

	"eatmove/pkg/resp"
	"eatmove/services"
	"eatmove/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RatingController struct{ Svc *services.RatingService }

func NewRatingController(s *services.RatingService) *RatingController {
	return &RatingController{Svc: s}
}

// POST /ratings
func (h *RatingController) Submit(c *gin.Context) {
	var req services.SubmitRatingIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rating, err := h.Svc.Submit(utils.CurrentAccountID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrAlreadyRated):
			resp.Conflict(c, "order already rated")
		default:
			resp.BadRequest(c, err.Error())
		}
		return
	}
	resp.Created(c, rating)
}

// GET /ratings?restaurantId=&limit=&offset=
func (h *RatingController) ListForRestaurant(c *gin.Context) {
	restID, err := strconv.ParseUint(c.Query("restaurantId"), 10, 64)
	if err != nil || restID == 0 {
		resp.BadRequest(c, "restaurantId is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	out, err := h.Svc.ListForRestaurant(uint(restID), limit, offset)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}
