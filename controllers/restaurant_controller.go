package controllers

import (
	"errors"
	"strconv"

	"eatmove/pkg/resp"
	"eatmove/repository"
	"eatmove/services"
	"eatmove/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RestaurantController struct {
	Svc     *services.RestaurantService
	MenuSvc *services.MenuService
}

func NewRestaurantController(s *services.RestaurantService, m *services.MenuService) *RestaurantController {
	return &RestaurantController{Svc: s, MenuSvc: m}
}

// GET /restaurants?search=&cuisine=&open=&page=&limit=
func (h *RestaurantController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	f := repository.ListFilter{
		Search:   c.Query("search"),
		Cuisine:  c.Query("cuisine"),
		OpenOnly: c.Query("open") == "true",
		Page:     page,
		Limit:    limit,
	}
	out, err := h.Svc.List(f)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /restaurants/:id — runs under OptionalAuth so member visits are
// recorded as recent views
func (h *RestaurantController) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var viewer uint
	if utils.CurrentRole(c) == services.RoleMember {
		viewer = utils.CurrentAccountID(c)
	}
	rest, err := h.Svc.Detail(id, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rest)
}

// GET /restaurants/:id/menu?category=&available=
func (h *RestaurantController) Menu(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := h.MenuSvc.List(id, c.Query("category"), c.DefaultQuery("available", "true") == "true")
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /restaurants/:id/quote?lat=&lng=
func (h *RestaurantController) Quote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		resp.BadRequest(c, "lat and lng are required")
		return
	}
	out, err := h.Svc.Quote(id, lat, lng)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// ----- partner surface -----

// GET /partner/restaurant
func (h *RestaurantController) MyProfile(c *gin.Context) {
	rest, err := h.Svc.Repo.FindByID(utils.CurrentAccountID(c))
	if err != nil {
		resp.NotFound(c, "restaurant not found")
		return
	}
	resp.OK(c, rest)
}

// PATCH /partner/restaurant
func (h *RestaurantController) UpdateProfile(c *gin.Context) {
	var req services.UpdateRestaurantIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := h.Svc.UpdateProfile(utils.CurrentAccountID(c), &req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, rest)
}
