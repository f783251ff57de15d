package controllers

import (
	"errors"

	"eatmove/pkg/resp"
	"eatmove/services"
	"eatmove/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var req services.RegisterIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			resp.Conflict(c, err.Error())
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, out)
}

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var req services.LoginIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Login(&req)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}
	resp.OK(c, out)
}

// GET /auth/me (member only; partners read their own profile endpoints)
func (h *AuthController) Me(c *gin.Context) {
	m, err := h.Svc.MemberProfile(utils.CurrentAccountID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "member not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, m)
}

// PATCH /auth/me
func (h *AuthController) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := h.Svc.UpdateMemberProfile(utils.CurrentAccountID(c), &req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, m)
}
